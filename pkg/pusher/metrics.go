package pusher

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "graphitepush"

// Metrics counts what a Pusher has done. Counters exist even when no
// registerer is configured.
type Metrics struct {
	SamplesAdded  prometheus.Counter
	Pushes        prometheus.Counter
	PushFailures  prometheus.Counter
	BytesPushed   prometheus.Counter
	SamplesLost   prometheus.Counter
	EventsSent    prometheus.Counter
	EventFailures prometheus.Counter
	EventsSkipped prometheus.Counter
}

func newCounter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      name,
		Help:      help,
	})
}

func newMetrics() *Metrics {
	return &Metrics{
		SamplesAdded:  newCounter("samples_added_total", "Samples appended to the buffer."),
		Pushes:        newCounter("pushes_total", "Batches written to the relay."),
		PushFailures:  newCounter("push_failures_total", "Batches dropped because the push failed."),
		BytesPushed:   newCounter("pushed_bytes_total", "Framed bytes written to the relay."),
		SamplesLost:   newCounter("samples_lost_total", "Samples in batches that failed to push."),
		EventsSent:    newCounter("events_sent_total", "Events accepted by the events endpoint."),
		EventFailures: newCounter("event_failures_total", "Events dropped because the request failed."),
		EventsSkipped: newCounter("events_skipped_total", "Events skipped because no HTTP URL is configured."),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.SamplesAdded, m.Pushes, m.PushFailures, m.BytesPushed,
		m.SamplesLost, m.EventsSent, m.EventFailures, m.EventsSkipped,
	}
}

func (m *Metrics) register(reg prometheus.Registerer) error {
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
