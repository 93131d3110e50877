package pusher

import (
	"context"
	"net"
	"net/http"

	"github.com/pkg/errors"

	httpAdapter "github.com/bft-labs/graphitepush/internal/adapters/http"
	"github.com/bft-labs/graphitepush/internal/adapters/tcp"
	"github.com/bft-labs/graphitepush/internal/batch"
	"github.com/bft-labs/graphitepush/internal/domain"
	"github.com/bft-labs/graphitepush/internal/ports"
	"github.com/bft-labs/graphitepush/pkg/log"
)

// Pusher buffers samples and forwards them to a Graphite relay.
type Pusher struct {
	config  Config
	buffer  batch.Batcher
	samples ports.BatchSender
	// events is nil when no HTTP URL is configured.
	events  ports.EventSender
	logger  log.Logger
	metrics *Metrics
	addr    string
}

// New creates a Pusher. It only fails on invalid configuration or when the
// counters cannot be registered.
func New(cfg Config, opts ...Option) (*Pusher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{
		logger:     log.NewNoopLogger(),
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		dialer:     &net.Dialer{Timeout: cfg.DialTimeout},
	}
	for _, opt := range opts {
		opt(&o)
	}

	metrics := newMetrics()
	if o.registerer != nil {
		if err := metrics.register(o.registerer); err != nil {
			return nil, errors.Wrap(err, "register metrics")
		}
	}

	sender := tcp.NewBatchSender(o.dialer, cfg.Host, cfg.Port, cfg.WriteTimeout)
	p := &Pusher{
		config:  cfg,
		buffer:  batch.NewBuffer(cfg.Retention),
		samples: sender,
		logger:  o.logger,
		metrics: metrics,
		addr:    sender.Addr(),
	}
	if cfg.HTTPURL != "" {
		p.events = httpAdapter.NewEventSender(o.httpClient, cfg.HTTPURL)
	}
	return p, nil
}

// Path joins segments with "." under the configured prefix.
func (p *Pusher) Path(segments ...string) string {
	return domain.JoinPath(p.config.Prefix, segments...)
}

// Add buffers one sample. When the buffer reaches Retention samples it is
// pushed before Add returns.
func (p *Pusher) Add(ctx context.Context, timestamp int64, value float64, segments ...string) {
	path := p.Path(segments...)
	full := p.buffer.Add(domain.NewSample(path, timestamp, value))
	p.metrics.SamplesAdded.Inc()

	p.logger.Debug("adding sample",
		log.String("path", path),
		log.Float64("value", value),
		log.Int("buffered", p.buffer.Len()),
		log.Int("retention", p.buffer.Retention()))

	if !full {
		return
	}
	p.logger.Info("reached retention limit, pushing", log.Int("retention", p.buffer.Retention()))
	p.Push(ctx)
}

// Push detaches the buffer and sends it as one batch. Failures are logged
// and the batch is dropped. An empty buffer is sent as an empty batch.
func (p *Pusher) Push(ctx context.Context) {
	b := p.buffer.Detach()

	n, err := p.samples.Send(ctx, b)
	if err != nil {
		p.metrics.PushFailures.Inc()
		p.metrics.SamplesLost.Add(float64(b.Size()))
		p.logger.Error("failed to push",
			log.String("addr", p.addr),
			log.Int("samples", b.Size()),
			log.Stack(err))
		return
	}

	p.metrics.Pushes.Inc()
	p.metrics.BytesPushed.Add(float64(n))
	p.logger.Info("pushed batch",
		log.String("addr", p.addr),
		log.Int("samples", b.Size()),
		log.Int("bytes", n))
}

// AddEvent posts one event. Without a configured HTTP URL it only logs a
// warning. The static tag, if any, is added to a copy of tags.
func (p *Pusher) AddEvent(ctx context.Context, what string, tags []string, when int64, data string) {
	if p.events == nil {
		p.metrics.EventsSkipped.Inc()
		p.logger.Warn("not pushing event", log.Err(domain.ErrNoEventsURL), log.String("what", what))
		return
	}

	ev := domain.NewEvent(what, tags, when, data, p.config.Tag)
	p.logger.Info("pushing event",
		log.String("what", ev.What),
		log.Strings("tags", ev.Tags),
		log.Int64("when", ev.When),
		log.String("data", ev.Data))

	if err := p.events.Send(ctx, ev); err != nil {
		p.metrics.EventFailures.Inc()
		p.logger.Error("failed to push event", log.String("what", ev.What), log.Err(err))
		return
	}
	p.metrics.EventsSent.Inc()
}

// Pending returns the number of buffered samples.
func (p *Pusher) Pending() int {
	return p.buffer.Len()
}

// Metrics returns the pusher's counters.
func (p *Pusher) Metrics() *Metrics {
	return p.metrics
}
