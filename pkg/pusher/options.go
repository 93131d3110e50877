package pusher

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bft-labs/graphitepush/internal/ports"
	"github.com/bft-labs/graphitepush/pkg/log"
)

// HTTPClient executes event requests. *http.Client satisfies it.
type HTTPClient = ports.HTTPClient

// Dialer opens relay connections. *net.Dialer satisfies it.
type Dialer = ports.Dialer

// Option configures optional behavior of a Pusher.
type Option func(*options)

type options struct {
	logger     log.Logger
	httpClient HTTPClient
	dialer     Dialer
	registerer prometheus.Registerer
}

// WithLogger sets the logger. Without it nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHTTPClient replaces the default client built from Config.HTTPTimeout.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithDialer replaces the default dialer built from Config.DialTimeout.
func WithDialer(dialer Dialer) Option {
	return func(o *options) {
		o.dialer = dialer
	}
}

// WithRegisterer registers the pusher's counters with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}
