package pusher

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/bft-labs/graphitepush/internal/batch"
	"github.com/bft-labs/graphitepush/internal/domain"
)

// Config holds the construction parameters of a Pusher.
type Config struct {
	// Host and Port locate the relay accepting framed sample batches.
	Host string
	Port int

	// HTTPURL is the Graphite web base URL. Events are disabled when empty.
	HTTPURL string

	// Tag is appended to every event's tags when not empty.
	Tag string

	// Prefix is prepended to every sample path when not empty.
	Prefix string

	// Retention is the number of buffered samples that triggers a push.
	Retention int

	DialTimeout  time.Duration
	WriteTimeout time.Duration
	HTTPTimeout  time.Duration
}

// Defaults applied by SetDefaults.
const (
	DefaultRetention    = batch.DefaultRetention
	DefaultDialTimeout  = 5 * time.Second
	DefaultWriteTimeout = 5 * time.Second
	DefaultHTTPTimeout  = 10 * time.Second
)

// SetDefaults fills zero-valued optional fields.
func (c *Config) SetDefaults() {
	if c.Retention <= 0 {
		c.Retention = DefaultRetention
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = DefaultHTTPTimeout
	}
}

// Validate reports every problem with the configuration at once.
// The returned error wraps domain.ErrInvalidConfig.
func (c Config) Validate() error {
	var errs *multierror.Error
	if c.Host == "" {
		errs = multierror.Append(errs, fmt.Errorf("host is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = multierror.Append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}
