package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/bft-labs/graphitepush/internal/ingest"
	"github.com/bft-labs/graphitepush/pkg/pusher"
)

// DefaultPort is the conventional Graphite pickle receiver port.
const DefaultPort = 2004

// Config holds CLI configuration for graphitepush. The mapstructure tags
// are the keys accepted in configuration files.
type Config struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	HTTPURL string `mapstructure:"http_url"`
	Tag     string `mapstructure:"tag"`
	Prefix  string `mapstructure:"prefix"`

	Retention    int           `mapstructure:"retention"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	HTTPTimeout  time.Duration `mapstructure:"http_timeout"`

	Format        string        `mapstructure:"format"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
	MetricsAddr   string        `mapstructure:"metrics_addr"`
	LogLevel      string        `mapstructure:"log_level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Host:          "localhost",
		Port:          DefaultPort,
		Retention:     pusher.DefaultRetention,
		DialTimeout:   pusher.DefaultDialTimeout,
		WriteTimeout:  pusher.DefaultWriteTimeout,
		HTTPTimeout:   pusher.DefaultHTTPTimeout,
		Format:        ingest.FormatPlaintext,
		FlushInterval: 10 * time.Second,
		LogLevel:      "info",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs *multierror.Error

	if c.Host == "" {
		errs = multierror.Append(errs, fmt.Errorf("host is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = multierror.Append(errs, fmt.Errorf("port must be between 1 and 65535"))
	}
	if c.Retention <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("retention must be positive"))
	}
	if c.DialTimeout <= 0 || c.WriteTimeout <= 0 || c.HTTPTimeout <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("timeouts must be positive"))
	}
	if c.FlushInterval < 0 {
		errs = multierror.Append(errs, fmt.Errorf("flush interval must not be negative"))
	}
	if c.Format != ingest.FormatPlaintext && c.Format != ingest.FormatInflux {
		errs = multierror.Append(errs, fmt.Errorf("format must be %q or %q", ingest.FormatPlaintext, ingest.FormatInflux))
	}

	return errs.ErrorOrNil()
}

// PusherConfig converts the CLI configuration into pusher construction
// parameters.
func (c Config) PusherConfig() pusher.Config {
	return pusher.Config{
		Host:         c.Host,
		Port:         c.Port,
		HTTPURL:      c.HTTPURL,
		Tag:          c.Tag,
		Prefix:       c.Prefix,
		Retention:    c.Retention,
		DialTimeout:  c.DialTimeout,
		WriteTimeout: c.WriteTimeout,
		HTTPTimeout:  c.HTTPTimeout,
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if positive.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}
