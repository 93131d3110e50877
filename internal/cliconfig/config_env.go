package cliconfig

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "GRAPHITEPUSH_"

// ApplyEnvConfig applies configuration from environment variables (GRAPHITEPUSH_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", os.Getenv(EnvPrefix+"HOST"), &cfg.Host)
	s.setString("http-url", os.Getenv(EnvPrefix+"HTTP_URL"), &cfg.HTTPURL)
	s.setString("tag", os.Getenv(EnvPrefix+"TAG"), &cfg.Tag)
	s.setString("prefix", os.Getenv(EnvPrefix+"PREFIX"), &cfg.Prefix)
	s.setString("format", os.Getenv(EnvPrefix+"FORMAT"), &cfg.Format)
	s.setString("metrics-addr", os.Getenv(EnvPrefix+"METRICS_ADDR"), &cfg.MetricsAddr)
	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("port", os.Getenv(EnvPrefix+"PORT"), &cfg.Port); err != nil {
		return err
	}
	if err := s.setIntFromString("retention", os.Getenv(EnvPrefix+"RETENTION"), &cfg.Retention); err != nil {
		return err
	}

	if err := s.setDuration("dial-timeout", os.Getenv(EnvPrefix+"DIAL_TIMEOUT"), &cfg.DialTimeout); err != nil {
		return err
	}
	if err := s.setDuration("write-timeout", os.Getenv(EnvPrefix+"WRITE_TIMEOUT"), &cfg.WriteTimeout); err != nil {
		return err
	}
	if err := s.setDuration("http-timeout", os.Getenv(EnvPrefix+"HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("flush-interval", os.Getenv(EnvPrefix+"FLUSH_INTERVAL"), &cfg.FlushInterval); err != nil {
		return err
	}

	return nil
}
