package cliconfig

import (
	"testing"
	"time"

	"github.com/bft-labs/graphitepush/pkg/log"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"GRAPHITEPUSH_HOST":           "graphite",
				"GRAPHITEPUSH_PORT":           "2014",
				"GRAPHITEPUSH_HTTP_URL":       "http://graphite",
				"GRAPHITEPUSH_TAG":            "celery",
				"GRAPHITEPUSH_PREFIX":         "prod",
				"GRAPHITEPUSH_RETENTION":      "50",
				"GRAPHITEPUSH_DIAL_TIMEOUT":   "1s",
				"GRAPHITEPUSH_WRITE_TIMEOUT":  "2s",
				"GRAPHITEPUSH_HTTP_TIMEOUT":   "3s",
				"GRAPHITEPUSH_FLUSH_INTERVAL": "1m",
				"GRAPHITEPUSH_FORMAT":         "influx",
				"GRAPHITEPUSH_METRICS_ADDR":   ":9102",
				"GRAPHITEPUSH_LOG_LEVEL":      "debug",
			},
			changed: map[string]bool{},
			expected: Config{
				Host:          "graphite",
				Port:          2014,
				HTTPURL:       "http://graphite",
				Tag:           "celery",
				Prefix:        "prod",
				Retention:     50,
				DialTimeout:   time.Second,
				WriteTimeout:  2 * time.Second,
				HTTPTimeout:   3 * time.Second,
				FlushInterval: time.Minute,
				Format:        "influx",
				MetricsAddr:   ":9102",
				LogLevel:      "debug",
			},
		},
		{
			name:     "respects changed flags",
			envVars:  map[string]string{"GRAPHITEPUSH_HOST": "env-host", "GRAPHITEPUSH_PREFIX": "env"},
			changed:  map[string]bool{"host": true},
			initial:  Config{Host: "flag-host"},
			expected: Config{Host: "flag-host", Prefix: "env"},
		},
		{
			name:     "non-positive int ignored",
			envVars:  map[string]string{"GRAPHITEPUSH_RETENTION": "0"},
			changed:  map[string]bool{},
			initial:  Config{Retention: 100},
			expected: Config{Retention: 100},
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{"GRAPHITEPUSH_DIAL_TIMEOUT": "soon"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid int",
			envVars: map[string]string{"GRAPHITEPUSH_PORT": "http"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyEnvConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

// Integration test: precedence order (CLI > Env > File)
func TestConfigPrecedence(t *testing.T) {
	fileValues := map[string]interface{}{
		"host":      "file-host",
		"prefix":    "file-prefix",
		"tag":       "file-tag",
		"retention": int64(10),
	}

	t.Setenv("GRAPHITEPUSH_PREFIX", "env-prefix")
	t.Setenv("GRAPHITEPUSH_HOST", "env-host")

	changed := map[string]bool{"host": true}
	cfg := DefaultConfig()
	cfg.Host = "cli-host"

	if err := ApplyFileConfig(&cfg, fileValues, changed, log.NewNoopLogger()); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.Host != "cli-host" {
		t.Errorf("Host = %v, want cli-host (CLI should win)", cfg.Host)
	}
	if cfg.Prefix != "env-prefix" {
		t.Errorf("Prefix = %v, want env-prefix (env should override file)", cfg.Prefix)
	}
	if cfg.Tag != "file-tag" {
		t.Errorf("Tag = %v, want file-tag (file should set)", cfg.Tag)
	}
	if cfg.Retention != 10 {
		t.Errorf("Retention = %v, want 10 (file should set)", cfg.Retention)
	}
}
