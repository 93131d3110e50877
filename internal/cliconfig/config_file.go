package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bft-labs/graphitepush/pkg/extract"
	"github.com/bft-labs/graphitepush/pkg/log"
)

// LoadFileConfig reads a TOML or YAML file into a flat key/value map.
// The format is chosen by extension; anything but .yaml/.yml is TOML.
func LoadFileConfig(path string) (map[string]interface{}, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	values := map[string]interface{}{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &values)
	default:
		err = toml.Unmarshal(b, &values)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return values, nil
}

// DefaultConfigPath returns ~/.graphitepush/config.toml, or "" when the
// home directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".graphitepush", "config.toml")
	}
	return ""
}

// ApplyFileConfig overlays file values onto cfg. Only keys cfg already
// knows are taken, falsy file values are ignored, and keys whose flag was
// set explicitly keep the flag value.
func ApplyFileConfig(cfg *Config, values map[string]interface{}, changed map[string]bool, logger log.Logger) error {
	current := map[string]interface{}{}
	if err := mapstructure.Decode(*cfg, &current); err != nil {
		return fmt.Errorf("flatten config: %w", err)
	}

	if unknown := unknownKeys(current, values); len(unknown) > 0 {
		logger.Warn("ignoring unknown config keys", log.Strings("keys", unknown))
	}

	for key := range current {
		if changed[flagName(key)] {
			delete(current, key)
		}
	}

	extract.ExtractWithLogger(current, values, logger)

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := dec.Decode(current); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// flagName maps a file key to its command-line flag.
func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func unknownKeys(known, values map[string]interface{}) []string {
	var out []string
	for k := range values {
		if _, ok := known[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
