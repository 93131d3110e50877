package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bft-labs/graphitepush/internal/cliconfig"
	"github.com/bft-labs/graphitepush/pkg/log"
	"github.com/bft-labs/graphitepush/pkg/pusher"
)

// app carries state shared by the subcommands once setup has run.
type app struct {
	cfg      cliconfig.Config
	cfgPath  string
	logger   log.Logger
	registry *prometheus.Registry
	pusher   *pusher.Pusher
}

func newApp() *app {
	return &app{cfg: cliconfig.DefaultConfig()}
}

// setup layers file, env and flag configuration and builds the pusher.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	// The file layer logs at the flag level; the final logger is built
	// once every layer has been applied.
	bootLogger, err := cliconfig.NewLogger(a.cfg.LogLevel)
	if err != nil {
		return err
	}

	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		values, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&a.cfg, values, changed, bootLogger); err != nil {
			return err
		}
	} else if a.cfgPath != "" {
		return fmt.Errorf("config file %s not found", a.cfgPath)
	}

	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	logger, err := cliconfig.NewLogger(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	logger.Debug("configuration", log.Any("config", a.cfg))

	a.registry = prometheus.NewRegistry()
	p, err := pusher.New(a.cfg.PusherConfig(),
		pusher.WithLogger(logger),
		pusher.WithRegisterer(a.registry),
	)
	if err != nil {
		return fmt.Errorf("create pusher: %w", err)
	}
	a.pusher = p
	return nil
}
