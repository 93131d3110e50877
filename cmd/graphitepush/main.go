package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

const longHelp = `Forward metric samples and events to Graphite.

Samples are buffered and written to the relay as framed batches, one TCP
connection per batch. Events are posted as JSON to <http-url>/events.
Delivery is best effort: failures are logged and the data is dropped.

Configuration is read from a TOML or YAML file, then GRAPHITEPUSH_*
environment variables, then flags; later sources win.`

var exampleUsage = strings.TrimSpace(`
  echo "celery.tasks.succeeded 1 $(date +%s)" | graphitepush send --host graphite
  graphitepush event --http-url http://graphite --what deploy --tags release --data v1.2.3
  graphitepush tail /var/log/app/metrics.log --format influx --metrics-addr :9102
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if err := newRootCommand(newApp()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "graphitepush:", err)
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "graphitepush",
		Short:             "Forward metric samples and events to Graphite",
		Long:              longHelp,
		Example:           exampleUsage,
		Version:           fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", "", "path to a .toml or .yaml config file (default: $HOME/.graphitepush/config.toml)")
	flags.StringVar(&a.cfg.Host, "host", a.cfg.Host, "relay host receiving sample batches")
	flags.IntVar(&a.cfg.Port, "port", a.cfg.Port, "relay port receiving sample batches")
	flags.StringVar(&a.cfg.HTTPURL, "http-url", a.cfg.HTTPURL, "Graphite web base URL; enables events")
	flags.StringVar(&a.cfg.Tag, "tag", a.cfg.Tag, "tag appended to every event")
	flags.StringVar(&a.cfg.Prefix, "prefix", a.cfg.Prefix, "prefix prepended to every sample path")
	flags.IntVar(&a.cfg.Retention, "retention", a.cfg.Retention, "buffered samples that trigger a push")
	flags.DurationVar(&a.cfg.DialTimeout, "dial-timeout", a.cfg.DialTimeout, "relay connect timeout")
	flags.DurationVar(&a.cfg.WriteTimeout, "write-timeout", a.cfg.WriteTimeout, "relay write timeout")
	flags.DurationVar(&a.cfg.HTTPTimeout, "http-timeout", a.cfg.HTTPTimeout, "events request timeout")
	flags.StringVar(&a.cfg.Format, "format", a.cfg.Format, "input format: plaintext or influx")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(a.sendCommand(), a.eventCommand(), a.tailCommand())
	return root
}
