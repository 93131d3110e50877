package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/bft-labs/graphitepush/internal/ingest"
	"github.com/bft-labs/graphitepush/pkg/log"
)

func (a *app) tailCommand() *cobra.Command {
	var fromStart bool

	cmd := &cobra.Command{
		Use:   "tail FILE",
		Short: "Follow a file and push samples appended to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, err := ingest.NewParser(a.cfg.Format, nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if a.cfg.MetricsAddr != "" {
				srv := a.serveMetrics(a.cfg.MetricsAddr)
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			return ingest.Follow(ctx, args[0], ingest.TailConfig{
				FromStart:     fromStart,
				FlushInterval: a.cfg.FlushInterval,
			}, parser, a.pusher, a.logger)
		},
	}

	cmd.Flags().BoolVar(&fromStart, "from-start", false, "forward existing content before following")
	cmd.Flags().DurationVar(&a.cfg.FlushInterval, "flush-interval", a.cfg.FlushInterval, "push buffered samples at this interval (0 disables)")
	cmd.Flags().StringVar(&a.cfg.MetricsAddr, "metrics-addr", a.cfg.MetricsAddr, "serve Prometheus metrics on this address")

	return cmd
}

func (a *app) serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", log.String("addr", addr), log.Err(err))
		}
	}()
	a.logger.Info("serving metrics", log.String("addr", addr))
	return srv
}
