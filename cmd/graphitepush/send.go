package main

import (
	"github.com/spf13/cobra"

	"github.com/bft-labs/graphitepush/internal/ingest"
	"github.com/bft-labs/graphitepush/pkg/log"
)

func (a *app) sendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "send",
		Short: "Read samples from stdin and push them",
		Long: `Read one sample per line from stdin and push them in batches.
Whatever remains buffered at end of input is pushed before exiting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, err := ingest.NewParser(a.cfg.Format, nil)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			n, err := ingest.Forward(ctx, cmd.InOrStdin(), parser, a.pusher, a.logger)
			a.pusher.Push(ctx)
			a.logger.Info("done", log.Int("samples", n))
			return err
		},
	}
}
