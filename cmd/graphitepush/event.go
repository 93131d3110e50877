package main

import (
	"time"

	"github.com/spf13/cobra"
)

func (a *app) eventCommand() *cobra.Command {
	var (
		what string
		tags []string
		when int64
		data string
	)

	cmd := &cobra.Command{
		Use:   "event",
		Short: "Post one event to the Graphite events endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if when == 0 {
				when = time.Now().Unix()
			}
			a.pusher.AddEvent(cmd.Context(), what, tags, when, data)
			return nil
		},
	}

	cmd.Flags().StringVar(&what, "what", "", "event title")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "event tags (repeatable or comma separated)")
	cmd.Flags().Int64Var(&when, "when", 0, "event time in unix seconds (default: now)")
	cmd.Flags().StringVar(&data, "data", "", "event description")
	_ = cmd.MarkFlagRequired("what")

	return cmd
}
