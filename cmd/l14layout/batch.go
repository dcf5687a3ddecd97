package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"l14layout/pkg/layout"
)

func newBatchCmd(a *app) *cobra.Command {
	var concurrency int
	cmd := &cobra.Command{
		Use:   "batch <file.html>...",
		Short: "Lay out many documents concurrently and print one JSON object keyed by file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pipeline()
			if err != nil {
				return err
			}
			limit := a.cfg.Batch.Concurrency
			if cmd.Flags().Changed("concurrency") {
				limit = concurrency
			}

			start := time.Now()
			snaps, err := p.LayoutAll(cmd.Context(), args, limit)
			if err != nil {
				return err
			}
			a.logger.Info("batch complete",
				zap.Int("documents", len(snaps)),
				zap.Int("limit", limit),
				zap.Duration("elapsed", time.Since(start)))

			out := make(map[string]*layout.Snapshot, len(args))
			for i, file := range args {
				out[file] = snaps[i]
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "concurrent layout passes (default from config, 0 = one per CPU)")
	return cmd
}
