package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"l14layout/pkg/render"
)

func newPaintCmd(a *app) *cobra.Command {
	var (
		output    string
		expect    string
		diffPath  string
		tolerance int
	)
	cmd := &cobra.Command{
		Use:   "paint <file.html>",
		Short: "Lay out a document and save its debug paint as PNG",
		Long: "Lay out a document and save its debug paint as PNG. With --expect the paint\n" +
			"is compared against a reference image and differences fail the command.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pipeline()
			if err != nil {
				return err
			}
			_, snap, err := p.Layout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			r, err := p.Paint(snap, int(a.cfg.Viewport.Width), int(a.cfg.Viewport.Height))
			if err != nil {
				return err
			}
			if err := r.SavePNG(output); err != nil {
				return fmt.Errorf("saving %s: %w", output, err)
			}
			a.logger.Info("painted", zap.String("input", args[0]), zap.String("output", output))

			if expect == "" {
				return nil
			}
			ref, err := render.LoadPNG(expect)
			if err != nil {
				return err
			}
			res, err := render.Compare(r.Image(), ref, render.CompareOptions{Tolerance: tolerance})
			if err != nil {
				return err
			}
			if res.Match {
				return nil
			}
			if diffPath != "" {
				if err := render.WritePNG(res.Diff, diffPath); err != nil {
					return fmt.Errorf("saving diff %s: %w", diffPath, err)
				}
			}
			return fmt.Errorf("paint differs from %s: %d of %d pixels", expect, res.DifferentPixels, res.TotalPixels)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "layout.png", "output PNG file path")
	cmd.Flags().StringVar(&expect, "expect", "", "reference PNG to compare the paint against")
	cmd.Flags().StringVar(&diffPath, "diff", "", "where to write a diff image when the comparison fails")
	cmd.Flags().IntVar(&tolerance, "tolerance", 0, "per-channel difference still counted as equal")
	return cmd
}
