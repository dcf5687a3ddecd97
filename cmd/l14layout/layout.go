package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"l14layout/pkg/layout"
)

func newLayoutCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "layout <file.html>",
		Short: "Lay out a document and print every box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pipeline()
			if err != nil {
				return err
			}
			_, snap, err := p.Layout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), snap)
			case "table":
				return writeTable(cmd.OutOrStdout(), snap)
			}
			return fmt.Errorf("unknown format %q", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or table")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, snap *layout.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tX\tY\tWIDTH\tHEIGHT")
	for _, nr := range snap.Rects() {
		fmt.Fprintf(tw, "%d\t%s\t%g\t%g\t%g\t%g\n", nr.ID, nr.Kind, nr.X, nr.Y, nr.Width, nr.Height)
	}
	return tw.Flush()
}
