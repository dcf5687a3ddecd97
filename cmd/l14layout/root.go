package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"l14layout/internal/config"
	"l14layout/internal/observability"
	"l14layout/pkg/flexbox"
	"l14layout/pkg/grid"
	"l14layout/pkg/layout"
	"l14layout/pkg/resource"
	"l14layout/pkg/render"
)

// app is the state shared by subcommands once the persistent pre-run has
// loaded configuration.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "l14layout",
		Short:         "l14layout runs the CSS layout engine over HTML fixtures.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "YAML config file")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(
		newLayoutCmd(a),
		newPaintCmd(a),
		newBatchCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) load() error {
	v, err := config.NewViper(a.cfgFile)
	if err != nil {
		return err
	}
	cfg, err := config.NewConfigFromViper(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	observability.InitializeLogger(cfg.Logger)
	a.logger = observability.GetLogger()
	layout.SetLogger(a.logger)
	flexbox.SetLogger(a.logger)
	grid.SetLogger(a.logger)
	a.logger.Debug("configuration loaded", zap.String("file", a.cfgFile))
	return nil
}

// pipeline builds a layout pipeline from the loaded configuration.
func (a *app) pipeline() (*resource.Pipeline, error) {
	m, err := resource.NewMeasurer(a.cfg.Text.Measurer, a.cfg.Text.FontPath, a.cfg.Text.FixedAdvance)
	if err != nil {
		return nil, fmt.Errorf("text measurer: %w", err)
	}
	engine := layout.NewLayoutEngine(layout.Options{
		ICBWidth:  a.cfg.Viewport.Width,
		ICBHeight: a.cfg.Viewport.Height,
		Measurer:  m,
		Logger:    a.logger,
	})
	paint := render.Options{Text: a.cfg.Paint.Text, LineWidth: a.cfg.Paint.LineWidth}
	return resource.NewPipeline(resource.NewFetcher(""), engine, paint, a.logger), nil
}
