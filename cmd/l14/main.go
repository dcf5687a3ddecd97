// Command l14 is a desktop viewer: it paints the layout of an HTML file
// next to the list of box rectangles.
package main

import (
	"context"
	"fmt"
	"image"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"l14layout/internal/config"
	"l14layout/internal/observability"
	"l14layout/pkg/layout"
	"l14layout/pkg/render"
	"l14layout/pkg/resource"
)

func main() {
	v, err := config.NewViper(os.Getenv("L14_CONFIG"))
	if err == nil {
		var cfg *config.Config
		if cfg, err = config.NewConfigFromViper(v); err == nil {
			run(cfg)
		}
	}
	observability.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) {
	observability.InitializeLogger(cfg.Logger)
	logger := observability.GetLogger()

	m, err := resource.NewMeasurer(cfg.Text.Measurer, cfg.Text.FontPath, cfg.Text.FixedAdvance)
	if err != nil {
		logger.Fatal("text measurer", zap.Error(err))
	}
	engine := layout.NewLayoutEngine(layout.Options{
		ICBWidth:  cfg.Viewport.Width,
		ICBHeight: cfg.Viewport.Height,
		Measurer:  m,
		Logger:    logger,
	})
	pipeline := resource.NewPipeline(resource.NewFetcher(""), engine,
		render.Options{Text: cfg.Paint.Text, LineWidth: cfg.Paint.LineWidth}, logger)
	width, height := int(cfg.Viewport.Width), int(cfg.Viewport.Height)

	a := app.New()
	w := a.NewWindow("l14 layout viewer")
	w.Resize(fyne.NewSize(float32(width)+320, float32(height)+60))

	canvasImg := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
	canvasImg.FillMode = canvas.ImageFillOriginal

	var rects []layout.NodeRect
	list := widget.NewList(
		func() int { return len(rects) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			nr := rects[i]
			o.(*widget.Label).SetText(fmt.Sprintf("#%d %s %gx%g @ %g,%g", nr.ID, nr.Kind, nr.Width, nr.Height, nr.X, nr.Y))
		},
	)
	status := widget.NewLabel("Enter an HTML file path and press Enter")

	pathEntry := widget.NewEntry()
	pathEntry.SetPlaceHolder("fixture.html")
	load := func(path string) {
		status.SetText("Laying out " + path + "...")
		go func() {
			img, snap, err := pipeline.Render(context.Background(), path, width, height)
			fyne.Do(func() {
				if err != nil {
					logger.Warn("layout failed", zap.String("path", path), zap.Error(err))
					status.SetText("Error: " + err.Error())
					return
				}
				rects = snap.Rects()
				list.Refresh()
				canvasImg.Image = img
				canvasImg.Refresh()
				status.SetText(fmt.Sprintf("%s: %d boxes", path, snap.Len()))
				w.SetTitle("l14 - " + path)
			})
		}()
	}
	pathEntry.OnSubmitted = load

	split := container.NewHSplit(container.NewScroll(canvasImg), list)
	split.Offset = 0.7
	w.SetContent(container.NewBorder(pathEntry, status, nil, nil, split))
	w.Canvas().Focus(pathEntry)

	if len(os.Args) > 1 {
		pathEntry.SetText(os.Args[1])
		load(os.Args[1])
	}
	w.ShowAndRun()
}
