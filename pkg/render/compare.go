package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// CompareResult reports how two paints differ.
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	// MaxDifference is the largest 8-bit channel difference seen.
	MaxDifference int
	// Diff marks differing pixels red over a grey copy of the actual image.
	Diff *image.RGBA
}

// CompareOptions configures Compare.
type CompareOptions struct {
	// Tolerance is the largest per-channel difference (0-255) still
	// counted as equal.
	Tolerance int
	// MaxDifferentPercent lets a comparison pass with up to this share of
	// differing pixels.
	MaxDifferentPercent float64
}

// Compare checks actual against expected pixel by pixel. Images of
// different bounds are an error.
func Compare(actual, expected image.Image, opts CompareOptions) (CompareResult, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return CompareResult{}, fmt.Errorf("image bounds differ: actual=%v, expected=%v", bounds, expected.Bounds())
	}

	res := CompareResult{
		Match:       true,
		TotalPixels: bounds.Dx() * bounds.Dy(),
		Diff:        image.NewRGBA(bounds),
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := color.RGBAModel.Convert(actual.At(x, y)).(color.RGBA)
			e := color.RGBAModel.Convert(expected.At(x, y)).(color.RGBA)
			d := max(channelDiff(a.R, e.R), channelDiff(a.G, e.G), channelDiff(a.B, e.B), channelDiff(a.A, e.A))
			res.MaxDifference = max(res.MaxDifference, d)

			if d > opts.Tolerance {
				res.Match = false
				res.DifferentPixels++
				res.Diff.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
				continue
			}
			g := uint8((uint16(a.R) + uint16(a.G) + uint16(a.B)) / 3)
			res.Diff.SetRGBA(x, y, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}

	if !res.Match && opts.MaxDifferentPercent > 0 && res.TotalPixels > 0 {
		if float64(res.DifferentPixels)/float64(res.TotalPixels)*100 <= opts.MaxDifferentPercent {
			res.Match = true
		}
	}
	return res, nil
}

func channelDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// LoadPNG decodes a PNG reference image.
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference image: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode reference image %s: %w", path, err)
	}
	return img, nil
}

// WritePNG encodes img to path.
func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
