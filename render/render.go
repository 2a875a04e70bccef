// Package render draws annotation geometry over page images so
// simplification results can be inspected visually.
//
// The renderer is a pure consumer of read-only geometry: it never writes
// back into a document. Baselines are drawn as open polylines and masks
// as closed outlines, each element in its own color.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/tsawler/slimline/geometry"
)

// Options controls overlay rendering.
type Options struct {
	// StrokeWidth is the stroke thickness in pixels. Values below 1 are
	// treated as 1.
	StrokeWidth int
	// MaxDim, when positive, downscales results whose larger dimension
	// exceeds it. Sweep runs produce many previews; capping their size
	// keeps them browsable.
	MaxDim int
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{StrokeWidth: 2}
}

// Overlay draws the given baselines and mask outlines over img in cycling
// colors and returns the composited image.
func Overlay(img image.Image, baselines, masks []geometry.Points, opts Options) *image.NRGBA {
	if opts.StrokeWidth < 1 {
		opts.StrokeWidth = 1
	}

	bounds := img.Bounds()
	layer := image.NewNRGBA(bounds)
	pal := &palette{}
	for _, ring := range masks {
		drawPolyline(layer, ring.EnsureClosed(), pal.next(), opts.StrokeWidth)
	}
	for _, line := range baselines {
		drawPolyline(layer, line, pal.next(), opts.StrokeWidth)
	}

	composited := blend.Normal(img, layer)

	out := image.NewNRGBA(bounds)
	xdraw.Draw(out, bounds, composited, bounds.Min, xdraw.Src)
	if opts.MaxDim > 0 {
		out = clampSize(out, opts.MaxDim)
	}
	return out
}

// File renders the overlay for an image on disk and writes the result to
// outPath; the output format follows the destination extension.
func File(imagePath, outPath string, baselines, masks []geometry.Points, opts Options) error {
	img, err := imaging.Open(imagePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", imagePath, err)
	}
	out := Overlay(img, baselines, masks, opts)
	if err := imaging.Save(out, outPath); err != nil {
		return fmt.Errorf("saving %s: %w", outPath, err)
	}
	return nil
}

// clampSize downscales img so its larger dimension is at most maxDim.
func clampSize(img *image.NRGBA, maxDim int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := max(w, h)
	if longest <= maxDim {
		return img
	}
	scale := float64(maxDim) / float64(longest)
	dst := image.NewNRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

// drawPolyline strokes consecutive point pairs onto dst.
func drawPolyline(dst *image.NRGBA, pts geometry.Points, c color.NRGBA, width int) {
	for i := 0; i+1 < len(pts); i++ {
		drawSegment(dst, pts[i], pts[i+1], c, width)
	}
}

// drawSegment rasterizes one segment with a square brush of the given
// width (Bresenham).
func drawSegment(dst *image.NRGBA, a, b geometry.Point, c color.NRGBA, width int) {
	x0, y0 := int(math.Round(a.X)), int(math.Round(a.Y))
	x1, y1 := int(math.Round(b.X)), int(math.Round(b.Y))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		stamp(dst, x0, y0, c, width)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// stamp fills a width x width square centered on (x, y).
func stamp(dst *image.NRGBA, x, y int, c color.NRGBA, width int) {
	half := width / 2
	for oy := -half; oy <= half; oy++ {
		for ox := -half; ox <= half; ox++ {
			p := image.Pt(x+ox, y+oy)
			if p.In(dst.Bounds()) {
				dst.SetNRGBA(p.X, p.Y, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
