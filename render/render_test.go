package render

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/slimline/geometry"
)

func whiteImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	return img
}

func TestOverlayDrawsGeometry(t *testing.T) {
	img := whiteImage(40, 40)
	baselines := []geometry.Points{{{X: 5, Y: 20}, {X: 35, Y: 20}}}
	masks := []geometry.Points{{{X: 5, Y: 5}, {X: 35, Y: 5}, {X: 35, Y: 35}, {X: 5, Y: 35}}}

	out := Overlay(img, baselines, masks, DefaultOptions())
	require.NotNil(t, out)
	assert.Equal(t, img.Bounds(), out.Bounds())

	// The baseline runs along y=20; some pixel there must no longer be
	// white.
	touched := false
	for x := 5; x <= 35; x++ {
		if out.NRGBAAt(x, 20) != (color.NRGBA{255, 255, 255, 255}) {
			touched = true
			break
		}
	}
	assert.True(t, touched, "overlay left the baseline row untouched")

	// A pixel far from any geometry stays white.
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, out.NRGBAAt(20, 28))
}

func TestOverlayClampsSize(t *testing.T) {
	img := whiteImage(200, 100)
	out := Overlay(img, nil, nil, Options{StrokeWidth: 1, MaxDim: 50})
	assert.Equal(t, 50, out.Bounds().Dx())
	assert.Equal(t, 25, out.Bounds().Dy())

	// Images within the bound are left alone.
	out = Overlay(img, nil, nil, Options{StrokeWidth: 1, MaxDim: 400})
	assert.Equal(t, 200, out.Bounds().Dx())
}

func TestPaletteCycles(t *testing.T) {
	p := &palette{}
	seen := map[color.NRGBA]bool{}
	for i := 0; i < 8; i++ {
		c := p.next()
		assert.False(t, seen[c], "palette repeated color %v within 8 steps", c)
		seen[c] = true
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "page.png")
	require.NoError(t, imaging.Save(whiteImage(60, 30), src))

	dst := filepath.Join(dir, "page.overlay.png")
	baselines := []geometry.Points{{{X: 2, Y: 15}, {X: 58, Y: 15}}}
	err := File(src, dst, baselines, nil, DefaultOptions())
	require.NoError(t, err)

	img, err := imaging.Open(dst)
	require.NoError(t, err)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestFileMissingImage(t *testing.T) {
	err := File(filepath.Join(t.TempDir(), "missing.png"), "out.png", nil, nil, DefaultOptions())
	assert.Error(t, err)
}
