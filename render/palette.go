package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// palette hands out visually distinct colors for successive elements by
// stepping the hue by the golden angle. Each rendering call owns its own
// palette; there is no process-wide color state.
type palette struct {
	hue float64
}

func (p *palette) next() color.NRGBA {
	c := colorful.Hsv(p.hue, 0.85, 0.95)
	p.hue = math.Mod(p.hue+137.508, 360)
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
