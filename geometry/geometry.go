// Package geometry provides the point primitives shared by the
// simplification algorithms and the schema adapters.
//
// Annotation dialects serialize geometry as space-separated "x,y" pairs.
// [ParsePoints] and [Points.String] convert between that textual form and
// the in-memory representation. Coordinates are rendered with zero decimal
// places, matching the format the dialects use on disk.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrEmpty indicates an operation that requires at least one point
	// was given none.
	ErrEmpty = errors.New("geometry: empty point sequence")
	// ErrMalformed indicates point text that cannot be parsed into
	// numeric coordinate pairs.
	ErrMalformed = errors.New("geometry: malformed point text")
)

// Point represents a 2D point.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Points is an ordered point sequence. Order is significant: it defines
// line direction and polygon winding. A baseline is an open sequence; a
// mask is a closed ring whose final vertex may repeat the first.
type Points []Point

// ParsePoints parses space-separated "x,y" pairs.
func ParsePoints(s string) (Points, error) {
	fields := strings.Fields(s)
	pts := make(Points, 0, len(fields))
	for _, field := range fields {
		xs, ys, ok := strings.Cut(field, ",")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformed, field)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformed, field)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformed, field)
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts, nil
}

// String renders the sequence as space-separated "x,y" pairs with zero
// decimal places, the textual form used by the annotation dialects.
func (p Points) String() string {
	var b strings.Builder
	for i, pt := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(pt.X, 'f', 0, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(pt.Y, 'f', 0, 64))
	}
	return b.String()
}

// Clone returns an independent copy of the sequence.
func (p Points) Clone() Points {
	out := make(Points, len(p))
	copy(out, p)
	return out
}

// Height returns the vertical extent max(y) - min(y) of the sequence.
// It is independent of x and of point order.
func Height(pts Points) (float64, error) {
	if len(pts) == 0 {
		return 0, ErrEmpty
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, pt := range pts[1:] {
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}
	return maxY - minY, nil
}

// Closed reports whether the sequence explicitly repeats its first point
// as its last.
func (p Points) Closed() bool {
	return len(p) > 1 && p[0] == p[len(p)-1]
}

// EnsureClosed returns the sequence with an explicit closing vertex,
// appending one if absent.
func (p Points) EnsureClosed() Points {
	if len(p) == 0 || p.Closed() {
		return p
	}
	out := make(Points, len(p)+1)
	copy(out, p)
	out[len(p)] = p[0]
	return out
}
