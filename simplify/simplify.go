// Package simplify implements the vertex-decimation strategies used to
// reduce baseline and mask geometry.
//
// Two interchangeable line strategies are provided: [DouglasPeucker]
// removes points by maximum perpendicular deviation, [VisvalingamWhyatt]
// by smallest effective triangle area. [Ring] simplifies closed polygon
// rings while guaranteeing the result remains a simple polygon.
package simplify

import (
	"fmt"
	"math"
	"strings"

	"github.com/tsawler/slimline/geometry"
)

// Algorithm selects a line-decimation strategy.
type Algorithm int

const (
	// DouglasPeucker removes points whose perpendicular deviation from
	// the approximating segment chain stays within tolerance.
	DouglasPeucker Algorithm = iota
	// VisvalingamWhyatt iteratively removes the point whose triangular
	// contribution area with its neighbors is smallest, until the
	// smallest remaining area exceeds tolerance.
	VisvalingamWhyatt
)

// String returns the string representation of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case VisvalingamWhyatt:
		return "visvalingam-whyatt"
	default:
		return "douglas-peucker"
	}
}

// ParseAlgorithm resolves a configuration value to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "douglas-peucker", "dp":
		return DouglasPeucker, nil
	case "visvalingam-whyatt", "vw":
		return VisvalingamWhyatt, nil
	}
	return DouglasPeucker, fmt.Errorf("unknown simplification algorithm %q", s)
}

// Line reduces an open polyline to a subsequence of its points using the
// selected strategy. The first and last point are always preserved, and
// point order never changes. A tolerance of zero (or less) returns the
// input unchanged, as do sequences of fewer than three points.
func Line(points geometry.Points, tolerance float64, algo Algorithm) geometry.Points {
	if tolerance <= 0 || len(points) < 3 {
		return points.Clone()
	}
	if algo == VisvalingamWhyatt {
		return visvalingam(points, tolerance)
	}
	return douglasPeucker(points, tolerance)
}

// douglasPeucker performs the classic recursive maximum-deviation split.
// When several points are equidistant, the first in sequence order wins.
func douglasPeucker(points geometry.Points, tolerance float64) geometry.Points {
	if len(points) <= 2 {
		return points.Clone()
	}

	end := len(points) - 1
	dmax := 0.0
	index := 0
	for i := 1; i < end; i++ {
		d := perpendicularDistance(points[i], points[0], points[end])
		if d > dmax {
			index = i
			dmax = d
		}
	}

	if dmax <= tolerance {
		return geometry.Points{points[0], points[end]}
	}

	left := douglasPeucker(points[:index+1], tolerance)
	right := douglasPeucker(points[index:], tolerance)

	result := make(geometry.Points, 0, len(left)+len(right)-1)
	result = append(result, left[:len(left)-1]...)
	result = append(result, right...)
	return result
}

// visvalingam removes interior points by smallest effective area. The
// tolerance is interpreted as an area threshold; endpoints are never
// removed. Ties resolve to the first point in sequence order.
func visvalingam(points geometry.Points, tolerance float64) geometry.Points {
	kept := make([]int, len(points))
	for i := range kept {
		kept[i] = i
	}

	for len(kept) > 2 {
		minArea := math.Inf(1)
		minAt := -1
		for k := 1; k < len(kept)-1; k++ {
			a := points[kept[k-1]]
			b := points[kept[k]]
			c := points[kept[k+1]]
			area := triangleArea(a, b, c)
			if area < minArea {
				minArea = area
				minAt = k
			}
		}
		if minArea > tolerance {
			break
		}
		kept = append(kept[:minAt], kept[minAt+1:]...)
	}

	result := make(geometry.Points, len(kept))
	for i, idx := range kept {
		result[i] = points[idx]
	}
	return result
}

// triangleArea returns the area of the triangle a-b-c.
func triangleArea(a, b, c geometry.Point) float64 {
	return math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
}

// perpendicularDistance calculates the perpendicular distance from a point
// to the line through start and end. Coincident endpoints degrade to the
// point-to-point distance.
func perpendicularDistance(point, start, end geometry.Point) float64 {
	dx := end.X - start.X
	dy := end.Y - start.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return point.Distance(start)
	}
	return math.Abs((point.X-start.X)*dy-(point.Y-start.Y)*dx) / length
}
