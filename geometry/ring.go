package geometry

// SignedArea returns the shoelace area of the ring. The sign encodes
// winding direction: positive for counter-clockwise in a y-up coordinate
// system. The explicit closing vertex may be present or absent.
func SignedArea(ring Points) float64 {
	pts := ring
	if pts.Closed() {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return 0
	}
	area := 0.0
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

// IsSimpleRing reports whether the ring describes a simple polygon: at
// least three distinct vertices, non-zero area, and no two non-adjacent
// edges crossing.
func IsSimpleRing(ring Points) bool {
	pts := ring
	if pts.Closed() {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return false
	}
	if SignedArea(pts) == 0 {
		return false
	}
	n := len(pts)
	for i := 0; i < n; i++ {
		a1 := pts[i]
		a2 := pts[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Edges sharing a vertex are allowed to touch there.
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1 := pts[j]
			b2 := pts[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return false
			}
		}
	}
	return true
}

// CrossingFree reports whether no two non-adjacent edges of the ring
// properly cross. Unlike [IsSimpleRing] it tolerates boundaries that touch
// at a point or run along each other, which valid annotation masks do in
// practice (a notch vertex landing on an edge).
func CrossingFree(ring Points) bool {
	pts := ring
	if pts.Closed() {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return false
	}
	n := len(pts)
	for i := 0; i < n; i++ {
		a1 := pts[i]
		a2 := pts[(i+1)%n]
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1 := pts[j]
			b2 := pts[(j+1)%n]
			if properCross(a1, a2, b1, b2) {
				return false
			}
		}
	}
	return true
}

// properCross reports whether segments a1-a2 and b1-b2 cross at a single
// interior point of both.
func properCross(a1, a2, b1, b2 Point) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// segmentsIntersect reports whether segments a1-a2 and b1-b2 share any
// point, including collinear overlap.
func segmentsIntersect(a1, a2, b1, b2 Point) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(b1, b2, a1):
		return true
	case d2 == 0 && onSegment(b1, b2, a2):
		return true
	case d3 == 0 && onSegment(a1, a2, b1):
		return true
	case d4 == 0 && onSegment(a1, a2, b2):
		return true
	}
	return false
}

// cross returns the cross product of vectors o->a and o->b.
func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// onSegment reports whether p, known to be collinear with a-b, lies
// within the segment's bounding box.
func onSegment(a, b, p Point) bool {
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}
