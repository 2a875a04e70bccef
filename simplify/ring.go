package simplify

import (
	"github.com/tsawler/slimline/geometry"
)

// ringFallbackAttempts bounds how often the effective tolerance is halved
// before the reduction is rejected and the input ring returned.
const ringFallbackAttempts = 8

// Ring reduces a closed polygon ring while preserving its topology. The
// boundary may deviate by at most tolerance per retained edge. If a
// reduction would self-intersect, collapse the ring to zero area, or flip
// its winding, the effective tolerance is halved and the reduction
// retried; when no fallback succeeds the input ring is returned
// unchanged. The result always carries an explicit closing vertex, and
// its winding matches the input.
//
// A tolerance of zero (or less) returns the input unchanged.
func Ring(ring geometry.Points, tolerance float64) geometry.Points {
	if tolerance <= 0 {
		return ring.Clone()
	}

	open := ring.Clone()
	if open.Closed() {
		open = open[:len(open)-1]
	}
	if len(open) <= 3 {
		// A triangle (or less) has nothing removable.
		return open.EnsureClosed()
	}

	// Rings with pre-existing defects are passed through the decimation
	// without validation: they cannot be made worse in a way we can
	// detect, and rejecting them would abort whole documents over
	// geometry we did not create.
	validate := geometry.CrossingFree(open) && geometry.SignedArea(open) != 0
	wantCCW := geometry.SignedArea(open) > 0

	tol := tolerance
	for attempt := 0; attempt < ringFallbackAttempts; attempt++ {
		candidate := decimateRing(open, tol)
		if !validate {
			return candidate.EnsureClosed()
		}
		area := geometry.SignedArea(candidate)
		if geometry.CrossingFree(candidate) && area != 0 && (area > 0) == wantCCW {
			return candidate.EnsureClosed()
		}
		tol /= 2
	}
	return open.EnsureClosed()
}

// decimateRing runs Douglas-Peucker over a ring by splitting it at the
// vertex farthest from the first vertex and simplifying both halves. The
// first vertex and the split vertex always survive, anchoring the ring.
func decimateRing(open geometry.Points, tolerance float64) geometry.Points {
	anchor := open[0]
	split := 1
	dmax := 0.0
	for i := 1; i < len(open); i++ {
		if d := anchor.Distance(open[i]); d > dmax {
			dmax = d
			split = i
		}
	}

	first := make(geometry.Points, split+1)
	copy(first, open[:split+1])
	second := make(geometry.Points, 0, len(open)-split+1)
	second = append(second, open[split:]...)
	second = append(second, anchor)

	s1 := douglasPeucker(first, tolerance)
	s2 := douglasPeucker(second, tolerance)

	// s1 ends at the split vertex, s2 starts there and ends back at the
	// anchor; drop both duplicates when joining.
	result := make(geometry.Points, 0, len(s1)+len(s2)-2)
	result = append(result, s1...)
	result = append(result, s2[1:len(s2)-1]...)
	return result
}
