package slimline

import "github.com/tsawler/slimline/simplify"

// Algorithm selectors re-exported so common use needs only this package.
const (
	DouglasPeucker    = simplify.DouglasPeucker
	VisvalingamWhyatt = simplify.VisvalingamWhyatt
)

// SimplifyOptions holds configuration for one batch simplification call.
type SimplifyOptions struct {
	// Ratio is the fraction of an element's reference height used as its
	// tolerance. Ignored when Epsilon is set.
	Ratio float64

	// Epsilon is an absolute tolerance applied uniformly to the whole
	// batch, bypassing height-based derivation. Zero means unset.
	Epsilon float64

	// Algorithm selects the line-decimation strategy. Mask
	// simplification ignores it.
	Algorithm simplify.Algorithm
}

// DefaultLineOptions returns the default options for baseline
// simplification. A ratio of 0.25 is a bit aggressive; 0.10 keeps lines
// visually intact.
func DefaultLineOptions() SimplifyOptions {
	return SimplifyOptions{
		Ratio:     0.10,
		Algorithm: simplify.DouglasPeucker,
	}
}

// DefaultMaskOptions returns the default options for mask simplification.
func DefaultMaskOptions() SimplifyOptions {
	return SimplifyOptions{
		Ratio: 0.15,
	}
}
