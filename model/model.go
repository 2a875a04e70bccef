// Package model defines the capability contract shared by the ALTO and
// PAGE-XML document implementations.
//
// A dialect adapter exposes text lines and masks as positional handles
// into a live XML tree, plus the read/write and reference-height
// operations the simplification façade needs. Adapters that lack a
// concept (ALTO has no masks) return [ErrUnsupported] from the relevant
// operations rather than pretending.
package model

import (
	"github.com/beevik/etree"

	"github.com/tsawler/slimline/geometry"
)

// Line is a handle to one text line element. Identity is positional: the
// index is the line's position in document order.
type Line struct {
	Element *etree.Element
	Index   int
}

// Mask is a handle to one mask (polygon outline) element, positional like
// [Line].
type Mask struct {
	Element *etree.Element
	Index   int
}

// Adapter is the capability surface a dialect implementation provides.
// Enumeration order is document order and is stable across calls; the
// statistics recorded by the façade depend on it.
type Adapter interface {
	// Lines returns the document's text lines in document order. An
	// unbound or empty document yields an empty slice.
	Lines() []Line
	// Masks returns the document's line masks in document order.
	// Dialects without mask semantics return ErrUnsupported.
	Masks() ([]Mask, error)

	// Baseline reads a line's baseline points.
	Baseline(line Line) (geometry.Points, error)
	// SetBaseline writes a line's baseline points back into the tree.
	SetBaseline(line Line, pts geometry.Points) error
	// MaskPoints reads a mask's polygon ring.
	MaskPoints(mask Mask) (geometry.Points, error)
	// SetMaskPoints writes a mask's polygon ring back into the tree.
	SetMaskPoints(mask Mask, pts geometry.Points) error

	// LineHeight returns the reference height used to scale ratio-based
	// tolerances for a line.
	LineHeight(line Line) (float64, error)
	// MaskHeight returns the reference height for a mask.
	MaskHeight(mask Mask) (float64, error)

	// DetectNamespace scans the document's declared namespaces for the
	// dialect's marker and rebinds the working namespace to the
	// discovered URI. Dialects accumulate historical URI spellings;
	// detection makes documents using any of them enumerable.
	DetectNamespace() error

	// Namespace returns the currently bound namespace URI.
	Namespace() string
	// SetNamespace rebinds the working namespace URI explicitly.
	SetNamespace(uri string)

	// Reload reparses the original source, discarding all in-memory
	// mutations. The namespace binding is kept as previously detected.
	Reload() error
	// Serialize renders the live tree back to XML text. Unmutated
	// documents serialize byte-identically to their source.
	Serialize() (string, error)
	// ImagePath returns the image filename the document declares, or
	// ErrMissingAttribute when it declares none.
	ImagePath() (string, error)
}
