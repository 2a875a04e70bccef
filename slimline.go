// Package slimline reduces the point count of baseline polylines and
// polygon masks in ALTO and PAGE-XML layout annotation files while
// preserving their shape within a controllable tolerance.
//
// Basic usage:
//
//	doc, err := slimline.Open("page.xml")
//	if err != nil {
//	    // handle error
//	}
//	rec, err := doc.SimplifyLines(slimline.DefaultLineOptions())
//	if err != nil {
//	    // handle error
//	}
//	log.Printf("mean reduction: %.0f%%", rec.MeanPercent()*100)
//	_, err = doc.Dump("page.simple.xml")
//
// Tolerances are derived from each element's measured height: a ratio of
// 0.10 allows a deviation of a tenth of the line height. An absolute
// epsilon can be supplied instead. For advanced use the dialect adapters
// in the altodoc and pagedoc packages are also available.
package slimline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/tsawler/slimline/altodoc"
	"github.com/tsawler/slimline/dialect"
	"github.com/tsawler/slimline/geometry"
	"github.com/tsawler/slimline/model"
	"github.com/tsawler/slimline/pagedoc"
	"github.com/tsawler/slimline/simplify"
)

// Document wraps a dialect adapter and orchestrates batch simplification
// over its lines and masks. A Document owns an exclusive mutable tree and
// is not safe for concurrent use; parallel batch work belongs at the
// one-document-per-file level.
type Document struct {
	adapter model.Adapter
	dialect dialect.Dialect
}

// Open parses the annotation file at path, detecting its dialect from the
// content and binding the declared namespace.
func Open(path string) (*Document, error) {
	dl, err := dialect.DetectFile(path)
	if err != nil {
		return nil, err
	}
	return OpenDialect(path, dl)
}

// Parse is like [Open] for raw content.
func Parse(data []byte) (*Document, error) {
	return ParseDialect(data, dialect.Detect(data))
}

// OpenDialect parses the file at path as the given dialect.
func OpenDialect(path string, dl dialect.Dialect) (*Document, error) {
	var adapter model.Adapter
	var err error
	switch dl {
	case dialect.Alto:
		adapter, err = altodoc.Open(path)
	case dialect.PageXML:
		adapter, err = pagedoc.Open(path)
	default:
		return nil, fmt.Errorf("%s: unrecognized annotation dialect", path)
	}
	if err != nil {
		return nil, err
	}
	return newDocument(adapter, dl)
}

// ParseDialect parses raw content as the given dialect.
func ParseDialect(data []byte, dl dialect.Dialect) (*Document, error) {
	var adapter model.Adapter
	var err error
	switch dl {
	case dialect.Alto:
		adapter, err = altodoc.Parse(data)
	case dialect.PageXML:
		adapter, err = pagedoc.Parse(data)
	default:
		return nil, fmt.Errorf("unrecognized annotation dialect")
	}
	if err != nil {
		return nil, err
	}
	return newDocument(adapter, dl)
}

// FromAdapter wraps an already-constructed adapter. Namespace detection
// is left to the caller.
func FromAdapter(adapter model.Adapter, dl dialect.Dialect) *Document {
	return &Document{adapter: adapter, dialect: dl}
}

func newDocument(adapter model.Adapter, dl dialect.Dialect) (*Document, error) {
	if err := adapter.DetectNamespace(); err != nil {
		return nil, err
	}
	return &Document{adapter: adapter, dialect: dl}, nil
}

// Dialect returns the document's detected dialect.
func (d *Document) Dialect() dialect.Dialect { return d.dialect }

// Adapter returns the underlying dialect adapter, for read-only consumers
// such as the preview renderer.
func (d *Document) Adapter() model.Adapter { return d.adapter }

// DetectNamespace re-runs namespace detection on the live tree.
func (d *Document) DetectNamespace() error { return d.adapter.DetectNamespace() }

// SimplifyLines decimates every baseline in document order. Each line's
// tolerance is opts.Ratio times its reference height, unless opts.Epsilon
// supplies a uniform absolute tolerance. The document is only mutated if
// every line processed cleanly; a malformed line aborts the whole batch
// with the tree untouched.
func (d *Document) SimplifyLines(opts SimplifyOptions) (*Record, error) {
	lines := d.adapter.Lines()
	rec := &Record{}
	writes := make([]geometry.Points, len(lines))
	for i, line := range lines {
		orig, err := d.adapter.Baseline(line)
		if err != nil {
			return nil, err
		}
		eps := opts.Epsilon
		if eps <= 0 {
			h, err := d.adapter.LineHeight(line)
			if err != nil {
				return nil, err
			}
			eps = opts.Ratio * h
		}
		simplified := simplify.Line(orig, eps, opts.Algorithm)
		log.Debug().
			Int("line", line.Index).
			Int("removed", len(orig)-len(simplified)).
			Msg("baseline simplified")
		writes[i] = simplified
		rec.add(len(orig), len(simplified))
	}
	for i, line := range lines {
		if err := d.adapter.SetBaseline(line, writes[i]); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// SimplifyMasks simplifies every mask ring in document order. Unlike line
// simplification, one tolerance serves the whole batch: opts.Epsilon when
// supplied, otherwise opts.Ratio times the first processed mask's
// reference height. Later masks reuse it even when their own heights
// differ. Dialects without masks fail with model.ErrUnsupported, leaving
// the document unmodified.
func (d *Document) SimplifyMasks(opts SimplifyOptions) (*Record, error) {
	masks, err := d.adapter.Masks()
	if err != nil {
		return nil, err
	}
	rec := &Record{}
	writes := make([]geometry.Points, len(masks))
	tolerance := opts.Epsilon
	for i, mask := range masks {
		orig, err := d.adapter.MaskPoints(mask)
		if err != nil {
			return nil, err
		}
		if tolerance <= 0 {
			h, err := d.adapter.MaskHeight(mask)
			if err != nil {
				return nil, err
			}
			tolerance = opts.Ratio * h
		}
		simplified := simplify.Ring(orig, tolerance)
		log.Debug().
			Int("mask", mask.Index).
			Int("removed", len(orig)-len(simplified)).
			Msg("mask simplified")
		writes[i] = simplified
		rec.add(len(orig), len(simplified))
	}
	for i, mask := range masks {
		if err := d.adapter.SetMaskPoints(mask, writes[i]); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// Geometry returns the document's baselines and mask outlines for
// read-only consumers such as the preview renderer. Dialects without
// masks yield a nil mask slice.
func (d *Document) Geometry() (baselines, masks []geometry.Points, err error) {
	for _, line := range d.adapter.Lines() {
		pts, err := d.adapter.Baseline(line)
		if err != nil {
			return nil, nil, err
		}
		baselines = append(baselines, pts)
	}
	maskEls, err := d.adapter.Masks()
	if err != nil {
		if errors.Is(err, model.ErrUnsupported) {
			return baselines, nil, nil
		}
		return nil, nil, err
	}
	for _, mask := range maskEls {
		pts, err := d.adapter.MaskPoints(mask)
		if err != nil {
			return nil, nil, err
		}
		masks = append(masks, pts)
	}
	return baselines, masks, nil
}

// Reload discards all in-memory mutations and reparses the original
// source. The adapter's namespace binding is kept as previously detected.
func (d *Document) Reload() error {
	return d.adapter.Reload()
}

// Dump serializes the current in-memory state. When destination is
// non-empty the text is also written there. The serialized text is always
// returned so callers can verify without re-reading the destination.
func (d *Document) Dump(destination string) (string, error) {
	text, err := d.adapter.Serialize()
	if err != nil {
		return "", err
	}
	if destination != "" {
		if err := os.WriteFile(destination, []byte(text), 0o644); err != nil {
			return "", err
		}
	}
	return text, nil
}

// ImagePath returns the image filename the document declares, resolved
// against basedir when one is given. It fails with
// model.ErrMissingAttribute when the document declares no image.
func (d *Document) ImagePath(basedir string) (string, error) {
	name, err := d.adapter.ImagePath()
	if err != nil {
		return "", err
	}
	if basedir != "" {
		return filepath.Join(basedir, name), nil
	}
	return name, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := slimline.Must(slimline.Open("page.xml"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
