// Package altodoc implements the ALTO dialect adapter.
//
// ALTO text lines carry their geometry inline: the BASELINE attribute
// holds the baseline points and HEIGHT the measured line height, which
// serves directly as the reference height for ratio-based tolerances.
// The dialect has no mask concept, so mask operations return
// model.ErrUnsupported.
package altodoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/tsawler/slimline/geometry"
	"github.com/tsawler/slimline/internal/xmlio"
	"github.com/tsawler/slimline/model"
)

// DefaultNamespace is the ALTO v4 namespace URI. Earlier schema versions
// spelled it ns-v2 and ns-v3; DetectNamespace discovers whichever the
// document declares.
const DefaultNamespace = "http://www.loc.gov/standards/alto/ns-v4#"

// nsMarker identifies ALTO namespace URIs across historical spellings.
const nsMarker = "standards/alto"

// Document is an ALTO annotation file held as a live XML tree. The tree
// is mutated in place by simplification; Reload reparses the original
// source. A Document is not safe for concurrent use.
type Document struct {
	tree *etree.Document

	path string // file source, empty when parsed from raw content
	data []byte // raw source, nil when parsed from a file

	ns     string
	prefix string
	bound  bool
}

var _ model.Adapter = (*Document)(nil)

// Open parses the ALTO file at path.
func Open(path string) (*Document, error) {
	tree, err := xmlio.FromFile(path)
	if err != nil {
		return nil, err
	}
	d := &Document{tree: tree, path: path, ns: DefaultNamespace}
	d.bind()
	return d, nil
}

// Parse parses raw ALTO content.
func Parse(data []byte) (*Document, error) {
	tree, err := xmlio.FromBytes(data)
	if err != nil {
		return nil, err
	}
	d := &Document{tree: tree, data: data, ns: DefaultNamespace}
	d.bind()
	return d, nil
}

// bind resolves the prefix the tree declares for the bound namespace URI.
func (d *Document) bind() {
	d.prefix, d.bound = xmlio.PrefixForNamespace(d.tree, d.ns)
}

func (d *Document) tag(name string) string {
	if d.prefix == "" {
		return name
	}
	return d.prefix + ":" + name
}

// Lines returns every TextLine in document order. A document whose bound
// namespace is not declared yields none; run DetectNamespace first.
func (d *Document) Lines() []model.Line {
	if !d.bound {
		return nil
	}
	els := d.tree.FindElements("//" + d.tag("TextLine"))
	lines := make([]model.Line, len(els))
	for i, el := range els {
		lines[i] = model.Line{Element: el, Index: i}
	}
	return lines
}

// Masks always fails: ALTO has no mask concept.
func (d *Document) Masks() ([]model.Mask, error) {
	return nil, fmt.Errorf("alto: masks: %w", model.ErrUnsupported)
}

// Baseline reads the line's BASELINE attribute.
func (d *Document) Baseline(line model.Line) (geometry.Points, error) {
	attr := line.Element.SelectAttr("BASELINE")
	if attr == nil {
		return nil, fmt.Errorf("alto: line %d has no BASELINE: %w", line.Index, model.ErrMissingAttribute)
	}
	pts, err := geometry.ParsePoints(attr.Value)
	if err != nil {
		return nil, fmt.Errorf("alto: line %d: %w", line.Index, err)
	}
	return pts, nil
}

// SetBaseline rewrites the line's BASELINE attribute in place.
func (d *Document) SetBaseline(line model.Line, pts geometry.Points) error {
	line.Element.CreateAttr("BASELINE", pts.String())
	return nil
}

// MaskPoints always fails: ALTO has no mask concept.
func (d *Document) MaskPoints(model.Mask) (geometry.Points, error) {
	return nil, fmt.Errorf("alto: mask points: %w", model.ErrUnsupported)
}

// SetMaskPoints always fails: ALTO has no mask concept.
func (d *Document) SetMaskPoints(model.Mask, geometry.Points) error {
	return fmt.Errorf("alto: mask points: %w", model.ErrUnsupported)
}

// LineHeight returns the line's explicit HEIGHT attribute.
func (d *Document) LineHeight(line model.Line) (float64, error) {
	attr := line.Element.SelectAttr("HEIGHT")
	if attr == nil {
		return 0, fmt.Errorf("alto: line %d has no HEIGHT: %w", line.Index, model.ErrMissingAttribute)
	}
	h, err := strconv.ParseFloat(attr.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("alto: line %d HEIGHT %q: %w", line.Index, attr.Value, geometry.ErrMalformed)
	}
	return h, nil
}

// MaskHeight always fails: ALTO has no mask concept.
func (d *Document) MaskHeight(model.Mask) (float64, error) {
	return 0, fmt.Errorf("alto: mask height: %w", model.ErrUnsupported)
}

// DetectNamespace scans the declared namespaces for the ALTO marker and
// rebinds the working namespace to the discovered URI.
func (d *Document) DetectNamespace() error {
	prefix, uri, ok := xmlio.FindNamespaceByMarker(d.tree, nsMarker)
	if !ok {
		return fmt.Errorf("alto: %w", model.ErrNamespaceNotFound)
	}
	d.ns, d.prefix, d.bound = uri, prefix, true
	return nil
}

// Namespace returns the currently bound namespace URI.
func (d *Document) Namespace() string { return d.ns }

// SetNamespace rebinds the working namespace URI explicitly.
func (d *Document) SetNamespace(uri string) {
	d.ns = uri
	d.bind()
}

// Reload reparses the original source, discarding in-memory mutations.
// The namespace binding survives; detection is not re-run.
func (d *Document) Reload() error {
	var tree *etree.Document
	var err error
	if d.path != "" {
		tree, err = xmlio.FromFile(d.path)
	} else {
		tree, err = xmlio.FromBytes(d.data)
	}
	if err != nil {
		return err
	}
	d.tree = tree
	d.bind()
	return nil
}

// Serialize renders the live tree back to XML text.
func (d *Document) Serialize() (string, error) {
	return d.tree.WriteToString()
}

// ImagePath returns the text of sourceImageInformation/fileName.
func (d *Document) ImagePath() (string, error) {
	if d.bound {
		el := d.tree.FindElement("//" + d.tag("sourceImageInformation") + "/" + d.tag("fileName"))
		if el != nil {
			if name := strings.TrimSpace(el.Text()); name != "" {
				return name, nil
			}
		}
	}
	return "", fmt.Errorf("alto: no image filename declared: %w", model.ErrMissingAttribute)
}
