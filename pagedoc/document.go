// Package pagedoc implements the PAGE-XML dialect adapter.
//
// PAGE-XML text lines have no explicit height attribute. Each TextLine
// owns a Coords child (the mask polygon) and a Baseline child; the
// reference height for both lines and masks is computed from the mask's
// point ring. A line missing either child is a structural error, not
// something to skip silently.
package pagedoc

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/tsawler/slimline/geometry"
	"github.com/tsawler/slimline/internal/xmlio"
	"github.com/tsawler/slimline/model"
)

// DefaultNamespace is the 2013-07-15 PAGE content namespace URI, the most
// widely used spelling. DetectNamespace discovers other dated variants.
const DefaultNamespace = "http://schema.primaresearch.org/PAGE/gts/pagecontent/2013-07-15"

// nsMarker identifies PAGE content namespace URIs across dated variants.
const nsMarker = "/PAGE/gts/pagecontent"

// Document is a PAGE-XML annotation file held as a live XML tree. The
// tree is mutated in place by simplification; Reload reparses the
// original source. A Document is not safe for concurrent use.
type Document struct {
	tree *etree.Document

	path string // file source, empty when parsed from raw content
	data []byte // raw source, nil when parsed from a file

	ns     string
	prefix string
	bound  bool
}

var _ model.Adapter = (*Document)(nil)

// Open parses the PAGE-XML file at path.
func Open(path string) (*Document, error) {
	tree, err := xmlio.FromFile(path)
	if err != nil {
		return nil, err
	}
	d := &Document{tree: tree, path: path, ns: DefaultNamespace}
	d.bind()
	return d, nil
}

// Parse parses raw PAGE-XML content.
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

// Masks returns the Coords element of every TextLine in document order.
// Region outlines are not included.
func (d *Document) Masks() ([]model.Mask, error) {
	if !d.bound {
		return nil, nil
	}
	els := d.tree.FindElements("//" + d.tag("TextLine") + "/" + d.tag("Coords"))
	masks := make([]model.Mask, len(els))
	for i, el := range els {
		masks[i] = model.Mask{Element: el, Index: i}
	}
	return masks, nil
}

// Baseline reads the points of the line's Baseline child.
func (d *Document) Baseline(line model.Line) (geometry.Points, error) {
	el := line.Element.SelectElement(d.tag("Baseline"))
	if el == nil {
		return nil, fmt.Errorf("page: line %d has no Baseline: %w", line.Index, model.ErrMissingAttribute)
	}
	return d.parsePoints(el, "line", line.Index)
}

// SetBaseline rewrites the points of the line's Baseline child in place.
func (d *Document) SetBaseline(line model.Line, pts geometry.Points) error {
	el := line.Element.SelectElement(d.tag("Baseline"))
	if el == nil {
		return fmt.Errorf("page: line %d has no Baseline: %w", line.Index, model.ErrMissingAttribute)
	}
	el.CreateAttr("points", pts.String())
	return nil
}

// MaskPoints reads the mask's points attribute.
func (d *Document) MaskPoints(mask model.Mask) (geometry.Points, error) {
	return d.parsePoints(mask.Element, "mask", mask.Index)
}

// SetMaskPoints rewrites the mask's points attribute in place.
func (d *Document) SetMaskPoints(mask model.Mask, pts geometry.Points) error {
	mask.Element.CreateAttr("points", pts.String())
	return nil
}

// LineHeight computes the reference height from the line's Coords ring.
func (d *Document) LineHeight(line model.Line) (float64, error) {
	el := line.Element.SelectElement(d.tag("Coords"))
	if el == nil {
		return 0, fmt.Errorf("page: line %d has no Coords: %w", line.Index, model.ErrMissingAttribute)
	}
	pts, err := d.parsePoints(el, "line", line.Index)
	if err != nil {
		return 0, err
	}
	h, err := geometry.Height(pts)
	if err != nil {
		return 0, fmt.Errorf("page: line %d: %w", line.Index, err)
	}
	return h, nil
}

// MaskHeight computes the reference height from the mask's own ring.
func (d *Document) MaskHeight(mask model.Mask) (float64, error) {
	pts, err := d.MaskPoints(mask)
	if err != nil {
		return 0, err
	}
	h, err := geometry.Height(pts)
	if err != nil {
		return 0, fmt.Errorf("page: mask %d: %w", mask.Index, err)
	}
	return h, nil
}

// parsePoints reads the required points attribute of el.
func (d *Document) parsePoints(el *etree.Element, kind string, index int) (geometry.Points, error) {
	attr := el.SelectAttr("points")
	if attr == nil {
		return nil, fmt.Errorf("page: %s %d has no points attribute: %w", kind, index, model.ErrMissingAttribute)
	}
	pts, err := geometry.ParsePoints(attr.Value)
	if err != nil {
		return nil, fmt.Errorf("page: %s %d: %w", kind, index, err)
	}
	return pts, nil
}

// DetectNamespace scans the declared namespaces for the PAGE content
// marker and rebinds the working namespace to the discovered URI.
func (d *Document) DetectNamespace() error {
	prefix, uri, ok := xmlio.FindNamespaceByMarker(d.tree, nsMarker)
	if !ok {
		return fmt.Errorf("page: %w", model.ErrNamespaceNotFound)
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

// ImagePath returns the Page element's imageFilename attribute.
func (d *Document) ImagePath() (string, error) {
	if d.bound {
		el := d.tree.FindElement("//" + d.tag("Page"))
		if el != nil {
			if attr := el.SelectAttr("imageFilename"); attr != nil && strings.TrimSpace(attr.Value) != "" {
				return attr.Value, nil
			}
		}
	}
	return "", fmt.Errorf("page: no image filename declared: %w", model.ErrMissingAttribute)
}
