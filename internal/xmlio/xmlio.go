// Package xmlio loads XML sources into etree documents.
//
// The adapters depend on the XML layer preserving attribute order and
// formatting so that an unmutated document serializes byte-identically to
// its source. etree provides that; this package centralizes the reader
// configuration, in particular charset support for documents that declare
// a non-UTF-8 encoding.
package xmlio

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// newDocument returns an empty document configured for charset-aware
// reading.
func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	return doc
}

// FromFile parses the XML file at path.
func FromFile(path string) (*etree.Document, error) {
	doc := newDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("reading %s: no root element", path)
	}
	return doc, nil
}

// FromBytes parses raw XML content.
func FromBytes(data []byte) (*etree.Document, error) {
	doc := newDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("parsing content: no root element")
	}
	return doc, nil
}

// PrefixForNamespace scans the root element's namespace declarations for
// uri and returns the prefix it is bound to ("" for the default
// namespace).
func PrefixForNamespace(doc *etree.Document, uri string) (string, bool) {
	root := doc.Root()
	if root == nil {
		return "", false
	}
	for _, a := range root.Attr {
		if a.Value != uri {
			continue
		}
		if a.Space == "" && a.Key == "xmlns" {
			return "", true
		}
		if a.Space == "xmlns" {
			return a.Key, true
		}
	}
	return "", false
}

// FindNamespaceByMarker scans the root element's namespace declarations
// for a URI containing marker and returns the bound prefix and the
// discovered URI. Dialects accumulate historical URI spellings; matching
// on a marker substring covers all of them.
func FindNamespaceByMarker(doc *etree.Document, marker string) (prefix, uri string, ok bool) {
	root := doc.Root()
	if root == nil {
		return "", "", false
	}
	for _, a := range root.Attr {
		isDefault := a.Space == "" && a.Key == "xmlns"
		isPrefixed := a.Space == "xmlns"
		if !isDefault && !isPrefixed {
			continue
		}
		if !strings.Contains(a.Value, marker) {
			continue
		}
		if isDefault {
			return "", a.Value, true
		}
		return a.Key, a.Value, true
	}
	return "", "", false
}
