// Package dialect provides annotation dialect detection for the slimline
// library.
package dialect

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Dialect represents a supported annotation vocabulary.
type Dialect int

const (
	// Unknown indicates an unrecognized dialect.
	Unknown Dialect = iota
	// Alto indicates an ALTO document.
	Alto
	// PageXML indicates a PAGE-XML document.
	PageXML
)

// String returns the string representation of the dialect.
func (d Dialect) String() string {
	switch d {
	case Alto:
		return "ALTO"
	case PageXML:
		return "PAGE-XML"
	default:
		return "Unknown"
	}
}

// Parse resolves a configuration value ("alto", "page") to a Dialect.
func Parse(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "alto":
		return Alto, nil
	case "page", "page-xml", "pagexml":
		return PageXML, nil
	}
	return Unknown, fmt.Errorf("unknown dialect %q", s)
}

// sniffLen bounds how much of a document is inspected. Root element and
// namespace declarations appear well within this window in practice.
const sniffLen = 4096

// Detect determines the dialect from document content. It looks for the
// dialect's root element name first and falls back to namespace URI
// markers; both PAGE-XML's PcGts root and the historical spellings of the
// ALTO namespace are recognized.
func Detect(data []byte) Dialect {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	switch {
	case bytes.Contains(data, []byte("<PcGts")) || bytes.Contains(data, []byte(":PcGts")):
		return PageXML
	case bytes.Contains(data, []byte("/PAGE/gts/pagecontent")):
		return PageXML
	case bytes.Contains(data, []byte("<alto")) || bytes.Contains(data, []byte(":alto")):
		return Alto
	case bytes.Contains(data, []byte("standards/alto")):
		return Alto
	}
	return Unknown
}

// DetectFile determines the dialect of the file at path by inspecting its
// leading bytes.
func DetectFile(path string) (Dialect, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return Detect(head[:n]), nil
}
