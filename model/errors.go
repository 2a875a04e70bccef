package model

import "errors"

var (
	// ErrMissingAttribute indicates a required attribute or sub-element
	// is absent from the source document.
	ErrMissingAttribute = errors.New("document: required attribute or element missing")
	// ErrUnsupported indicates an operation the dialect has no semantics
	// for, such as masks on ALTO.
	ErrUnsupported = errors.New("document: operation not supported by this dialect")
	// ErrNamespaceNotFound indicates namespace detection found no
	// declaration matching the dialect's marker.
	ErrNamespaceNotFound = errors.New("document: no matching namespace declaration")
)
