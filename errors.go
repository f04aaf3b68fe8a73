package metadoc

import "errors"

var (
	// ErrNotFound is returned when path resolution finds no value at the
	// requested location.
	ErrNotFound = errors.New("resource not found")

	// ErrUnsupportedValueType is returned when a candidate document contains
	// a value that is neither a string leaf nor a Node.
	ErrUnsupportedValueType = errors.New("unsupported value type")
)
