// pkg/format/errors.go
package format

import "errors"

var (
	// ErrUnsupportedFormat is returned when no signature matches the file content
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrUnknownName is returned by Parse for an unrecognized format name
	ErrUnknownName = errors.New("unknown format name")
)
