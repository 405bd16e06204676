// internal/codec/errors.go
package codec

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrMalformedArchive wraps parse/decode failures from the container and stream codecs
	ErrMalformedArchive = errors.New("malformed archive")

	// ErrFileExists is returned when an output exists and overwrite is disabled
	ErrFileExists = errors.New("file exists (use --overwrite to replace)")

	// ErrNotRegularFile is returned when a single-stream format is asked to pack a directory
	ErrNotRegularFile = errors.New("source is not a regular file")

	// ErrUnsafeLink is returned when packing meets a link that cannot be
	// extracted as a link and does not point at a regular file
	ErrUnsafeLink = errors.New("link target escapes the source tree")
)

// malformed classifies a read-side failure: filesystem errors pass through
// with context, anything else came from a decoder and is ErrMalformedArchive.
func malformed(what string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", what, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrMalformedArchive, what, err)
}
