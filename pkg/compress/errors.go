// pkg/compress/errors.go
package compress

import (
	"errors"

	"github.com/creativeyann17/magic-pack/internal/codec"
)

var (
	// ErrInputRequired is returned when input path is not specified
	ErrInputRequired = errors.New("input path is required")

	// ErrFormatRequired is returned when no output format is selected
	ErrFormatRequired = errors.New("output format is required")

	// ErrInvalidFormat is returned for a Format value outside the supported set
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidLevel is returned when compression level is out of range
	ErrInvalidLevel = errors.New("compression level must be between 1 and 9")

	// ErrFileExists is returned when the output exists and overwrite is false
	ErrFileExists = codec.ErrFileExists

	// ErrNotRegularFile is returned when gz or bz2 is asked to pack a directory
	ErrNotRegularFile = codec.ErrNotRegularFile

	// ErrUnsafeLink is returned when a link leaves the tree and does not point at a regular file
	ErrUnsafeLink = codec.ErrUnsafeLink
)
