// pkg/decompress/errors.go
package decompress

import (
	"errors"

	"github.com/creativeyann17/magic-pack/internal/codec"
	"github.com/creativeyann17/magic-pack/internal/safepath"
	"github.com/creativeyann17/magic-pack/pkg/format"
)

var (
	// ErrInputRequired is returned when input path is not specified
	ErrInputRequired = errors.New("input archive path is required")

	// ErrInvalidLayers is returned when MaxLayers is negative
	ErrInvalidLayers = errors.New("max layers must be at least 1")

	// ErrUnsupportedFormat is returned when the input matches no known signature
	ErrUnsupportedFormat = format.ErrUnsupportedFormat

	// ErrPathTraversal is returned when an entry would escape the output directory
	ErrPathTraversal = safepath.ErrPathTraversal

	// ErrInvalidArchive is returned when an archive cannot be parsed
	ErrInvalidArchive = codec.ErrMalformedArchive

	// ErrFileExists is returned when output file exists and overwrite is false
	ErrFileExists = codec.ErrFileExists
)
