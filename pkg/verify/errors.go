// pkg/verify/errors.go
package verify

import (
	"errors"

	"github.com/creativeyann17/magic-pack/internal/codec"
	"github.com/creativeyann17/magic-pack/internal/safepath"
	"github.com/creativeyann17/magic-pack/pkg/format"
)

var (
	// ErrInputRequired is returned when input path is not specified
	ErrInputRequired = errors.New("input path is required")

	// ErrInvalidLayers is returned when MaxLayers is negative
	ErrInvalidLayers = errors.New("max layers must be at least 1")

	// ErrUnsupportedFormat is returned for inputs matching no known signature
	ErrUnsupportedFormat = format.ErrUnsupportedFormat

	// ErrPathTraversal is returned when an entry name or link target escapes the root
	ErrPathTraversal = safepath.ErrPathTraversal

	// ErrCorruptData is returned when a layer fails to decode
	ErrCorruptData = codec.ErrMalformedArchive
)
