// pkg/compress/options.go
package compress

import (
	"github.com/creativeyann17/magic-pack/internal/codec"
	"github.com/creativeyann17/magic-pack/pkg/format"
)

// Options configures the compression behavior
type Options struct {
	// Input path (file or directory)
	// Single-stream formats (gz, bz2) accept a regular file only
	InputPath string

	// Output artifact path
	// Empty or an existing directory: <dir>/<input name>.<ext>
	OutputPath string

	// Format of the artifact (required)
	Format format.Format

	// Compression level, 1=fastest to 9=best
	// Ignored by plain tar
	// Default: 6
	Level int

	// UseGitignore respects .gitignore files to exclude matching paths
	// Only affects container formats
	UseGitignore bool

	// Overwrite replaces an existing output file
	Overwrite bool

	// Verbose enables detailed logging
	Verbose bool

	// Quiet suppresses all output except errors
	Quiet bool
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{
		Format: format.TarGzip,
		Level:  codec.DefaultLevel,
	}
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	if o.InputPath == "" {
		return ErrInputRequired
	}
	if o.Format == format.Unknown {
		return ErrFormatRequired
	}
	if !o.Format.Valid() {
		return ErrInvalidFormat
	}
	if o.Level == 0 {
		o.Level = codec.DefaultLevel
	}
	if o.Level < 1 || o.Level > 9 {
		return ErrInvalidLevel
	}
	if o.Quiet {
		o.Verbose = false
	}
	return nil
}
