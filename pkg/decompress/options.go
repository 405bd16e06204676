// pkg/decompress/options.go
package decompress

import "github.com/creativeyann17/magic-pack/internal/layers"

// Options configures the decompression behavior
type Options struct {
	// Input archive path
	InputPath string

	// Output directory path
	// Default: "."
	OutputPath string

	// MaxLayers bounds how many nested encodings are peeled
	// (tar.gz is two layers: gzip, then tar)
	// Default: 4
	MaxLayers int

	// Verbose enables detailed logging
	Verbose bool

	// Quiet suppresses all output except errors
	Quiet bool

	// Overwrite existing files without prompting
	Overwrite bool
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{
		OutputPath: ".",
		MaxLayers:  layers.DefaultMaxLayers,
	}
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	if o.InputPath == "" {
		return ErrInputRequired
	}
	if o.OutputPath == "" {
		o.OutputPath = "."
	}
	if o.MaxLayers == 0 {
		o.MaxLayers = layers.DefaultMaxLayers
	}
	if o.MaxLayers < 1 {
		return ErrInvalidLayers
	}
	if o.Quiet {
		o.Verbose = false
	}
	return nil
}
