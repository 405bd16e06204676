// pkg/verify/options.go
package verify

import "github.com/creativeyann17/magic-pack/internal/layers"

// Options configures the verify operation
type Options struct {
	// InputPath is the archive file to verify (required)
	InputPath string

	// MaxLayers bounds how many nested encodings are checked
	// Default: 4
	MaxLayers int

	// Verbose enables detailed logging during verification
	Verbose bool

	// Quiet suppresses all output except errors
	Quiet bool
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	if o.InputPath == "" {
		return ErrInputRequired
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
