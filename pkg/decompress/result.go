// pkg/decompress/result.go
package decompress

import "github.com/creativeyann17/magic-pack/pkg/format"

// Result contains statistics about the decompression operation
type Result struct {
	// Layers peeled, outermost first
	Layers []format.Format

	// Extraction directory for containers, payload file otherwise
	OutputPath string

	// Number of files written
	FilesProcessed int

	// Number of directories created
	DirsProcessed int

	// Number of symlinks and hard links created
	LinksProcessed int

	// Entries of unsupported kinds (devices, fifos) that were skipped
	EntriesSkipped int

	// Size of the input archive in bytes
	CompressedSize uint64

	// Total decompressed size in bytes
	DecompressedSize uint64
}

// GetFormats returns the peeled layer names (interface method)
func (r *Result) GetFormats() []string {
	names := make([]string, len(r.Layers))
	for i, f := range r.Layers {
		names[i] = f.String()
	}
	return names
}

// GetOutputPath returns the output path (interface method)
func (r *Result) GetOutputPath() string {
	return r.OutputPath
}

// GetFilesProcessed returns processed files (interface method)
func (r *Result) GetFilesProcessed() int {
	return r.FilesProcessed
}

// GetDirsProcessed returns created directories (interface method)
func (r *Result) GetDirsProcessed() int {
	return r.DirsProcessed
}

// GetOriginalSize returns decompressed size (interface method)
func (r *Result) GetOriginalSize() uint64 {
	return r.DecompressedSize
}

// GetCompressedSize returns compressed size (interface method)
func (r *Result) GetCompressedSize() uint64 {
	return r.CompressedSize
}
