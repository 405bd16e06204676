// pkg/compress/result.go
package compress

import "github.com/creativeyann17/magic-pack/pkg/format"

// Result contains statistics about the compression operation
type Result struct {
	// Format of the artifact
	Format format.Format

	// Path of the produced artifact
	OutputPath string

	// Number of regular files packed
	FilesProcessed int

	// Number of directories packed (containers only)
	DirsProcessed int

	// Number of symlinks packed (containers only)
	LinksProcessed int

	// Total original size in bytes
	OriginalSize uint64

	// Artifact size in bytes
	CompressedSize uint64

	// BLAKE3 digest of the artifact, hex encoded
	Digest string
}

// CompressionRatio returns the compression ratio as a percentage
func (r *Result) CompressionRatio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.CompressedSize) / float64(r.OriginalSize) * 100
}

// GetFormats returns the artifact format (interface method)
func (r *Result) GetFormats() []string {
	return []string{r.Format.String()}
}

// GetOutputPath returns the artifact path (interface method)
func (r *Result) GetOutputPath() string {
	return r.OutputPath
}

// GetFilesProcessed returns packed files (interface method)
func (r *Result) GetFilesProcessed() int {
	return r.FilesProcessed
}

// GetDirsProcessed returns packed directories (interface method)
func (r *Result) GetDirsProcessed() int {
	return r.DirsProcessed
}

// GetOriginalSize returns original size (interface method)
func (r *Result) GetOriginalSize() uint64 {
	return r.OriginalSize
}

// GetCompressedSize returns artifact size (interface method)
func (r *Result) GetCompressedSize() uint64 {
	return r.CompressedSize
}
