// pkg/verify/result.go
package verify

import (
	"fmt"
	"strings"

	"github.com/creativeyann17/magic-pack/pkg/format"
	"github.com/creativeyann17/magic-pack/pkg/magicpack"
)

// Result contains comprehensive verification results
type Result struct {
	// Archive metadata
	ArchivePath string // Path to the verified archive
	ArchiveSize uint64 // Total archive file size in bytes
	Digest      string // BLAKE3 of the archive, hex encoded

	// Layers detected, outermost first
	Layers []format.Format

	// Container reports whether the innermost layer held named entries
	Container bool

	// Entry statistics
	FileCount     int    // Regular files decoded
	DirCount      int    // Directory entries
	LinkCount     int    // Symlink and hard link entries
	SkippedCount  int    // Device, fifo and other entry kinds
	TotalOrigSize uint64 // Decoded payload bytes

	// Validation state
	FormatKnown    bool // Outermost layer matched a signature
	StructureValid bool // Every layer decoded without error
	PathsValid     bool // No entry name or link target escaped the root

	// Errors encountered during verification
	Errors []error
}

// EntryCount returns every entry seen in the innermost container
func (r *Result) EntryCount() int {
	return r.FileCount + r.DirCount + r.LinkCount + r.SkippedCount
}

// CompressionRatio returns the archive size as a percentage of the decoded size
func (r *Result) CompressionRatio() float64 {
	if r.TotalOrigSize == 0 {
		return 0
	}
	return float64(r.ArchiveSize) / float64(r.TotalOrigSize) * 100
}

// IsValid returns true if the archive passed all validation checks
func (r *Result) IsValid() bool {
	return r.FormatKnown && r.StructureValid && r.PathsValid && len(r.Errors) == 0
}

// Summary returns a human-readable summary of the verification result
func (r *Result) Summary() string {
	status := "VALID"
	if !r.IsValid() {
		status = "INVALID"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Archive: %s [%s]\n", r.ArchivePath, status)
	if len(r.Layers) > 0 {
		names := make([]string, len(r.Layers))
		for i, f := range r.Layers {
			names[i] = f.String()
		}
		fmt.Fprintf(&sb, "Layers:  %s\n", strings.Join(names, " -> "))
	}
	fmt.Fprintf(&sb, "Size:    %s\n", magicpack.FormatSize(r.ArchiveSize))
	if r.Digest != "" {
		fmt.Fprintf(&sb, "BLAKE3:  %s\n", r.Digest)
	}

	if r.Container {
		fmt.Fprintf(&sb, "Entries: %d (%d files, %d dirs, %d links)\n",
			r.EntryCount(), r.FileCount, r.DirCount, r.LinkCount)
		if r.SkippedCount > 0 {
			fmt.Fprintf(&sb, "Skipped: %d\n", r.SkippedCount)
		}
	}
	if r.TotalOrigSize > 0 {
		fmt.Fprintf(&sb, "Decoded: %s (%.1f%% ratio)\n",
			magicpack.FormatSize(r.TotalOrigSize), r.CompressionRatio())
	}

	if len(r.Errors) > 0 {
		fmt.Fprintf(&sb, "\nErrors (%d):\n", len(r.Errors))
		for i, err := range r.Errors {
			if i >= 10 {
				fmt.Fprintf(&sb, "  ... and %d more errors\n", len(r.Errors)-10)
				break
			}
			fmt.Fprintf(&sb, "  - %v\n", err)
		}
	}

	return sb.String()
}
