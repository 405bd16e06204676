// pkg/verify/verify.go
package verify

import (
	"errors"
	"fmt"
	"os"

	"github.com/creativeyann17/magic-pack/internal/codec"
	"github.com/creativeyann17/magic-pack/internal/layers"
	"github.com/creativeyann17/magic-pack/pkg/magicpack"
)

// ProgressCallback is called for progress updates during verification
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type     EventType
	FilePath string
	Current  int
	Total    int
	Message  string
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventLayer
	EventEntryVerify
	EventComplete
	EventError
)

// Verify decodes every layer of an archive and validates every entry name
// without writing anything. A failed check is recorded in the result and
// also returned as the error.
func Verify(opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	stat, err := os.Stat(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if !stat.Mode().IsRegular() {
		return nil, fmt.Errorf("open archive: %s is not a regular file", opts.InputPath)
	}

	result := &Result{
		ArchivePath: opts.InputPath,
		ArchiveSize: uint64(stat.Size()),
	}
	if result.Digest, err = magicpack.FileDigest(opts.InputPath); err != nil {
		return nil, fmt.Errorf("digest archive: %w", err)
	}

	// Decoded single-stream layers still need a scratch directory
	scratch, err := os.MkdirTemp("", "magicpack-verify-")
	if err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:    EventStart,
			Message: fmt.Sprintf("Verifying %s", opts.InputPath),
		})
	}

	entries := 0
	env := &codec.Env{
		DryRun:  true,
		Verbose: opts.Verbose,
	}
	if progressCb != nil {
		env.Progress = func(ev codec.Event) {
			switch ev.Type {
			case codec.EventStart:
				progressCb(ProgressEvent{Type: EventLayer, Total: int(ev.Total)})
			case codec.EventFileComplete:
				entries++
				progressCb(ProgressEvent{Type: EventEntryVerify, FilePath: ev.Path, Current: entries})
			case codec.EventError:
				progressCb(ProgressEvent{Type: EventError, FilePath: ev.Path})
			}
		}
	}

	trace, peelErr := layers.Peel(opts.InputPath, scratch, opts.MaxLayers, env)
	if trace != nil {
		result.Layers = trace.Layers
		result.Container = trace.Container
	}
	result.FormatKnown = len(result.Layers) > 0
	result.FileCount = env.Stats.Files
	result.DirCount = env.Stats.Dirs
	result.LinkCount = env.Stats.Links
	result.SkippedCount = env.Stats.Skipped
	result.TotalOrigSize = env.Stats.OutputBytes
	result.StructureValid = peelErr == nil || errors.Is(peelErr, ErrPathTraversal)
	result.PathsValid = !errors.Is(peelErr, ErrPathTraversal)

	if peelErr != nil {
		result.Errors = append(result.Errors, peelErr)
		if !result.FormatKnown {
			result.StructureValid = false
		}
	}

	if opts.Verbose {
		fmt.Printf("Verified %d entries in %d layers\n", result.EntryCount(), len(result.Layers))
	}

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:    EventComplete,
			Current: result.EntryCount(),
			Total:   result.EntryCount(),
			Message: "Verification complete",
		})
	}

	return result, peelErr
}
