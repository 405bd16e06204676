// pkg/decompress/decompress.go
package decompress

import (
	"fmt"
	"os"
	"strings"

	"github.com/creativeyann17/magic-pack/internal/codec"
	"github.com/creativeyann17/magic-pack/internal/layers"
)

// ProgressCallback is called for various progress events
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type     EventType
	FilePath string
	Current  int64
	Total    int64
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventFileStart
	EventFileProgress
	EventFileComplete
	EventComplete
	EventError
)

// Decompress sniffs InputPath and peels it layer by layer into OutputPath
func Decompress(opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	env := &codec.Env{
		Overwrite: opts.Overwrite,
		Verbose:   opts.Verbose,
		Progress:  forward(progressCb),
	}

	trace, err := layers.Peel(opts.InputPath, opts.OutputPath, opts.MaxLayers, env)
	result := &Result{
		FilesProcessed:   env.Stats.Files,
		DirsProcessed:    env.Stats.Dirs,
		LinksProcessed:   env.Stats.Links,
		EntriesSkipped:   env.Stats.Skipped,
		CompressedSize:   uint64(info.Size()),
		DecompressedSize: env.Stats.OutputBytes,
	}
	if trace != nil {
		result.Layers = trace.Layers
		result.OutputPath = trace.Output
	}
	if err != nil {
		return result, err
	}

	if opts.Verbose {
		fmt.Printf("Layers: %s\n", strings.Join(result.GetFormats(), " -> "))
	}

	return result, nil
}

func forward(cb ProgressCallback) func(codec.Event) {
	if cb == nil {
		return nil
	}
	return func(ev codec.Event) {
		cb(ProgressEvent{
			Type:     EventType(ev.Type),
			FilePath: ev.Path,
			Current:  ev.Current,
			Total:    ev.Total,
		})
	}
}
