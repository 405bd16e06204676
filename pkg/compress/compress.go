// pkg/compress/compress.go
package compress

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/creativeyann17/magic-pack/internal/codec"
	"github.com/creativeyann17/magic-pack/pkg/format"
	"github.com/creativeyann17/magic-pack/pkg/magicpack"
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

// Compress packs InputPath into a single artifact in the selected format
func Compress(opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if !opts.Format.IsContainer() && !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s cannot hold %s", ErrNotRegularFile, opts.Format, opts.InputPath)
	}

	outputPath, err := ResolveOutputPath(opts.InputPath, opts.OutputPath, opts.Format, info.IsDir())
	if err != nil {
		return nil, err
	}

	env := &codec.Env{
		Level:        opts.Level,
		Overwrite:    opts.Overwrite,
		UseGitignore: opts.UseGitignore,
		Verbose:      opts.Verbose,
		Progress:     forward(progressCb),
	}

	if opts.Verbose {
		fmt.Printf("Packing %s as %s -> %s\n", opts.InputPath, opts.Format, outputPath)
	}

	if err := codec.Pack(opts.Format, opts.InputPath, outputPath, env); err != nil {
		return nil, err
	}

	digest, err := magicpack.FileDigest(outputPath)
	if err != nil {
		return nil, fmt.Errorf("digest output: %w", err)
	}

	return &Result{
		Format:         opts.Format,
		OutputPath:     outputPath,
		FilesProcessed: env.Stats.Files,
		DirsProcessed:  env.Stats.Dirs,
		LinksProcessed: env.Stats.Links,
		OriginalSize:   env.Stats.InputBytes,
		CompressedSize: env.Stats.OutputBytes,
		Digest:         digest,
	}, nil
}

// ResolveOutputPath picks the artifact path. An empty output or an existing
// directory gets <dir>/<name>.<ext>: single streams keep the whole input
// file name (notes.txt.gz), containers drop the file's own extension
// (notes.zip) and directories keep their name (project.tar.gz).
func ResolveOutputPath(input, output string, f format.Format, inputIsDir bool) (string, error) {
	dir := output
	if output != "" {
		info, err := os.Stat(output)
		if err != nil || !info.IsDir() {
			return output, nil
		}
	} else {
		dir = "."
	}

	abs, err := filepath.Abs(input)
	if err != nil {
		return "", fmt.Errorf("resolve input: %w", err)
	}
	name := filepath.Base(abs)
	if !inputIsDir && f.IsContainer() {
		if stem := strings.TrimSuffix(name, filepath.Ext(name)); stem != "" {
			name = stem
		}
	}
	if name == "" || name == string(filepath.Separator) || name == "." {
		name = "archive"
	}

	return filepath.Join(dir, name+"."+f.Extension()), nil
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
