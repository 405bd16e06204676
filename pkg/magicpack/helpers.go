// pkg/magicpack/helpers.go
package magicpack

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// OperationType indicates whether the operation packs or unpacks
type OperationType string

const (
	OperationCompress   OperationType = "compress"
	OperationDecompress OperationType = "decompress"
)

// ProgressEvent is a generic progress event that works for both compress and decompress
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

// Result is the common view of compress and decompress results
type Result interface {
	GetFormats() []string
	GetOutputPath() string
	GetFilesProcessed() int
	GetDirsProcessed() int
	GetOriginalSize() uint64
	GetCompressedSize() uint64
}

// ProgressBarCallback creates a progress callback that displays multi-progress bars
// Returns the callback function and the progress container (call Wait() after operation)
func ProgressBarCallback() (func(ProgressEvent), *mpb.Progress) {
	progress := mpb.New(
		mpb.WithWidth(60),
		mpb.WithRefreshRate(100*time.Millisecond),
	)

	var overallBar *mpb.Bar
	layer := 0
	var fileBars sync.Map // map[string]*mpb.Bar

	callback := func(event ProgressEvent) {
		switch event.Type {
		case EventStart:
			// Every peeled layer starts again with its own file count
			if overallBar != nil && !overallBar.Completed() {
				overallBar.SetTotal(-1, true)
			}
			overallBar = nil
			if event.Total <= 0 {
				return
			}
			layer++
			overallBar = progress.AddBar(event.Total,
				mpb.PrependDecorators(
					decor.Name(fmt.Sprintf("Layer %d", layer), decor.WC{C: decor.DindentRight | decor.DextraSpace}),
					decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
				),
				mpb.AppendDecorators(
					decor.Percentage(decor.WC{W: 5}),
				),
				mpb.BarPriority(1000),
			)

		case EventFileStart:
			// Empty files complete instantly
			if event.Total == 0 {
				return
			}
			shortName := TruncateLeft(event.FilePath, 30)
			bar := progress.AddBar(event.Total,
				mpb.PrependDecorators(
					decor.Name(shortName, decor.WC{C: decor.DindentRight | decor.DextraSpace, W: 32}),
				),
				mpb.AppendDecorators(
					decor.CountersKibiByte("% .1f / % .1f", decor.WC{W: 18}),
					decor.Percentage(decor.WC{W: 5}),
				),
				mpb.BarRemoveOnComplete(),
			)
			fileBars.Store(event.FilePath, bar)

		case EventFileProgress:
			if bar, ok := fileBars.Load(event.FilePath); ok {
				bar.(*mpb.Bar).SetCurrent(event.Current)
			}

		case EventFileComplete:
			if bar, ok := fileBars.Load(event.FilePath); ok {
				b := bar.(*mpb.Bar)
				if event.Total > 0 {
					b.SetCurrent(event.Total)
				} else {
					b.Abort(true)
				}
				fileBars.Delete(event.FilePath)
			}
			if overallBar != nil {
				overallBar.Increment()
			}

		case EventError:
			if bar, ok := fileBars.Load(event.FilePath); ok {
				bar.(*mpb.Bar).Abort(true)
				fileBars.Delete(event.FilePath)
			}

		case EventComplete:
			if overallBar != nil && !overallBar.Completed() {
				overallBar.SetTotal(-1, true)
			}
			fileBars.Range(func(key, value any) bool {
				value.(*mpb.Bar).Abort(true)
				fileBars.Delete(key)
				return true
			})
		}
	}

	return callback, progress
}

// FormatSummary formats a result into a human-readable summary string
func FormatSummary(result Result, operation OperationType) string {
	var sb strings.Builder

	sb.WriteString("Summary:\n")
	if formats := result.GetFormats(); len(formats) > 0 {
		fmt.Fprintf(&sb, "  Format:          %s\n", strings.Join(formats, " -> "))
	}
	fmt.Fprintf(&sb, "  Output:          %s\n", result.GetOutputPath())
	fmt.Fprintf(&sb, "  Files:           %d\n", result.GetFilesProcessed())
	if dirs := result.GetDirsProcessed(); dirs > 0 {
		fmt.Fprintf(&sb, "  Directories:     %d\n", dirs)
	}

	if operation == OperationCompress {
		fmt.Fprintf(&sb, "  Original size:   %s\n", FormatSize(result.GetOriginalSize()))
		fmt.Fprintf(&sb, "  Compressed size: %s\n", FormatSize(result.GetCompressedSize()))
		if result.GetOriginalSize() > 0 {
			ratio := float64(result.GetCompressedSize()) / float64(result.GetOriginalSize()) * 100
			fmt.Fprintf(&sb, "  Ratio:           %.1f%%\n", ratio)
		}
	} else {
		fmt.Fprintf(&sb, "  Compressed size:   %s\n", FormatSize(result.GetCompressedSize()))
		fmt.Fprintf(&sb, "  Decompressed size: %s\n", FormatSize(result.GetOriginalSize()))
	}

	return sb.String()
}

// FormatSize formats bytes into human-readable string
func FormatSize(bytes uint64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
		TB = 1024 * GB
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.2f TB", float64(bytes)/float64(TB))
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// TruncateLeft truncates a path from the left to fit maxLen, preserving the filename
func TruncateLeft(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}

	filename := filepath.Base(path)
	if len(filename) >= maxLen-3 {
		return "..." + filename[len(filename)-(maxLen-3):]
	}

	return "..." + path[len(path)-(maxLen-3):]
}
