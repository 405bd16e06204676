// pkg/decompress/progress.go
package decompress

import (
	"fmt"
	"strings"

	"github.com/vbauerster/mpb/v8"

	"github.com/creativeyann17/magic-pack/pkg/magicpack"
)

// ProgressBarCallback creates a progress callback that displays multi-progress bars
// Returns the callback function and the progress container (call Wait() after decompression)
func ProgressBarCallback() (ProgressCallback, *mpb.Progress) {
	genericCb, progress := magicpack.ProgressBarCallback()

	callback := func(event ProgressEvent) {
		genericCb(magicpack.ProgressEvent{
			Type:     magicpack.EventType(event.Type),
			FilePath: event.FilePath,
			Current:  event.Current,
			Total:    event.Total,
		})
	}

	return callback, progress
}

// FormatSummary formats a decompression result into a human-readable summary string
func FormatSummary(result *Result) string {
	var sb strings.Builder
	sb.WriteString(magicpack.FormatSummary(result, magicpack.OperationDecompress))
	if result.LinksProcessed > 0 {
		fmt.Fprintf(&sb, "  Links:             %d\n", result.LinksProcessed)
	}
	if result.EntriesSkipped > 0 {
		fmt.Fprintf(&sb, "  Skipped:           %d (unsupported entry types)\n", result.EntriesSkipped)
	}
	return sb.String()
}
