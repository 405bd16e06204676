// pkg/compress/progress.go
package compress

import (
	"fmt"
	"strings"

	"github.com/vbauerster/mpb/v8"

	"github.com/creativeyann17/magic-pack/pkg/magicpack"
)

// ProgressBarCallback creates a progress callback that displays multi-progress bars
// Returns the callback function and the progress container (call Wait() after compression)
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

// FormatSummary formats a compression result into a human-readable summary string
func FormatSummary(result *Result) string {
	var sb strings.Builder
	sb.WriteString(magicpack.FormatSummary(result, magicpack.OperationCompress))
	if result.LinksProcessed > 0 {
		fmt.Fprintf(&sb, "  Symlinks:        %d\n", result.LinksProcessed)
	}
	if result.Digest != "" {
		fmt.Fprintf(&sb, "  BLAKE3:          %s\n", result.Digest)
	}
	return sb.String()
}
