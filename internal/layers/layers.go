// internal/layers/layers.go
package layers

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/creativeyann17/magic-pack/internal/codec"
	"github.com/creativeyann17/magic-pack/pkg/format"
)

// DefaultMaxLayers bounds how many nested encodings are peeled
const DefaultMaxLayers = 4

// Trace records what Peel went through
type Trace struct {
	// Layers lists detected formats, outermost first
	Layers []format.Format

	// Output is the extraction directory for a container payload, or the
	// path of the final decoded file otherwise
	Output string

	// Container is true when the innermost layer was a zip or tar
	Container bool
}

// Peel sniffs input and unpacks it layer by layer into outDir. Single-stream
// layers decode into a private temp directory under outDir; a container
// layer extracts into outDir and ends the walk. With env.DryRun set,
// container entries are validated without being written and the final
// payload is not moved into place.
func Peel(input, outDir string, maxLayers int, env *codec.Env) (*Trace, error) {
	if maxLayers < 1 {
		return nil, fmt.Errorf("max layers must be at least 1, got %d", maxLayers)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	tmpDir, err := os.MkdirTemp(outDir, ".magicpack-")
	if err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	trace := &Trace{}
	current := input
	name := filepath.Base(input)
	var payloadBytes uint64

	for n := 1; n <= maxLayers; n++ {
		f, err := format.Detect(current)
		if errors.Is(err, format.ErrUnsupportedFormat) && n > 1 {
			break
		}
		if err != nil {
			return trace, fmt.Errorf("layer %d: %w", n, err)
		}
		if f == format.Tar && n > 1 && !readsAsTar(current) {
			// A decoded payload that only mentions "ustar"
			break
		}
		trace.Layers = append(trace.Layers, f)

		if f.IsContainer() {
			if err := codec.Unpack(f, current, outDir, env); err != nil {
				return trace, fmt.Errorf("layer %d (%s): %w", n, f, err)
			}
			trace.Output = outDir
			trace.Container = true
			return trace, nil
		}

		next := filepath.Join(tmpDir, fmt.Sprintf("layer-%d", n))
		before := env.Stats
		if err := unpackLayer(f, current, next, env); err != nil {
			return trace, fmt.Errorf("layer %d (%s): %w", n, f, err)
		}
		// Decoded layers only count once they turn out to be the payload
		payloadBytes = env.Stats.OutputBytes - before.OutputBytes
		env.Stats.Files, env.Stats.OutputBytes = before.Files, before.OutputBytes
		current = next
		name = StripExtension(name)
	}

	final := filepath.Join(outDir, name)
	trace.Output = final
	env.Stats.Files++
	env.Stats.OutputBytes += payloadBytes
	if env.DryRun {
		return trace, nil
	}
	if sameFile(input, final) {
		return trace, fmt.Errorf("%w: payload %s would replace its own input", codec.ErrFileExists, final)
	}
	if err := movePayload(current, final, env.Overwrite); err != nil {
		return trace, err
	}
	return trace, nil
}

// unpackLayer always writes the decoded stream, the next iteration needs
// it on disk even in a dry run
func unpackLayer(f format.Format, src, dst string, env *codec.Env) error {
	dryRun := env.DryRun
	env.DryRun = false
	defer func() { env.DryRun = dryRun }()
	return codec.Unpack(f, src, dst, env)
}

// readsAsTar reports whether the first tar header in path parses
func readsAsTar(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	_, err = tar.NewReader(f).Next()
	return err == nil || errors.Is(err, io.EOF) || errors.Is(err, tar.ErrInsecurePath)
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// StripExtension drops one encoding suffix from a payload name
func StripExtension(name string) string {
	lower := strings.ToLower(name)
	for _, alias := range []string{".tgz", ".tbz2", ".tbz"} {
		if strings.HasSuffix(lower, alias) {
			return name[:len(name)-len(alias)] + ".tar"
		}
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" || stem == "." {
		return "payload"
	}
	return stem
}

// movePayload renames the decoded file into place, copying when the rename
// crosses filesystems. The input file is never moved, only temp layers.
func movePayload(src, dst string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Lstat(dst); err == nil {
			return fmt.Errorf("%w: %s", codec.ErrFileExists, dst)
		}
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open decoded payload: %w", err)
	}
	defer in.Close()

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	out, err := os.OpenFile(dst, flags, 0644)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%w: %s", codec.ErrFileExists, dst)
	}
	if err != nil {
		return fmt.Errorf("create payload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy payload: %w", err)
	}
	return out.Close()
}
