// internal/codec/fsutil.go
package codec

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/creativeyann17/magic-pack/pkg/magicpack"
)

// createFile opens path for writing, creating parent directories. Without
// overwrite an existing file is an error rather than being truncated.
func createFile(path string, perm os.FileMode, overwrite bool) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create directories: %w", err)
	}
	if perm == 0 {
		perm = 0644
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, perm)
	if errors.Is(err, fs.ErrExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileExists, path)
	}
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return f, nil
}

// discardOnError closes a pack output and removes it when the pack failed
func discardOnError(f *os.File, path string, err *error) {
	f.Close()
	if *err != nil {
		os.Remove(path)
	}
}

// extractFile copies one entry's content to target, or drains it in dry-run mode
func extractFile(target, name string, r io.Reader, perm os.FileMode, size int64, env *Env) error {
	env.emit(Event{Type: EventFileStart, Path: name, Total: size})

	src := &magicpack.ErrorTrackingReader{Reader: r}
	var written int64
	var dst io.Writer = io.Discard
	var out *os.File

	if !env.DryRun {
		f, err := createFile(target, perm.Perm(), env.Overwrite)
		if err != nil {
			env.emit(Event{Type: EventError, Path: name})
			return fmt.Errorf("%s: %w", name, err)
		}
		out = f
		defer out.Close()
		dst = out
	}

	proxy := &magicpack.ProgressWriter{
		Writer: dst,
		OnWrite: func(n int) {
			written += int64(n)
			env.emit(Event{Type: EventFileProgress, Path: name, Current: written, Total: size})
		},
	}

	if _, err := io.Copy(proxy, src); err != nil {
		env.emit(Event{Type: EventError, Path: name})
		if src.Err != nil {
			return malformed(name, src.Err)
		}
		return fmt.Errorf("%s: write: %w", name, err)
	}
	if out != nil {
		if err := out.Close(); err != nil {
			return fmt.Errorf("%s: close: %w", name, err)
		}
	}

	env.Stats.Files++
	env.Stats.OutputBytes += uint64(written)
	env.emit(Event{Type: EventFileComplete, Path: name, Current: written, Total: written})
	env.logf("  %s (%s)", name, magicpack.FormatSize(uint64(written)))
	return nil
}

func extractDir(target, name string, env *Env) error {
	if !env.DryRun {
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("%s: mkdir: %w", name, err)
		}
	}
	env.Stats.Dirs++
	env.logf("  %s", name)
	return nil
}

func extractSymlink(target, name, linkTarget string, env *Env) error {
	if !env.DryRun {
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("%s: create directories: %w", name, err)
		}
		if env.Overwrite {
			if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%s: replace: %w", name, err)
			}
		}
		if err := os.Symlink(filepath.FromSlash(linkTarget), target); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return fmt.Errorf("%w: %s", ErrFileExists, target)
			}
			return fmt.Errorf("%s: symlink: %w", name, err)
		}
	}
	env.Stats.Links++
	env.logf("  %s -> %s", name, linkTarget)
	return nil
}

func extractHardlink(target, name, existing string, env *Env) error {
	if !env.DryRun {
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("%s: create directories: %w", name, err)
		}
		if env.Overwrite {
			if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%s: replace: %w", name, err)
			}
		}
		if err := os.Link(existing, target); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return fmt.Errorf("%w: %s", ErrFileExists, target)
			}
			return fmt.Errorf("%s: link: %w", name, err)
		}
	}
	env.Stats.Links++
	env.logf("  %s => %s", name, existing)
	return nil
}

// archiveSize records the size of an archive being read
func archiveSize(f *os.File, env *Env) {
	if info, err := f.Stat(); err == nil {
		env.Stats.InputBytes += uint64(info.Size())
	}
}
