// internal/codec/single.go
package codec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/creativeyann17/magic-pack/pkg/magicpack"
)

// packStream reads the whole source file into memory and writes it through
// the stream encoder to dst
func packStream(src, dst string, s stream, env *Env) (err error) {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, src)
	}

	content, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	name := filepath.Base(src)
	env.emit(Event{Type: EventStart, Total: 1})
	env.emit(Event{Type: EventFileStart, Path: name, Total: int64(len(content))})

	out, err := createFile(dst, 0644, env.Overwrite)
	if err != nil {
		return err
	}
	defer discardOnError(out, dst, &err)

	counter := &magicpack.CountingWriter{Writer: out}
	enc, err := s.wrap(counter, env.level())
	if err != nil {
		return fmt.Errorf("create %s encoder: %w", s.name, err)
	}
	if _, err := enc.Write(content); err != nil {
		env.emit(Event{Type: EventError, Path: name})
		return fmt.Errorf("%s encode: %w", s.name, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish %s stream: %w", s.name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	env.Stats.Files++
	env.Stats.InputBytes += uint64(len(content))
	env.Stats.OutputBytes += uint64(counter.Count)
	env.emit(Event{Type: EventFileComplete, Path: name, Current: int64(len(content)), Total: int64(len(content))})
	env.emit(Event{Type: EventComplete, Current: 1, Total: 1})
	env.logf("  %s -> %s (%s)", name, filepath.Base(dst), magicpack.FormatSize(uint64(counter.Count)))
	return nil
}

// unpackStream decodes the whole stream into memory and writes one output file
func unpackStream(src, dst string, s stream, env *Env) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer in.Close()
	archiveSize(in, env)

	dec, err := s.unwrap(bufio.NewReader(in))
	if err != nil {
		return malformed(fmt.Sprintf("open %s stream", s.name), err)
	}
	defer dec.Close()

	content, err := io.ReadAll(dec)
	if err != nil {
		return malformed(fmt.Sprintf("%s decode", s.name), err)
	}

	name := filepath.Base(dst)
	env.emit(Event{Type: EventStart, Total: 1})
	env.emit(Event{Type: EventFileStart, Path: name, Total: int64(len(content))})

	if !env.DryRun {
		out, err := createFile(dst, 0644, env.Overwrite)
		if err != nil {
			env.emit(Event{Type: EventError, Path: name})
			return err
		}
		defer out.Close()

		if _, err := out.Write(content); err != nil {
			env.emit(Event{Type: EventError, Path: name})
			return fmt.Errorf("write output file: %w", err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("close output file: %w", err)
		}
	}

	env.Stats.Files++
	env.Stats.OutputBytes += uint64(len(content))
	env.emit(Event{Type: EventFileComplete, Path: name, Current: int64(len(content)), Total: int64(len(content))})
	env.emit(Event{Type: EventComplete, Current: 1, Total: 1})
	env.logf("  %s layer -> %s (%s)", s.name, name, magicpack.FormatSize(uint64(len(content))))
	return nil
}
