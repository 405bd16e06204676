// internal/codec/zip.go
package codec

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/creativeyann17/magic-pack/internal/safepath"
	"github.com/creativeyann17/magic-pack/pkg/magicpack"
)

// maxLinkTarget bounds how much of a symlink entry is read as its target
const maxLinkTarget = 4096

// packZip writes src as a zip archive. Files are deflated at the Env level,
// directories and symlinks are stored.
func packZip(src, dst string, env *Env) (err error) {
	entries, err := collectEntries(src, dst, env.UseGitignore)
	if err != nil {
		return err
	}

	out, err := createFile(dst, 0644, env.Overwrite)
	if err != nil {
		return err
	}
	defer discardOnError(out, dst, &err)

	counter := &magicpack.CountingWriter{Writer: out}
	zw := zip.NewWriter(counter)
	level := env.level()
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})

	files := countRegular(entries)
	env.emit(Event{Type: EventStart, Total: files})

	for _, entry := range entries {
		if err := writeZipEntry(zw, entry, env); err != nil {
			env.emit(Event{Type: EventError, Path: entry.Name})
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish zip archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	env.Stats.OutputBytes += uint64(counter.Count)
	env.emit(Event{Type: EventComplete, Current: files, Total: files})
	return nil
}

func writeZipEntry(zw *zip.Writer, entry sourceEntry, env *Env) error {
	hdr, err := zip.FileInfoHeader(entry.Info)
	if err != nil {
		return fmt.Errorf("%s: header: %w", entry.Name, err)
	}
	hdr.Name = entry.Name
	hdr.Method = zip.Deflate
	if entry.isDir() || entry.isSymlink() {
		hdr.Method = zip.Store
	}
	if entry.isDir() {
		hdr.Name += "/"
	}

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("%s: write header: %w", entry.Name, err)
	}

	switch {
	case entry.isDir():
		env.Stats.Dirs++
		env.logf("  %s/", entry.Name)
		return nil
	case entry.isSymlink():
		if _, err := io.WriteString(w, entry.Link); err != nil {
			return fmt.Errorf("%s: write link: %w", entry.Name, err)
		}
		env.Stats.Links++
		env.logf("  %s -> %s", entry.Name, entry.Link)
		return nil
	}

	return copyIntoArchive(w, entry, env)
}

// unpackZip extracts a zip archive into dst. The central directory is
// validated up front, so a single unsafe name aborts before any write.
func unpackZip(src, dst string, env *Env) error {
	zr, err := zip.OpenReader(src)
	if errors.Is(err, zip.ErrInsecurePath) {
		zr.Close()
		return fmt.Errorf("%w: %w", safepath.ErrPathTraversal, err)
	}
	if err != nil {
		return malformed("open zip archive", err)
	}
	defer zr.Close()

	if info, err := os.Stat(src); err == nil {
		env.Stats.InputBytes += uint64(info.Size())
	}

	for _, f := range zr.File {
		if !safepath.IsSafe(f.Name) {
			env.emit(Event{Type: EventError, Path: f.Name})
			return fmt.Errorf("%w: %q", safepath.ErrPathTraversal, f.Name)
		}
	}

	if !env.DryRun {
		if err := os.MkdirAll(dst, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	total := int64(0)
	for _, f := range zr.File {
		if f.Mode().IsRegular() && !strings.HasSuffix(f.Name, "/") {
			total++
		}
	}
	env.emit(Event{Type: EventStart, Total: total})

	for _, f := range zr.File {
		if err := extractZipEntry(f, dst, env); err != nil {
			env.emit(Event{Type: EventError, Path: f.Name})
			return err
		}
	}

	env.emit(Event{Type: EventComplete, Current: total, Total: total})
	return nil
}

func extractZipEntry(f *zip.File, root string, env *Env) error {
	target, err := safepath.Join(root, f.Name)
	if err != nil {
		return err
	}

	mode := f.Mode()
	switch {
	case strings.HasSuffix(f.Name, "/") || mode.IsDir():
		return extractDir(target, f.Name, env)
	case mode&os.ModeSymlink != 0:
		linkTarget, err := readZipLink(f)
		if err != nil {
			return err
		}
		if err := safepath.CheckLink(f.Name, linkTarget); err != nil {
			return err
		}
		return extractSymlink(target, f.Name, linkTarget, env)
	case !mode.IsRegular():
		env.Stats.Skipped++
		env.logf("  skipped %s (mode %s)", f.Name, mode)
		return nil
	}

	rc, err := f.Open()
	if err != nil {
		return malformed(f.Name, err)
	}
	defer rc.Close()

	return extractFile(target, f.Name, rc, mode, int64(f.UncompressedSize64), env)
}

func readZipLink(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", malformed(f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxLinkTarget+1))
	if err != nil {
		return "", malformed(f.Name, err)
	}
	if len(data) > maxLinkTarget {
		return "", fmt.Errorf("%w: %s: link target too long", ErrMalformedArchive, f.Name)
	}
	return string(data), nil
}
