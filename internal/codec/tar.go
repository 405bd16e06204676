// internal/codec/tar.go
package codec

import (
	"archive/tar"
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/creativeyann17/magic-pack/internal/safepath"
	"github.com/creativeyann17/magic-pack/pkg/magicpack"
)

// packTar writes src as a tar archive through the given stream
func packTar(src, dst string, s stream, env *Env) (err error) {
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
	enc, err := s.wrap(counter, env.level())
	if err != nil {
		return fmt.Errorf("create %s encoder: %w", s.name, err)
	}
	tw := tar.NewWriter(enc)

	files := countRegular(entries)
	env.emit(Event{Type: EventStart, Total: files})

	for _, entry := range entries {
		if err := writeTarEntry(tw, entry, env); err != nil {
			env.emit(Event{Type: EventError, Path: entry.Name})
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finish tar archive: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish %s stream: %w", s.name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	env.Stats.OutputBytes += uint64(counter.Count)
	env.emit(Event{Type: EventComplete, Current: files, Total: files})
	return nil
}

func writeTarEntry(tw *tar.Writer, entry sourceEntry, env *Env) error {
	hdr, err := tar.FileInfoHeader(entry.Info, entry.Link)
	if err != nil {
		return fmt.Errorf("%s: header: %w", entry.Name, err)
	}
	hdr.Name = entry.Name
	if entry.isDir() {
		hdr.Name += "/"
	}
	// Owner names are host-specific
	hdr.Uname, hdr.Gname = "", ""

	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("%s: write header: %w", entry.Name, err)
	}

	switch {
	case entry.isDir():
		env.Stats.Dirs++
		env.logf("  %s/", entry.Name)
		return nil
	case entry.isSymlink():
		env.Stats.Links++
		env.logf("  %s -> %s", entry.Name, entry.Link)
		return nil
	}

	return copyIntoArchive(tw, entry, env)
}

// copyIntoArchive streams a regular source file into an archive writer
func copyIntoArchive(w io.Writer, entry sourceEntry, env *Env) error {
	size := entry.Info.Size()
	env.emit(Event{Type: EventFileStart, Path: entry.Name, Total: size})

	f, err := os.Open(entry.AbsPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", entry.AbsPath, err)
	}
	defer f.Close()

	var written int64
	proxy := &magicpack.ProgressWriter{
		Writer: w,
		OnWrite: func(n int) {
			written += int64(n)
			env.emit(Event{Type: EventFileProgress, Path: entry.Name, Current: written, Total: size})
		},
	}
	if _, err := io.Copy(proxy, f); err != nil {
		return fmt.Errorf("%s: copy: %w", entry.Name, err)
	}

	env.Stats.Files++
	env.Stats.InputBytes += uint64(written)
	env.emit(Event{Type: EventFileComplete, Path: entry.Name, Current: written, Total: written})
	env.logf("  %s (%s)", entry.Name, magicpack.FormatSize(uint64(written)))
	return nil
}

// unpackTar extracts a tar archive read through the given stream into dst.
// Every entry name is validated before anything is written for it.
func unpackTar(src, dst string, s stream, env *Env) error {
	total := int64(0)
	if env.Progress != nil {
		// A counting pass is only worth it when someone draws a bar
		if n, err := countTarFiles(src, s); err == nil {
			total = int64(n)
		}
	}

	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()
	archiveSize(f, env)

	dec, err := s.unwrap(bufio.NewReader(f))
	if err != nil {
		return malformed(fmt.Sprintf("open %s stream", s.name), err)
	}
	defer dec.Close()

	if !env.DryRun {
		if err := os.MkdirAll(dst, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	env.emit(Event{Type: EventStart, Total: total})

	tr := tar.NewReader(dec)
	processed := int64(0)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, tar.ErrInsecurePath) {
			env.emit(Event{Type: EventError, Path: hdr.Name})
			return fmt.Errorf("%w: %q", safepath.ErrPathTraversal, hdr.Name)
		}
		if err != nil {
			return malformed("read tar entry", err)
		}
		if hdr.Typeflag == tar.TypeXGlobalHeader {
			continue
		}

		if err := extractTarEntry(tr, hdr, dst, env); err != nil {
			env.emit(Event{Type: EventError, Path: hdr.Name})
			return err
		}
		if hdr.Typeflag == tar.TypeReg {
			processed++
		}
	}

	env.emit(Event{Type: EventComplete, Current: processed, Total: total})
	return nil
}

func extractTarEntry(tr *tar.Reader, hdr *tar.Header, root string, env *Env) error {
	target, err := safepath.Join(root, hdr.Name)
	if err != nil {
		return err
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		return extractDir(target, hdr.Name, env)
	case tar.TypeReg:
		return extractFile(target, hdr.Name, tr, os.FileMode(hdr.Mode), hdr.Size, env)
	case tar.TypeSymlink:
		if err := safepath.CheckLink(hdr.Name, hdr.Linkname); err != nil {
			return err
		}
		return extractSymlink(target, hdr.Name, hdr.Linkname, env)
	case tar.TypeLink:
		existing, err := safepath.Join(root, hdr.Linkname)
		if err != nil {
			return err
		}
		return extractHardlink(target, hdr.Name, existing, env)
	}

	env.Stats.Skipped++
	env.logf("  skipped %s (type %q)", hdr.Name, hdr.Typeflag)
	return nil
}

// countTarFiles reads headers only, so a progress bar knows its total
func countTarFiles(src string, s stream) (int, error) {
	f, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec, err := s.unwrap(bufio.NewReader(f))
	if err != nil {
		return 0, err
	}
	defer dec.Close()

	tr := tar.NewReader(dec)
	count := 0
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		if hdr.Typeflag == tar.TypeReg {
			count++
		}
	}
}
