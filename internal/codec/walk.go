// internal/codec/walk.go
package codec

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/creativeyann17/magic-pack/internal/safepath"
)

// sourceEntry is one file, directory or symlink found under a pack source
type sourceEntry struct {
	AbsPath string
	Name    string // slash-separated archive name, rooted at the source's base name
	Info    os.FileInfo
	Link    string // symlink target, when Info is a symlink
}

func (e sourceEntry) isDir() bool     { return e.Info.IsDir() }
func (e sourceEntry) isRegular() bool { return e.Info.Mode().IsRegular() }
func (e sourceEntry) isSymlink() bool { return e.Info.Mode()&os.ModeSymlink != 0 }

// collectEntries walks src and names every entry relative to src's parent,
// so the archive reproduces src's own top-level name. A symlinked src is
// followed and still named after the link. A regular file source yields a
// single entry. The file at exclude (the archive being written) is never
// collected.
func collectEntries(src, exclude string, useGitignore bool) ([]sourceEntry, error) {
	root, err := filepath.Abs(src)
	if err != nil {
		return nil, fmt.Errorf("resolve source: %w", err)
	}
	base := filepath.Base(root)
	if base == string(filepath.Separator) || base == "." {
		base = ""
	}

	rootInfo, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}
	if !rootInfo.IsDir() {
		if !rootInfo.Mode().IsRegular() {
			return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, src)
		}
		return []sourceEntry{{AbsPath: root, Name: base, Info: rootInfo}}, nil
	}

	// filepath.Walk does not descend through a symlinked root
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("resolve source: %w", err)
	}
	excludeAbs := resolveExclude(exclude)

	var matcher *gitignoreMatcher
	if useGitignore {
		matcher, err = newGitignoreMatcher(root)
		if err != nil {
			return nil, fmt.Errorf("scan .gitignore files: %w", err)
		}
	}

	var entries []sourceEntry
	err = filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", p, err)
		}
		if p == excludeAbs {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", p, err)
		}

		if rel != "." && matcher != nil {
			if info.IsDir() && matcher.ShouldIgnoreDir(rel) {
				return filepath.SkipDir
			}
			if !info.IsDir() && matcher.ShouldIgnore(rel) {
				return nil
			}
		}

		name := base
		if rel != "." {
			name = path.Join(base, filepath.ToSlash(rel))
		}
		if name == "" {
			// The filesystem root itself has no name to store
			return nil
		}

		entry, ok, err := newSourceEntry(p, name, info)
		if err != nil {
			return err
		}
		if ok {
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("directory walk failed: %w", err)
	}

	return entries, nil
}

// resolveExclude puts exclude on the same resolved path the walk reports
func resolveExclude(exclude string) string {
	if exclude == "" {
		return ""
	}
	abs, err := filepath.Abs(exclude)
	if err != nil {
		return ""
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return abs
	}
	return filepath.Join(dir, filepath.Base(abs))
}

// newSourceEntry keeps directories, regular files and symlinks; devices,
// sockets and pipes are reported as not ok. A symlink whose target would be
// rejected on extraction is stored as the regular file it points to, and
// fails with ErrUnsafeLink when it points at anything else.
func newSourceEntry(absPath, name string, info os.FileInfo) (sourceEntry, bool, error) {
	entry := sourceEntry{AbsPath: absPath, Name: name, Info: info}
	switch {
	case info.IsDir(), info.Mode().IsRegular():
		return entry, true, nil
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(absPath)
		if err != nil {
			return entry, false, fmt.Errorf("read link %s: %w", absPath, err)
		}
		link := filepath.ToSlash(target)
		if safepath.CheckLink(name, link) == nil {
			entry.Link = link
			return entry, true, nil
		}

		resolved, err := os.Stat(absPath)
		if err != nil || !resolved.Mode().IsRegular() {
			return entry, false, fmt.Errorf("%w: %s -> %s", ErrUnsafeLink, name, target)
		}
		entry.Info = resolved
		return entry, true, nil
	}
	return entry, false, nil
}

// countRegular is the number of entries that carry file content
func countRegular(entries []sourceEntry) int64 {
	n := int64(0)
	for _, e := range entries {
		if e.isRegular() {
			n++
		}
	}
	return n
}
