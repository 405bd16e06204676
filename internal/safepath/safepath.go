// internal/safepath/safepath.go
package safepath

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathTraversal is returned when an archive entry would land outside the extraction root
var ErrPathTraversal = errors.New("path traversal rejected")

// IsSafe reports whether rel can be joined onto an extraction root without
// escaping it. Separators are '/' and '\' on every platform, and drive or
// UNC prefixes are rejected even on hosts that have no such notion.
func IsSafe(rel string) bool {
	if strings.ContainsRune(rel, 0) {
		return false
	}
	if rel == "" {
		return true
	}
	if rel[0] == '/' || rel[0] == '\\' {
		return false
	}
	if hasDrivePrefix(rel) || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return false
	}
	for _, part := range strings.FieldsFunc(rel, isSeparator) {
		if part == ".." {
			return false
		}
	}
	return true
}

// Join resolves rel against root, or fails with ErrPathTraversal
func Join(root, rel string) (string, error) {
	if !IsSafe(rel) {
		return "", fmt.Errorf("%w: %q", ErrPathTraversal, rel)
	}
	return filepath.Join(root, filepath.FromSlash(rel)), nil
}

// CheckLink validates a link entry: both its own name and its target must be safe
func CheckLink(name, target string) error {
	if !IsSafe(name) {
		return fmt.Errorf("%w: %q", ErrPathTraversal, name)
	}
	if target == "" || !IsSafe(target) {
		return fmt.Errorf("%w: link %q -> %q", ErrPathTraversal, name, target)
	}
	return nil
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// hasDrivePrefix matches "C:" style prefixes
func hasDrivePrefix(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
