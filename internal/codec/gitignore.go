// internal/codec/gitignore.go
package codec

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// gitignoreMatcher holds every .gitignore compiled under a pack root,
// keyed by the slash-separated directory holding it ("" is the root)
type gitignoreMatcher struct {
	rules map[string]*ignore.GitIgnore
}

// newGitignoreMatcher pre-scans root. It returns nil when the tree has no
// .gitignore files, and a nil matcher ignores nothing.
func newGitignoreMatcher(root string) (*gitignoreMatcher, error) {
	gm := &gitignoreMatcher{rules: make(map[string]*ignore.GitIgnore)}

	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || info.Name() != ".gitignore" {
			return nil
		}
		rel, err := filepath.Rel(root, filepath.Dir(p))
		if err != nil {
			return err
		}
		compiled, err := ignore.CompileIgnoreFile(p)
		if err != nil {
			return err
		}
		gm.rules[dirKey(rel)] = compiled
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(gm.rules) == 0 {
		return nil, nil
	}
	return gm, nil
}

// ShouldIgnore reports whether the file at rel (relative to root) is excluded
// by any .gitignore in its ancestor directories
func (gm *gitignoreMatcher) ShouldIgnore(rel string) bool {
	return gm.match(filepath.ToSlash(rel), "")
}

// ShouldIgnoreDir reports whether a whole directory subtree is excluded
func (gm *gitignoreMatcher) ShouldIgnoreDir(rel string) bool {
	return gm.match(filepath.ToSlash(rel), "/")
}

func (gm *gitignoreMatcher) match(rel, suffix string) bool {
	if gm == nil {
		return false
	}
	for _, dir := range ancestors(rel) {
		rules, ok := gm.rules[dir]
		if !ok {
			continue
		}
		candidate := rel
		if dir != "" {
			candidate = strings.TrimPrefix(rel, dir+"/")
		}
		if rules.MatchesPath(candidate + suffix) {
			return true
		}
	}
	return false
}

// ancestors lists rel's parent directories from the root down.
// For "src/lib/file.log" it returns ["", "src", "src/lib"].
func ancestors(rel string) []string {
	dirs := []string{""}
	parent := path.Dir(rel)
	if parent == "." || parent == "/" {
		return dirs
	}
	current := ""
	for _, part := range strings.Split(parent, "/") {
		current = path.Join(current, part)
		dirs = append(dirs, current)
	}
	return dirs
}

func dirKey(rel string) string {
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return ""
	}
	return rel
}
