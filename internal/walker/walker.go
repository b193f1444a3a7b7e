package walker

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Walker enumerates candidate source files under a root.
type Walker struct {
	Root        string
	Extensions  []string // matched case-insensitively, e.g. ".ts"
	ExcludeDirs []string // directory names skipped wherever they appear
}

func New(root string, extensions, excludeDirs []string) *Walker {
	return &Walker{Root: root, Extensions: extensions, ExcludeDirs: excludeDirs}
}

// Files returns the paths of all matching files. Unreadable subdirectories are
// logged and skipped; only a failure on the root itself is returned as an error.
func (w *Walker) Files() ([]string, error) {
	if _, err := os.Stat(w.Root); err != nil {
		return nil, err
	}
	var out []string
	_ = filepath.WalkDir(w.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("walk error, skipping", "path", p, "err", err)
			return nil
		}
		if d.IsDir() {
			if p != w.Root && w.excluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if w.matches(d.Name()) {
			out = append(out, p)
		}
		return nil
	})
	return out, nil
}

func (w *Walker) excluded(name string) bool {
	for _, d := range w.ExcludeDirs {
		if name == d {
			return true
		}
	}
	return false
}

func (w *Walker) matches(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range w.Extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
