package engine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover expands paths into the list of source files to check.
// Directories are walked recursively and keep files with a known extension;
// files named explicitly are kept whatever their extension. Without paths
// the engine's source directory is used. The result is sorted and free of
// duplicates.
func (e *Engine) Discover(paths ...string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{e.sourceDir}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if path != root && isHidden(path) {
					return filepath.SkipDir
				}
				return nil
			}
			if e.HasSourceExt(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	slices.Sort(files)
	e.logger.Debug("discovered source files", "count", len(files))
	return files, nil
}

// HasSourceExt reports whether path carries one of the engine's extensions.
func (e *Engine) HasSourceExt(path string) bool {
	return slices.Contains(e.extensions, strings.ToLower(filepath.Ext(path)))
}

// isHidden reports whether the last element of path starts with a dot.
func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
