// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// FindFiles recursively searches root for files ending with one of the given
// extensions and returns their paths sorted lexically. Hidden directories
// (".git", ".cache", ...) are skipped. A root that is itself a matching file
// is returned as is.
func FindFiles(root string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		panic("fsutil: at least one extension is required")
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		for _, ext := range extensions {
			if strings.HasSuffix(d.Name(), ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
