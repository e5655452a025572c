package bundle

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverEntries walks the source tree and returns the absolute paths
// of all entry stylesheets, sorted lexically. Partials and hidden
// directories are skipped.
func DiscoverEntries(sourceDir string) ([]string, error) {
	var entries []string
	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != sourceDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != Ext || IsPartial(path) {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		entries = append(entries, abs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)
	return entries, nil
}
