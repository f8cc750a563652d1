package cli

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/weftml/weft/compiler"
)

// findTemplates collects every .weft file under the roots, skipping
// excluded directory names.
func findTemplates(roots, exclude []string) ([]string, error) {
	var files []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && excludedDir(d.Name(), exclude) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, compiler.Extension) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func excludedDir(name string, exclude []string) bool {
	for _, e := range exclude {
		if name == e {
			return true
		}
	}
	return false
}
