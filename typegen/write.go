package typegen

import (
	"os"
	"path/filepath"

	"github.com/teranos/movets/errors"
)

// WriteResult writes every file of result under outDir, creating
// directories as needed. It returns the written paths in emission order.
// Files not part of result are left alone.
func WriteResult(result *Result, outDir string) ([]string, error) {
	written := make([]string, 0, result.Len())
	for _, f := range result.Files() {
		path := filepath.Join(outDir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return written, errors.WrapIO(err, filepath.Dir(path))
		}
		if err := os.WriteFile(path, []byte(f.Content), 0644); err != nil {
			return written, errors.WrapIO(err, path)
		}
		written = append(written, path)
	}
	return written, nil
}
