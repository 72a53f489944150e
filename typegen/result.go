package typegen

import (
	"sort"

	"github.com/teranos/movets/errors"
)

// File is one generated output unit.
type File struct {
	// Path is relative to the output directory and uses forward slashes
	// e.g., "Coin/index.ts"
	Path    string
	Content string
}

// Result holds every generated file of a package in emission order.
// This is language-agnostic - each Generator decides paths and content.
type Result struct {
	// PackageName is the IDL package that was processed
	PackageName string

	files []File
	index map[string]int
}

// NewResult creates an empty result for a package.
func NewResult(packageName string) *Result {
	return &Result{PackageName: packageName, index: make(map[string]int)}
}

// Add appends a file. Paths are unique within a result.
func (r *Result) Add(path, content string) error {
	if _, exists := r.index[path]; exists {
		return errors.AssertionFailedf("duplicate output path %s", path)
	}
	r.index[path] = len(r.files)
	r.files = append(r.files, File{Path: path, Content: content})
	return nil
}

// Files returns the files in emission order.
func (r *Result) Files() []File {
	return r.files
}

// Get returns the content generated for path.
func (r *Result) Get(path string) (string, bool) {
	i, ok := r.index[path]
	if !ok {
		return "", false
	}
	return r.files[i].Content, true
}

// Paths returns the generated paths sorted lexically.
func (r *Result) Paths() []string {
	paths := make([]string, 0, len(r.files))
	for _, f := range r.files {
		paths = append(paths, f.Path)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of generated files.
func (r *Result) Len() int {
	return len(r.files)
}
