package typescript

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/teranos/movets/errors"
	"github.com/teranos/movets/idl"
	"github.com/teranos/movets/typegen"
	"github.com/teranos/movets/typegen/util"
)

const (
	unitErrmap  = "errmap"
	idlJSONFile = "idl.json"
)

// ModuleDirs assigns each module its output directory, named after the
// module. Repeated names get a numeric suffix in traversal order:
// Coin, Coin_1, Coin_2.
func ModuleDirs(modules []*idl.Module) []string {
	seen := make(map[string]int, len(modules))
	taken := make(map[string]bool, len(modules))
	dirs := make([]string, len(modules))
	for i, m := range modules {
		name := m.ID.Name
		dir := name
		for taken[dir] {
			seen[name]++
			dir = name + "_" + strconv.Itoa(seen[name])
		}
		taken[dir] = true
		dirs[i] = dir
	}
	return dirs
}

// PackagePrefix is the namespace prefix of re-exports: CoinPackage -> coin_package.
func PackagePrefix(pkg *idl.Package) string {
	return util.ToSnakeCase(pkg.Name)
}

// ErrmapEntry is one error in the package error map.
type ErrmapEntry struct {
	Code uint64 `json:"code"`
	Name string `json:"name"`
	Doc  string `json:"doc,omitempty"`
}

// BuildErrmap merges the error registries of modules, keyed by
// <module id>::<error name>.
func BuildErrmap(modules []*idl.Module) *orderedmap.OrderedMap[string, ErrmapEntry] {
	errmap := orderedmap.New[string, ErrmapEntry]()
	for _, m := range modules {
		for _, er := range m.Errors {
			errmap.Set(m.ID.String()+"::"+er.Name, ErrmapEntry{Code: er.Code, Name: er.Name, Doc: er.Doc})
		}
	}
	return errmap
}

// packageIndex re-exports every module index under the package prefix.
func (e *Emitter) packageIndex(pkg *idl.Package, dirs []string, opts typegen.Options) string {
	prefix := PackagePrefix(pkg)

	doc := fmt.Sprintf("This module contains generated types and helper functions for the package `%s`", pkg.Name)
	if opts.PackageVersion != nil {
		doc += fmt.Sprintf(" (version %s)", opts.PackageVersion)
	}
	doc += "."

	var sb strings.Builder
	sb.WriteString(e.header())
	sb.WriteString("\n")
	sb.WriteString(moduleDoc(doc))
	sb.WriteString("\n")
	for _, dir := range dirs {
		fmt.Fprintf(&sb, "export * as %s_%s from %q;\n", prefix, dir, "./"+dir+"/"+unitIndex+"."+e.format.ImportExtension)
	}
	fmt.Fprintf(&sb, "export { errmap as %s_errmap } from %q;\n", prefix, e.format.ImportPath(unitErrmap))
	return sb.String()
}

func (e *Emitter) packageErrmap(modules []*idl.Module) (string, error) {
	literal, err := prettyJSON(BuildErrmap(modules))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(e.header())
	sb.WriteString("\n")
	sb.WriteString(moduleDoc("Module containing all errors in this package."))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "/** All errors in this package. */\nexport const errmap = %s as const;\n", literal)
	return sb.String(), nil
}

// GeneratePackage renders every module selected by opts, then the package
// index, error map and optionally idl.json.
func (e *Emitter) GeneratePackage(pkg *idl.Package, opts typegen.Options) (*typegen.Result, error) {
	if pkg.Name == "" {
		return nil, errors.WithHint(
			errors.Wrap(errors.ErrMalformedIDL, "package has no name"),
			"set [package] name in Move.toml",
		)
	}

	modules := pkg.ModulesToGenerate(opts.WithDependencies)
	dirs := ModuleDirs(modules)
	result := typegen.NewResult(pkg.Name)

	for i, m := range modules {
		files, err := e.GenerateModule(m, dirs[i])
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if err := result.Add(f.Path, f.Content); err != nil {
				return nil, err
			}
		}
	}

	if err := result.Add(e.format.FileName(unitIndex), e.packageIndex(pkg, dirs, opts)); err != nil {
		return nil, err
	}

	errmap, err := e.packageErrmap(modules)
	if err != nil {
		return nil, err
	}
	if err := result.Add(e.format.FileName(unitErrmap), errmap); err != nil {
		return nil, err
	}

	if opts.EmitIDLJSON {
		out, err := json.MarshalIndent(pkg, "", "  ")
		if err != nil {
			return nil, errors.Wrapf(errors.ErrSerializationFailure, "package %s: %v", pkg.Name, err)
		}
		if err := result.Add(idlJSONFile, string(out)+"\n"); err != nil {
			return nil, err
		}
	}

	return result, nil
}
