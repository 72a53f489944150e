package idl

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teranos/movets/errors"
)

// Load reads a package IDL from a .json, .yaml or .yml file.
func Load(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithHint(
			errors.WrapIO(err, path),
			"build the package IDL first, or point --idl at an existing file",
		)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", path)
		}
	}

	pkg, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return pkg, nil
}

// Decode parses a JSON package IDL.
func Decode(data []byte) (*Package, error) {
	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		if errors.Is(err, errors.ErrMalformedIDL) {
			return nil, err
		}
		return nil, errors.Wrapf(errors.ErrMalformedIDL, "%v", err)
	}
	if pkg.Modules == nil {
		pkg.Modules, _ = NewModuleMap()
	}
	if pkg.Dependencies == nil {
		pkg.Dependencies, _ = NewModuleMap()
	}
	for _, mod := range pkg.Modules.Values() {
		if _, dup := pkg.Dependencies.Get(mod.ID.String()); dup {
			return nil, errors.Wrapf(errors.ErrMalformedIDL, "module %s is both a package module and a dependency", mod.ID)
		}
	}
	return &pkg, nil
}

// yamlToJSON converts a YAML document to JSON, keeping mapping key order.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrMalformedIDL, "yaml: %v", err)
	}
	var buf bytes.Buffer
	if err := writeYAMLNode(&buf, &doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeYAMLNode(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeYAMLNode(buf, n.Content[0])

	case yaml.AliasNode:
		return writeYAMLNode(buf, n.Alias)

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Quote(n.Content[i].Value))
			buf.WriteByte(':')
			if err := writeYAMLNode(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, child := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeYAMLNode(buf, child); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			buf.WriteString("null")
		case "!!bool", "!!int", "!!float":
			var v interface{}
			if err := n.Decode(&v); err != nil {
				return errors.Wrapf(errors.ErrMalformedIDL, "yaml line %d: %v", n.Line, err)
			}
			out, err := json.Marshal(v)
			if err != nil {
				return errors.Wrapf(errors.ErrMalformedIDL, "yaml line %d: %v", n.Line, err)
			}
			buf.Write(out)
		default:
			out, _ := json.Marshal(n.Value)
			buf.Write(out)
		}
		return nil
	}
	return errors.Wrapf(errors.ErrMalformedIDL, "yaml line %d: unsupported node", n.Line)
}
