package idl

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/movets/errors"
)

// ManifestFile is the Move package manifest name.
const ManifestFile = "Move.toml"

// Manifest is the subset of Move.toml read by movets.
type Manifest struct {
	Package   ManifestPackage   `toml:"package"`
	Addresses map[string]string `toml:"addresses"`
}

// ManifestPackage is the [package] table.
type ManifestPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// LoadManifest reads <root>/Move.toml. A missing manifest returns (nil, nil).
func LoadManifest(root string) (*Manifest, error) {
	path := filepath.Join(root, ManifestFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO(err, path)
	}

	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, errors.Wrapf(errors.ErrMalformedIDL, "%s: %v", path, err)
	}
	return &m, nil
}

// Version parses the package version. An absent version returns (nil, nil).
func (m *Manifest) Version() (*semver.Version, error) {
	if m == nil || m.Package.Version == "" {
		return nil, nil
	}
	v, err := semver.NewVersion(m.Package.Version)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMalformedIDL, "%s version %q: %v", ManifestFile, m.Package.Version, err)
	}
	return v, nil
}
