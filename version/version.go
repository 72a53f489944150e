// Package version describes the running movets build.
//
// Release builds set CommitHash, BuildTime and Version with -ldflags.
// Binaries built with `go install module@version` carry no ldflags; for
// those the module version and VCS stamp recorded by the toolchain are
// used instead.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/Masterminds/semver/v3"
)

const (
	devVersion   = "dev"
	unknownBuild = "unknown"
)

// Set with -ldflags "-X github.com/teranos/movets/version.Version=v0.4.0".
var (
	CommitHash = devVersion
	BuildTime  = unknownBuild
	Version    = devVersion
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info is the build a binary was produced from.
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the running build. Values set by ldflags win over build info.
func Get() Info {
	info := Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == devVersion && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.CommitHash == devVersion:
			info.CommitHash = s.Value
		case s.Key == "vcs.time" && info.BuildTime == unknownBuild:
			info.BuildTime = s.Value
		}
	}
	return info
}

func (i Info) String() string {
	return fmt.Sprintf("movets %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
}

// Short is the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// Semver parses Version. Development builds report false.
func (i Info) Semver() (*semver.Version, bool) {
	v, err := semver.NewVersion(i.Version)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Generator is the version stamped into the metadata line of generated
// units, or "" for development builds, which stamp none.
func (i Info) Generator() string {
	if v, ok := i.Semver(); ok {
		return v.String()
	}
	return ""
}
