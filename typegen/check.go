package typegen

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/teranos/movets/errors"
)

// CheckOptions control CompareResult.
type CheckOptions struct {
	// Ignore holds gitignore-style patterns, relative to the output
	// directory, for files the check skips
	Ignore []string

	// GeneratorVersion is the running generator's version, compared with
	// the metadata lines found on disk
	GeneratorVersion string
}

// CheckResult holds the result of comparing generated output with disk.
type CheckResult struct {
	UpToDate bool

	// Changed files exist on disk with different content
	Changed []string
	// Missing files were generated but are not on disk
	Missing []string
	// Extra files are on disk but no longer generated
	Extra []string

	// RecordedVersion is the generator version found in the existing
	// output's metadata lines, if any
	RecordedVersion string

	currentVersion string
}

// CompareResult compares result with the files under outDir. Metadata
// lines (see MetadataPrefix) are ignored, so regenerating with a newer
// generator does not mark the output stale.
func CompareResult(result *Result, outDir string, opts CheckOptions) (*CheckResult, error) {
	gi := ignore.CompileIgnoreLines(opts.Ignore...)
	check := &CheckResult{currentVersion: opts.GeneratorVersion}

	for _, f := range result.Files() {
		if gi.MatchesPath(f.Path) {
			continue
		}

		existing, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(f.Path)))
		if os.IsNotExist(err) {
			check.Missing = append(check.Missing, f.Path)
			continue
		}
		if err != nil {
			return nil, errors.WrapIO(err, filepath.Join(outDir, f.Path))
		}

		if check.RecordedVersion == "" {
			check.RecordedVersion = metadataVersion(existing)
		}
		if filterMetadataLines(existing) != filterMetadataLines([]byte(f.Content)) {
			check.Changed = append(check.Changed, f.Path)
		}
	}

	extra, err := extraFiles(result, outDir, gi)
	if err != nil {
		return nil, err
	}
	check.Extra = extra

	sort.Strings(check.Changed)
	sort.Strings(check.Missing)
	check.UpToDate = len(check.Changed) == 0 && len(check.Missing) == 0 && len(check.Extra) == 0
	return check, nil
}

// Err returns nil when the output is up to date, otherwise an
// ErrStaleOutput error with a hint on how to fix it.
func (c *CheckResult) Err() error {
	if c.UpToDate {
		return nil
	}
	err := errors.Wrapf(errors.ErrStaleOutput, "%d changed, %d missing, %d extra",
		len(c.Changed), len(c.Missing), len(c.Extra))
	err = errors.WithHint(err, "run `movets` to regenerate the output directory")
	if c.MajorVersionChanged() {
		err = errors.WithHintf(err, "the output was generated by movets %s, this is movets %s",
			c.RecordedVersion, c.currentVersion)
	}
	return err
}

// MajorVersionChanged reports whether the existing output was produced by
// a generator with a different major version than the running one.
func (c *CheckResult) MajorVersionChanged() bool {
	recorded, err := semver.NewVersion(c.RecordedVersion)
	if err != nil {
		return false
	}
	current, err := semver.NewVersion(c.currentVersion)
	if err != nil {
		return false
	}
	return recorded.Major() != current.Major()
}

// Summary renders the differences one file per line.
func (c *CheckResult) Summary() string {
	var sb strings.Builder
	for _, group := range []struct {
		label string
		paths []string
	}{
		{"changed", c.Changed},
		{"missing", c.Missing},
		{"extra", c.Extra},
	} {
		for _, p := range group.paths {
			fmt.Fprintf(&sb, "%-8s %s\n", group.label, p)
		}
	}
	return sb.String()
}

// extraFiles lists files under outDir that result does not contain.
func extraFiles(result *Result, outDir string, gi *ignore.GitIgnore) ([]string, error) {
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		return nil, nil
	}

	var extra []string
	err := filepath.WalkDir(outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(outDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if gi.MatchesPath(rel) {
			return nil
		}
		if _, ok := result.Get(rel); !ok {
			extra = append(extra, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapIO(err, outDir)
	}
	sort.Strings(extra)
	return extra, nil
}

// metadataVersion extracts the version from a "// Generator: movets X"
// line, or "" when content has none.
func metadataVersion(content []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, MetadataPrefix) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, MetadataPrefix))
		if len(fields) == 0 {
			return ""
		}
		return fields[len(fields)-1]
	}
	return ""
}

// filterMetadataLines removes metadata comment lines from content.
// Returns empty string if scanner encounters an error.
func filterMetadataLines(content []byte) string {
	var result strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(content))

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), MetadataPrefix) {
			continue
		}
		result.WriteString(line)
		result.WriteString("\n")
	}

	// Lines too long: compare as different rather than silently equal
	if err := scanner.Err(); err != nil {
		return ""
	}
	return result.String()
}
