package typegen

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/movets/errors"
)

func newTestResult(t *testing.T, files map[string]string) *Result {
	t.Helper()
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	result := NewResult("CoinPackage")
	for _, p := range paths {
		require.NoError(t, result.Add(p, files[p]))
	}
	return result
}

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for p, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestCompareResultUpToDate(t *testing.T) {
	outDir := t.TempDir()
	files := map[string]string{
		"index.ts":      "export * as coin_package_Coin from \"./Coin/index.js\";\n",
		"Coin/index.ts": "export const NAME = \"Coin\" as const;\n",
	}
	writeTree(t, outDir, files)

	check, err := CompareResult(newTestResult(t, files), outDir, CheckOptions{})
	require.NoError(t, err)
	assert.True(t, check.UpToDate)
	assert.NoError(t, check.Err())
	assert.Empty(t, check.Summary())
}

func TestCompareResultMetadataFiltering(t *testing.T) {
	outDir := t.TempDir()
	writeTree(t, outDir, map[string]string{
		"index.ts": "// Code generated by movets. DO NOT EDIT.\n// Generator: movets 0.3.0\nexport {};\n",
	})

	result := newTestResult(t, map[string]string{
		"index.ts": "// Code generated by movets. DO NOT EDIT.\n// Generator: movets 0.4.0\nexport {};\n",
	})

	check, err := CompareResult(result, outDir, CheckOptions{GeneratorVersion: "0.4.0"})
	require.NoError(t, err)
	assert.True(t, check.UpToDate, "metadata lines are not compared")
	assert.Equal(t, "0.3.0", check.RecordedVersion)
	assert.False(t, check.MajorVersionChanged())
}

func TestCompareResultDifferences(t *testing.T) {
	outDir := t.TempDir()
	writeTree(t, outDir, map[string]string{
		"index.ts":         "// Generator: movets 1.0.0\nexport const a = 1;\n",
		"Old/index.ts":     "export {};\n",
		"package.json":     "{}\n",
		"Coin/notes/x.txt": "keep me\n",
	})

	result := newTestResult(t, map[string]string{
		"index.ts":      "// Generator: movets 2.0.0\nexport const a = 2;\n",
		"Coin/index.ts": "export {};\n",
	})

	check, err := CompareResult(result, outDir, CheckOptions{
		Ignore:           []string{"package.json", "notes/"},
		GeneratorVersion: "2.0.0",
	})
	require.NoError(t, err)

	assert.False(t, check.UpToDate)
	assert.Equal(t, []string{"index.ts"}, check.Changed)
	assert.Equal(t, []string{"Coin/index.ts"}, check.Missing)
	assert.Equal(t, []string{"Old/index.ts"}, check.Extra)
	assert.Equal(t, "changed  index.ts\nmissing  Coin/index.ts\nextra    Old/index.ts\n", check.Summary())

	err = check.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrStaleOutput))
	assert.Contains(t, err.Error(), "1 changed, 1 missing, 1 extra")
	assert.True(t, check.MajorVersionChanged())
	assert.Contains(t, errors.FlattenHints(err), "generated by movets 1.0.0")
}

func TestCompareResultMissingOutDir(t *testing.T) {
	result := newTestResult(t, map[string]string{"index.ts": "export {};\n"})

	check, err := CompareResult(result, filepath.Join(t.TempDir(), "absent"), CheckOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"index.ts"}, check.Missing)
	assert.Empty(t, check.Extra)
}

func TestFilterMetadataLines(t *testing.T) {
	a := filterMetadataLines([]byte("// Generator: movets 1.0.0\nexport {};\n"))
	b := filterMetadataLines([]byte("  // Generator: movets 9.9.9\nexport {};\n"))
	assert.Equal(t, a, b)
	assert.Equal(t, "export {};\n", a)
}

func TestMetadataVersion(t *testing.T) {
	assert.Equal(t, "0.4.0", metadataVersion([]byte("/* eslint-disable */\n// Generator: movets 0.4.0\n")))
	assert.Equal(t, "", metadataVersion([]byte("export {};\n")))
}
