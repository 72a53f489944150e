package typegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/movets/errors"
)

func TestWriteResult(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "build", "ts")
	result := newTestResult(t, map[string]string{
		"index.ts":      "export {};\n",
		"Coin/index.ts": "export const NAME = \"Coin\" as const;\n",
	})

	written, err := WriteResult(result, outDir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(outDir, "Coin", "index.ts"),
		filepath.Join(outDir, "index.ts"),
	}, written)

	content, err := os.ReadFile(filepath.Join(outDir, "Coin", "index.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export const NAME = \"Coin\" as const;\n", string(content))

	check, err := CompareResult(result, outDir, CheckOptions{})
	require.NoError(t, err)
	assert.True(t, check.UpToDate, "written output checks clean")
}

func TestWriteResultIOFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	result := newTestResult(t, map[string]string{"Coin/index.ts": "export {};\n"})
	_, err := WriteResult(result, blocker)
	require.Error(t, err)
	assert.True(t, errors.IsIOFailure(err))
	assert.Contains(t, err.Error(), blocker)
}

func TestResult(t *testing.T) {
	result := NewResult("CoinPackage")
	require.NoError(t, result.Add("b.ts", "b"))
	require.NoError(t, result.Add("a.ts", "a"))

	err := result.Add("a.ts", "again")
	require.Error(t, err)
	assert.True(t, errors.IsAssertionFailure(err))

	assert.Equal(t, 2, result.Len())
	assert.Equal(t, []string{"a.ts", "b.ts"}, result.Paths())
	assert.Equal(t, "b.ts", result.Files()[0].Path)

	content, ok := result.Get("a.ts")
	assert.True(t, ok)
	assert.Equal(t, "a", content)
	_, ok = result.Get("missing.ts")
	assert.False(t, ok)
}
