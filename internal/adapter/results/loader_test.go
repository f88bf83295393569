package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadResultsMissingFileIsError(t *testing.T) {
	loader := NewLoader()
	_, err := loader.LoadResults(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadResultsReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test-results.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"success": true, "numTotalTests": 1}`), 0o600))

	loader := NewLoader()
	run, err := loader.LoadResults(path)
	require.NoError(t, err)
	assert.True(t, run.Success)
	assert.Equal(t, 1, run.TotalTests)
}

func TestLoadCoverageMissingFileIsSkip(t *testing.T) {
	loader := NewLoader()
	cov, err := loader.LoadCoverage(filepath.Join(t.TempDir(), "absent.json"))
	assert.NoError(t, err)
	assert.Nil(t, cov)
}

func TestLoadCoverageMalformedFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coverage-summary.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))

	loader := NewLoader()
	_, err := loader.LoadCoverage(path)
	assert.Error(t, err)
}
