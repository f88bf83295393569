package results

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bkyoung/test-reporter/internal/domain"
)

// Loader reads runner artifacts from disk. It implements the orchestrator's
// ResultsLoader port.
type Loader struct{}

// NewLoader constructs a file-backed loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadResults reads and parses the runner's JSON results file. A missing
// results file is an error: without it there is nothing to report.
func (l *Loader) LoadResults(path string) (domain.TestRunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.TestRunResult{}, fmt.Errorf("read results file: %w", err)
	}
	return ParseResults(data)
}

// LoadCoverage reads and parses the coverage summary file. A missing file
// returns (nil, nil): coverage is optional and its absence means "skip the
// coverage comment", not a failed run.
func (l *Loader) LoadCoverage(path string) (*domain.CoverageMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read coverage file: %w", err)
	}
	return ParseCoverageSummary(data)
}
