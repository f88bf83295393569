package domain

// Metric is a single coverage percentage. Measured is false when the
// instrumentation did not record the metric (e.g. a file with no branches);
// renderers show such metrics as N/A instead of coercing them to zero.
type Metric struct {
	Pct      float64
	Measured bool
}

// MeasuredMetric builds a metric with a recorded percentage.
func MeasuredMetric(pct float64) Metric {
	return Metric{Pct: pct, Measured: true}
}

// CoverageSummary holds the four istanbul-style coverage metrics.
type CoverageSummary struct {
	Statements Metric
	Branches   Metric
	Functions  Metric
	Lines      Metric
}

// FileCoverage is the coverage summary for one instrumented file.
type FileCoverage struct {
	// Path is the absolute file path as recorded by the coverage tool.
	Path string

	Summary CoverageSummary
}

// CoverageMap aggregates per-file coverage in the order the coverage tool
// emitted it. Downstream grouping relies on that order being preserved.
type CoverageMap struct {
	Total CoverageSummary
	Files []FileCoverage
}

// Empty reports whether there is nothing to render. An absent or empty map is
// the "skip coverage reporting" signal, never an error.
func (m *CoverageMap) Empty() bool {
	return m == nil || len(m.Files) == 0
}

// File looks up the coverage summary for an absolute path as recorded by the
// coverage tool.
func (m *CoverageMap) File(path string) (CoverageSummary, bool) {
	if m == nil {
		return CoverageSummary{}, false
	}
	for _, file := range m.Files {
		if file.Path == path {
			return file.Summary, true
		}
	}
	return CoverageSummary{}, false
}
