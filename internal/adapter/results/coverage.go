package results

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bkyoung/test-reporter/internal/domain"
)

// totalKey is istanbul's reserved key for the aggregate summary; every other
// top-level key is an absolute file path.
const totalKey = "total"

// pctValue decodes istanbul's pct field, which is a number for measured
// metrics but the literal string "Unknown" when nothing was instrumented.
type pctValue struct {
	value    float64
	measured bool
}

func (p *pctValue) UnmarshalJSON(data []byte) error {
	var pct float64
	if err := json.Unmarshal(data, &pct); err == nil {
		p.value = pct
		p.measured = true
		return nil
	}
	// Non-numeric pct ("Unknown") means the metric was not measured.
	p.measured = false
	return nil
}

type metricJSON struct {
	Total   int      `json:"total"`
	Covered int      `json:"covered"`
	Skipped int      `json:"skipped"`
	Pct     pctValue `json:"pct"`
}

func (m metricJSON) toDomain() domain.Metric {
	if !m.Pct.measured {
		return domain.Metric{}
	}
	return domain.MeasuredMetric(m.Pct.value)
}

type fileSummaryJSON struct {
	Statements metricJSON `json:"statements"`
	Branches   metricJSON `json:"branches"`
	Functions  metricJSON `json:"functions"`
	Lines      metricJSON `json:"lines"`
}

func (f fileSummaryJSON) toDomain() domain.CoverageSummary {
	return domain.CoverageSummary{
		Statements: f.Statements.toDomain(),
		Branches:   f.Branches.toDomain(),
		Functions:  f.Functions.toDomain(),
		Lines:      f.Lines.toDomain(),
	}
}

// ParseCoverageSummary decodes an istanbul json-summary document. The decode
// is token-driven rather than into a map so the document's key order is
// preserved; directory grouping downstream depends on first-seen file order.
func ParseCoverageSummary(data []byte) (*domain.CoverageMap, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse coverage summary: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parse coverage summary: expected object, got %v", tok)
	}

	cov := &domain.CoverageMap{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse coverage summary: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("parse coverage summary: non-string key %v", keyTok)
		}

		var summary fileSummaryJSON
		if err := dec.Decode(&summary); err != nil {
			return nil, fmt.Errorf("parse coverage summary for %q: %w", key, err)
		}

		if key == totalKey {
			cov.Total = summary.toDomain()
			continue
		}
		cov.Files = append(cov.Files, domain.FileCoverage{
			Path:    key,
			Summary: summary.toDomain(),
		})
	}

	return cov, nil
}
