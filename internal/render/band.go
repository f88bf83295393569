package render

import (
	"strconv"

	"github.com/bkyoung/test-reporter/internal/domain"
)

// Band thresholds. Each band's lower bound is exclusive: 80.0 is yellow,
// 80.1 is green.
const (
	bandGreen  = 80
	bandYellow = 65
	bandOrange = 50
)

// Band converts a coverage metric into its color-banded label, e.g.
// "90 :green_circle:". An unmeasured metric renders as an explicit N/A band
// rather than being treated as zero.
func Band(m domain.Metric) string {
	if !m.Measured {
		return "N/A :white_circle:"
	}

	pct := strconv.FormatFloat(m.Pct, 'f', -1, 64)
	switch {
	case m.Pct > bandGreen:
		return pct + " :green_circle:"
	case m.Pct > bandYellow:
		return pct + " :yellow_circle:"
	case m.Pct > bandOrange:
		return pct + " :orange_circle:"
	default:
		return pct + " :red_circle:"
	}
}

// BandRow applies Band to each of the four metrics of a summary, in the fixed
// statements/branches/functions/lines column order.
func BandRow(s domain.CoverageSummary) []string {
	return []string{
		Band(s.Statements),
		Band(s.Branches),
		Band(s.Functions),
		Band(s.Lines),
	}
}
