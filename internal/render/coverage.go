package render

import (
	"path/filepath"
	"strings"

	"github.com/bkyoung/test-reporter/internal/domain"
)

// CoverageCommentMarker is the first line of every coverage comment. Stale
// comment cleanup matches on this prefix, so it must stay stable across
// releases.
const CoverageCommentMarker = "## Coverage Report"

// maxDirLen bounds directory labels in the detail table. Longer paths keep
// their suffix, which is the part that distinguishes sibling directories.
const maxDirLen = 50

var (
	summaryHeader = []string{"% Stmts", "% Branch", "% Funcs", "% Lines"}
	detailHeader  = []string{"File", "% Stmts", "% Branch", "% Funcs", "% Lines"}
)

type fileEntry struct {
	base    string
	summary domain.CoverageSummary
}

// BuildCoverageReport renders the coverage comment body: the marker line, an
// unbounded one-row summary table, and a collapsible detail table grouped by
// directory. The detail table is bounded by whatever remains of limit after
// the fixed parts are accounted for; the summary is never truncated.
//
// Returns ok=false when there is no coverage to report. That is the signal to
// skip commenting, not an error.
func BuildCoverageReport(cov *domain.CoverageMap, root string, limit int) (string, bool) {
	if cov.Empty() {
		return "", false
	}

	summary := Table(summaryHeader, [][]string{BandRow(cov.Total)}, MetricCell, Unlimited)

	prefix := CoverageCommentMarker + "\n\n" + summary + "\n\n" +
		"<details><summary>Full coverage report</summary>\n\n"
	suffix := "\n\n</details>"

	detailLimit := limit
	if limit != Unlimited {
		detailLimit = limit - len(prefix) - len(suffix)
	}

	detail := Table(detailHeader, detailRows(cov, root), MetricCell, detailLimit)

	return prefix + detail + suffix, true
}

// detailRows groups files by containing directory, preserving the coverage
// map's first-seen order for directories and the original file order within
// each directory. Each group renders as one bold directory row followed by one
// row per file.
func detailRows(cov *domain.CoverageMap, root string) [][]string {
	var dirs []string
	grouped := make(map[string][]fileEntry)

	for _, file := range cov.Files {
		rel := RelativePath(file.Path, root)
		dir := filepath.Dir(rel)
		if _, seen := grouped[dir]; !seen {
			dirs = append(dirs, dir)
		}
		grouped[dir] = append(grouped[dir], fileEntry{
			base:    filepath.Base(rel),
			summary: file.Summary,
		})
	}

	var rows [][]string
	for _, dir := range dirs {
		rows = append(rows, []string{"<b>" + shortenDir(dir) + "</b>", "", "", "", ""})
		for _, entry := range grouped[dir] {
			row := append([]string{"<code>" + entry.base + "</code>"}, BandRow(entry.summary)...)
			rows = append(rows, row)
		}
	}
	return rows
}

// RelativePath strips the working root from an absolute path reported by the
// test or coverage tooling.
func RelativePath(path, root string) string {
	rel := strings.TrimPrefix(path, root)
	return strings.TrimPrefix(rel, string(filepath.Separator))
}

// shortenDir truncates long directory labels from the left, keeping the
// trailing segments. Independent of the global character budget.
func shortenDir(dir string) string {
	if len(dir) <= maxDirLen {
		return dir
	}
	const marker = "..."
	return marker + dir[len(dir)-(maxDirLen-len(marker)):]
}
