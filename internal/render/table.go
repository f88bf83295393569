// Package render turns parsed test and coverage results into size-bounded
// GitHub-flavored output. All functions are pure; truncation is deterministic
// and depends only on input order and rendered sizes.
package render

import "strings"

// Unlimited disables the character budget for a render call.
const Unlimited = -1

// truncatedLabel is the first cell of the placeholder row that replaces
// everything beyond the budget.
const truncatedLabel = "truncated..."

// CellRenderer converts one cell value to its HTML form. The column index lets
// callers vary formatting per column, e.g. right-align every column after the
// first.
type CellRenderer func(col int, value string) string

// TextCell renders a plain left-aligned cell.
func TextCell(col int, value string) string {
	return "<td>" + value + "</td>"
}

// MetricCell left-aligns the first column and right-aligns the rest. Used for
// coverage rows where every column after the file name is a percentage.
func MetricCell(col int, value string) string {
	if col == 0 {
		return "<td>" + value + "</td>"
	}
	return `<td align="right">` + value + "</td>"
}

func headerCell(value string) string {
	return "<th>" + value + "</th>"
}

func renderRow(cells []string, cell CellRenderer) string {
	var sb strings.Builder
	sb.WriteString("<tr>")
	for i, value := range cells {
		sb.WriteString(cell(i, value))
	}
	sb.WriteString("</tr>")
	return sb.String()
}

func placeholderRow(columns int) []string {
	if columns < 1 {
		columns = 1
	}
	row := make([]string, columns)
	row[0] = truncatedLabel
	return row
}

// RenderRows emits rows in order, accumulating their rendered size on top of
// wrapperCost. The first row that would push the total past limit is replaced
// by a single placeholder row and rendering stops there; no further rows and
// no second placeholder follow. With limit == Unlimited every row is emitted
// and no placeholder ever appears.
//
// The placeholder keeps the column count of the first input row, so a
// truncated table still renders as a rectangular grid. When even the
// placeholder overflows the limit it is emitted anyway: the floor of the
// output size is wrapperCost plus one placeholder row.
func RenderRows(rows [][]string, cell CellRenderer, wrapperCost, limit int) string {
	var sb strings.Builder
	total := wrapperCost
	for _, row := range rows {
		line := renderRow(row, cell)
		if limit != Unlimited && total+len(line) > limit {
			sb.WriteString(renderRow(placeholderRow(len(rows[0])), cell))
			break
		}
		sb.WriteString(line)
		total += len(line)
	}
	return sb.String()
}

// Table renders a complete HTML table. The header row and the table tags count
// as the non-negotiable wrapper cost; body rows are bounded by limit via
// RenderRows. The header row is never truncated.
func Table(header []string, rows [][]string, cell CellRenderer, limit int) string {
	var head strings.Builder
	head.WriteString("<tr>")
	for _, value := range header {
		head.WriteString(headerCell(value))
	}
	head.WriteString("</tr>")

	wrapperCost := len("<table>") + head.Len() + len("</table>")
	body := RenderRows(rows, cell, wrapperCost, limit)

	return "<table>" + head.String() + body + "</table>"
}
