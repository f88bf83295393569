// Package report contains the use cases that turn a parsed test run into a
// published check and coverage comment.
package report

import (
	"strings"

	"github.com/bkyoung/test-reporter/internal/domain"
	"github.com/bkyoung/test-reporter/internal/render"
)

// titleSeparator joins the ancestor describe-block chain with the assertion's
// own title.
const titleSeparator = " > "

// ExtractAnnotations produces one source annotation per failed assertion, in
// suite order and then assertion order within each suite. A successful run
// yields no annotations regardless of assertion contents. Assertions without a
// reported location default to line 0 rather than being dropped.
func ExtractAnnotations(run domain.TestRunResult, workingRoot string) []domain.Annotation {
	if run.Success {
		return nil
	}

	var annotations []domain.Annotation
	for _, suite := range run.Suites {
		path := render.RelativePath(suite.Name, workingRoot)
		for _, assertion := range suite.Assertions {
			if assertion.Status != domain.StatusFailed {
				continue
			}

			line := 0
			if assertion.Location != nil && assertion.Location.Line > 0 {
				line = assertion.Location.Line
			}

			titleParts := append(append([]string{}, assertion.AncestorTitles...), assertion.Title)

			annotations = append(annotations, domain.Annotation{
				Path:      path,
				StartLine: line,
				EndLine:   line,
				Level:     domain.LevelFailure,
				Title:     strings.Join(titleParts, titleSeparator),
				Message:   render.StripANSI(strings.Join(assertion.FailureMessages, "\n\n")),
			})
		}
	}

	return annotations
}
