package report

import (
	"fmt"
	"strings"

	"github.com/bkyoung/test-reporter/internal/domain"
	"github.com/bkyoung/test-reporter/internal/render"
)

const (
	titlePassed = "Tests passed"
	titleFailed = "Tests failed"
)

// BuildCheck assembles the check payload: conclusion, fixed title, a one-line
// summary of the counts, the captured runner output right-truncated to the
// character budget, and one annotation per failed assertion.
func BuildCheck(run domain.TestRunResult, output domain.ExecOutput, checkName, workingRoot string, budget int) domain.Check {
	check := domain.Check{
		Name:        checkName,
		Text:        render.TruncateRight(combinedOutput(output), budget),
		Annotations: ExtractAnnotations(run, workingRoot),
	}

	if run.Success {
		check.Conclusion = domain.ConclusionSuccess
		check.Title = titlePassed
		check.Summary = successSummary(run)
	} else {
		check.Conclusion = domain.ConclusionFailure
		check.Title = titleFailed
		check.Summary = failureSummary(run)
	}

	return check
}

func successSummary(run domain.TestRunResult) string {
	plural := ""
	if run.PassedSuites > 1 {
		plural = "s"
	}
	return fmt.Sprintf("%d tests passing in %d suite%s.", run.PassedTests, run.PassedSuites, plural)
}

// failureSummary reports both failure ratios. The suite ratio uses the failed
// suite count as its numerator.
func failureSummary(run domain.TestRunResult) string {
	return fmt.Sprintf("Failed tests: %d/%d. Failed suites: %d/%d.",
		run.FailedTests, run.TotalTests, run.FailedSuites, run.TotalSuites)
}

// combinedOutput joins captured stdout and stderr with a blank line; empty
// stderr contributes nothing.
func combinedOutput(output domain.ExecOutput) string {
	if strings.TrimSpace(output.Stderr) == "" {
		return output.Stdout
	}
	if output.Stdout == "" {
		return output.Stderr
	}
	return output.Stdout + "\n\n" + output.Stderr
}
