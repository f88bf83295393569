package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkyoung/test-reporter/internal/domain"
	"github.com/bkyoung/test-reporter/internal/render"
	"github.com/bkyoung/test-reporter/internal/usecase/report"
)

func TestBuildCheckSuccess(t *testing.T) {
	run := domain.TestRunResult{
		Success:      true,
		TotalTests:   12,
		PassedTests:  12,
		TotalSuites:  3,
		PassedSuites: 3,
	}
	output := domain.ExecOutput{Stdout: "PASS src/app.test.ts\n"}

	check := report.BuildCheck(run, output, "CI Tests", "/work", 60000)

	assert.Equal(t, "CI Tests", check.Name)
	assert.Equal(t, domain.ConclusionSuccess, check.Conclusion)
	assert.Equal(t, "Tests passed", check.Title)
	assert.Equal(t, "12 tests passing in 3 suites.", check.Summary)
	assert.Equal(t, "PASS src/app.test.ts\n", check.Text)
	assert.Empty(t, check.Annotations)
}

func TestBuildCheckSingleSuiteIsSingular(t *testing.T) {
	run := domain.TestRunResult{
		Success:      true,
		TotalTests:   4,
		PassedTests:  4,
		TotalSuites:  1,
		PassedSuites: 1,
	}

	check := report.BuildCheck(run, domain.ExecOutput{}, "CI", "", 100)

	assert.Equal(t, "4 tests passing in 1 suite.", check.Summary)
}

func TestBuildCheckFailure(t *testing.T) {
	run := domain.TestRunResult{
		Success:      false,
		TotalTests:   10,
		PassedTests:  8,
		FailedTests:  2,
		TotalSuites:  3,
		PassedSuites: 2,
		FailedSuites: 1,
		Suites: []domain.SuiteResult{
			{
				Name: "/work/src/math.test.ts",
				Assertions: []domain.AssertionResult{
					{Status: domain.StatusFailed, Title: "divides", FailureMessages: []string{"boom"}},
				},
			},
		},
	}

	check := report.BuildCheck(run, domain.ExecOutput{}, "CI", "/work", 100)

	assert.Equal(t, domain.ConclusionFailure, check.Conclusion)
	assert.Equal(t, "Tests failed", check.Title)
	assert.Equal(t, "Failed tests: 2/10. Failed suites: 1/3.", check.Summary)
	assert.Len(t, check.Annotations, 1)
}

func TestBuildCheckCombinesStdoutAndStderr(t *testing.T) {
	output := domain.ExecOutput{Stdout: "out", Stderr: "err"}

	check := report.BuildCheck(domain.TestRunResult{Success: true}, output, "CI", "", 100)

	assert.Equal(t, "out\n\nerr", check.Text)
}

func TestBuildCheckSkipsBlankStderr(t *testing.T) {
	output := domain.ExecOutput{Stdout: "out", Stderr: "  \n"}

	check := report.BuildCheck(domain.TestRunResult{Success: true}, output, "CI", "", 100)

	assert.Equal(t, "out", check.Text)
}

func TestBuildCheckTruncatesOutputToBudget(t *testing.T) {
	long := strings.Repeat("line of runner output\n", 50)
	output := domain.ExecOutput{Stdout: long}
	budget := 200

	check := report.BuildCheck(domain.TestRunResult{Success: true}, output, "CI", "", budget)

	assert.LessOrEqual(t, len(check.Text), budget)
	assert.True(t, strings.HasSuffix(check.Text, "\n...(truncated)"))
	assert.Equal(t, render.TruncateRight(long, budget), check.Text)
}
