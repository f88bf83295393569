package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/test-reporter/internal/domain"
	"github.com/bkyoung/test-reporter/internal/usecase/report"
)

func failedRun(suites ...domain.SuiteResult) domain.TestRunResult {
	return domain.TestRunResult{
		Success: false,
		Suites:  suites,
	}
}

func TestExtractAnnotationsSuccessfulRunYieldsNone(t *testing.T) {
	run := domain.TestRunResult{
		Success: true,
		Suites: []domain.SuiteResult{
			{
				Name: "/work/src/app.test.ts",
				Assertions: []domain.AssertionResult{
					// A stray failed status must not produce annotations when
					// the run as a whole passed.
					{Status: domain.StatusFailed, Title: "flaky"},
				},
			},
		},
	}

	assert.Nil(t, report.ExtractAnnotations(run, "/work"))
}

func TestExtractAnnotationsOnlyFailedAssertions(t *testing.T) {
	run := failedRun(domain.SuiteResult{
		Name: "/work/src/math.test.ts",
		Assertions: []domain.AssertionResult{
			{Status: domain.StatusPassed, Title: "adds"},
			{Status: domain.StatusPending, Title: "multiplies"},
			{
				Status:          domain.StatusFailed,
				Title:           "divides",
				AncestorTitles:  []string{"math", "division"},
				Location:        &domain.Location{Line: 42, Column: 3},
				FailureMessages: []string{"expected 2 to equal 3"},
			},
		},
	})

	annotations := report.ExtractAnnotations(run, "/work")
	require.Len(t, annotations, 1)

	ann := annotations[0]
	assert.Equal(t, "src/math.test.ts", ann.Path)
	assert.Equal(t, 42, ann.StartLine)
	assert.Equal(t, 42, ann.EndLine)
	assert.Equal(t, domain.LevelFailure, ann.Level)
	assert.Equal(t, "math > division > divides", ann.Title)
	assert.Equal(t, "expected 2 to equal 3", ann.Message)
}

func TestExtractAnnotationsDefaultsLineZero(t *testing.T) {
	run := failedRun(domain.SuiteResult{
		Name: "/work/src/app.test.ts",
		Assertions: []domain.AssertionResult{
			{Status: domain.StatusFailed, Title: "boots"},
		},
	})

	annotations := report.ExtractAnnotations(run, "/work")
	require.Len(t, annotations, 1)
	assert.Equal(t, 0, annotations[0].StartLine)
	assert.Equal(t, 0, annotations[0].EndLine)
	assert.Equal(t, "boots", annotations[0].Title)
}

func TestExtractAnnotationsPreservesSuiteOrder(t *testing.T) {
	run := failedRun(
		domain.SuiteResult{
			Name: "/work/b.test.ts",
			Assertions: []domain.AssertionResult{
				{Status: domain.StatusFailed, Title: "second suite first"},
			},
		},
		domain.SuiteResult{
			Name: "/work/a.test.ts",
			Assertions: []domain.AssertionResult{
				{Status: domain.StatusFailed, Title: "first"},
				{Status: domain.StatusFailed, Title: "second"},
			},
		},
	)

	annotations := report.ExtractAnnotations(run, "/work")
	require.Len(t, annotations, 3)
	assert.Equal(t, "b.test.ts", annotations[0].Path)
	assert.Equal(t, "first", annotations[1].Title)
	assert.Equal(t, "second", annotations[2].Title)
}

func TestExtractAnnotationsStripsANSIFromMessages(t *testing.T) {
	run := failedRun(domain.SuiteResult{
		Name: "/work/color.test.ts",
		Assertions: []domain.AssertionResult{
			{
				Status:          domain.StatusFailed,
				Title:           "renders",
				FailureMessages: []string{"\x1b[31mexpected\x1b[39m red", "got blue"},
			},
		},
	})

	annotations := report.ExtractAnnotations(run, "/work")
	require.Len(t, annotations, 1)
	assert.Equal(t, "expected red\n\ngot blue", annotations[0].Message)
}
