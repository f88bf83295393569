// Package results parses the test runner's machine-readable artifacts: the
// jest-style JSON results file and the istanbul json-summary coverage file.
package results

import (
	"encoding/json"
	"fmt"

	"github.com/bkyoung/test-reporter/internal/domain"
)

// jestResults mirrors the top level of a jest --json results file. Only the
// fields the report needs are declared; unknown fields are ignored.
type jestResults struct {
	Success bool `json:"success"`

	NumTotalTests  int `json:"numTotalTests"`
	NumPassedTests int `json:"numPassedTests"`
	NumFailedTests int `json:"numFailedTests"`

	NumTotalTestSuites  int `json:"numTotalTestSuites"`
	NumPassedTestSuites int `json:"numPassedTestSuites"`
	NumFailedTestSuites int `json:"numFailedTestSuites"`

	TestResults []jestSuite `json:"testResults"`
}

type jestSuite struct {
	Name             string          `json:"name"`
	AssertionResults []jestAssertion `json:"assertionResults"`
}

type jestAssertion struct {
	Status          string        `json:"status"`
	Title           string        `json:"title"`
	AncestorTitles  []string      `json:"ancestorTitles"`
	FailureMessages []string      `json:"failureMessages"`
	Location        *jestLocation `json:"location"`
}

type jestLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// ParseResults decodes a jest-style JSON results document into the domain
// model. Missing optional fields (location, failure messages) degrade to
// their zero values rather than failing the parse.
func ParseResults(data []byte) (domain.TestRunResult, error) {
	var raw jestResults
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.TestRunResult{}, fmt.Errorf("parse test results: %w", err)
	}

	run := domain.TestRunResult{
		Success:      raw.Success,
		TotalTests:   raw.NumTotalTests,
		PassedTests:  raw.NumPassedTests,
		FailedTests:  raw.NumFailedTests,
		TotalSuites:  raw.NumTotalTestSuites,
		PassedSuites: raw.NumPassedTestSuites,
		FailedSuites: raw.NumFailedTestSuites,
		Suites:       make([]domain.SuiteResult, 0, len(raw.TestResults)),
	}

	for _, suite := range raw.TestResults {
		converted := domain.SuiteResult{
			Name:       suite.Name,
			Assertions: make([]domain.AssertionResult, 0, len(suite.AssertionResults)),
		}
		for _, assertion := range suite.AssertionResults {
			var location *domain.Location
			if assertion.Location != nil {
				location = &domain.Location{
					Line:   assertion.Location.Line,
					Column: assertion.Location.Column,
				}
			}
			converted.Assertions = append(converted.Assertions, domain.AssertionResult{
				Status:          domain.AssertionStatus(assertion.Status),
				Title:           assertion.Title,
				AncestorTitles:  assertion.AncestorTitles,
				Location:        location,
				FailureMessages: assertion.FailureMessages,
			})
		}
		run.Suites = append(run.Suites, converted)
	}

	return run, nil
}
