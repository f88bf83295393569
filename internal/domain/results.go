// Package domain contains the core types for test-run reporting.
package domain

import "errors"

// DefaultCharacterBudget is the maximum rendered size shared by the check body
// text and the coverage detail table. GitHub rejects check output and comments
// above 65535 characters; the budget leaves headroom for wrapper markup.
const DefaultCharacterBudget = 60000

// ErrTestsFailed signals that the reported test run failed. The process maps it
// to a non-zero exit code without treating it as an infrastructure error.
var ErrTestsFailed = errors.New("tests failed")

// AssertionStatus is the outcome of a single assertion.
type AssertionStatus string

const (
	StatusPassed  AssertionStatus = "passed"
	StatusFailed  AssertionStatus = "failed"
	StatusPending AssertionStatus = "pending"
	StatusSkipped AssertionStatus = "skipped"
)

// Location points at the source position of an assertion, when the runner
// reported one.
type Location struct {
	Line   int
	Column int
}

// AssertionResult is a single test expectation within a suite.
type AssertionResult struct {
	// Status is the assertion outcome (passed, failed, pending, ...).
	Status AssertionStatus

	// Title is the assertion's own name.
	Title string

	// AncestorTitles is the describe-block chain enclosing the assertion,
	// outermost first.
	AncestorTitles []string

	// Location is the reported source position, nil when the runner did not
	// record one.
	Location *Location

	// FailureMessages holds the raw failure output, possibly containing ANSI
	// escape sequences.
	FailureMessages []string
}

// SuiteResult is a file-scoped collection of assertions.
type SuiteResult struct {
	// Name is the suite's file path as reported by the runner (absolute).
	Name string

	// Assertions preserves the runner's reporting order.
	Assertions []AssertionResult
}

// TestRunResult is the parsed output of a complete test run. It is treated as
// an immutable snapshot by everything downstream.
type TestRunResult struct {
	Success bool

	TotalTests  int
	PassedTests int
	FailedTests int

	TotalSuites  int
	PassedSuites int
	FailedSuites int

	Suites []SuiteResult
}

// ExecOutput is the captured output of the external test command.
type ExecOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
}
