package report

import (
	"context"
	"fmt"
	"time"

	"github.com/bkyoung/test-reporter/internal/domain"
	"github.com/bkyoung/test-reporter/internal/render"
	"github.com/bkyoung/test-reporter/internal/store"
	pubgh "github.com/bkyoung/test-reporter/internal/usecase/github"
)

// Runner executes the external test command and captures its output. A failing
// test run is reported through ExecOutput, not through the error return; the
// error is reserved for the command being unrunnable.
type Runner interface {
	Run(ctx context.Context, command string) (domain.ExecOutput, error)
}

// ResultsLoader reads the runner's machine-readable artifacts from disk.
// LoadCoverage returns (nil, nil) when no coverage file exists; that is the
// "skip coverage reporting" signal.
type ResultsLoader interface {
	LoadResults(path string) (domain.TestRunResult, error)
	LoadCoverage(path string) (*domain.CoverageMap, error)
}

// Publisher submits rendered reports to the code host.
type Publisher interface {
	PublishCheck(ctx context.Context, req pubgh.PublishCheckRequest) (*pubgh.PublishCheckResult, error)
	PublishCoverageComment(ctx context.Context, req pubgh.PublishCommentRequest) (*pubgh.PublishCommentResult, error)
}

// HistoryStore records run outcomes so consecutive runs can report coverage
// movement. Optional; the orchestrator works without one.
type HistoryStore interface {
	SaveRun(ctx context.Context, run store.Run) (int64, error)
	LastRun(ctx context.Context, repository string) (*store.Run, error)
}

// Orchestrator sequences a full reporting run: execute the test command, parse
// its artifacts, publish the check, then (conditionally) publish the coverage
// comment and record history. Network submission is strictly sequential; the
// check is always submitted before any coverage work can fail the run.
type Orchestrator struct {
	runner    Runner
	loader    ResultsLoader
	publisher Publisher
	history   HistoryStore
	logger    Logger
	now       func() time.Time
}

// NewOrchestrator wires the required collaborators.
func NewOrchestrator(runner Runner, loader ResultsLoader, publisher Publisher) *Orchestrator {
	return &Orchestrator{
		runner:    runner,
		loader:    loader,
		publisher: publisher,
		now:       time.Now,
	}
}

// WithHistory enables run-history recording.
func (o *Orchestrator) WithHistory(history HistoryStore) *Orchestrator {
	o.history = history
	return o
}

// WithLogger enables structured logging.
func (o *Orchestrator) WithLogger(logger Logger) *Orchestrator {
	o.logger = logger
	return o
}

// Request carries everything one reporting run needs.
type Request struct {
	// Command is the test command to execute. Empty skips execution and
	// reports from existing artifacts.
	Command string

	// ResultsPath is the runner's JSON results file.
	ResultsPath string

	// CoveragePath is the istanbul json-summary file. Empty or missing means
	// no coverage comment.
	CoveragePath string

	// WorkingRoot is stripped from absolute paths in annotations and the
	// coverage table.
	WorkingRoot string

	// Context identifies the repo, pull request, and head commit.
	Context domain.RequestContext

	// CheckName is the check-run name. Required.
	CheckName string

	// Budget is the character budget for the check body and the coverage
	// detail table. Zero selects domain.DefaultCharacterBudget.
	Budget int

	// BotUsername identifies stale coverage comments to delete before
	// posting. Empty disables the cleanup.
	BotUsername string

	// SkipComment suppresses the coverage comment even when coverage exists.
	SkipComment bool

	// DryRun renders everything but publishes nothing.
	DryRun bool
}

// Result summarizes what a reporting run produced.
type Result struct {
	Run      domain.TestRunResult
	Check    domain.Check
	CheckURL string

	CommentPosted        bool
	DeletedStaleComments int

	// CoverageDelta is the line-coverage movement against the previous
	// recorded run, when history is enabled and both runs measured lines.
	CoverageDelta *float64
}

// Report runs the full pipeline. It returns domain.ErrTestsFailed when the
// test run itself failed, so callers can map that to a non-zero exit without
// mistaking it for an infrastructure error. A coverage-comment failure also
// fails the run, but only after the check has been submitted.
func (o *Orchestrator) Report(ctx context.Context, req Request) (Result, error) {
	budget := req.Budget
	if budget == 0 {
		budget = domain.DefaultCharacterBudget
	}

	var result Result

	var output domain.ExecOutput
	if req.Command != "" {
		var err error
		output, err = o.runner.Run(ctx, req.Command)
		if err != nil {
			return result, fmt.Errorf("run test command: %w", err)
		}
		o.logInfo(ctx, "test command finished", map[string]interface{}{
			"exit_code": output.ExitCode,
		})
	}

	run, err := o.loader.LoadResults(req.ResultsPath)
	if err != nil {
		return result, fmt.Errorf("load test results: %w", err)
	}
	result.Run = run

	check := BuildCheck(run, output, req.CheckName, req.WorkingRoot, budget)
	result.Check = check

	if !req.DryRun {
		pub, err := o.publisher.PublishCheck(ctx, pubgh.PublishCheckRequest{
			Context: req.Context,
			Check:   check,
		})
		if err != nil {
			return result, fmt.Errorf("publish check: %w", err)
		}
		result.CheckURL = pub.HTMLURL
		o.logInfo(ctx, "check published", map[string]interface{}{
			"check_id":    pub.CheckID,
			"conclusion":  string(check.Conclusion),
			"annotations": pub.AnnotationsPosted,
		})
	}

	cov, commentErr := o.publishCoverage(ctx, req, budget, &result)

	o.recordHistory(ctx, req, run, cov)

	if !run.Success {
		return result, domain.ErrTestsFailed
	}
	if commentErr != nil {
		return result, commentErr
	}
	return result, nil
}

// publishCoverage builds and posts the coverage comment. Failures here never
// prevent the check from having been submitted; comment submission errors are
// returned so the process still exits non-zero, while missing or empty
// coverage is silently skipped.
func (o *Orchestrator) publishCoverage(ctx context.Context, req Request, budget int, result *Result) (*domain.CoverageMap, error) {
	if req.SkipComment || !req.Context.HasPullRequest() || req.CoveragePath == "" {
		return nil, nil
	}

	cov, err := o.loader.LoadCoverage(req.CoveragePath)
	if err != nil {
		o.logWarning(ctx, "coverage data unavailable, skipping comment", map[string]interface{}{
			"path":  req.CoveragePath,
			"error": err.Error(),
		})
		return nil, nil
	}

	body, ok := render.BuildCoverageReport(cov, req.WorkingRoot, budget)
	if !ok {
		o.logInfo(ctx, "no coverage to report", map[string]interface{}{
			"path": req.CoveragePath,
		})
		return cov, nil
	}

	result.CoverageDelta = o.coverageDelta(ctx, req, cov)

	if req.DryRun {
		return cov, nil
	}

	pub, err := o.publisher.PublishCoverageComment(ctx, pubgh.PublishCommentRequest{
		Context:     req.Context,
		Body:        body,
		BotUsername: req.BotUsername,
		Marker:      render.CoverageCommentMarker,
	})
	if err != nil {
		o.logError(ctx, "coverage comment failed", map[string]interface{}{
			"error": err.Error(),
		})
		return cov, fmt.Errorf("publish coverage comment: %w", err)
	}

	result.CommentPosted = true
	result.DeletedStaleComments = pub.DeletedStale
	return cov, nil
}

// coverageDelta compares line coverage against the previous recorded run.
func (o *Orchestrator) coverageDelta(ctx context.Context, req Request, cov *domain.CoverageMap) *float64 {
	if o.history == nil || !cov.Total.Lines.Measured {
		return nil
	}

	last, err := o.history.LastRun(ctx, req.Context.Owner+"/"+req.Context.Repo)
	if err != nil {
		o.logWarning(ctx, "history lookup failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	if last == nil || last.LinesPct == nil {
		return nil
	}

	delta := cov.Total.Lines.Pct - *last.LinesPct
	o.logInfo(ctx, "line coverage vs previous run", map[string]interface{}{
		"previous": *last.LinesPct,
		"current":  cov.Total.Lines.Pct,
		"delta":    delta,
	})
	return &delta
}

// recordHistory saves the run outcome best-effort.
func (o *Orchestrator) recordHistory(ctx context.Context, req Request, run domain.TestRunResult, cov *domain.CoverageMap) {
	if o.history == nil || req.DryRun {
		return
	}

	record := store.Run{
		CreatedAt:   o.now(),
		Repository:  req.Context.Owner + "/" + req.Context.Repo,
		CommitSHA:   req.Context.HeadSHA,
		Success:     run.Success,
		TotalTests:  run.TotalTests,
		PassedTests: run.PassedTests,
		FailedTests: run.FailedTests,
		TotalSuites: run.TotalSuites,
	}
	if cov != nil && cov.Total.Lines.Measured {
		pct := cov.Total.Lines.Pct
		record.LinesPct = &pct
	}

	if _, err := o.history.SaveRun(ctx, record); err != nil {
		o.logWarning(ctx, "failed to record run history", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (o *Orchestrator) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if o.logger != nil {
		o.logger.LogInfo(ctx, msg, fields)
	}
}

func (o *Orchestrator) logWarning(ctx context.Context, msg string, fields map[string]interface{}) {
	if o.logger != nil {
		o.logger.LogWarning(ctx, msg, fields)
	}
}

func (o *Orchestrator) logError(ctx context.Context, msg string, fields map[string]interface{}) {
	if o.logger != nil {
		o.logger.LogError(ctx, msg, fields)
	}
}
