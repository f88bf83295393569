// Package github provides use cases for publishing reports to GitHub.
package github

import (
	"context"
	"log"
	"strings"

	"github.com/bkyoung/test-reporter/internal/adapter/github"
	"github.com/bkyoung/test-reporter/internal/domain"
)

// ReportClient defines the interface for the GitHub API operations the
// publisher needs. This interface allows for mocking in tests.
type ReportClient interface {
	CreateCheckRun(ctx context.Context, owner, repo string, req github.CreateCheckRunRequest) (*github.CheckRunResponse, error)
	ListIssueComments(ctx context.Context, owner, repo string, issueNumber int) ([]github.IssueComment, error)
	CreateIssueComment(ctx context.Context, owner, repo string, issueNumber int, body string) (*github.IssueComment, error)
	DeleteIssueComment(ctx context.Context, owner, repo string, commentID int64) error
}

// ReportPublisher submits check runs and coverage comments. It owns the
// stale-comment lifecycle: before posting a new coverage comment, previous
// bot-authored comments carrying the report marker are deleted so the PR shows
// exactly one coverage report.
type ReportPublisher struct {
	client ReportClient
}

// NewReportPublisher creates a publisher backed by the given client.
func NewReportPublisher(client ReportClient) *ReportPublisher {
	return &ReportPublisher{client: client}
}

// PublishCheckRequest contains the check payload and its destination.
type PublishCheckRequest struct {
	Context domain.RequestContext
	Check   domain.Check
}

// PublishCheckResult describes the submitted check run.
type PublishCheckResult struct {
	CheckID int64
	HTMLURL string

	// AnnotationsPosted is how many annotations were attached; the API caps a
	// single request, so this can be lower than the extracted count.
	AnnotationsPosted  int
	AnnotationsSkipped int
}

// PublishCheck submits the check run for the head commit.
func (p *ReportPublisher) PublishCheck(ctx context.Context, req PublishCheckRequest) (*PublishCheckResult, error) {
	apiReq := github.BuildCheckRunRequest(req.Context, req.Check)

	resp, err := p.client.CreateCheckRun(ctx, req.Context.Owner, req.Context.Repo, apiReq)
	if err != nil {
		return nil, err
	}

	posted := len(apiReq.Output.Annotations)
	return &PublishCheckResult{
		CheckID:            resp.ID,
		HTMLURL:            resp.HTMLURL,
		AnnotationsPosted:  posted,
		AnnotationsSkipped: len(req.Check.Annotations) - posted,
	}, nil
}

// PublishCommentRequest contains the coverage comment body and its destination.
type PublishCommentRequest struct {
	Context domain.RequestContext

	// Body is the rendered coverage report.
	Body string

	// BotUsername identifies comments eligible for deletion. Empty disables
	// the cleanup. Example: "github-actions[bot]"
	BotUsername string

	// Marker is the fixed first line of coverage comments; only comments with
	// this prefix are deleted.
	Marker string
}

// PublishCommentResult describes the posted comment.
type PublishCommentResult struct {
	CommentID    int64
	DeletedStale int
}

// PublishCoverageComment deletes stale bot coverage comments and posts the new
// one. Deletion runs first so a post failure never leaves two reports on the
// PR; the delete-then-post sequence is not transactional, and a partial
// failure surfaces as the returned error. Individual delete failures are
// logged and skipped so one stuck comment cannot block the report.
func (p *ReportPublisher) PublishCoverageComment(ctx context.Context, req PublishCommentRequest) (*PublishCommentResult, error) {
	deleted := 0
	if req.BotUsername != "" {
		deleted = p.deleteStaleComments(ctx, req)
	}

	comment, err := p.client.CreateIssueComment(ctx, req.Context.Owner, req.Context.Repo, req.Context.PullNumber, req.Body)
	if err != nil {
		return nil, err
	}

	return &PublishCommentResult{
		CommentID:    comment.ID,
		DeletedStale: deleted,
	}, nil
}

// deleteStaleComments removes previous coverage comments from the bot.
// Returns the number deleted. A list failure means no cleanup happens; that is
// logged rather than blocking the new comment.
func (p *ReportPublisher) deleteStaleComments(ctx context.Context, req PublishCommentRequest) int {
	comments, err := p.client.ListIssueComments(ctx, req.Context.Owner, req.Context.Repo, req.Context.PullNumber)
	if err != nil {
		log.Printf("warning: failed to list comments for cleanup: %v", err)
		return 0
	}

	deleted := 0
	for _, comment := range comments {
		if !isStaleCoverageComment(comment, req.BotUsername, req.Marker) {
			continue
		}
		if err := p.client.DeleteIssueComment(ctx, req.Context.Owner, req.Context.Repo, comment.ID); err != nil {
			log.Printf("warning: failed to delete comment %d: %v", comment.ID, err)
			continue
		}
		deleted++
	}

	return deleted
}

// isStaleCoverageComment returns true when a comment is a previous coverage
// report from the bot. GitHub usernames are case-insensitive.
func isStaleCoverageComment(comment github.IssueComment, botUsername, marker string) bool {
	if !strings.EqualFold(comment.User.Login, botUsername) {
		return false
	}
	return marker != "" && strings.HasPrefix(comment.Body, marker)
}
