package github

// GitHub Checks and Issue Comments API types.
// See: https://docs.github.com/en/rest/checks/runs#create-a-check-run
// and: https://docs.github.com/en/rest/issues/comments

// CheckStatus is the lifecycle state of a check run.
type CheckStatus string

const (
	// StatusCompleted marks a check run that already has a conclusion.
	StatusCompleted CheckStatus = "completed"

	// StatusInProgress marks a check run still executing.
	StatusInProgress CheckStatus = "in_progress"
)

// CreateCheckRunRequest is the request body for
// POST /repos/{owner}/{repo}/check-runs.
type CreateCheckRunRequest struct {
	// Name is the check-run name shown in the PR checks list.
	Name string `json:"name"`

	// HeadSHA is the commit the check is attached to.
	HeadSHA string `json:"head_sha"`

	// Status is always "completed" for this tool; the run has finished by the
	// time we report.
	Status CheckStatus `json:"status"`

	// Conclusion is "success" or "failure". Required when status is completed.
	Conclusion string `json:"conclusion,omitempty"`

	// Output carries the rendered report.
	Output *CheckRunOutput `json:"output,omitempty"`
}

// CheckRunOutput is the report body attached to a check run.
type CheckRunOutput struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`

	// Text is the captured runner output (GitHub caps it at 65535 chars).
	Text string `json:"text,omitempty"`

	// Annotations are inline source markers (at most 50 per request).
	Annotations []CheckRunAnnotation `json:"annotations,omitempty"`
}

// CheckRunAnnotation marks a source range in the checked commit.
type CheckRunAnnotation struct {
	// Path is the file path relative to the repository root.
	Path string `json:"path"`

	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`

	// AnnotationLevel is notice, warning, or failure.
	AnnotationLevel string `json:"annotation_level"`

	// Message is the annotation body (plain text).
	Message string `json:"message"`

	Title string `json:"title,omitempty"`
}

// CheckRunResponse is the response from POST /repos/{owner}/{repo}/check-runs.
type CheckRunResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	HeadSHA    string `json:"head_sha"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
	HTMLURL    string `json:"html_url"`
}

// IssueComment is a comment on an issue or pull request.
type IssueComment struct {
	ID      int64  `json:"id"`
	Body    string `json:"body"`
	User    User   `json:"user"`
	HTMLURL string `json:"html_url"`
}

// createCommentRequest is the body for POST .../issues/{number}/comments.
type createCommentRequest struct {
	Body string `json:"body"`
}

// User represents a GitHub user in API responses.
type User struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
	Type  string `json:"type"` // "User" or "Bot"
}

// ErrorResponse represents an error response from the GitHub API.
type ErrorResponse struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
	Errors           []struct {
		Resource string `json:"resource"`
		Field    string `json:"field"`
		Code     string `json:"code"`
		Message  string `json:"message"`
	} `json:"errors,omitempty"`
}
