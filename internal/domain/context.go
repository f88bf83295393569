package domain

// RequestContext identifies the repository, pull request, and commit a report
// is published against. It is resolved once at startup and passed explicitly
// to every component that needs it.
type RequestContext struct {
	Owner string
	Repo  string

	// PullNumber is 0 when the run is not associated with a pull request; the
	// coverage comment is skipped in that case.
	PullNumber int

	// HeadSHA is the commit the check run is attached to.
	HeadSHA string
}

// HasPullRequest reports whether a pull request is available for commenting.
func (c RequestContext) HasPullRequest() bool {
	return c.PullNumber > 0
}
