package domain

// AnnotationLevel is the severity of a check annotation as understood by the
// GitHub Checks API.
type AnnotationLevel string

const (
	LevelNotice  AnnotationLevel = "notice"
	LevelWarning AnnotationLevel = "warning"
	LevelFailure AnnotationLevel = "failure"
)

// Annotation points from a failed assertion to a source location. It is
// derived and ephemeral; line numbers default to 0 when the runner reported no
// location.
type Annotation struct {
	// Path is the suite file path relative to the working root.
	Path string

	StartLine int
	EndLine   int

	Level AnnotationLevel

	// Title is the ancestor-title chain joined with " > ", with the
	// assertion's own title appended.
	Title string

	// Message is the failure output with ANSI styling stripped, individual
	// messages joined by a blank line.
	Message string
}

// Conclusion is the overall outcome reported on the check run.
type Conclusion string

const (
	ConclusionSuccess Conclusion = "success"
	ConclusionFailure Conclusion = "failure"
)

// Check is the rendered check payload handed to the publishing collaborator.
type Check struct {
	// Name is the check-run name shown in the PR checks list.
	Name string

	Conclusion Conclusion
	Title      string
	Summary    string

	// Text is the captured runner output, right-truncated to the character
	// budget.
	Text string

	Annotations []Annotation
}
