// Package runner executes the external test command and captures its output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/bkyoung/test-reporter/internal/domain"
)

// Runner shells out to the configured test command. The command's exit code
// is captured, not treated as an error: a failing test suite is a reportable
// outcome, while a command that cannot start at all is an error.
type Runner struct {
	workDir string
}

// NewRunner constructs a runner that executes commands in workDir.
func NewRunner(workDir string) *Runner {
	return &Runner{workDir: workDir}
}

// Run executes the command via the shell and captures stdout, stderr, and the
// exit code. Test runners write their human output here; the machine-readable
// results land in the results file parsed separately.
func (r *Runner) Run(ctx context.Context, command string) (domain.ExecOutput, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = r.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := domain.ExecOutput{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("execute %q: %w", command, err)
	}

	return output, nil
}
