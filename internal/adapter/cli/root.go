package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bkyoung/test-reporter/internal/domain"
	"github.com/bkyoung/test-reporter/internal/usecase/report"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// Reporter defines the dependency required to run the report command.
type Reporter interface {
	Report(ctx context.Context, req report.Request) (report.Result, error)
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Defaults holds flag defaults resolved from config, CI environment
// variables, and the local git checkout.
type Defaults struct {
	Command      string
	ResultsFile  string
	CoverageFile string
	WorkingDir   string

	Owner   string
	Repo    string
	HeadSHA string

	CheckName       string
	CharacterBudget int
	BotUsername     string
	CoverageComment bool
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Reporter Reporter
	Args     Arguments
	Defaults Defaults
	Version  string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "treport",
		Short: "Test result and coverage reporting for GitHub",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(reportCommand(deps.Reporter, deps.Defaults))

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func reportCommand(reporter Reporter, defaults Defaults) *cobra.Command {
	var command string
	var resultsFile string
	var coverageFile string
	var workingDir string

	var owner string
	var repo string
	var prNumber int
	var headSHA string

	var checkName string
	var budget int
	var botUsername string
	var skipComment bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the test command and publish results to GitHub",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if owner == "" || repo == "" {
				return fmt.Errorf("repository not identified; pass --owner and --repo or run inside a checkout with an origin remote")
			}
			if headSHA == "" {
				return fmt.Errorf("head commit not identified; pass --sha or run inside a git checkout")
			}
			if resultsFile == "" {
				return fmt.Errorf("--results must not be empty")
			}

			// "none" (case-insensitive) explicitly disables stale-comment
			// cleanup; empty falls back to the conventional Actions bot.
			resolvedBotUsername := strings.TrimSpace(botUsername)
			if resolvedBotUsername == "" {
				resolvedBotUsername = "github-actions[bot]"
			} else if strings.EqualFold(resolvedBotUsername, "none") {
				resolvedBotUsername = ""
			}

			result, err := reporter.Report(ctx, report.Request{
				Command:      command,
				ResultsPath:  resultsFile,
				CoveragePath: coverageFile,
				WorkingRoot:  workingDir,
				Context: domain.RequestContext{
					Owner:      owner,
					Repo:       repo,
					PullNumber: prNumber,
					HeadSHA:    headSHA,
				},
				CheckName:   checkName,
				Budget:      budget,
				BotUsername: resolvedBotUsername,
				SkipComment: skipComment || !defaults.CoverageComment,
				DryRun:      dryRun,
			})

			printSummary(cmd.OutOrStdout(), result, err)
			return err
		},
	}

	cmd.Flags().StringVar(&command, "command", defaults.Command, "Test command to execute via the shell (empty reports from existing artifacts)")
	cmd.Flags().StringVar(&resultsFile, "results", defaults.ResultsFile, "Path to the runner's JSON results file")
	cmd.Flags().StringVar(&coverageFile, "coverage", defaults.CoverageFile, "Path to the istanbul json-summary coverage file")
	cmd.Flags().StringVar(&workingDir, "working-dir", defaults.WorkingDir, "Directory the command runs in and paths are relativized against")

	cmd.Flags().StringVar(&owner, "owner", defaults.Owner, "Repository owner")
	cmd.Flags().StringVar(&repo, "repo", defaults.Repo, "Repository name")
	cmd.Flags().IntVar(&prNumber, "pr", 0, "Pull request number (0 skips the coverage comment)")
	cmd.Flags().StringVar(&headSHA, "sha", defaults.HeadSHA, "Head commit SHA the check run attaches to")

	cmd.Flags().StringVar(&checkName, "check-name", defaults.CheckName, "Name of the check run")
	cmd.Flags().IntVar(&budget, "budget", defaults.CharacterBudget, "Character budget for the check body and coverage table")
	cmd.Flags().StringVar(&botUsername, "bot-username", defaults.BotUsername, "Author of stale coverage comments to delete (\"none\" disables)")
	cmd.Flags().BoolVar(&skipComment, "skip-comment", false, "Do not post the coverage comment")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render reports without publishing anything")

	return cmd
}

// printSummary writes a short human-readable account of the run. The rendered
// result is still worth printing when the tests failed; only infrastructure
// errors leave nothing to summarize.
func printSummary(w io.Writer, result report.Result, err error) {
	if err != nil && !errors.Is(err, domain.ErrTestsFailed) && result.Check.Title == "" {
		return
	}

	// Glyphs only on an interactive terminal; CI logs stay plain.
	prefix := ""
	if report.IsOutputTerminal() {
		if result.Check.Conclusion == domain.ConclusionSuccess {
			prefix = "✔ "
		} else {
			prefix = "✘ "
		}
	}

	title := cases.Title(language.English)
	_, _ = fmt.Fprintf(w, "%s%s: %s\n", prefix, title.String(string(result.Check.Conclusion)), result.Check.Summary)
	if result.CheckURL != "" {
		_, _ = fmt.Fprintf(w, "Check: %s\n", result.CheckURL)
	}
	if result.CommentPosted {
		if result.DeletedStaleComments > 0 {
			_, _ = fmt.Fprintf(w, "Coverage comment posted (%d stale removed)\n", result.DeletedStaleComments)
		} else {
			_, _ = fmt.Fprintln(w, "Coverage comment posted")
		}
	}
	if result.CoverageDelta != nil {
		_, _ = fmt.Fprintf(w, "Line coverage: %+.2f%% vs previous run\n", *result.CoverageDelta)
	}
}
