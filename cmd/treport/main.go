package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bkyoung/test-reporter/internal/adapter/cli"
	githubadapter "github.com/bkyoung/test-reporter/internal/adapter/github"
	"github.com/bkyoung/test-reporter/internal/adapter/gitinfo"
	"github.com/bkyoung/test-reporter/internal/adapter/observability"
	"github.com/bkyoung/test-reporter/internal/adapter/rest"
	"github.com/bkyoung/test-reporter/internal/adapter/results"
	"github.com/bkyoung/test-reporter/internal/adapter/runner"
	"github.com/bkyoung/test-reporter/internal/adapter/store/sqlite"
	"github.com/bkyoung/test-reporter/internal/config"
	"github.com/bkyoung/test-reporter/internal/domain"
	usecasegithub "github.com/bkyoung/test-reporter/internal/usecase/github"
	"github.com/bkyoung/test-reporter/internal/usecase/report"
	"github.com/bkyoung/test-reporter/internal/version"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, domain.ErrTestsFailed) {
			os.Exit(1)
		}
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	// Cancellable context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "treport",
		EnvPrefix:   "TREPORT",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	workDir := cfg.Test.WorkingDir
	if workDir == "" {
		workDir = "."
	}

	token := cfg.GitHub.Token
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("github token required; set GITHUB_TOKEN or github.token in treport.yaml")
	}

	var restLogger rest.Logger
	if cfg.Observability.Logging.Enabled {
		restLogger = rest.NewDefaultLogger(
			rest.ParseLogLevel(cfg.Observability.Logging.Level),
			rest.ParseLogFormat(cfg.Observability.Logging.Format),
		)
	}

	githubClient := githubadapter.NewClient(token)
	if cfg.GitHub.APIBaseURL != "" {
		githubClient.SetBaseURL(cfg.GitHub.APIBaseURL)
	}
	publisher := usecasegithub.NewReportPublisher(githubClient)

	orchestrator := report.NewOrchestrator(
		runner.NewRunner(workDir),
		results.NewLoader(),
		publisher,
	)
	if restLogger != nil {
		orchestrator.WithLogger(observability.NewReportLogger(restLogger))
	}

	if cfg.Store.Enabled {
		storeDir := filepath.Dir(cfg.Store.Path)
		if err := os.MkdirAll(storeDir, 0755); err != nil {
			log.Printf("warning: failed to create store directory: %v", err)
		} else {
			history, err := sqlite.NewStore(cfg.Store.Path)
			if err != nil {
				log.Printf("warning: failed to initialize run history store: %v", err)
			} else {
				orchestrator.WithHistory(history)
				defer history.Close()
			}
		}
	}

	owner, repoName, headSHA := resolveRepoIdentity(workDir)

	root := cli.NewRootCommand(cli.Dependencies{
		Reporter: orchestrator,
		Defaults: cli.Defaults{
			Command:         cfg.Test.Command,
			ResultsFile:     cfg.Test.ResultsFile,
			CoverageFile:    cfg.Test.CoverageFile,
			WorkingDir:      workDir,
			Owner:           owner,
			Repo:            repoName,
			HeadSHA:         headSHA,
			CheckName:       cfg.Report.CheckName,
			CharacterBudget: cfg.Report.CharacterBudget,
			BotUsername:     cfg.GitHub.BotUsername,
			CoverageComment: cfg.Report.CoverageComment,
		},
		Version: version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		if errors.Is(err, domain.ErrTestsFailed) {
			return err
		}
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

// resolveRepoIdentity derives owner, repo, and head SHA defaults. Actions
// environment variables win over the local checkout; either source can be
// overridden by flags.
func resolveRepoIdentity(workDir string) (owner, repo, headSHA string) {
	if ghRepo := os.Getenv("GITHUB_REPOSITORY"); ghRepo != "" {
		if parts := strings.SplitN(ghRepo, "/", 2); len(parts) == 2 {
			owner = parts[0]
			repo = parts[1]
		}
	}
	headSHA = os.Getenv("GITHUB_SHA")

	if owner != "" && repo != "" && headSHA != "" {
		return owner, repo, headSHA
	}

	info, err := gitinfo.Resolve(workDir)
	if err != nil {
		return owner, repo, headSHA
	}
	if owner == "" {
		owner = info.Owner
	}
	if repo == "" {
		repo = info.Repo
	}
	if headSHA == "" {
		headSHA = info.HeadSHA
	}
	return owner, repo, headSHA
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "treport"))
	}
	return paths
}
