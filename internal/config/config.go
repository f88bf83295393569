package config

// Config represents the full application configuration.
type Config struct {
	GitHub        GitHubConfig        `yaml:"github"`
	Test          TestConfig          `yaml:"test"`
	Report        ReportConfig        `yaml:"report"`
	Store         StoreConfig         `yaml:"store"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// GitHubConfig holds API access and comment-lifecycle settings.
type GitHubConfig struct {
	// Token is the API token. Usually left empty here and supplied via the
	// GITHUB_TOKEN environment variable.
	Token string `yaml:"token"`

	// APIBaseURL overrides the API endpoint for GitHub Enterprise.
	APIBaseURL string `yaml:"apiBaseURL"`

	// BotUsername is the author of coverage comments, used to find stale ones
	// to delete. Set to "none" to explicitly disable the cleanup.
	// Default: "github-actions[bot]"
	BotUsername string `yaml:"botUsername"`
}

// TestConfig describes the test command and its artifacts.
type TestConfig struct {
	// Command is the test command executed via the shell. It must write the
	// JSON results file, e.g. "npx jest --json --outputFile=test-results.json".
	Command string `yaml:"command"`

	// ResultsFile is the runner's JSON results file path.
	ResultsFile string `yaml:"resultsFile"`

	// CoverageFile is the istanbul json-summary file path. The coverage
	// comment is skipped when the file is absent.
	CoverageFile string `yaml:"coverageFile"`

	// WorkingDir is where the command runs and what absolute paths are
	// relativized against.
	WorkingDir string `yaml:"workingDir"`
}

// ReportConfig controls the rendered reports.
type ReportConfig struct {
	// CheckName is the check-run name shown in the PR checks list.
	CheckName string `yaml:"checkName"`

	// CharacterBudget bounds the check body and the coverage detail table.
	CharacterBudget int `yaml:"characterBudget"`

	// CoverageComment toggles posting the coverage comment.
	CoverageComment bool `yaml:"coverageComment"`
}

// StoreConfig configures the run-history persistence layer.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`  // debug, info, warning, error
	Format  string `yaml:"format"` // json, human
}

// Merge combines multiple configuration instances, prioritising the latter ones.
func Merge(configs ...Config) Config {
	result := Config{}
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}

func merge(base, overlay Config) Config {
	result := base

	result.GitHub = chooseGitHub(base.GitHub, overlay.GitHub)
	result.Test = chooseTest(base.Test, overlay.Test)
	result.Report = chooseReport(base.Report, overlay.Report)
	result.Store = chooseStore(base.Store, overlay.Store)
	result.Observability = chooseObservability(base.Observability, overlay.Observability)

	return result
}

func chooseGitHub(base, overlay GitHubConfig) GitHubConfig {
	result := base
	if overlay.Token != "" {
		result.Token = overlay.Token
	}
	if overlay.APIBaseURL != "" {
		result.APIBaseURL = overlay.APIBaseURL
	}
	if overlay.BotUsername != "" {
		result.BotUsername = overlay.BotUsername
	}
	return result
}

func chooseTest(base, overlay TestConfig) TestConfig {
	result := base
	if overlay.Command != "" {
		result.Command = overlay.Command
	}
	if overlay.ResultsFile != "" {
		result.ResultsFile = overlay.ResultsFile
	}
	if overlay.CoverageFile != "" {
		result.CoverageFile = overlay.CoverageFile
	}
	if overlay.WorkingDir != "" {
		result.WorkingDir = overlay.WorkingDir
	}
	return result
}

func chooseReport(base, overlay ReportConfig) ReportConfig {
	result := base
	if overlay.CheckName != "" {
		result.CheckName = overlay.CheckName
	}
	if overlay.CharacterBudget != 0 {
		result.CharacterBudget = overlay.CharacterBudget
	}
	if overlay.CoverageComment {
		result.CoverageComment = true
	}
	return result
}

func chooseStore(base, overlay StoreConfig) StoreConfig {
	if overlay.Enabled || overlay.Path != "" {
		return overlay
	}
	return base
}

func chooseObservability(base, overlay ObservabilityConfig) ObservabilityConfig {
	result := base
	if overlay.Logging.Enabled || overlay.Logging.Level != "" || overlay.Logging.Format != "" {
		result.Logging = overlay.Logging
	}
	return result
}
