package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds the service configuration read from the environment
type Config struct {
	GitHub GitHubConfig
	Jira   JiraConfig

	// LegacyApprovalCheck treats any approval lookup outcome as approved,
	// matching the behavior of the first release of this webhook.
	LegacyApprovalCheck bool `env:"LEGACY_APPROVAL_CHECK" envDefault:"false"`

	RESTPort string `env:"REST_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// GitHubConfig configures the GitHub REST client
type GitHubConfig struct {
	Token        string `env:"GITHUB_TOKEN"`
	ClassicToken string `env:"GITHUB_CLASSIC_TOKEN"`
	APIURL       string `env:"GITHUB_API_URL"`
	BaseBranch   string `env:"GITHUB_BASE_BRANCH" envDefault:"master"`
	PageSize     int    `env:"GITHUB_PAGE_SIZE" envDefault:"100"`
	MaxPages     int    `env:"GITHUB_MAX_PAGES" envDefault:"1"`
}

// JiraConfig configures decoding of native Jira webhook events
type JiraConfig struct {
	// RepositoryField is the ID of the issue custom field holding the
	// repository, e.g. "customfield_10050". When empty the repository is
	// taken from the request query.
	RepositoryField string `env:"JIRA_REPOSITORY_FIELD"`
}

// Load parses the environment into a Config
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = cfg.GitHub.ClassicToken
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	if c.GitHub.Token == "" {
		return fmt.Errorf("GITHUB_TOKEN or GITHUB_CLASSIC_TOKEN must be set")
	}
	if c.GitHub.PageSize < 1 || c.GitHub.PageSize > 100 {
		return fmt.Errorf("GITHUB_PAGE_SIZE must be between 1 and 100, got %d", c.GitHub.PageSize)
	}
	if c.GitHub.MaxPages < 1 {
		return fmt.Errorf("GITHUB_MAX_PAGES must be at least 1, got %d", c.GitHub.MaxPages)
	}
	if c.GitHub.BaseBranch == "" {
		return fmt.Errorf("GITHUB_BASE_BRANCH must not be empty")
	}
	return nil
}
