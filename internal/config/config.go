package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/internal/gitutil"
	"github.com/sevigo/issue-warden/internal/logger"
)

// Environment keys. Most match the inputs of the GitHub Action the bot runs as.
const (
	KeyGitHubToken         = "GITHUB_TOKEN"
	KeyPersonalAccessToken = "INPUT_PERSONAL_ACCESS_TOKEN"
	KeyGitHubAppID         = "GITHUB_APP_ID"
	KeyGitHubInstallation  = "GITHUB_INSTALLATION_ID"
	KeyGitHubPrivateKey    = "GITHUB_PRIVATE_KEY_PATH"
	KeyGitHubAPIURL        = "GITHUB_API_URL"
	KeyGitHubServerURL     = "GITHUB_SERVER_URL"

	KeyAIAPIKey              = "AI_API_KEY"
	KeyPurGPTAPIKey          = "INPUT_PURGPT_API_KEY"
	KeyLLMAPIKey             = "LLM_API_KEY"
	KeyAIBaseURL             = "LLM_BASE_URL"
	KeyAIModel               = "INPUT_MODEL"
	KeyAIMaxAttempts         = "LLM_MAX_ATTEMPTS"
	KeyAIRetryDelay          = "LLM_RETRY_DELAY"
	KeyAIMaxValidation       = "LLM_MAX_VALIDATION_ATTEMPTS"
	KeyAIRequestTimeout      = "LLM_REQUEST_TIMEOUT"
	KeyIssue                 = "INPUT_ISSUE"
	KeyIssueNumber           = "INPUT_ISSUE_NUMBER"
	KeyRepository            = "INPUT_REPOSITORY"
	KeyWorkspaceDir          = "WORKSPACE_DIR"
	KeyGitBackend            = "GIT_BACKEND"
	KeyDryRun                = "DRY_RUN"
	KeyLogLevel              = "LOG_LEVEL"
	KeyLogFormat             = "LOG_FORMAT"
	KeyLogOutput             = "LOG_OUTPUT"
	DefaultModel             = "gpt-3.5-turbo-16k"
	DefaultAIBaseURL         = "https://api.openai.com/v1/"
	DefaultGitHubAPIURL      = "https://api.github.com/"
	DefaultGitHubServerURL   = "https://github.com"
	GitBackendCLI            = gitutil.BackendCLI
	GitBackendGoGit          = gitutil.BackendGoGit
	maxValidationAttemptsCap = 20
)

// Config holds the application's configuration values. It is built once by
// LoadConfig and treated as read-only afterwards.
type Config struct {
	GitHub       GitHubConfig
	AI           AIConfig
	IssuePayload string
	IssueNumber  int
	Repository   string
	Owner        string
	Name         string
	WorkspaceDir string
	GitBackend   string
	DryRun       bool
	Logging      logger.Config
}

// GitHubConfig holds the credentials and endpoints of the source-hosting API.
type GitHubConfig struct {
	Token               string
	PersonalAccessToken string
	AppID               int64
	InstallationID      int64
	PrivateKeyPath      string
	APIURL              string
	ServerURL           string
}

// AIConfig holds the chat-completion endpoint settings and retry bounds.
type AIConfig struct {
	APIKey                string
	BaseURL               string
	Model                 string
	MaxAttempts           int
	RetryDelay            time.Duration
	MaxValidationAttempts int
	RequestTimeout        time.Duration
}

// UsesApp reports whether GitHub App installation credentials are configured.
func (c GitHubConfig) UsesApp() bool {
	return c.AppID != 0 && c.InstallationID != 0 && c.PrivateKeyPath != ""
}

// APIToken returns the token used for API calls. The personal access token wins
// because it is also the identity that pushes the branch.
func (c GitHubConfig) APIToken() string {
	if c.PersonalAccessToken != "" {
		return c.PersonalAccessToken
	}
	return c.Token
}

// Validate checks the retry and endpoint settings.
func (c AIConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("an LLM API key must be set (INPUT_PURGPT_API_KEY or LLM_API_KEY)")
	}
	if c.Model == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	if !strings.HasPrefix(c.BaseURL, "https://") && !strings.HasPrefix(c.BaseURL, "http://") {
		return fmt.Errorf("invalid LLM base URL: %q", c.BaseURL)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("LLM_MAX_ATTEMPTS must be at least 1, got %d", c.MaxAttempts)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("LLM_RETRY_DELAY cannot be negative")
	}
	if c.MaxValidationAttempts < 1 || c.MaxValidationAttempts > maxValidationAttemptsCap {
		return fmt.Errorf("LLM_MAX_VALIDATION_ATTEMPTS must be between 1 and %d, got %d", maxValidationAttemptsCap, c.MaxValidationAttempts)
	}
	return nil
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.AI.Validate(); err != nil {
		return err
	}
	if c.Owner == "" || c.Name == "" {
		return fmt.Errorf("INPUT_REPOSITORY must be set as owner/name")
	}
	if strings.TrimSpace(c.IssuePayload) == "" && c.IssueNumber <= 0 {
		return fmt.Errorf("either INPUT_ISSUE or an issue number must be set")
	}
	if c.GitHub.APIToken() == "" && !c.GitHub.UsesApp() {
		return fmt.Errorf("no GitHub credentials: set GITHUB_TOKEN, INPUT_PERSONAL_ACCESS_TOKEN or the GitHub App settings")
	}
	if !c.DryRun && c.GitHub.PersonalAccessToken == "" && !c.GitHub.UsesApp() {
		return fmt.Errorf("INPUT_PERSONAL_ACCESS_TOKEN or GitHub App settings are required to push the branch")
	}
	switch c.GitBackend {
	case GitBackendCLI, GitBackendGoGit:
	default:
		return fmt.Errorf("unsupported git backend: %s", c.GitBackend)
	}
	return nil
}

// SetDefaults registers default values and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyGitHubAPIURL, DefaultGitHubAPIURL)
	v.SetDefault(KeyGitHubServerURL, DefaultGitHubServerURL)
	v.SetDefault(KeyAIBaseURL, DefaultAIBaseURL)
	v.SetDefault(KeyAIModel, DefaultModel)
	v.SetDefault(KeyAIMaxAttempts, 3)
	v.SetDefault(KeyAIRetryDelay, 3*time.Second)
	v.SetDefault(KeyAIMaxValidation, 5)
	v.SetDefault(KeyAIRequestTimeout, 5*time.Minute)
	v.SetDefault(KeyWorkspaceDir, ".")
	v.SetDefault(KeyGitBackend, GitBackendCLI)
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyLogOutput, "stderr")

	// Action input name first, provider-neutral name second.
	_ = v.BindEnv(KeyAIAPIKey, KeyPurGPTAPIKey, KeyLLMAPIKey)
	v.AutomaticEnv()
}

// LoadConfig reads configuration from environment variables and an optional .env
// file, applies defaults and validates required fields. Values bound to v from
// command-line flags take precedence over the environment.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to read .env file", "error", err)
		}
	}

	cfg := &Config{
		GitHub: GitHubConfig{
			Token:               v.GetString(KeyGitHubToken),
			PersonalAccessToken: v.GetString(KeyPersonalAccessToken),
			AppID:               v.GetInt64(KeyGitHubAppID),
			InstallationID:      v.GetInt64(KeyGitHubInstallation),
			PrivateKeyPath:      v.GetString(KeyGitHubPrivateKey),
			APIURL:              v.GetString(KeyGitHubAPIURL),
			ServerURL:           strings.TrimSuffix(v.GetString(KeyGitHubServerURL), "/"),
		},
		AI: AIConfig{
			APIKey:                apiKey(v),
			BaseURL:               v.GetString(KeyAIBaseURL),
			Model:                 v.GetString(KeyAIModel),
			MaxAttempts:           v.GetInt(KeyAIMaxAttempts),
			RetryDelay:            v.GetDuration(KeyAIRetryDelay),
			MaxValidationAttempts: v.GetInt(KeyAIMaxValidation),
			RequestTimeout:        v.GetDuration(KeyAIRequestTimeout),
		},
		IssuePayload: v.GetString(KeyIssue),
		IssueNumber:  v.GetInt(KeyIssueNumber),
		Repository:   strings.TrimSpace(v.GetString(KeyRepository)),
		WorkspaceDir: v.GetString(KeyWorkspaceDir),
		GitBackend:   strings.ToLower(v.GetString(KeyGitBackend)),
		DryRun:       v.GetBool(KeyDryRun),
		Logging: logger.Config{
			Level:  strings.ToLower(v.GetString(KeyLogLevel)),
			Format: strings.ToLower(v.GetString(KeyLogFormat)),
			Output: strings.ToLower(v.GetString(KeyLogOutput)),
		},
	}

	if cfg.Repository != "" {
		owner, name, err := gitutil.ParseRepository(cfg.Repository)
		if err != nil {
			return nil, core.NewError(core.KindConfig, "load config", err)
		}
		cfg.Owner, cfg.Name = owner, name
	}

	if err := cfg.Validate(); err != nil {
		return nil, core.NewError(core.KindConfig, "load config", err)
	}
	return cfg, nil
}

// apiKey resolves the LLM key. BindEnv only covers real environment variables,
// so the .env names are looked up one by one afterwards.
func apiKey(v *viper.Viper) string {
	for _, key := range []string{KeyAIAPIKey, KeyPurGPTAPIKey, KeyLLMAPIKey} {
		if value := v.GetString(key); value != "" {
			return value
		}
	}
	return ""
}
