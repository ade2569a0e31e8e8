package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/sevigo/issue-warden/internal/config"
	"github.com/sevigo/issue-warden/internal/core"
)

// Session is an authenticated API client plus the token git uses to push.
type Session struct {
	Client    Client
	PushToken string
}

// NewSession authenticates against GitHub. A personal access token wins, then
// GitHub App credentials, then the workflow token. The push token is whichever
// of those credentials was chosen.
func NewSession(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Session, error) {
	gh := cfg.GitHub
	switch {
	case gh.PersonalAccessToken != "":
		logger.Info("using personal access token for GitHub")
		return tokenSession(ctx, gh.PersonalAccessToken, gh.APIURL, logger)
	case gh.UsesApp():
		client, token, err := CreateInstallationClient(ctx, cfg, gh.InstallationID, logger)
		if err != nil {
			return nil, err
		}
		return &Session{Client: client, PushToken: token}, nil
	case gh.Token != "":
		logger.Info("using workflow token for GitHub")
		return tokenSession(ctx, gh.Token, gh.APIURL, logger)
	default:
		return nil, core.NewError(core.KindConfig, "github session", fmt.Errorf("no GitHub credentials configured"))
	}
}

func tokenSession(ctx context.Context, token, apiURL string, logger *slog.Logger) (*Session, error) {
	client, err := NewPATClient(ctx, token, apiURL, logger)
	if err != nil {
		return nil, err
	}
	return &Session{Client: client, PushToken: token}, nil
}

// CreateInstallationClient creates a GitHub client that is authenticated as a specific
// application installation. It returns the client and the raw installation token.
func CreateInstallationClient(ctx context.Context, cfg *config.Config, installationID int64, logger *slog.Logger) (Client, string, error) {
	logger.Info("Creating GitHub installation client", "installation_id", installationID)

	privateKey, err := os.ReadFile(cfg.GitHub.PrivateKeyPath)
	if err != nil {
		return nil, "", core.NewError(core.KindConfig, "github app",
			fmt.Errorf("failed to read private key from %s: %w", cfg.GitHub.PrivateKeyPath, err))
	}

	// The apps transport signs JWTs for the App API, which mints installation tokens.
	appTransport, err := ghinstallation.NewAppsTransport(http.DefaultTransport, cfg.GitHub.AppID, privateKey)
	if err != nil {
		return nil, "", core.NewError(core.KindAuth, "github app", fmt.Errorf("failed to create GitHub App transport: %w", err))
	}
	appClient := github.NewClient(&http.Client{Transport: appTransport})
	if err := setBaseURL(appClient, cfg.GitHub.APIURL); err != nil {
		return nil, "", err
	}
	appTransport.BaseURL = appClient.BaseURL.String()

	token, resp, err := appClient.Apps.CreateInstallationToken(ctx, installationID, nil)
	if err != nil {
		return nil, "", classify("create installation token",
			resp, fmt.Errorf("failed to create installation token for installation ID %d: %w", installationID, err))
	}
	if token.GetToken() == "" {
		return nil, "", core.NewError(core.KindAuth, "create installation token", fmt.Errorf("received an empty installation token"))
	}
	logger.Info("Successfully created installation token", "installation_id", installationID, "expires_at", token.GetExpiresAt())

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token.GetToken()})
	tc := oauth2.NewClient(ctx, ts)
	installationClient := github.NewClient(tc)
	installationClient.BaseURL = appClient.BaseURL

	return NewGitHubClient(installationClient, logger), token.GetToken(), nil
}
