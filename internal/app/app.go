// Package app initializes and orchestrates the main components of issue-warden.
// It resolves the issue to work on and hands it to the issue job.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sevigo/issue-warden/internal/config"
	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/internal/github"
)

// App holds the main application components.
type App struct {
	Cfg    *config.Config
	Logger *slog.Logger
	GitHub github.Client
	Job    core.Job
}

// NewApp sets up the application with all its dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger, gh github.Client, job core.Job) *App {
	return &App{Cfg: cfg, Logger: logger, GitHub: gh, Job: job}
}

// Run resolves the issue and turns it into a pull request. A nil pull request
// without error means the run stopped early in dry-run mode.
func (a *App) Run(ctx context.Context) (*core.PullRequest, error) {
	a.Logger.Info("starting issue-warden",
		"repository", a.Cfg.Repository,
		"model", a.Cfg.AI.Model,
		"git_backend", a.Cfg.GitBackend,
		"dry_run", a.Cfg.DryRun,
	)

	issue, err := a.ResolveIssue(ctx)
	if err != nil {
		return nil, err
	}
	return a.Job.Run(ctx, issue)
}

// ResolveIssue decodes the issue payload from the configuration, or fetches the
// issue by number when no payload was given.
func (a *App) ResolveIssue(ctx context.Context) (*core.Issue, error) {
	if strings.TrimSpace(a.Cfg.IssuePayload) != "" {
		issue, err := core.IssueFromJSON([]byte(a.Cfg.IssuePayload))
		if err != nil {
			return nil, core.NewError(core.KindValidation, "resolve issue", err)
		}
		if a.Cfg.IssueNumber > 0 && a.Cfg.IssueNumber != issue.Number {
			a.Logger.Warn("issue number differs from payload, using payload",
				"payload_number", issue.Number, "configured_number", a.Cfg.IssueNumber)
		}
		return issue, nil
	}

	issue, err := a.GitHub.GetIssue(ctx, a.Cfg.Owner, a.Cfg.Name, a.Cfg.IssueNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issue #%d: %w", a.Cfg.IssueNumber, err)
	}
	return issue, nil
}
