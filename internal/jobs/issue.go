// Package jobs defines the work a run performs: turning an issue into a pull request.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/sevigo/issue-warden/internal/config"
	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/internal/github"
	"github.com/sevigo/issue-warden/internal/gitutil"
	"github.com/sevigo/issue-warden/internal/llm"
)

// IssueJob clones the repository, asks the model for edits, and opens a pull request.
type IssueJob struct {
	cfg       *config.Config
	gh        github.Client
	pushToken string
	newRepo   gitutil.Factory
	generator llm.FileEditGenerator
	logger    *slog.Logger
}

// NewIssueJob creates a new IssueJob. pushToken is embedded into the clone URL and
// used for the push.
func NewIssueJob(cfg *config.Config, gh github.Client, pushToken string, newRepo gitutil.Factory, generator llm.FileEditGenerator, logger *slog.Logger) core.Job {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if gh == nil {
		panic("GitHub client cannot be nil")
	}
	if newRepo == nil {
		panic("repository factory cannot be nil")
	}
	if generator == nil {
		panic("generator cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &IssueJob{
		cfg:       cfg,
		gh:        gh,
		pushToken: pushToken,
		newRepo:   newRepo,
		generator: generator,
		logger:    logger,
	}
}

// Run executes every step for the issue in order. Nothing is rolled back when a
// step fails: a pushed branch or written files stay as they are.
func (j *IssueJob) Run(ctx context.Context, issue *core.Issue) (*core.PullRequest, error) {
	if issue == nil || issue.Number <= 0 {
		return nil, core.NewError(core.KindValidation, "run", errors.New("a valid issue is required"))
	}
	logger := j.logger.With("repo", j.cfg.Repository, "issue", issue.Number)
	logger.InfoContext(ctx, "Starting issue job", "title", issue.Title)

	identity, err := github.ResolveIdentity(ctx, j.gh, j.cfg.GitHub.PersonalAccessToken == "" && j.cfg.GitHub.UsesApp())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve commit identity: %w", err)
	}

	repo, err := j.gh.GetRepository(ctx, j.cfg.Owner, j.cfg.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository: %w", err)
	}
	owner, name := j.cfg.Owner, j.cfg.Name
	logger.InfoContext(ctx, "Fetched repository metadata", "default_branch", repo.DefaultBranch)

	dir := filepath.Join(j.cfg.WorkspaceDir, name)
	wc, err := j.newRepo(gitutil.Options{Dir: dir, Token: j.pushToken})
	if err != nil {
		return nil, err
	}

	cloneURL := repo.CloneURL
	if cloneURL == "" {
		cloneURL = gitutil.CloneURL(j.cfg.GitHub.ServerURL, owner, name)
	}

	branch := core.BranchName(issue.Number)
	files, err := j.prepareWorkingCopy(ctx, logger, wc, cloneURL, identity, branch)
	if err != nil {
		return nil, err
	}

	repoCfg := j.loadRepoConfig(ctx, logger, dir)
	promptFiles := gitutil.FilterFiles(files, repoCfg)
	logger.InfoContext(ctx, "Querying model", "model", j.cfg.AI.Model, "files", len(promptFiles))

	edits, err := j.generator.GenerateFileEdits(ctx, issue, promptFiles, repoCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate file edits: %w", err)
	}

	modified, created := PartitionEdits(logger, edits, files)
	if err := gitutil.WriteFiles(wc.Dir(), edits); err != nil {
		return nil, fmt.Errorf("failed to write files: %w", err)
	}
	logger.InfoContext(ctx, "Wrote file edits", "modified", len(modified), "created", len(created))

	if j.cfg.DryRun {
		logger.InfoContext(ctx, "Dry run: skipping commit, push and pull request", "path", wc.Dir())
		return nil, nil
	}

	if err := wc.CommitAll(ctx, core.CommitMessage(issue.Number)); err != nil {
		return nil, fmt.Errorf("failed to commit changes: %w", err)
	}
	if err := wc.Push(ctx, branch); err != nil {
		return nil, fmt.Errorf("failed to push branch %s: %w", branch, err)
	}
	logger.InfoContext(ctx, "Pushed branch", "branch", branch)

	pr, err := j.gh.CreatePullRequest(ctx, owner, name, github.NewPullRequest{
		Title: core.PullRequestTitle(issue.Number),
		Head:  branch,
		Base:  repo.DefaultBranch,
		Body:  core.PullRequestBody(issue.Number),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}

	logger.InfoContext(ctx, "Successfully opened pull request", "pr", pr.Number, "url", pr.URL)
	return pr, nil
}

func (j *IssueJob) prepareWorkingCopy(ctx context.Context, logger *slog.Logger, wc gitutil.Repository, cloneURL string, identity core.Identity, branch string) ([]string, error) {
	if err := wc.Clone(ctx, cloneURL); err != nil {
		return nil, fmt.Errorf("failed to clone repository: %w", err)
	}
	if err := wc.ConfigureIdentity(ctx, identity); err != nil {
		return nil, fmt.Errorf("failed to configure commit identity: %w", err)
	}
	if err := wc.CreateBranch(ctx, branch); err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}
	files, err := wc.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	logger.InfoContext(ctx, "Prepared working copy", "path", wc.Dir(), "branch", branch, "tracked_files", len(files))
	return files, nil
}

func (j *IssueJob) loadRepoConfig(ctx context.Context, logger *slog.Logger, dir string) *core.RepoConfig {
	repoCfg, err := config.LoadRepoConfig(dir)
	switch {
	case err == nil:
		logger.InfoContext(ctx, "Loaded repository config", "file", config.RepoConfigFile)
		return repoCfg
	case errors.Is(err, config.ErrConfigNotFound):
		return repoCfg
	default:
		logger.WarnContext(ctx, "Ignoring invalid repository config", "file", config.RepoConfigFile, "error", err)
		return core.DefaultRepoConfig()
	}
}
