// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/sevigo/issue-warden/internal/core"
)

// NewPullRequest holds the fields of a pull request to open.
type NewPullRequest struct {
	Title string
	Head  string
	Base  string
	Body  string
}

// Client defines the GitHub operations needed to turn an issue into a pull request.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	GetAuthenticatedUser(ctx context.Context) (*github.User, error)
	GetRepository(ctx context.Context, owner, repo string) (*core.Repository, error)
	GetIssue(ctx context.Context, owner, repo string, number int) (*core.Issue, error)
	CreatePullRequest(ctx context.Context, owner, repo string, pr NewPullRequest) (*core.PullRequest, error)
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewGitHubClient wraps the official go-github client to provide a focused,
// testable interface for application-specific GitHub operations.
func NewGitHubClient(client *github.Client, logger *slog.Logger) Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &gitHubClient{client: client, logger: logger}
}

// NewPATClient creates a new GitHub client authenticated with a Personal Access Token (PAT).
// An empty apiURL keeps the public GitHub endpoint.
func NewPATClient(ctx context.Context, token, apiURL string, logger *slog.Logger) (Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)
	if err := setBaseURL(client, apiURL); err != nil {
		return nil, err
	}
	return NewGitHubClient(client, logger), nil
}

func setBaseURL(client *github.Client, apiURL string) error {
	if apiURL == "" {
		return nil
	}
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	u, err := url.Parse(apiURL)
	if err != nil {
		return core.NewError(core.KindConfig, "github client", fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err))
	}
	client.BaseURL = u
	return nil
}

// GetAuthenticatedUser returns the user the token belongs to.
func (g *gitHubClient) GetAuthenticatedUser(ctx context.Context) (*github.User, error) {
	user, resp, err := g.client.Users.Get(ctx, "")
	if err != nil {
		g.logger.Error("failed to get authenticated user", "error", err)
		return nil, classify("get authenticated user", resp, err)
	}
	return user, nil
}

// GetRepository retrieves repository metadata, most importantly its default branch.
func (g *gitHubClient) GetRepository(ctx context.Context, owner, repo string) (*core.Repository, error) {
	r, resp, err := g.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		g.logger.Error("failed to get repository", "owner", owner, "repo", repo, "error", err)
		return nil, classify("get repository", resp, err)
	}
	return &core.Repository{
		Owner:         r.GetOwner().GetLogin(),
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		DefaultBranch: r.GetDefaultBranch(),
		CloneURL:      r.GetCloneURL(),
	}, nil
}

// GetIssue retrieves a single issue by its number. Pull requests are rejected.
func (g *gitHubClient) GetIssue(ctx context.Context, owner, repo string, number int) (*core.Issue, error) {
	issue, resp, err := g.client.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		g.logger.Error("failed to get issue", "owner", owner, "repo", repo, "issue", number, "error", err)
		return nil, classify("get issue", resp, err)
	}
	if issue.IsPullRequest() {
		return nil, core.NewError(core.KindValidation, "get issue", fmt.Errorf("#%d is a pull request, not an issue", number))
	}
	return core.IssueFromGitHub(issue)
}

// CreatePullRequest opens a pull request. It is called once; a failure ends the run.
func (g *gitHubClient) CreatePullRequest(ctx context.Context, owner, repo string, pr NewPullRequest) (*core.PullRequest, error) {
	created, resp, err := g.client.PullRequests.Create(ctx, owner, repo, &github.NewPullRequest{
		Title: github.Ptr(pr.Title),
		Head:  github.Ptr(pr.Head),
		Base:  github.Ptr(pr.Base),
		Body:  github.Ptr(pr.Body),
	})
	if err != nil {
		g.logger.Error("failed to create pull request", "owner", owner, "repo", repo, "head", pr.Head, "base", pr.Base, "error", err)
		return nil, classify("create pull request", resp, err)
	}
	return &core.PullRequest{
		Number: created.GetNumber(),
		URL:    created.GetHTMLURL(),
		Branch: pr.Head,
	}, nil
}
