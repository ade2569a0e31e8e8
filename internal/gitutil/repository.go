// Package gitutil provides working-copy operations on Git repositories.
package gitutil

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/issue-warden/internal/core"
)

// Backend names accepted by NewFactory.
const (
	BackendCLI   = "cli"
	BackendGoGit = "gogit"
)

// Repository is a local working copy of a remote repository.
//
//go:generate mockgen -destination=../../mocks/mock_git_repository.go -package=mocks . Repository
type Repository interface {
	// Clone clones remoteURL into the directory the repository was created for.
	Clone(ctx context.Context, remoteURL string) error
	ConfigureIdentity(ctx context.Context, identity core.Identity) error
	// CreateBranch creates name from HEAD and switches to it.
	CreateBranch(ctx context.Context, name string) error
	// ListFiles returns the paths tracked by git, relative to Dir.
	ListFiles(ctx context.Context) ([]string, error)
	// CommitAll stages every change in the worktree and commits it. A commit is
	// created even when nothing changed.
	CommitAll(ctx context.Context, message string) error
	// Push publishes branch to origin and sets it as upstream.
	Push(ctx context.Context, branch string) error
	Dir() string
}

// Options configure a new Repository.
type Options struct {
	Dir   string
	Token string
}

// Factory creates a Repository for a working directory.
type Factory func(opts Options) (Repository, error)

// NewFactory returns the Factory for backend.
func NewFactory(backend string, logger *slog.Logger) (Factory, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch backend {
	case BackendCLI, "":
		return func(opts Options) (Repository, error) {
			return NewCLIRepository(opts, logger), nil
		}, nil
	case BackendGoGit:
		return func(opts Options) (Repository, error) {
			return NewGoGitRepository(opts, logger), nil
		}, nil
	default:
		return nil, core.NewError(core.KindConfig, "git backend", fmt.Errorf("unsupported git backend: %s", backend))
	}
}
