package gitutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/sevigo/issue-warden/internal/core"
)

const remoteName = "origin"

// GoGitRepository implements Repository in-process with go-git.
type GoGitRepository struct {
	dir      string
	token    string
	logger   *slog.Logger
	repo     *git.Repository
	identity core.Identity
}

// NewGoGitRepository returns a Repository that does not need a git binary.
func NewGoGitRepository(opts Options, logger *slog.Logger) *GoGitRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoGitRepository{dir: opts.Dir, token: opts.Token, logger: logger}
}

func (r *GoGitRepository) Dir() string { return r.dir }

func (r *GoGitRepository) Clone(ctx context.Context, remoteURL string) error {
	// Validates the scheme; credentials travel as BasicAuth instead.
	if _, err := AuthenticatedURL(remoteURL, ""); err != nil {
		return core.NewError(core.KindGit, "clone", err)
	}

	r.logger.InfoContext(ctx, "cloning repository", "url", RedactURL(remoteURL), "path", r.dir)
	repo, err := git.PlainCloneContext(ctx, r.dir, false, &git.CloneOptions{
		URL:  remoteURL,
		Auth: r.auth(remoteURL),
	})
	if err != nil {
		return gitError("clone", err)
	}
	r.repo = repo
	return nil
}

func (r *GoGitRepository) ConfigureIdentity(_ context.Context, identity core.Identity) error {
	repo, err := r.open()
	if err != nil {
		return err
	}
	cfg, err := repo.Config()
	if err != nil {
		return gitError("config", err)
	}
	cfg.User.Name = identity.Name
	cfg.User.Email = identity.Email
	if err := repo.SetConfig(cfg); err != nil {
		return gitError("config", err)
	}
	r.identity = identity
	return nil
}

func (r *GoGitRepository) CreateBranch(ctx context.Context, name string) error {
	repo, err := r.open()
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return gitError("checkout", err)
	}

	r.logger.InfoContext(ctx, "creating branch", "branch", name)
	err = wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	})
	if err != nil {
		return gitError("checkout", fmt.Errorf("failed to create branch %s: %w", name, err))
	}
	return nil
}

func (r *GoGitRepository) ListFiles(_ context.Context) ([]string, error) {
	repo, err := r.open()
	if err != nil {
		return nil, err
	}
	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, gitError("ls-files", err)
	}
	files := make([]string, 0, len(idx.Entries))
	for _, entry := range idx.Entries {
		files = append(files, entry.Name)
	}
	return files, nil
}

func (r *GoGitRepository) CommitAll(_ context.Context, message string) error {
	repo, err := r.open()
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return gitError("commit", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return gitError("add", err)
	}

	opts := &git.CommitOptions{AllowEmptyCommits: true}
	if r.identity.Name != "" {
		opts.Author = &object.Signature{
			Name:  r.identity.Name,
			Email: r.identity.Email,
			When:  time.Now(),
		}
	}
	if _, err := wt.Commit(message, opts); err != nil {
		return gitError("commit", err)
	}
	return nil
}

func (r *GoGitRepository) Push(ctx context.Context, branch string) error {
	repo, err := r.open()
	if err != nil {
		return err
	}
	remote, err := repo.Remote(remoteName)
	if err != nil {
		return gitError("push", err)
	}

	ref := plumbing.NewBranchReferenceName(branch)
	r.logger.InfoContext(ctx, "pushing branch", "branch", branch)
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []config.RefSpec{config.RefSpec(fmt.Sprintf("%s:%s", ref, ref))},
		Auth:       r.auth(remote.Config().URLs[0]),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return gitError("push", err)
	}

	err = repo.CreateBranch(&config.Branch{Name: branch, Remote: remoteName, Merge: ref})
	if err != nil && !errors.Is(err, git.ErrBranchExists) {
		r.logger.WarnContext(ctx, "failed to set upstream", "branch", branch, "error", err)
	}
	return nil
}

func (r *GoGitRepository) open() (*git.Repository, error) {
	if r.repo != nil {
		return r.repo, nil
	}
	repo, err := git.PlainOpen(r.dir)
	if err != nil {
		return nil, gitError("open", fmt.Errorf("failed to open repository at %s: %w", r.dir, err))
	}
	r.repo = repo
	return repo, nil
}

func (r *GoGitRepository) auth(remoteURL string) transport.AuthMethod {
	if r.token == "" || !strings.HasPrefix(remoteURL, "http") {
		return nil
	}
	return &http.BasicAuth{Username: "x-access-token", Password: r.token}
}

func gitError(op string, err error) error {
	if msg := RedactURL(err.Error()); msg != err.Error() {
		err = errors.New(msg)
	}
	return core.NewError(core.KindGit, op, err)
}
