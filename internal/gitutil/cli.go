package gitutil

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sevigo/issue-warden/internal/core"
)

// CLIRepository runs the git binary found on PATH.
type CLIRepository struct {
	dir    string
	token  string
	logger *slog.Logger
}

// NewCLIRepository returns a Repository backed by the git command line.
func NewCLIRepository(opts Options, logger *slog.Logger) *CLIRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIRepository{dir: opts.Dir, token: opts.Token, logger: logger}
}

func (r *CLIRepository) Dir() string { return r.dir }

// Clone clones remoteURL into Dir. The token is embedded in the origin URL so
// the later push reuses it.
func (r *CLIRepository) Clone(ctx context.Context, remoteURL string) error {
	authURL, err := AuthenticatedURL(remoteURL, r.token)
	if err != nil {
		return core.NewError(core.KindGit, "clone", err)
	}

	parent := filepath.Dir(r.dir)
	if err := os.MkdirAll(parent, 0o750); err != nil {
		return core.NewError(core.KindFilesystem, "clone", fmt.Errorf("failed to create %s: %w", parent, err))
	}

	r.logger.InfoContext(ctx, "cloning repository", "url", RedactURL(remoteURL), "path", r.dir)
	_, err = r.run(ctx, parent, "-c", "core.longpaths=true", "clone", authURL, r.dir)
	return err
}

func (r *CLIRepository) ConfigureIdentity(ctx context.Context, identity core.Identity) error {
	if _, err := r.run(ctx, r.dir, "config", "user.email", identity.Email); err != nil {
		return err
	}
	_, err := r.run(ctx, r.dir, "config", "user.name", identity.Name)
	return err
}

func (r *CLIRepository) CreateBranch(ctx context.Context, name string) error {
	r.logger.InfoContext(ctx, "creating branch", "branch", name)
	_, err := r.run(ctx, r.dir, "checkout", "-b", name)
	return err
}

func (r *CLIRepository) ListFiles(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, r.dir, "-c", "core.quotepath=false", "ls-files", "-z")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, f := range strings.Split(out, "\x00") {
		if f != "" {
			files = append(files, f)
		}
	}
	return files, nil
}

func (r *CLIRepository) CommitAll(ctx context.Context, message string) error {
	if _, err := r.run(ctx, r.dir, "add", "--all"); err != nil {
		return err
	}
	_, err := r.run(ctx, r.dir, "commit", "--allow-empty", "-m", message)
	return err
}

func (r *CLIRepository) Push(ctx context.Context, branch string) error {
	r.logger.InfoContext(ctx, "pushing branch", "branch", branch)
	_, err := r.run(ctx, r.dir, "push", "-u", "origin", branch)
	return err
}

// run executes git in dir and returns its stdout. On failure the error carries
// stderr with credentials stripped.
func (r *CLIRepository) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		op := "git " + subcommand(args)
		msg := strings.TrimSpace(RedactURL(stderr.String()))
		if msg == "" {
			msg = strings.TrimSpace(RedactURL(stdout.String()))
		}
		return "", core.NewError(core.KindGit, op, fmt.Errorf("%s: %w", msg, err))
	}
	return stdout.String(), nil
}

// subcommand skips leading "-c key=value" options.
func subcommand(args []string) string {
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" {
			i++
			continue
		}
		return args[i]
	}
	return ""
}
