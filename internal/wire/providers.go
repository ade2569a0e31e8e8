package wire

import (
	"context"
	"log/slog"

	"github.com/google/wire"

	"github.com/sevigo/issue-warden/internal/app"
	"github.com/sevigo/issue-warden/internal/config"
	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/internal/github"
	"github.com/sevigo/issue-warden/internal/gitutil"
	"github.com/sevigo/issue-warden/internal/jobs"
	"github.com/sevigo/issue-warden/internal/llm"
	"github.com/sevigo/issue-warden/internal/logger"
)

var AppSet = wire.NewSet(
	app.NewApp,
	llm.NewPromptManager,
	provideSlogLogger,
	provideSession,
	provideGitHubClient,
	provideRepositoryFactory,
	provideCompleter,
	provideGenerator,
	provideIssueJob,
	wire.Bind(new(llm.FileEditGenerator), new(*llm.Generator)),
)

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	l := logger.NewLogger(cfg.Logging, nil)
	slog.SetDefault(l)
	return l
}

func provideSession(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*github.Session, error) {
	return github.NewSession(ctx, cfg, logger)
}

func provideGitHubClient(session *github.Session) github.Client {
	return session.Client
}

func provideRepositoryFactory(cfg *config.Config, logger *slog.Logger) (gitutil.Factory, error) {
	return gitutil.NewFactory(cfg.GitBackend, logger)
}

func provideCompleter(cfg *config.Config, logger *slog.Logger) (llm.Completer, error) {
	return llm.NewOpenAICompleter(cfg.AI, nil, logger)
}

func provideGenerator(completer llm.Completer, prompts *llm.PromptManager, cfg *config.Config, logger *slog.Logger) (*llm.Generator, error) {
	return llm.NewGenerator(completer, prompts, cfg.AI, logger)
}

func provideIssueJob(cfg *config.Config, session *github.Session, factory gitutil.Factory, generator llm.FileEditGenerator, logger *slog.Logger) core.Job {
	return jobs.NewIssueJob(cfg, session.Client, session.PushToken, factory, generator, logger)
}
