package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/issue-warden/internal/config"
	"github.com/sevigo/issue-warden/internal/core"
)

// FileEditGenerator turns an issue into file edits.
//
//go:generate mockgen -destination=../../mocks/mock_file_edit_generator.go -package=mocks . FileEditGenerator
type FileEditGenerator interface {
	GenerateFileEdits(ctx context.Context, issue *core.Issue, files []string, repoCfg *core.RepoConfig) ([]core.FileEdit, error)
}

// Generator asks the model for file edits and re-asks while the answer does not
// parse, up to a fixed number of times.
type Generator struct {
	completer   Completer
	prompts     *PromptManager
	provider    ModelProvider
	maxAttempts int
	schema      string
	logger      *slog.Logger
}

func NewGenerator(completer Completer, prompts *PromptManager, cfg config.AIConfig, logger *slog.Logger) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := FileEditsSchema()
	if err != nil {
		return nil, err
	}
	maxAttempts := cfg.MaxValidationAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Generator{
		completer:   completer,
		prompts:     prompts,
		provider:    ModelProvider(cfg.Model),
		maxAttempts: maxAttempts,
		schema:      schema,
		logger:      logger,
	}, nil
}

// Messages renders the system and user messages for issue.
func (g *Generator) Messages(issue *core.Issue, files []string, repoCfg *core.RepoConfig) ([]core.ChatMessage, error) {
	data := PromptData{
		Issue:  issue,
		Files:  files,
		Schema: g.schema,
	}
	if repoCfg != nil {
		data.CustomInstructions = repoCfg.CustomInstructions
	}
	return g.prompts.BuildMessages(g.provider, data)
}

// GenerateFileEdits sends the same two messages until the reply holds a valid edit
// list. Completer errors are returned at once: they already went through the
// transport retry policy, and re-prompting would not fix credentials.
func (g *Generator) GenerateFileEdits(ctx context.Context, issue *core.Issue, files []string, repoCfg *core.RepoConfig) ([]core.FileEdit, error) {
	if issue == nil {
		return nil, core.NewError(core.KindValidation, "generate file edits", fmt.Errorf("issue is nil"))
	}
	messages, err := g.Messages(issue, files, repoCfg)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := g.completer.Complete(ctx, messages)
		if err != nil {
			return nil, fmt.Errorf("failed to query model: %w", err)
		}

		edits, err := ParseFileEdits(content)
		if err == nil {
			g.logger.InfoContext(ctx, "model proposed file edits", "issue", issue.Number, "files", len(edits), "attempt", attempt)
			return edits, nil
		}

		lastErr = err
		g.logger.WarnContext(ctx, "model response rejected, asking again",
			"issue", issue.Number,
			"attempt", attempt,
			"max_attempts", g.maxAttempts,
			"error", err,
		)
	}

	return nil, core.NewError(core.KindValidation, "generate file edits",
		fmt.Errorf("no valid file edits after %d attempts: %w", g.maxAttempts, lastErr))
}
