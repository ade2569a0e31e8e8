package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sevigo/issue-warden/internal/config"
	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/internal/gitutil"
	"github.com/sevigo/issue-warden/internal/llm"
	"github.com/sevigo/issue-warden/internal/logger"
)

var (
	promptDir       string
	promptIssueFile string
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the messages that would be sent to the model",
	Long: `Render the system and user prompts for an issue against a local checkout,
without calling GitHub or the model. The issue is read from --issue-file or from
the INPUT_ISSUE environment variable.

Examples:
  issue-warden prompt --dir ./hello --issue-file issue.json
  INPUT_ISSUE="$(cat issue.json)" issue-warden prompt`,
	Args: cobra.NoArgs,
	RunE: runPrompt,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	promptCmd.Flags().StringVarP(&promptDir, "dir", "d", ".", "local checkout whose tracked files form the file map")
	promptCmd.Flags().StringVar(&promptIssueFile, "issue-file", "", "path to the issue JSON payload")
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	config.SetDefaults(v)

	log := logger.NewLogger(logger.Config{
		Level:  v.GetString(config.KeyLogLevel),
		Format: v.GetString(config.KeyLogFormat),
		Output: "stderr",
	}, nil)

	payload := []byte(v.GetString(config.KeyIssue))
	if promptIssueFile != "" {
		data, err := os.ReadFile(promptIssueFile)
		if err != nil {
			return core.NewError(core.KindFilesystem, "read issue", err)
		}
		payload = data
	}
	issue, err := core.IssueFromJSON(payload)
	if err != nil {
		return core.NewError(core.KindValidation, "read issue", err)
	}

	factory, err := gitutil.NewFactory(v.GetString(config.KeyGitBackend), log)
	if err != nil {
		return err
	}
	repo, err := factory(gitutil.Options{Dir: promptDir})
	if err != nil {
		return err
	}
	files, err := repo.ListFiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list files in %s: %w", promptDir, err)
	}

	repoCfg, err := config.LoadRepoConfig(promptDir)
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return err
	}

	prompts, err := llm.NewPromptManager()
	if err != nil {
		return err
	}
	generator, err := llm.NewGenerator(nil, prompts, config.AIConfig{Model: v.GetString(config.KeyAIModel)}, log)
	if err != nil {
		return err
	}
	messages, err := generator.Messages(issue, gitutil.FilterFiles(files, repoCfg), repoCfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, m := range messages {
		titleColor.Fprintf(out, "--- %s ---\n", m.Role)
		fmt.Fprintln(out, m.Content)
	}
	return nil
}
