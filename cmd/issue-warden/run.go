package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sevigo/issue-warden/internal/config"
	"github.com/sevigo/issue-warden/internal/wire"
)

func addRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntP("issue", "i", 0, "issue number to fetch when INPUT_ISSUE is not set")
	flags.Bool("dry-run", false, "stop after writing the files, without commit, push or pull request")
	flags.String("workdir", "", "directory the repository is cloned into")
	flags.String("git-backend", "", "git implementation: cli or gogit")

	mustBind(v.BindPFlag(config.KeyIssueNumber, flags.Lookup("issue")))
	mustBind(v.BindPFlag(config.KeyDryRun, flags.Lookup("dry-run")))
	mustBind(v.BindPFlag(config.KeyWorkspaceDir, flags.Lookup("workdir")))
	mustBind(v.BindPFlag(config.KeyGitBackend, flags.Lookup("git-backend")))
}

func runIssue(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(v)
	if err != nil {
		return err
	}

	start := time.Now()
	titleColor.Println("issue-warden")
	dimColor.Printf("   Repository: %s\n   Model: %s\n\n", cfg.Repository, cfg.AI.Model)

	application, err := wire.InitializeApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	pr, err := application.Run(ctx)
	if err != nil {
		return err
	}

	elapsed := time.Since(start).Round(time.Millisecond)
	if pr == nil {
		warnColor.Printf("Dry run finished in %s, nothing was pushed.\n", elapsed)
		return nil
	}
	successColor.Printf("✓ Opened pull request #%d on branch %s (%s)\n", pr.Number, pr.Branch, elapsed)
	if pr.URL != "" {
		fmt.Println(pr.URL)
	}
	return nil
}
