package main

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/issue-warden/internal/config"
)

// v collects flags and environment; config.LoadConfig reads from it.
var v = viper.New()

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

var rootCmd = &cobra.Command{
	Use:   "issue-warden",
	Short: "issue-warden turns a GitHub issue into a pull request.",
	Long: `issue-warden clones a repository, asks a chat-completion model for the file
changes that resolve an issue, pushes them to the branch issue-<number> and opens
a pull request titled "Issue <number>".

Configuration comes from the environment (the GitHub Action inputs INPUT_ISSUE,
INPUT_REPOSITORY, INPUT_MODEL, INPUT_PERSONAL_ACCESS_TOKEN and INPUT_PURGPT_API_KEY)
or from the flags below.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runIssue,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	flags := rootCmd.PersistentFlags()
	flags.StringP("repository", "r", "", "target repository as owner/name")
	flags.String("model", "", "chat-completion model")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")

	mustBind(v.BindPFlag(config.KeyRepository, flags.Lookup("repository")))
	mustBind(v.BindPFlag(config.KeyAIModel, flags.Lookup("model")))
	mustBind(v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level")))
	mustBind(v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format")))

	addRunFlags(rootCmd)
}

func mustBind(err error) {
	if err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}
