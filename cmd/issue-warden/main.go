package main

import (
	"log/slog"
	"os"

	"github.com/sevigo/issue-warden/internal/core"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("issue-warden failed", "kind", core.KindOf(err), "error", err)
		errorColor.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}
