package core

import (
	"context"
)

// Job represents the single unit of work this application performs: turning an
// issue into a pull request.
type Job interface {
	// Run executes every step for the issue in order. It returns the opened pull
	// request, or nil without error when the run stopped early on purpose (dry run).
	Run(ctx context.Context, issue *Issue) (*PullRequest, error)
}
