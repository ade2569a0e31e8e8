package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/issue-warden/internal/config"
	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/mocks"
)

type jobFunc func(ctx context.Context, issue *core.Issue) (*core.PullRequest, error)

func (f jobFunc) Run(ctx context.Context, issue *core.Issue) (*core.PullRequest, error) {
	return f(ctx, issue)
}

func newTestApp(t *testing.T, cfg *config.Config, job core.Job) (*App, *mocks.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	gh := mocks.NewMockClient(ctrl)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewApp(cfg, logger, gh, job), gh
}

func TestApp_Run_FromPayload(t *testing.T) {
	cfg := &config.Config{
		Owner:        "octocat",
		Name:         "hello",
		IssuePayload: `{"number": 5, "title": "Typo", "user": {"login": "alice"}, "labels": [{"name": "docs"}], "body": "fix it"}`,
	}
	var got *core.Issue
	job := jobFunc(func(_ context.Context, issue *core.Issue) (*core.PullRequest, error) {
		got = issue
		return &core.PullRequest{Number: 6}, nil
	})
	a, _ := newTestApp(t, cfg, job)

	pr, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, pr.Number)
	assert.Equal(t, &core.Issue{Number: 5, Title: "Typo", Author: "alice", Labels: []string{"docs"}, Body: "fix it"}, got)
}

func TestApp_Run_FetchesByNumber(t *testing.T) {
	cfg := &config.Config{Owner: "octocat", Name: "hello", IssueNumber: 9}
	job := jobFunc(func(_ context.Context, issue *core.Issue) (*core.PullRequest, error) {
		assert.Equal(t, 9, issue.Number)
		return nil, nil
	})
	a, gh := newTestApp(t, cfg, job)
	gh.EXPECT().GetIssue(gomock.Any(), "octocat", "hello", 9).Return(&core.Issue{Number: 9}, nil)

	pr, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Nil(t, pr)
}

func TestApp_ResolveIssue_Errors(t *testing.T) {
	t.Run("invalid payload", func(t *testing.T) {
		a, _ := newTestApp(t, &config.Config{IssuePayload: `{"title": "no number"}`}, nil)
		_, err := a.ResolveIssue(context.Background())
		assert.ErrorIs(t, err, core.ErrValidation)
	})

	t.Run("fetch failure", func(t *testing.T) {
		a, gh := newTestApp(t, &config.Config{Owner: "o", Name: "r", IssueNumber: 1}, nil)
		gh.EXPECT().GetIssue(gomock.Any(), "o", "r", 1).
			Return(nil, core.NewError(core.KindAPI, "get issue", errors.New("not found")))
		_, err := a.ResolveIssue(context.Background())
		assert.ErrorIs(t, err, core.ErrAPI)
	})
}
