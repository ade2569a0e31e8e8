package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/issue-warden/internal/core"
)

func newTestClient(t *testing.T, mux *http.ServeMux) Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := NewPATClient(context.Background(), "test-token", srv.URL, nil)
	require.NoError(t, err)
	return client
}

func TestGitHubClient_GetAuthenticatedUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"login":"octocat","id":583231}`)
	})
	client := newTestClient(t, mux)

	user, err := client.GetAuthenticatedUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "octocat", user.GetLogin())
	assert.Equal(t, int64(583231), user.GetID())
}

func TestGitHubClient_GetRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octocat/hello", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"name": "hello",
			"full_name": "octocat/hello",
			"default_branch": "trunk",
			"clone_url": "https://github.com/octocat/hello.git",
			"owner": {"login": "octocat"}
		}`)
	})
	client := newTestClient(t, mux)

	repo, err := client.GetRepository(context.Background(), "octocat", "hello")
	require.NoError(t, err)
	assert.Equal(t, &core.Repository{
		Owner:         "octocat",
		Name:          "hello",
		FullName:      "octocat/hello",
		DefaultBranch: "trunk",
		CloneURL:      "https://github.com/octocat/hello.git",
	}, repo)
}

func TestGitHubClient_GetIssue(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octocat/hello/issues/42", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"number": 42,
			"title": "Add a README",
			"body": "Please add docs.",
			"user": {"login": "alice"},
			"labels": [{"name": "docs"}, {"name": "good first issue"}]
		}`)
	})
	mux.HandleFunc("GET /repos/octocat/hello/issues/7", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"number": 7, "title": "A PR", "pull_request": {"url": "https://api.github.com/repos/octocat/hello/pulls/7"}}`)
	})
	client := newTestClient(t, mux)

	issue, err := client.GetIssue(context.Background(), "octocat", "hello", 42)
	require.NoError(t, err)
	assert.Equal(t, &core.Issue{
		Number: 42,
		Title:  "Add a README",
		Author: "alice",
		Labels: []string{"docs", "good first issue"},
		Body:   "Please add docs.",
	}, issue)

	_, err = client.GetIssue(context.Background(), "octocat", "hello", 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestGitHubClient_CreatePullRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/octocat/hello/pulls", func(w http.ResponseWriter, r *http.Request) {
		var body github.NewPullRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Issue 42", body.GetTitle())
		assert.Equal(t, "issue-42", body.GetHead())
		assert.Equal(t, "main", body.GetBase())
		assert.Equal(t, "Fixes Issue #42", body.GetBody())

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"number": 43, "html_url": "https://github.com/octocat/hello/pull/43"}`)
	})
	client := newTestClient(t, mux)

	pr, err := client.CreatePullRequest(context.Background(), "octocat", "hello", NewPullRequest{
		Title: "Issue 42",
		Head:  "issue-42",
		Base:  "main",
		Body:  "Fixes Issue #42",
	})
	require.NoError(t, err)
	assert.Equal(t, &core.PullRequest{Number: 43, URL: "https://github.com/octocat/hello/pull/43", Branch: "issue-42"}, pr)
}

func TestGitHubClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		headers map[string]string
		wantErr error
	}{
		{name: "Unauthorized", status: http.StatusUnauthorized, wantErr: core.ErrAuth},
		{name: "Forbidden", status: http.StatusForbidden, wantErr: core.ErrAuth},
		{name: "Not found", status: http.StatusNotFound, wantErr: core.ErrAPI},
		{name: "Unprocessable", status: http.StatusUnprocessableEntity, wantErr: core.ErrAPI},
		{name: "Too many requests", status: http.StatusTooManyRequests, wantErr: core.ErrTransient},
		{name: "Server error", status: http.StatusBadGateway, wantErr: core.ErrTransient},
		{
			name:   "Primary rate limit",
			status: http.StatusForbidden,
			headers: map[string]string{
				"X-RateLimit-Limit":     "5000",
				"X-RateLimit-Remaining": "0",
				"X-RateLimit-Reset":     "1900000000",
			},
			wantErr: core.ErrTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /repos/octocat/hello", func(w http.ResponseWriter, _ *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"message": "API rate limit exceeded for user"}`)
			})
			client := newTestClient(t, mux)

			_, err := client.GetRepository(context.Background(), "octocat", "hello")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCommitIdentity(t *testing.T) {
	tests := []struct {
		name string
		user *github.User
		want core.Identity
	}{
		{
			name: "Public email",
			user: &github.User{Login: github.Ptr("octocat"), ID: github.Ptr(int64(1)), Email: github.Ptr("octo@example.com")},
			want: core.Identity{Name: "octocat", Email: "octo@example.com"},
		},
		{
			name: "Hidden email uses noreply",
			user: &github.User{Login: github.Ptr("octocat"), ID: github.Ptr(int64(583231))},
			want: core.Identity{Name: "octocat", Email: "583231+octocat@users.noreply.github.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommitIdentity(tt.user))
		})
	}
}

func TestResolveIdentity(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "Resource not accessible by integration"}`)
	})
	client := newTestClient(t, mux)

	identity, err := ResolveIdentity(context.Background(), client, true)
	require.NoError(t, err)
	assert.Equal(t, BotIdentity(), identity)

	_, err = ResolveIdentity(context.Background(), client, false)
	assert.ErrorIs(t, err, core.ErrAuth)
}
