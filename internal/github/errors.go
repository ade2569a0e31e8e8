package github

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/issue-warden/internal/core"
)

// classify maps a go-github failure onto the core error kinds.
func classify(op string, resp *github.Response, err error) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return core.NewError(core.KindTransient, op, fmt.Errorf("GitHub rate limit exceeded: %w", err))
	}

	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}
	var ghErr *github.ErrorResponse
	if status == 0 && errors.As(err, &ghErr) && ghErr.Response != nil {
		status = ghErr.Response.StatusCode
	}

	switch {
	case status == 0:
		return core.NewError(core.KindTransient, op, err)
	case status == http.StatusUnauthorized:
		return core.NewError(core.KindAuth, op, fmt.Errorf("GitHub token is invalid or expired: %w", err))
	case status == http.StatusForbidden:
		return core.NewError(core.KindAuth, op, fmt.Errorf("GitHub token lacks the required permissions: %w", err))
	case status == http.StatusNotFound:
		return core.NewError(core.KindAPI, op, fmt.Errorf("not found or not accessible: %w", err))
	case status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return core.NewError(core.KindTransient, op, err)
	default:
		return core.NewError(core.KindAPI, op, err)
	}
}
