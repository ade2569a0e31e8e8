// Package core defines the essential data structures and interfaces shared by the
// rest of the application: the issue being worked on, the file edits proposed for it,
// and the contract of the job that turns one into a pull request.
package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/go-github/v73/github"
)

// Issue is the internal, read-only view of a tracker issue that drives a run.
type Issue struct {
	Number int
	Title  string
	Author string
	Labels []string
	Body   string
}

// IssueFromJSON decodes an issue payload in the shape GitHub uses for issues
// (`user.login`, `labels[].name`) and validates it.
func IssueFromJSON(data []byte) (*Issue, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("issue payload is empty")
	}
	var ghIssue github.Issue
	if err := json.Unmarshal(data, &ghIssue); err != nil {
		return nil, fmt.Errorf("failed to decode issue payload: %w", err)
	}
	return IssueFromGitHub(&ghIssue)
}

// IssueFromGitHub transforms a go-github issue into the application's Issue. It acts
// as an anti-corruption layer: anything without a positive number is rejected.
func IssueFromGitHub(issue *github.Issue) (*Issue, error) {
	if issue == nil {
		return nil, fmt.Errorf("issue cannot be nil")
	}
	if issue.GetNumber() <= 0 {
		return nil, fmt.Errorf("invalid issue number: %d", issue.GetNumber())
	}

	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		if name := l.GetName(); name != "" {
			labels = append(labels, name)
		}
	}

	return &Issue{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Author: issue.GetUser().GetLogin(),
		Labels: labels,
		Body:   issue.GetBody(),
	}, nil
}
