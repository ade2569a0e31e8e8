package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaming(t *testing.T) {
	assert.Equal(t, "issue-12", BranchName(12))
	assert.Equal(t, "Issue 12", CommitMessage(12))
	assert.Equal(t, "Issue 12", PullRequestTitle(12))
	assert.Equal(t, "Fixes Issue #12", PullRequestBody(12))
}
