package core

import "fmt"

// BranchName is the working branch for an issue.
func BranchName(issueNumber int) string {
	return fmt.Sprintf("issue-%d", issueNumber)
}

// CommitMessage is the message of the single commit pushed for an issue.
func CommitMessage(issueNumber int) string {
	return fmt.Sprintf("Issue %d", issueNumber)
}

// PullRequestTitle is the title of the pull request opened for an issue.
func PullRequestTitle(issueNumber int) string {
	return fmt.Sprintf("Issue %d", issueNumber)
}

// PullRequestBody is the body of the pull request opened for an issue. The word
// "Issue" sits between the keyword and the number, so GitHub does not treat it as
// a closing reference and the issue stays open after merge.
func PullRequestBody(issueNumber int) string {
	return fmt.Sprintf("Fixes Issue #%d", issueNumber)
}
