package gitutil

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	repositoryRegex = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9-]*)/([A-Za-z0-9._-]+)$`)
	credentialRegex = regexp.MustCompile(`(https?://)[^@\s/]+@`)
)

// ParseRepository splits an "owner/name" identifier.
func ParseRepository(fullName string) (owner, name string, err error) {
	fullName = strings.TrimSuffix(strings.TrimSpace(fullName), ".git")
	matches := repositoryRegex.FindStringSubmatch(fullName)
	if len(matches) != 3 || matches[2] == "." || matches[2] == ".." {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/name", fullName)
	}
	return matches[1], matches[2], nil
}

// CloneURL builds the HTTPS clone URL of a repository on a GitHub server.
func CloneURL(serverURL, owner, name string) string {
	return fmt.Sprintf("%s/%s/%s.git", strings.TrimSuffix(serverURL, "/"), owner, name)
}

// AuthenticatedURL embeds token into an HTTP(S) remote URL. Local paths are returned
// unchanged; file:// and other schemes are rejected.
func AuthenticatedURL(repoURL, token string) (string, error) {
	if !strings.Contains(repoURL, "://") {
		return repoURL, nil
	}

	if !strings.HasPrefix(repoURL, "https://") && !strings.HasPrefix(repoURL, "http://") {
		return "", fmt.Errorf("invalid repository URL: %s", RedactURL(repoURL))
	}

	parsedURL, err := url.Parse(repoURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse repository URL: %w", err)
	}
	if token != "" {
		parsedURL.User = url.UserPassword("x-access-token", token)
	}
	return parsedURL.String(), nil
}

// RedactURL hides credentials embedded in any URL found in s.
func RedactURL(s string) string {
	return credentialRegex.ReplaceAllString(s, "${1}***@")
}
