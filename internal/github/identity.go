package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/issue-warden/internal/core"
)

// CommitIdentity derives the git author for user: the login as name, and the
// public email or the noreply address GitHub assigns when the email is hidden.
func CommitIdentity(user *github.User) core.Identity {
	email := user.GetEmail()
	if email == "" {
		email = fmt.Sprintf("%d+%s@users.noreply.github.com", user.GetID(), user.GetLogin())
	}
	return core.Identity{Name: user.GetLogin(), Email: email}
}

// BotIdentity is the author used when the token belongs to an App installation,
// which cannot read /user.
func BotIdentity() core.Identity {
	return core.Identity{Name: "issue-warden[bot]", Email: "issue-warden[bot]@users.noreply.github.com"}
}

// ResolveIdentity returns the commit identity of the authenticated user. When the
// token is not allowed to read the user and allowBot is set, BotIdentity is used.
func ResolveIdentity(ctx context.Context, client Client, allowBot bool) (core.Identity, error) {
	user, err := client.GetAuthenticatedUser(ctx)
	if err != nil {
		if allowBot && errors.Is(err, core.ErrAuth) {
			return BotIdentity(), nil
		}
		return core.Identity{}, err
	}
	return CommitIdentity(user), nil
}
