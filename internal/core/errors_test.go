package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKind(t *testing.T) {
	base := errors.New("401 Unauthorized")
	err := fmt.Errorf("failed to authenticate: %w", NewError(KindAuth, "get user", base))

	assert.ErrorIs(t, err, ErrAuth)
	assert.ErrorIs(t, err, base)
	assert.NotErrorIs(t, err, ErrTransient)
	assert.Equal(t, KindAuth, KindOf(err))
	assert.False(t, IsTransient(err))
}

func TestError_NestedKinds(t *testing.T) {
	inner := NewError(KindTransient, "chat completion", errors.New("503"))
	outer := NewError(KindAPI, "generate", inner)

	assert.Equal(t, KindAPI, KindOf(outer))
	assert.ErrorIs(t, outer, ErrAPI)
	assert.True(t, IsTransient(outer))
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"op and err", NewError(KindGit, "push", errors.New("rejected")), "GIT: push: rejected"},
		{"err only", &Error{Kind: KindGit, Err: errors.New("rejected")}, "GIT: rejected"},
		{"op only", &Error{Kind: KindConfig, Op: "load"}, "CONFIGURATION: load"},
		{"kind only", ErrValidation, "VALIDATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}
