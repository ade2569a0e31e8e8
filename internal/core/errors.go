package core

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can tell credentials problems apart from
// transient blips and from bad model output.
type Kind string

const (
	KindConfig     Kind = "CONFIGURATION"
	KindAuth       Kind = "AUTH"
	KindTransient  Kind = "TRANSIENT"
	KindValidation Kind = "VALIDATION"
	KindAPI        Kind = "API"
	KindGit        Kind = "GIT"
	KindFilesystem Kind = "FILESYSTEM"
)

// Error is a classified failure of a single operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the bare kind sentinels below, so errors.Is(err, core.ErrAuth) works
// through any amount of wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Op != "" || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrConfig     = &Error{Kind: KindConfig}
	ErrAuth       = &Error{Kind: KindAuth}
	ErrTransient  = &Error{Kind: KindTransient}
	ErrValidation = &Error{Kind: KindValidation}
	ErrAPI        = &Error{Kind: KindAPI}
	ErrGit        = &Error{Kind: KindGit}
	ErrFilesystem = &Error{Kind: KindFilesystem}
)

// NewError creates a classified error for op.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the outermost classified error in err's chain, or ""
// when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
