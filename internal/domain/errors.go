package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrMatchNotFound        = errors.New("match not found")
	ErrNotParticipant       = errors.New("user is not a participant of this match")
	ErrChatLocked           = errors.New("chat not available for this match")
	ErrEmptyMessage         = errors.New("message content must not be empty")
	ErrDraftNotFound        = errors.New("onboarding draft not found")
	ErrIncompleteDraft      = errors.New("profile draft is missing required fields")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidAgeRange      = errors.New("preferred age range is invalid")
)

// UpstreamError wraps a failure of an external agent call: the agent was
// unreachable or returned a payload we could not interpret.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// IsUpstream reports whether err originates from an external agent failure.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
