// Package agent defines the external-intelligence collaborators: a matchmaker
// that picks one candidate from a pool and a profile builder that turns a
// free-text conversation into profile fields. Both are black boxes to the
// rest of the codebase.
package agent

import (
	"context"

	"github.com/doublemate/doublemate-backend/internal/domain"
)

// MatchSelection is the matchmaker's verdict for a single daily match.
type MatchSelection struct {
	MatchedUserID      string `json:"matchedUserId"`
	CompatibilityScore int    `json:"compatibilityScore"`
	MatchReason        string `json:"matchReason"`
}

// Matchmaker selects at most one candidate for the requesting user.
// A nil selection with a nil error means the agent found no suitable match.
type Matchmaker interface {
	SelectDailyMatch(ctx context.Context, user *domain.Profile, candidates []*domain.Profile) (*MatchSelection, error)
}

// ProfileTurn is one exchange with the profile-builder agent.
type ProfileTurn struct {
	Message     string               `json:"message"`
	ProfileData *domain.ProfileDraft `json:"profileData"`
	IsComplete  bool                 `json:"isComplete"`
}

// ProfileBuilder drives the onboarding conversation. The sessionID scopes the
// agent's conversational memory.
type ProfileBuilder interface {
	Chat(ctx context.Context, sessionID, message string) (*ProfileTurn, error)
}
