package repository

import (
	"context"

	"github.com/doublemate/doublemate-backend/internal/domain"
)

// DraftStore holds per-session onboarding drafts while the profile-builder
// conversation is in flight. Get returns domain.ErrDraftNotFound for an
// unknown session.
type DraftStore interface {
	Get(ctx context.Context, sessionID string) (*domain.ProfileDraft, error)
	Save(ctx context.Context, sessionID string, draft *domain.ProfileDraft) error
	Delete(ctx context.Context, sessionID string) error
}
