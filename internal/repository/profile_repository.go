package repository

import (
	"context"

	"github.com/doublemate/doublemate-backend/internal/domain"
)

// CandidateFilter narrows the profile scan used to build a daily-match pool.
type CandidateFilter struct {
	ExcludeIDs         []string
	MinAge             int
	MaxAge             int
	OnboardingComplete bool
	Limit              int
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	// Upsert creates or updates a profile keyed by email. Identity fields
	// (id, email) of an existing profile are never changed.
	Upsert(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	// FindCandidates returns profiles matching the filter, ordered ascending
	// by id so the pool is deterministic for a given store state.
	FindCandidates(ctx context.Context, filter CandidateFilter) ([]*domain.Profile, error)
}
