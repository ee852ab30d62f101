package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/doublemate/doublemate-backend/internal/domain"
	"github.com/doublemate/doublemate-backend/internal/repository"
	"github.com/google/uuid"
)

type MatchRepository struct {
	mu       sync.RWMutex
	byID     map[string]*domain.Match
	profiles repository.ProfileRepository
}

// NewMatchRepository needs the profile repository so CreateDailyMatch can
// apply the match insert and the profile counter update under one call, the
// same unit the postgres backend gets from a transaction.
func NewMatchRepository(profiles repository.ProfileRepository) *MatchRepository {
	return &MatchRepository{
		byID:     make(map[string]*domain.Match),
		profiles: profiles,
	}
}

func copyMatch(m *domain.Match) *domain.Match {
	cp := *m
	return &cp
}

func (r *MatchRepository) CreateDailyMatch(ctx context.Context, match *domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, err := r.profiles.GetByID(ctx, match.UserID)
	if err != nil {
		return err
	}

	if match.ID == "" {
		match.ID = uuid.New().String()
	}
	now := time.Now()
	match.CreatedAt = now
	match.UpdatedAt = now

	// Counter bump first: if it fails, no match is left behind.
	profile.LastMatchDate = &now
	profile.MatchesShownToday = 1
	if err := r.profiles.Update(ctx, profile); err != nil {
		return err
	}

	r.byID[match.ID] = copyMatch(match)
	return nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return copyMatch(m), nil
}

func (r *MatchRepository) GetTodayMatch(ctx context.Context, userID string, since time.Time) (*domain.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.Match
	for _, m := range r.byID {
		if m.UserID != userID || m.CreatedAt.Before(since) {
			continue
		}
		if latest == nil || m.CreatedAt.After(latest.CreatedAt) {
			latest = m
		}
	}
	if latest == nil {
		return nil, domain.ErrMatchNotFound
	}
	return copyMatch(latest), nil
}

func (r *MatchRepository) GetMatchedUserIDs(ctx context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for _, m := range r.byID {
		if m.UserID == userID {
			ids = append(ids, m.MatchedUserID)
		}
	}
	return ids, nil
}

func (r *MatchRepository) GetUserMatches(ctx context.Context, userID string) ([]*domain.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*domain.Match
	for _, m := range r.byID {
		if m.UserID == userID || m.MatchedUserID == userID {
			matches = append(matches, copyMatch(m))
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}

func (r *MatchRepository) Update(ctx context.Context, match *domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[match.ID]
	if !ok {
		return domain.ErrMatchNotFound
	}
	match.CreatedAt = existing.CreatedAt
	match.UpdatedAt = time.Now()
	r.byID[match.ID] = copyMatch(match)
	return nil
}
