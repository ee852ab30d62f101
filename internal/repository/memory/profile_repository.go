// Package memory provides in-memory repository implementations. They back the
// test suite and the STORAGE_TYPE=memory configuration; each store is an
// explicitly constructed object, never package-level state.
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

type ProfileRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Profile
	byEmail map[string]*domain.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		byID:    make(map[string]*domain.Profile),
		byEmail: make(map[string]*domain.Profile),
	}
}

func copyProfile(p *domain.Profile) *domain.Profile {
	cp := *p
	return &cp
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[profile.Email]; ok {
		return domain.ErrProfileAlreadyExists
	}
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	stored := copyProfile(profile)
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return copyProfile(p), nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return copyProfile(p), nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byEmail[profile.Email]; ok {
		// Identity stays with the existing record.
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		profile.UpdatedAt = time.Now()
		stored := copyProfile(profile)
		r.byID[stored.ID] = stored
		r.byEmail[stored.Email] = stored
		return nil
	}

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	stored := copyProfile(profile)
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored
	return nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[profile.ID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	profile.Email = existing.Email
	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = time.Now()
	stored := copyProfile(profile)
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored
	return nil
}

func (r *ProfileRepository) FindCandidates(ctx context.Context, filter repository.CandidateFilter) ([]*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	excluded := make(map[string]struct{}, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	var out []*domain.Profile
	for _, p := range r.byID {
		if _, skip := excluded[p.ID]; skip {
			continue
		}
		if p.OnboardingComplete != filter.OnboardingComplete {
			continue
		}
		if filter.MinAge > 0 && p.Age < filter.MinAge {
			continue
		}
		if filter.MaxAge > 0 && p.Age > filter.MaxAge {
			continue
		}
		out = append(out, copyProfile(p))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
