package memory

import (
	"context"
	"sync"

	"github.com/doublemate/doublemate-backend/internal/domain"
)

type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*domain.ProfileDraft
}

func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]*domain.ProfileDraft)}
}

func (s *DraftStore) Get(ctx context.Context, sessionID string) (*domain.ProfileDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[sessionID]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *DraftStore) Save(ctx context.Context, sessionID string, draft *domain.ProfileDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *draft
	s.drafts[sessionID] = &cp
	return nil
}

func (s *DraftStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, sessionID)
	return nil
}
