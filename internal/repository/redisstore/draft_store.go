// Package redisstore keeps onboarding drafts in Redis so an in-flight
// conversation survives process restarts.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/doublemate/doublemate-backend/internal/domain"
	"github.com/doublemate/doublemate-backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

const draftTTL = 24 * time.Hour

type DraftStore struct {
	client *redis.Client
}

func NewDraftStore(client *redis.Client) repository.DraftStore {
	return &DraftStore{client: client}
}

func draftKey(sessionID string) string {
	return "onboarding:draft:" + sessionID
}

func (s *DraftStore) Get(ctx context.Context, sessionID string) (*domain.ProfileDraft, error) {
	data, err := s.client.Get(ctx, draftKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft domain.ProfileDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &draft, nil
}

func (s *DraftStore) Save(ctx context.Context, sessionID string, draft *domain.ProfileDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(sessionID), data, draftTTL).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (s *DraftStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, draftKey(sessionID)).Err()
}
