package memory

import (
	"context"
	"sync"
	"time"

	"github.com/doublemate/doublemate-backend/internal/domain"
	"github.com/google/uuid"
)

type MessageRepository struct {
	mu      sync.RWMutex
	byMatch map[string][]*domain.Message
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{byMatch: make(map[string][]*domain.Message)}
}

func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()
	stored := *message
	r.byMatch[message.MatchID] = append(r.byMatch[message.MatchID], &stored)
	return nil
}

func (r *MessageRepository) ListByMatch(ctx context.Context, matchID string) ([]*domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Append order is insertion order, which already respects CreatedAt.
	msgs := r.byMatch[matchID]
	out := make([]*domain.Message, len(msgs))
	for i, m := range msgs {
		cp := *m
		out[i] = &cp
	}
	return out, nil
}
