package repository

import (
	"context"

	"github.com/doublemate/doublemate-backend/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	// ListByMatch returns the match's messages ordered ascending by creation
	// time, ties broken by insertion order.
	ListByMatch(ctx context.Context, matchID string) ([]*domain.Message, error)
}
