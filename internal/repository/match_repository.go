package repository

import (
	"context"
	"time"

	"github.com/doublemate/doublemate-backend/internal/domain"
)

type MatchRepository interface {
	// CreateDailyMatch persists the match and bumps the initiating user's
	// last_match_date / matches_shown_today in a single storage unit where
	// the backend supports one.
	CreateDailyMatch(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id string) (*domain.Match, error)
	// GetTodayMatch returns the user's match created at or after since, or
	// domain.ErrMatchNotFound when none exists.
	GetTodayMatch(ctx context.Context, userID string, since time.Time) (*domain.Match, error)
	// GetMatchedUserIDs lists every candidate id the user has already been
	// matched with, for pool exclusion.
	GetMatchedUserIDs(ctx context.Context, userID string) ([]string, error)
	GetUserMatches(ctx context.Context, userID string) ([]*domain.Match, error)
	Update(ctx context.Context, match *domain.Match) error
}
