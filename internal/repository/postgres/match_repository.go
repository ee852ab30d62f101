package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doublemate/doublemate-backend/internal/domain"
	"github.com/doublemate/doublemate-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const matchColumns = `
	id, user_id, matched_user_id, status, user_liked, matched_user_liked,
	compatibility_score, match_reason, is_mutual_match, chat_unlocked_at,
	created_at, updated_at
`

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func scanMatch(row sqlx.ColScanner) (*domain.Match, error) {
	var m domain.Match
	err := row.Scan(
		&m.ID, &m.UserID, &m.MatchedUserID, &m.Status,
		&m.UserLiked, &m.MatchedUserLiked,
		&m.CompatibilityScore, &m.MatchReason, &m.IsMutualMatch,
		&m.ChatUnlockedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

// CreateDailyMatch inserts the match and marks the initiating profile's
// last_match_date / matches_shown_today in one transaction, so a day's match
// and its counter update cannot be torn apart.
func (r *matchRepository) CreateDailyMatch(ctx context.Context, match *domain.Match) error {
	if match.ID == "" {
		match.ID = uuid.New().String()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	insert := `
		INSERT INTO matches (
			id, user_id, matched_user_id, status, user_liked, matched_user_liked,
			compatibility_score, match_reason, is_mutual_match, chat_unlocked_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRowContext(
		ctx, insert,
		match.ID, match.UserID, match.MatchedUserID, match.Status,
		match.UserLiked, match.MatchedUserLiked,
		match.CompatibilityScore, match.MatchReason,
		match.IsMutualMatch, match.ChatUnlockedAt,
	).Scan(&match.CreatedAt, &match.UpdatedAt)
	if err != nil {
		return err
	}

	mark := `
		UPDATE profiles
		SET last_match_date = CURRENT_TIMESTAMP, matches_shown_today = 1,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, mark, match.UserID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return scanMatch(r.db.QueryRowxContext(ctx, query, id))
}

func (r *matchRepository) GetTodayMatch(ctx context.Context, userID string, since time.Time) (*domain.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanMatch(r.db.QueryRowxContext(ctx, query, userID, since))
}

func (r *matchRepository) GetMatchedUserIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	query := `SELECT matched_user_id FROM matches WHERE user_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, userID)
	return ids, err
}

func (r *matchRepository) GetUserMatches(ctx context.Context, userID string) ([]*domain.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE user_id = $1 OR matched_user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *matchRepository) Update(ctx context.Context, match *domain.Match) error {
	query := `
		UPDATE matches
		SET status = $1, user_liked = $2, matched_user_liked = $3,
		    is_mutual_match = $4, chat_unlocked_at = $5,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		match.Status, match.UserLiked, match.MatchedUserLiked,
		match.IsMutualMatch, match.ChatUnlockedAt, match.ID,
	).Scan(&match.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrMatchNotFound
	}
	return err
}
