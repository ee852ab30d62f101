package postgres

import (
	"context"

	"github.com/doublemate/doublemate-backend/internal/domain"
	"github.com/doublemate/doublemate-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	query := `
		INSERT INTO messages (id, match_id, sender_id, receiver_id, content, read)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		message.ID, message.MatchID, message.SenderID, message.ReceiverID,
		message.Content, message.Read,
	).Scan(&message.CreatedAt)
}

func (r *messageRepository) ListByMatch(ctx context.Context, matchID string) ([]*domain.Message, error) {
	// seq is a bigserial insertion counter; it breaks created_at ties so the
	// order stays stable.
	query := `
		SELECT id, match_id, sender_id, receiver_id, content, read, created_at
		FROM messages
		WHERE match_id = $1
		ORDER BY created_at ASC, seq ASC
	`
	rows, err := r.db.QueryxContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(
			&m.ID, &m.MatchID, &m.SenderID, &m.ReceiverID,
			&m.Content, &m.Read, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}
