package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/doublemate/doublemate-backend/internal/domain"
	"github.com/doublemate/doublemate-backend/internal/repository"
)

type ChatUseCase struct {
	matchRepo   repository.MatchRepository
	messageRepo repository.MessageRepository
}

func NewChatUseCase(
	matchRepo repository.MatchRepository,
	messageRepo repository.MessageRepository,
) *ChatUseCase {
	return &ChatUseCase{
		matchRepo:   matchRepo,
		messageRepo: messageRepo,
	}
}

// unlockedMatch loads the match and enforces the chat gate: messages exist
// only for mutual matches. An unknown match id is indistinguishable from a
// locked one, so callers can't probe which match ids exist.
func (uc *ChatUseCase) unlockedMatch(ctx context.Context, matchID string) (*domain.Match, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			return nil, domain.ErrChatLocked
		}
		return nil, err
	}
	if !match.IsMutualMatch {
		return nil, domain.ErrChatLocked
	}
	return match, nil
}

// ListMessages returns the match's messages in ascending creation order.
func (uc *ChatUseCase) ListMessages(ctx context.Context, matchID string) ([]*domain.Message, error) {
	if _, err := uc.unlockedMatch(ctx, matchID); err != nil {
		return nil, err
	}
	return uc.messageRepo.ListByMatch(ctx, matchID)
}

// SendMessage appends a message to an unlocked chat. The sender must be a
// participant and the receiver the other participant.
func (uc *ChatUseCase) SendMessage(ctx context.Context, matchID, senderID, receiverID, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyMessage
	}

	match, err := uc.unlockedMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	other, ok := match.OtherUserID(senderID)
	if !ok || other != receiverID {
		return nil, domain.ErrNotParticipant
	}

	message := &domain.Message{
		MatchID:    matchID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}
