package chat

import (
	"context"
	"testing"
	"time"

	"github.com/doublemate/doublemate-backend/internal/domain"
	"github.com/doublemate/doublemate-backend/internal/repository/memory"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	uc       *ChatUseCase
	profiles *memory.ProfileRepository
	matches  *memory.MatchRepository
	messages *memory.MessageRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	profiles := memory.NewProfileRepository()
	matches := memory.NewMatchRepository(profiles)
	messages := memory.NewMessageRepository()
	return &fixture{
		uc:       NewChatUseCase(matches, messages),
		profiles: profiles,
		matches:  matches,
		messages: messages,
	}
}

func (f *fixture) seedMatch(t *testing.T, mutual bool) *domain.Match {
	t.Helper()
	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		require.NoError(t, f.profiles.Create(ctx, &domain.Profile{
			ID:       id,
			Email:    id + "@example.com",
			Name:     "User " + id,
			Age:      30,
			Gender:   "Female",
			Location: "Austin, TX",
		}))
	}
	m := &domain.Match{
		UserID:        "a",
		MatchedUserID: "b",
		Status:        domain.MatchStatusPending,
	}
	require.NoError(t, f.matches.CreateDailyMatch(ctx, m))
	if mutual {
		liked := true
		now := time.Now()
		m.UserLiked = &liked
		m.MatchedUserLiked = &liked
		m.IsMutualMatch = true
		m.Status = domain.MatchStatusMutual
		m.ChatUnlockedAt = &now
		require.NoError(t, f.matches.Update(ctx, m))
	}
	return m
}

func TestChatLockedBeforeMutual(t *testing.T) {
	f := newFixture(t)
	m := f.seedMatch(t, false)
	ctx := context.Background()

	_, err := f.uc.ListMessages(ctx, m.ID)
	require.ErrorIs(t, err, domain.ErrChatLocked)

	_, err = f.uc.SendMessage(ctx, m.ID, "a", "b", "hello")
	require.ErrorIs(t, err, domain.ErrChatLocked)

	msgs, err := f.messages.ListByMatch(ctx, m.ID)
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestSendAndListMessagesInOrder(t *testing.T) {
	f := newFixture(t)
	m := f.seedMatch(t, true)
	ctx := context.Background()

	for _, content := range []string{"hey!", "hi there", "coffee this week?"} {
		sender, receiver := "a", "b"
		if content == "hi there" {
			sender, receiver = "b", "a"
		}
		msg, err := f.uc.SendMessage(ctx, m.ID, sender, receiver, content)
		require.NoError(t, err)
		require.NotEmpty(t, msg.ID)
		require.Equal(t, content, msg.Content)
	}

	msgs, err := f.uc.ListMessages(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	require.Equal(t, "hey!", msgs[0].Content)
	require.Equal(t, "hi there", msgs[1].Content)
	require.Equal(t, "coffee this week?", msgs[2].Content)
	for i := 1; i < len(msgs); i++ {
		require.False(t, msgs[i].CreatedAt.Before(msgs[i-1].CreatedAt))
	}
}

func TestSendMessageEmptyContent(t *testing.T) {
	f := newFixture(t)
	m := f.seedMatch(t, true)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := f.uc.SendMessage(context.Background(), m.ID, "a", "b", content)
		require.ErrorIs(t, err, domain.ErrEmptyMessage)
	}
}

func TestSendMessageWrongParticipants(t *testing.T) {
	f := newFixture(t)
	m := f.seedMatch(t, true)
	ctx := context.Background()

	// Sender outside the match.
	_, err := f.uc.SendMessage(ctx, m.ID, "intruder", "b", "hello")
	require.ErrorIs(t, err, domain.ErrNotParticipant)

	// Receiver is not the other participant.
	_, err = f.uc.SendMessage(ctx, m.ID, "a", "intruder", "hello")
	require.ErrorIs(t, err, domain.ErrNotParticipant)
}

func TestChatUnknownMatchLooksLocked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A nonexistent match is rejected the same way as a locked one.
	_, err := f.uc.ListMessages(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrChatLocked)

	_, err = f.uc.SendMessage(ctx, "missing", "a", "b", "hello")
	require.ErrorIs(t, err, domain.ErrChatLocked)
}
