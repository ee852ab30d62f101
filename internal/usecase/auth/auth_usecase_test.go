package auth

import (
	"context"
	"testing"
	"time"

	"github.com/doublemate/doublemate-backend/internal/domain"
	"github.com/doublemate/doublemate-backend/internal/repository/memory"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-key-at-least-32-chars"

func newUseCase(t *testing.T) (*AuthUseCase, *memory.ProfileRepository) {
	t.Helper()
	profiles := memory.NewProfileRepository()
	return NewAuthUseCase(profiles, testSecret, time.Hour), profiles
}

func seedProfile(t *testing.T, profiles *memory.ProfileRepository) *domain.Profile {
	t.Helper()
	p := &domain.Profile{
		Email:    "dana@example.com",
		Name:     "Dana",
		Age:      29,
		Gender:   "Female",
		Location: "Portland, OR",
	}
	require.NoError(t, profiles.Create(context.Background(), p))
	return p
}

func TestIssueAndVerifyToken(t *testing.T) {
	uc, profiles := newUseCase(t)
	profile := seedProfile(t, profiles)

	resp, err := uc.IssueToken(context.Background(), profile.Email)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.True(t, resp.ExpiresAt.After(time.Now()))
	require.Equal(t, profile.ID, resp.Profile.ID)

	userID, err := uc.VerifyToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, profile.ID, userID)
}

func TestIssueTokenUnknownEmail(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.IssueToken(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	uc, _ := newUseCase(t)

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		_, err := uc.VerifyToken(token)
		require.ErrorIs(t, err, domain.ErrInvalidToken)
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	uc, profiles := newUseCase(t)
	profile := seedProfile(t, profiles)

	resp, err := uc.IssueToken(context.Background(), profile.Email)
	require.NoError(t, err)

	other := NewAuthUseCase(profiles, "a-different-secret-key-32-characters!", time.Hour)
	_, err = other.VerifyToken(resp.Token)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	uc, profiles := newUseCase(t)
	profile := seedProfile(t, profiles)

	short := NewAuthUseCase(profiles, testSecret, -time.Minute)
	resp, err := short.IssueToken(context.Background(), profile.Email)
	require.NoError(t, err)

	_, err = uc.VerifyToken(resp.Token)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}
