package auth

import (
	"context"
	"time"

	"github.com/doublemate/doublemate-backend/internal/domain"
	"github.com/doublemate/doublemate-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

// AuthUseCase issues and verifies the prototype's bearer tokens. There are no
// passwords: onboarding is agent-driven, so a token is granted for any known
// profile email.
type AuthUseCase struct {
	profileRepo repository.ProfileRepository
	jwtSecret   string
	tokenTTL    time.Duration
}

func NewAuthUseCase(profileRepo repository.ProfileRepository, jwtSecret string, tokenTTL time.Duration) *AuthUseCase {
	return &AuthUseCase{
		profileRepo: profileRepo,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

type TokenResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   *domain.Profile `json:"profile"`
}

// IssueToken returns a signed JWT for the profile registered under email.
func (uc *AuthUseCase) IssueToken(ctx context.Context, email string) (*TokenResponse, error) {
	profile, err := uc.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(uc.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": profile.ID,
		"email":   profile.Email,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	})

	signed, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		Profile:   profile,
	}, nil
}

// VerifyToken validates a JWT and returns the embedded user id.
func (uc *AuthUseCase) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", domain.ErrInvalidToken
	}
	return userID, nil
}
