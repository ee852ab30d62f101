package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doublemate/doublemate-backend/internal/domain"
	"github.com/doublemate/doublemate-backend/internal/infrastructure/agent"
	"github.com/doublemate/doublemate-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type OnboardingUseCase struct {
	profileRepo repository.ProfileRepository
	drafts      repository.DraftStore
	builder     agent.ProfileBuilder
	log         zerolog.Logger
}

func NewOnboardingUseCase(
	profileRepo repository.ProfileRepository,
	drafts repository.DraftStore,
	builder agent.ProfileBuilder,
	log zerolog.Logger,
) *OnboardingUseCase {
	return &OnboardingUseCase{
		profileRepo: profileRepo,
		drafts:      drafts,
		builder:     builder,
		log:         log,
	}
}

// AdvanceResult is one onboarding turn: what the agent said, the draft
// accumulated so far, and whether the agent considers the profile complete.
type AdvanceResult struct {
	SessionID    string               `json:"session_id"`
	AgentMessage string               `json:"agent_message"`
	Draft        *domain.ProfileDraft `json:"profile_data"`
	IsComplete   bool                 `json:"is_complete"`
}

// Advance forwards one user turn to the profile-builder agent and merges the
// extracted fields into the session's draft. An agent failure leaves the
// draft untouched, so the client may retry the same turn.
func (uc *OnboardingUseCase) Advance(ctx context.Context, sessionID, message string) (*AdvanceResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, domain.ErrEmptyMessage
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	draft, err := uc.drafts.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrDraftNotFound) {
			return nil, err
		}
		draft = &domain.ProfileDraft{}
	}

	turn, err := uc.builder.Chat(ctx, sessionID, message)
	if err != nil {
		return nil, err
	}

	draft.Merge(turn.ProfileData)
	if err := uc.drafts.Save(ctx, sessionID, draft); err != nil {
		return nil, err
	}

	return &AdvanceResult{
		SessionID:    sessionID,
		AgentMessage: turn.Message,
		Draft:        draft,
		IsComplete:   turn.IsComplete,
	}, nil
}

// CompleteOnboarding finalizes a draft into a profile keyed by email. The
// profile is created or updated with onboarding marked complete; identity
// fields of an existing profile are preserved by the store.
func (uc *OnboardingUseCase) CompleteOnboarding(ctx context.Context, email string, draft *domain.ProfileDraft) (*domain.Profile, error) {
	if email == "" || draft == nil {
		return nil, fmt.Errorf("%w: email and profile data are required", domain.ErrIncompleteDraft)
	}
	if missing := draft.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrIncompleteDraft, strings.Join(missing, ", "))
	}

	profile := &domain.Profile{
		Email:              email,
		Name:               *draft.Name,
		Age:                *draft.Age,
		Gender:             *draft.Gender,
		Location:           *draft.Location,
		Occupation:         draft.Occupation,
		Bio:                draft.Bio,
		Interests:          orEmpty(draft.Interests),
		LookingFor:         stringOr(draft.LookingFor, ""),
		DealBreakers:       orEmpty(draft.DealBreakers),
		IdealDateType:      orEmpty(draft.IdealDateType),
		Photos:             []string{},
		PreferredGender:    orEmpty(draft.PreferredGender),
		PreferredAgeMin:    intOr(draft.PreferredAgeMin, 18),
		PreferredAgeMax:    intOr(draft.PreferredAgeMax, 99),
		OnboardingComplete: true,
	}

	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to finalize profile: %w", err)
	}

	uc.log.Info().Str("profile_id", profile.ID).Msg("onboarding complete")
	return profile, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func intOr(i *int, fallback int) int {
	if i == nil || *i == 0 {
		return fallback
	}
	return *i
}
