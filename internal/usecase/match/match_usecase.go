package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doublemate/doublemate-backend/internal/domain"
	"github.com/doublemate/doublemate-backend/internal/infrastructure/agent"
	"github.com/doublemate/doublemate-backend/internal/repository"
	"github.com/rs/zerolog"
)

// candidatePoolSize caps how many eligible profiles are offered to the
// matchmaker agent per request.
const candidatePoolSize = 20

type MatchUseCase struct {
	profileRepo repository.ProfileRepository
	matchRepo   repository.MatchRepository
	matchmaker  agent.Matchmaker
	log         zerolog.Logger
	locks       *keyedMutex
	userLocks   *keyedMutex
	now         func() time.Time
}

func NewMatchUseCase(
	profileRepo repository.ProfileRepository,
	matchRepo repository.MatchRepository,
	matchmaker agent.Matchmaker,
	log zerolog.Logger,
) *MatchUseCase {
	return &MatchUseCase{
		profileRepo: profileRepo,
		matchRepo:   matchRepo,
		matchmaker:  matchmaker,
		log:         log,
		locks:       newKeyedMutex(),
		userLocks:   newKeyedMutex(),
		now:         time.Now,
	}
}

// DailyMatchResult is the outcome of a daily-match request. Match is nil when
// no match is available; Message then says why.
type DailyMatchResult struct {
	Match       *domain.Match   `json:"match,omitempty"`
	MatchedUser *domain.Profile `json:"matched_user,omitempty"`
	IsNew       bool            `json:"is_new"`
	Message     string          `json:"message,omitempty"`
}

// GetDailyMatch returns the user's match for the current calendar day,
// assigning one if none exists yet. Calling it twice on the same day never
// creates a second match; concurrent calls for the same user serialize on a
// per-user lock, so the second one sees the first one's match.
func (uc *MatchUseCase) GetDailyMatch(ctx context.Context, userID string) (*DailyMatchResult, error) {
	unlock := uc.userLocks.lock(userID)
	defer unlock()

	user, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := midnight(uc.now())

	existing, err := uc.matchRepo.GetTodayMatch(ctx, userID, today)
	if err == nil {
		return uc.withMatchedUser(ctx, &DailyMatchResult{Match: existing, IsNew: false}), nil
	}
	if !errors.Is(err, domain.ErrMatchNotFound) {
		return nil, err
	}

	previousIDs, err := uc.matchRepo.GetMatchedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.profileRepo.FindCandidates(ctx, repository.CandidateFilter{
		ExcludeIDs:         append(previousIDs, userID),
		MinAge:             user.PreferredAgeMin,
		MaxAge:             user.PreferredAgeMax,
		OnboardingComplete: true,
		Limit:              candidatePoolSize,
	})
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &DailyMatchResult{Message: "No potential matches available"}, nil
	}

	selection, err := uc.matchmaker.SelectDailyMatch(ctx, user, candidates)
	if err != nil {
		return nil, err
	}
	if selection == nil {
		return &DailyMatchResult{Message: "No suitable match found today"}, nil
	}
	if !inPool(candidates, selection.MatchedUserID) {
		return nil, &domain.UpstreamError{
			Op:  "daily match agent",
			Err: fmt.Errorf("selected user %s is not in the candidate pool", selection.MatchedUserID),
		}
	}

	match := &domain.Match{
		UserID:             userID,
		MatchedUserID:      selection.MatchedUserID,
		Status:             domain.MatchStatusPending,
		CompatibilityScore: selection.CompatibilityScore,
		MatchReason:        selection.MatchReason,
	}
	if err := uc.matchRepo.CreateDailyMatch(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create daily match: %w", err)
	}

	uc.log.Info().
		Str("user_id", userID).
		Str("matched_user_id", match.MatchedUserID).
		Int("score", match.CompatibilityScore).
		Msg("daily match assigned")

	return uc.withMatchedUser(ctx, &DailyMatchResult{Match: match, IsNew: true}), nil
}

// RespondToMatch records a like or dislike from one participant. When both
// sides have liked, the match transitions to mutual exactly once and chat is
// unlocked. The returned bool reports whether this call made the match mutual.
//
// Each match is responded to under a per-match lock so two interleaved
// responses cannot lose the mutual transition.
func (uc *MatchUseCase) RespondToMatch(ctx context.Context, matchID, userID string, liked bool) (*domain.Match, bool, error) {
	unlock := uc.locks.lock(matchID)
	defer unlock()

	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, false, err
	}
	if !match.HasUser(userID) {
		return nil, false, domain.ErrNotParticipant
	}

	// A mutual match is settled; further responses are no-ops.
	if match.IsMutualMatch {
		return match, false, nil
	}

	if match.UserID == userID {
		match.UserLiked = &liked
	} else {
		match.MatchedUserLiked = &liked
	}
	// Status reflects only this (most recent) response; see domain.MatchStatus.
	if liked {
		match.Status = domain.MatchStatusLiked
	} else {
		match.Status = domain.MatchStatusDisliked
	}

	becameMutual := false
	if match.BothLiked() {
		match.IsMutualMatch = true
		match.Status = domain.MatchStatusMutual
		now := uc.now()
		match.ChatUnlockedAt = &now
		becameMutual = true
	}

	if err := uc.matchRepo.Update(ctx, match); err != nil {
		return nil, false, err
	}

	if becameMutual {
		uc.log.Info().Str("match_id", match.ID).Msg("mutual match, chat unlocked")
	}
	return match, becameMutual, nil
}

// ListMatches returns the user's match history, newest first.
func (uc *MatchUseCase) ListMatches(ctx context.Context, userID string) ([]*domain.Match, error) {
	if _, err := uc.profileRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return uc.matchRepo.GetUserMatches(ctx, userID)
}

func (uc *MatchUseCase) withMatchedUser(ctx context.Context, result *DailyMatchResult) *DailyMatchResult {
	matched, err := uc.profileRepo.GetByID(ctx, result.Match.MatchedUserID)
	if err != nil {
		uc.log.Warn().Err(err).Str("match_id", result.Match.ID).Msg("failed to load matched user profile")
		return result
	}
	result.MatchedUser = matched
	return result
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func inPool(candidates []*domain.Profile, id string) bool {
	for _, c := range candidates {
		if c.ID == id {
			return true
		}
	}
	return false
}
