package match

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/doublemate/doublemate-backend/internal/domain"
	"github.com/doublemate/doublemate-backend/internal/infrastructure/agent"
	"github.com/doublemate/doublemate-backend/internal/repository/memory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakeMatchmaker stands in for the external scoring agent.
type fakeMatchmaker struct {
	mu          sync.Mutex
	selectFirst bool
	selection   *agent.MatchSelection
	err         error
	calls       int
	lastUsers   []string
}

func (f *fakeMatchmaker) SelectDailyMatch(ctx context.Context, user *domain.Profile, candidates []*domain.Profile) (*agent.MatchSelection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastUsers = nil
	for _, c := range candidates {
		f.lastUsers = append(f.lastUsers, c.ID)
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.selection != nil {
		return f.selection, nil
	}
	if f.selectFirst && len(candidates) > 0 {
		return &agent.MatchSelection{
			MatchedUserID:      candidates[0].ID,
			CompatibilityScore: 87,
			MatchReason:        "shared love of hiking",
		}, nil
	}
	return nil, nil
}

type fixture struct {
	uc         *MatchUseCase
	profiles   *memory.ProfileRepository
	matches    *memory.MatchRepository
	matchmaker *fakeMatchmaker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	profiles := memory.NewProfileRepository()
	matches := memory.NewMatchRepository(profiles)
	mm := &fakeMatchmaker{selectFirst: true}
	uc := NewMatchUseCase(profiles, matches, mm, zerolog.Nop())
	return &fixture{uc: uc, profiles: profiles, matches: matches, matchmaker: mm}
}

func (f *fixture) seedProfile(t *testing.T, id, email string, age int, minAge, maxAge int, complete bool) *domain.Profile {
	t.Helper()
	p := &domain.Profile{
		ID:                 id,
		Email:              email,
		Name:               "User " + id,
		Age:                age,
		Gender:             "Female",
		Location:           "San Francisco, CA",
		PreferredAgeMin:    minAge,
		PreferredAgeMax:    maxAge,
		OnboardingComplete: complete,
	}
	require.NoError(t, f.profiles.Create(context.Background(), p))
	return p
}

func TestGetDailyMatchCreatesSingleMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// User A (age 30, prefs 25-35) and exactly one eligible candidate B.
	f.seedProfile(t, "a", "a@example.com", 30, 25, 35, true)
	f.seedProfile(t, "b", "b@example.com", 28, 20, 40, true)

	result, err := f.uc.GetDailyMatch(ctx, "a")
	require.NoError(t, err)
	require.True(t, result.IsNew)
	require.NotNil(t, result.Match)
	require.Equal(t, "a", result.Match.UserID)
	require.Equal(t, "b", result.Match.MatchedUserID)
	require.Equal(t, domain.MatchStatusPending, result.Match.Status)
	require.Nil(t, result.Match.UserLiked)
	require.Nil(t, result.Match.MatchedUserLiked)
	require.False(t, result.Match.IsMutualMatch)
	require.NotNil(t, result.MatchedUser)
	require.Equal(t, "b", result.MatchedUser.ID)

	// Counter update applied with the match.
	a, err := f.profiles.GetByID(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, a.LastMatchDate)
	require.Equal(t, 1, a.MatchesShownToday)
}

func TestGetDailyMatchIdempotentSameDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedProfile(t, "a", "a@example.com", 30, 25, 35, true)
	f.seedProfile(t, "b", "b@example.com", 28, 20, 40, true)

	first, err := f.uc.GetDailyMatch(ctx, "a")
	require.NoError(t, err)
	require.True(t, first.IsNew)

	second, err := f.uc.GetDailyMatch(ctx, "a")
	require.NoError(t, err)
	require.False(t, second.IsNew)
	require.Equal(t, first.Match.ID, second.Match.ID)
	require.Equal(t, 1, f.matchmaker.calls, "agent must not be consulted twice in one day")
}

func TestGetDailyMatchNoCandidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedProfile(t, "a", "a@example.com", 30, 25, 35, true)
	// Candidate outside the preferred age range.
	f.seedProfile(t, "b", "b@example.com", 45, 20, 60, true)
	// Candidate who never finished onboarding.
	f.seedProfile(t, "c", "c@example.com", 30, 20, 60, false)

	result, err := f.uc.GetDailyMatch(ctx, "a")
	require.NoError(t, err)
	require.Nil(t, result.Match)
	require.NotEmpty(t, result.Message)
	require.Equal(t, 0, f.matchmaker.calls)
}

func TestGetDailyMatchExcludesSelfAndPreviousMatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedProfile(t, "a", "a@example.com", 30, 18, 99, true)
	f.seedProfile(t, "b", "b@example.com", 28, 18, 99, true)
	f.seedProfile(t, "c", "c@example.com", 31, 18, 99, true)

	// A was already matched with B on an earlier day.
	require.NoError(t, f.matches.CreateDailyMatch(ctx, &domain.Match{
		UserID:        "a",
		MatchedUserID: "b",
		Status:        domain.MatchStatusPending,
	}))
	// Move the usecase clock two days ahead so that match predates "today".
	f.uc.now = func() time.Time { return time.Now().Add(48 * time.Hour) }

	result, err := f.uc.GetDailyMatch(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, result.Match)
	require.Equal(t, "c", result.Match.MatchedUserID)
	require.Equal(t, []string{"c"}, f.matchmaker.lastUsers)
}

func TestConcurrentDailyMatchRequestsCreateOneMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedProfile(t, "a", "a@example.com", 30, 25, 35, true)
	f.seedProfile(t, "b", "b@example.com", 28, 20, 40, true)

	results := make([]*DailyMatchResult, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(i int) {
			defer wg.Done()
			result, err := f.uc.GetDailyMatch(ctx, "a")
			require.NoError(t, err)
			results[i] = result
		}(i)
	}
	wg.Wait()

	require.Equal(t, results[0].Match.ID, results[1].Match.ID)
	require.NotEqual(t, results[0].IsNew, results[1].IsNew, "exactly one call created the match")
	require.Equal(t, 1, f.matchmaker.calls)

	matches, err := f.matches.GetUserMatches(ctx, "a")
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestGetDailyMatchUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.GetDailyMatch(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestGetDailyMatchAgentNoMatch(t *testing.T) {
	f := newFixture(t)
	f.matchmaker.selectFirst = false
	ctx := context.Background()

	f.seedProfile(t, "a", "a@example.com", 30, 25, 35, true)
	f.seedProfile(t, "b", "b@example.com", 28, 20, 40, true)

	result, err := f.uc.GetDailyMatch(ctx, "a")
	require.NoError(t, err)
	require.Nil(t, result.Match)
	require.NotEmpty(t, result.Message)

	// No match row was created, so tomorrow's call can try again.
	_, err = f.matches.GetTodayMatch(ctx, "a", time.Time{})
	require.ErrorIs(t, err, domain.ErrMatchNotFound)
}

func TestGetDailyMatchRejectsSelectionOutsidePool(t *testing.T) {
	f := newFixture(t)
	f.matchmaker.selection = &agent.MatchSelection{MatchedUserID: "nobody", CompatibilityScore: 99}
	ctx := context.Background()

	f.seedProfile(t, "a", "a@example.com", 30, 25, 35, true)
	f.seedProfile(t, "b", "b@example.com", 28, 20, 40, true)

	_, err := f.uc.GetDailyMatch(ctx, "a")
	require.Error(t, err)
	require.True(t, domain.IsUpstream(err))
}

func (f *fixture) seedMatch(t *testing.T, userID, matchedUserID string) *domain.Match {
	t.Helper()
	m := &domain.Match{
		UserID:        userID,
		MatchedUserID: matchedUserID,
		Status:        domain.MatchStatusPending,
	}
	require.NoError(t, f.matches.CreateDailyMatch(context.Background(), m))
	return m
}

func TestRespondToMatchCompletesMutual(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedProfile(t, "a", "a@example.com", 30, 25, 35, true)
	f.seedProfile(t, "b", "b@example.com", 28, 20, 40, true)
	m := f.seedMatch(t, "a", "b")

	// A likes first.
	updated, becameMutual, err := f.uc.RespondToMatch(ctx, m.ID, "a", true)
	require.NoError(t, err)
	require.False(t, becameMutual)
	require.NotNil(t, updated.UserLiked)
	require.True(t, *updated.UserLiked)
	require.Equal(t, domain.MatchStatusLiked, updated.Status)
	require.False(t, updated.IsMutualMatch)
	require.Nil(t, updated.ChatUnlockedAt)

	// B completes the mutual match.
	updated, becameMutual, err = f.uc.RespondToMatch(ctx, m.ID, "b", true)
	require.NoError(t, err)
	require.True(t, becameMutual)
	require.True(t, updated.IsMutualMatch)
	require.Equal(t, domain.MatchStatusMutual, updated.Status)
	require.NotNil(t, updated.ChatUnlockedAt)
}

func TestRespondStatusReflectsLatestResponder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedProfile(t, "a", "a@example.com", 30, 25, 35, true)
	f.seedProfile(t, "b", "b@example.com", 28, 20, 40, true)
	m := f.seedMatch(t, "a", "b")

	_, _, err := f.uc.RespondToMatch(ctx, m.ID, "a", true)
	require.NoError(t, err)

	updated, becameMutual, err := f.uc.RespondToMatch(ctx, m.ID, "b", false)
	require.NoError(t, err)
	require.False(t, becameMutual)
	// Status shows only B's response; A's like survives in its own field.
	require.Equal(t, domain.MatchStatusDisliked, updated.Status)
	require.NotNil(t, updated.UserLiked)
	require.True(t, *updated.UserLiked)
	require.False(t, updated.IsMutualMatch)
}

func TestRespondMutualIsOneWayAndIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedProfile(t, "a", "a@example.com", 30, 25, 35, true)
	f.seedProfile(t, "b", "b@example.com", 28, 20, 40, true)
	m := f.seedMatch(t, "a", "b")

	_, _, err := f.uc.RespondToMatch(ctx, m.ID, "a", true)
	require.NoError(t, err)
	first, _, err := f.uc.RespondToMatch(ctx, m.ID, "b", true)
	require.NoError(t, err)
	unlockedAt := *first.ChatUnlockedAt

	// Any further response is a no-op: still mutual, unlock time unchanged.
	again, becameMutual, err := f.uc.RespondToMatch(ctx, m.ID, "b", false)
	require.NoError(t, err)
	require.False(t, becameMutual)
	require.True(t, again.IsMutualMatch)
	require.Equal(t, domain.MatchStatusMutual, again.Status)
	require.Equal(t, unlockedAt, *again.ChatUnlockedAt)
}

func TestRespondNonParticipant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedProfile(t, "a", "a@example.com", 30, 25, 35, true)
	f.seedProfile(t, "b", "b@example.com", 28, 20, 40, true)
	m := f.seedMatch(t, "a", "b")

	_, _, err := f.uc.RespondToMatch(ctx, m.ID, "intruder", true)
	require.ErrorIs(t, err, domain.ErrNotParticipant)
}

func TestRespondUnknownMatch(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.uc.RespondToMatch(context.Background(), "missing", "a", true)
	require.ErrorIs(t, err, domain.ErrMatchNotFound)
}

func TestConcurrentRespondsConvergeToMutual(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedProfile(t, "a", "a@example.com", 30, 25, 35, true)
	f.seedProfile(t, "b", "b@example.com", 28, 20, 40, true)

	// Run many rounds to give the race a chance to show up.
	for i := 0; i < 50; i++ {
		m := f.seedMatch(t, "a", "b")

		var wg sync.WaitGroup
		wg.Add(2)
		for _, userID := range []string{"a", "b"} {
			go func(id string) {
				defer wg.Done()
				_, _, err := f.uc.RespondToMatch(ctx, m.ID, id, true)
				require.NoError(t, err)
			}(userID)
		}
		wg.Wait()

		final, err := f.matches.GetByID(ctx, m.ID)
		require.NoError(t, err)
		require.True(t, final.IsMutualMatch, "round %d lost a like", i)
		require.Equal(t, domain.MatchStatusMutual, final.Status)
		require.NotNil(t, final.ChatUnlockedAt)
		require.True(t, final.BothLiked())
	}
}

func TestMutualInvariantAfterEveryRespond(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedProfile(t, "a", "a@example.com", 30, 25, 35, true)
	f.seedProfile(t, "b", "b@example.com", 28, 20, 40, true)

	cases := [][]struct {
		userID string
		liked  bool
	}{
		{{"a", true}},
		{{"a", false}},
		{{"a", true}, {"b", false}},
		{{"a", false}, {"b", true}},
		{{"a", true}, {"b", true}},
	}

	for _, steps := range cases {
		m := f.seedMatch(t, "a", "b")
		for _, step := range steps {
			updated, _, err := f.uc.RespondToMatch(ctx, m.ID, step.userID, step.liked)
			require.NoError(t, err)
			require.Equal(t, updated.BothLiked(), updated.IsMutualMatch)
		}
	}
}
