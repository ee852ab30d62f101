package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/doublemate/doublemate-backend/internal/domain"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiAgent backs both the Matchmaker and ProfileBuilder contracts with a
// Gemini model. Prompts ask for strict JSON; responses are unwrapped from
// markdown fences before decoding and anything undecodable is surfaced as an
// upstream error.
type GeminiAgent struct {
	client *genai.Client
	model  *genai.GenerativeModel

	mu       sync.Mutex
	sessions map[string]*genai.ChatSession
}

func NewGeminiAgent(apiKey, modelName string) (*GeminiAgent, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)

	return &GeminiAgent{
		client:   client,
		model:    model,
		sessions: make(map[string]*genai.ChatSession),
	}, nil
}

func (a *GeminiAgent) Close() {
	a.client.Close()
}

// matchCandidate is the slimmed-down profile view the matchmaker sees.
type matchCandidate struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Age           int      `json:"age"`
	Gender        string   `json:"gender"`
	Location      string   `json:"location"`
	Occupation    *string  `json:"occupation"`
	Bio           *string  `json:"bio"`
	Interests     []string `json:"interests"`
	LookingFor    string   `json:"lookingFor"`
	IdealDateType []string `json:"idealDateType"`
}

type matchVerdict struct {
	Status     string          `json:"status"`
	DailyMatch *MatchSelection `json:"dailyMatch"`
}

func toCandidate(p *domain.Profile) matchCandidate {
	return matchCandidate{
		ID:            p.ID,
		Name:          p.Name,
		Age:           p.Age,
		Gender:        p.Gender,
		Location:      p.Location,
		Occupation:    p.Occupation,
		Bio:           p.Bio,
		Interests:     p.Interests,
		LookingFor:    p.LookingFor,
		IdealDateType: p.IdealDateType,
	}
}

func (a *GeminiAgent) SelectDailyMatch(ctx context.Context, user *domain.Profile, candidates []*domain.Profile) (*MatchSelection, error) {
	pool := make([]matchCandidate, 0, len(candidates))
	for _, c := range candidates {
		pool = append(pool, toCandidate(c))
	}

	input, err := json.Marshal(struct {
		CurrentUser      matchCandidate   `json:"currentUser"`
		PotentialMatches []matchCandidate `json:"potentialMatches"`
		DealBreakers     []string         `json:"dealBreakers"`
		PreferredGender  []string         `json:"preferredGender"`
	}{
		CurrentUser:      toCandidate(user),
		PotentialMatches: pool,
		DealBreakers:     user.DealBreakers,
		PreferredGender:  user.PreferredGender,
	})
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`You are a matchmaking agent for a dating app.
Given the requesting user and a pool of candidates, pick the single most
compatible candidate, honoring the user's preferred genders and deal breakers.

Input:
%s

Output strict JSON only, one of:
  {"status": "no_matches"}
  {"dailyMatch": {"matchedUserId": "<candidate id>", "compatibilityScore": <0-100>, "matchReason": "<1-2 sentences>"}}`, input)

	resp, err := a.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, &domain.UpstreamError{Op: "daily match agent", Err: err}
	}

	var verdict matchVerdict
	if err := decodeJSONResponse(resp, &verdict); err != nil {
		return nil, &domain.UpstreamError{Op: "daily match agent", Err: err}
	}

	if verdict.Status == "no_matches" || verdict.DailyMatch == nil {
		return nil, nil
	}
	if verdict.DailyMatch.MatchedUserID == "" {
		return nil, &domain.UpstreamError{Op: "daily match agent", Err: fmt.Errorf("verdict missing matchedUserId")}
	}
	return verdict.DailyMatch, nil
}

const profileBuilderInstruction = `You are an onboarding assistant for a dating app.
Chat with the user to learn about them: name, age, gender, location, occupation,
bio, interests, what they are looking for, deal breakers, ideal date types and
partner preferences (genders, age range).

Every reply must be strict JSON:
  {"message": "<your next question or remark>",
   "profileData": {<only the fields learned so far, camelCase, null omitted>},
   "isComplete": <true once name, age, gender and location are all known>}`

func (a *GeminiAgent) Chat(ctx context.Context, sessionID, message string) (*ProfileTurn, error) {
	session := a.session(sessionID)

	resp, err := session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return nil, &domain.UpstreamError{Op: "profile builder agent", Err: err}
	}

	var turn ProfileTurn
	if err := decodeJSONResponse(resp, &turn); err != nil {
		return nil, &domain.UpstreamError{Op: "profile builder agent", Err: err}
	}
	return &turn, nil
}

func (a *GeminiAgent) session(sessionID string) *genai.ChatSession {
	a.mu.Lock()
	defer a.mu.Unlock()

	if s, ok := a.sessions[sessionID]; ok {
		return s
	}
	s := a.model.StartChat()
	s.History = []*genai.Content{
		{Role: "user", Parts: []genai.Part{genai.Text(profileBuilderInstruction)}},
		{Role: "model", Parts: []genai.Part{genai.Text(`{"message": "Hi! What's your name?", "profileData": {}, "isComplete": false}`)}},
	}
	a.sessions[sessionID] = s
	return s
}

// decodeJSONResponse concatenates the text parts of a Gemini response, strips
// markdown code fences and unmarshals into v.
func decodeJSONResponse(resp *genai.GenerateContentResponse, v interface{}) error {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	text := strings.TrimSpace(sb.String())
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("failed to parse agent response: %w", err)
	}
	return nil
}
