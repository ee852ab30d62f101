package domain

import "time"

// MatchStatus reflects the most recent responder's action. It is not a merged
// view of both sides: a later dislike from the other participant overwrites a
// previous "liked". The mutual transition is the only one-way step.
type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusLiked    MatchStatus = "liked"
	MatchStatusDisliked MatchStatus = "disliked"
	MatchStatusMutual   MatchStatus = "mutual"
)

type Match struct {
	ID                 string      `json:"id" db:"id"`
	UserID             string      `json:"user_id" db:"user_id"`
	MatchedUserID      string      `json:"matched_user_id" db:"matched_user_id"`
	Status             MatchStatus `json:"status" db:"status"`
	UserLiked          *bool       `json:"user_liked" db:"user_liked"`
	MatchedUserLiked   *bool       `json:"matched_user_liked" db:"matched_user_liked"`
	CompatibilityScore int         `json:"compatibility_score" db:"compatibility_score"`
	MatchReason        string      `json:"match_reason" db:"match_reason"`
	IsMutualMatch      bool        `json:"is_mutual_match" db:"is_mutual_match"`
	ChatUnlockedAt     *time.Time  `json:"chat_unlocked_at" db:"chat_unlocked_at"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" db:"updated_at"`
}

func (m *Match) HasUser(userID string) bool {
	return m.UserID == userID || m.MatchedUserID == userID
}

func (m *Match) OtherUserID(userID string) (string, bool) {
	if m.UserID == userID {
		return m.MatchedUserID, true
	}
	if m.MatchedUserID == userID {
		return m.UserID, true
	}
	return "", false
}

// BothLiked reports whether both participants recorded a positive response.
func (m *Match) BothLiked() bool {
	return m.UserLiked != nil && *m.UserLiked &&
		m.MatchedUserLiked != nil && *m.MatchedUserLiked
}
