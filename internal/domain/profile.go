package domain

import "time"

type Profile struct {
	ID                 string     `json:"id" db:"id"`
	Email              string     `json:"email" db:"email"`
	Name               string     `json:"name" db:"name"`
	Age                int        `json:"age" db:"age"`
	Gender             string     `json:"gender" db:"gender"`
	Location           string     `json:"location" db:"location"`
	Occupation         *string    `json:"occupation" db:"occupation"`
	Bio                *string    `json:"bio" db:"bio"`
	Interests          []string   `json:"interests" db:"interests"`
	LookingFor         string     `json:"looking_for" db:"looking_for"`
	DealBreakers       []string   `json:"deal_breakers" db:"deal_breakers"`
	IdealDateType      []string   `json:"ideal_date_type" db:"ideal_date_type"`
	Photos             []string   `json:"photos" db:"photos"`
	PreferredGender    []string   `json:"preferred_gender" db:"preferred_gender"`
	PreferredAgeMin    int        `json:"preferred_age_min" db:"preferred_age_min"`
	PreferredAgeMax    int        `json:"preferred_age_max" db:"preferred_age_max"`
	OnboardingComplete bool       `json:"onboarding_complete" db:"onboarding_complete"`
	LastMatchDate      *time.Time `json:"last_match_date" db:"last_match_date"`
	MatchesShownToday  int        `json:"matches_shown_today" db:"matches_shown_today"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}
