package domain

// ProfileDraft accumulates the fields the profile-builder agent has extracted
// so far during an onboarding conversation. All fields are optional; the agent
// fills them in over several turns.
type ProfileDraft struct {
	Name            *string  `json:"name,omitempty"`
	Age             *int     `json:"age,omitempty"`
	Gender          *string  `json:"gender,omitempty"`
	Location        *string  `json:"location,omitempty"`
	Occupation      *string  `json:"occupation,omitempty"`
	Bio             *string  `json:"bio,omitempty"`
	Interests       []string `json:"interests,omitempty"`
	LookingFor      *string  `json:"lookingFor,omitempty"`
	DealBreakers    []string `json:"dealBreakers,omitempty"`
	IdealDateType   []string `json:"idealDateType,omitempty"`
	PreferredGender []string `json:"preferredGender,omitempty"`
	PreferredAgeMin *int     `json:"preferredAgeMin,omitempty"`
	PreferredAgeMax *int     `json:"preferredAgeMax,omitempty"`
}

// Merge folds other into d. Non-nil (and non-empty list) fields overwrite;
// nil fields never erase a previously known value.
func (d *ProfileDraft) Merge(other *ProfileDraft) {
	if other == nil {
		return
	}
	if other.Name != nil {
		d.Name = other.Name
	}
	if other.Age != nil {
		d.Age = other.Age
	}
	if other.Gender != nil {
		d.Gender = other.Gender
	}
	if other.Location != nil {
		d.Location = other.Location
	}
	if other.Occupation != nil {
		d.Occupation = other.Occupation
	}
	if other.Bio != nil {
		d.Bio = other.Bio
	}
	if len(other.Interests) > 0 {
		d.Interests = other.Interests
	}
	if other.LookingFor != nil {
		d.LookingFor = other.LookingFor
	}
	if len(other.DealBreakers) > 0 {
		d.DealBreakers = other.DealBreakers
	}
	if len(other.IdealDateType) > 0 {
		d.IdealDateType = other.IdealDateType
	}
	if len(other.PreferredGender) > 0 {
		d.PreferredGender = other.PreferredGender
	}
	if other.PreferredAgeMin != nil {
		d.PreferredAgeMin = other.PreferredAgeMin
	}
	if other.PreferredAgeMax != nil {
		d.PreferredAgeMax = other.PreferredAgeMax
	}
}

// MissingFields lists the required fields the draft still lacks. A profile
// cannot be finalized while any are missing.
func (d *ProfileDraft) MissingFields() []string {
	var missing []string
	if d.Name == nil || *d.Name == "" {
		missing = append(missing, "name")
	}
	if d.Age == nil {
		missing = append(missing, "age")
	}
	if d.Gender == nil || *d.Gender == "" {
		missing = append(missing, "gender")
	}
	if d.Location == nil || *d.Location == "" {
		missing = append(missing, "location")
	}
	return missing
}
