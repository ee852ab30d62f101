package profile

import (
	"context"
	"fmt"

	"github.com/doublemate/doublemate-backend/internal/domain"
	"github.com/doublemate/doublemate-backend/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: profileRepo}
}

// UpdateProfileRequest is a patch: nil fields leave the stored value alone.
// Identity fields (id, email) cannot be changed.
type UpdateProfileRequest struct {
	Name            *string   `json:"name" binding:"omitempty,min=1,max=100"`
	Age             *int      `json:"age" binding:"omitempty,min=18,max=120"`
	Gender          *string   `json:"gender" binding:"omitempty,max=50"`
	Location        *string   `json:"location" binding:"omitempty,max=200"`
	Occupation      *string   `json:"occupation" binding:"omitempty,max=200"`
	Bio             *string   `json:"bio" binding:"omitempty,max=1000"`
	Interests       *[]string `json:"interests"`
	LookingFor      *string   `json:"looking_for" binding:"omitempty,max=500"`
	DealBreakers    *[]string `json:"deal_breakers"`
	IdealDateType   *[]string `json:"ideal_date_type"`
	PreferredGender *[]string `json:"preferred_gender"`
	PreferredAgeMin *int      `json:"preferred_age_min" binding:"omitempty,min=18,max=120"`
	PreferredAgeMax *int      `json:"preferred_age_max" binding:"omitempty,min=18,max=120"`
}

func (uc *ProfileUseCase) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return uc.profileRepo.GetByID(ctx, userID)
}

func (uc *ProfileUseCase) GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return uc.profileRepo.GetByEmail(ctx, email)
}

func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Occupation != nil {
		profile.Occupation = req.Occupation
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Interests != nil {
		profile.Interests = *req.Interests
	}
	if req.LookingFor != nil {
		profile.LookingFor = *req.LookingFor
	}
	if req.DealBreakers != nil {
		profile.DealBreakers = *req.DealBreakers
	}
	if req.IdealDateType != nil {
		profile.IdealDateType = *req.IdealDateType
	}
	if req.PreferredGender != nil {
		profile.PreferredGender = *req.PreferredGender
	}
	if req.PreferredAgeMin != nil {
		profile.PreferredAgeMin = *req.PreferredAgeMin
	}
	if req.PreferredAgeMax != nil {
		profile.PreferredAgeMax = *req.PreferredAgeMax
	}

	if profile.PreferredAgeMin > profile.PreferredAgeMax {
		return nil, domain.ErrInvalidAgeRange
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}
