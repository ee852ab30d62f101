package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doublemate/doublemate-backend/internal/domain"
	"github.com/doublemate/doublemate-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const profileColumns = `
	id, email, name, age, gender, location, occupation, bio, interests,
	looking_for, deal_breakers, ideal_date_type, photos, preferred_gender,
	preferred_age_min, preferred_age_max, onboarding_complete,
	last_match_date, matches_shown_today, created_at, updated_at
`

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func scanProfile(row sqlx.ColScanner) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.Name, &p.Age, &p.Gender, &p.Location,
		&p.Occupation, &p.Bio, pq.Array(&p.Interests),
		&p.LookingFor, pq.Array(&p.DealBreakers), pq.Array(&p.IdealDateType),
		pq.Array(&p.Photos), pq.Array(&p.PreferredGender),
		&p.PreferredAgeMin, &p.PreferredAgeMax, &p.OnboardingComplete,
		&p.LastMatchDate, &p.MatchesShownToday, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	query := `
		INSERT INTO profiles (
			id, email, name, age, gender, location, occupation, bio, interests,
			looking_for, deal_breakers, ideal_date_type, photos, preferred_gender,
			preferred_age_min, preferred_age_max, onboarding_complete,
			last_match_date, matches_shown_today
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.Email, profile.Name, profile.Age, profile.Gender,
		profile.Location, profile.Occupation, profile.Bio, pq.Array(profile.Interests),
		profile.LookingFor, pq.Array(profile.DealBreakers), pq.Array(profile.IdealDateType),
		pq.Array(profile.Photos), pq.Array(profile.PreferredGender),
		profile.PreferredAgeMin, profile.PreferredAgeMax, profile.OnboardingComplete,
		profile.LastMatchDate, profile.MatchesShownToday,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRowxContext(ctx, query, id))
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return scanProfile(r.db.QueryRowxContext(ctx, query, email))
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	query := `
		INSERT INTO profiles (
			id, email, name, age, gender, location, occupation, bio, interests,
			looking_for, deal_breakers, ideal_date_type, photos, preferred_gender,
			preferred_age_min, preferred_age_max, onboarding_complete,
			last_match_date, matches_shown_today
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			location = EXCLUDED.location,
			occupation = EXCLUDED.occupation,
			bio = EXCLUDED.bio,
			interests = EXCLUDED.interests,
			looking_for = EXCLUDED.looking_for,
			deal_breakers = EXCLUDED.deal_breakers,
			ideal_date_type = EXCLUDED.ideal_date_type,
			preferred_gender = EXCLUDED.preferred_gender,
			preferred_age_min = EXCLUDED.preferred_age_min,
			preferred_age_max = EXCLUDED.preferred_age_max,
			onboarding_complete = EXCLUDED.onboarding_complete,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.Email, profile.Name, profile.Age, profile.Gender,
		profile.Location, profile.Occupation, profile.Bio, pq.Array(profile.Interests),
		profile.LookingFor, pq.Array(profile.DealBreakers), pq.Array(profile.IdealDateType),
		pq.Array(profile.Photos), pq.Array(profile.PreferredGender),
		profile.PreferredAgeMin, profile.PreferredAgeMax, profile.OnboardingComplete,
		profile.LastMatchDate, profile.MatchesShownToday,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET name = $1, age = $2, gender = $3, location = $4, occupation = $5,
		    bio = $6, interests = $7, looking_for = $8, deal_breakers = $9,
		    ideal_date_type = $10, photos = $11, preferred_gender = $12,
		    preferred_age_min = $13, preferred_age_max = $14,
		    onboarding_complete = $15, last_match_date = $16,
		    matches_shown_today = $17, updated_at = CURRENT_TIMESTAMP
		WHERE id = $18
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.Name, profile.Age, profile.Gender, profile.Location,
		profile.Occupation, profile.Bio, pq.Array(profile.Interests),
		profile.LookingFor, pq.Array(profile.DealBreakers), pq.Array(profile.IdealDateType),
		pq.Array(profile.Photos), pq.Array(profile.PreferredGender),
		profile.PreferredAgeMin, profile.PreferredAgeMax,
		profile.OnboardingComplete, profile.LastMatchDate,
		profile.MatchesShownToday, profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) FindCandidates(ctx context.Context, filter repository.CandidateFilter) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE onboarding_complete = $1`
	args := []interface{}{filter.OnboardingComplete}
	argCount := 2

	if len(filter.ExcludeIDs) > 0 {
		query += fmt.Sprintf(" AND NOT (id = ANY($%d))", argCount)
		args = append(args, pq.Array(filter.ExcludeIDs))
		argCount++
	}
	if filter.MinAge > 0 {
		query += fmt.Sprintf(" AND age >= $%d", argCount)
		args = append(args, filter.MinAge)
		argCount++
	}
	if filter.MaxAge > 0 {
		query += fmt.Sprintf(" AND age <= $%d", argCount)
		args = append(args, filter.MaxAge)
		argCount++
	}

	query += " ORDER BY id ASC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
