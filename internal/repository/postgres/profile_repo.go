package postgres

import (
	"context"
	"errors"
	"time"

	"go-griefcare-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type profileRepo struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates the family survey repository.
func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

const profileColumns = `
	id, user_id, birth_date, relationship_to_deceased,
	relationship_description, psychological_support_level, main_concerns,
	meeting_participation_desire, personal_notes, privacy_agreement,
	survey_completed, created_at, updated_at`

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var concerns []string

	err := row.Scan(
		&p.ID, &p.UserID, &p.BirthDate, &p.Relationship,
		&p.RelationshipDescription, &p.SupportLevel, pq.Array(&concerns),
		&p.MeetingParticipation, &p.PersonalNotes, &p.PrivacyAgreement,
		&p.SurveyCompleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.MainConcerns = concerns
	return &p, nil
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM family_surveys
		WHERE user_id = $1`

	p, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO family_surveys (
			user_id, birth_date, relationship_to_deceased,
			relationship_description, psychological_support_level, main_concerns,
			meeting_participation_desire, personal_notes, privacy_agreement,
			survey_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	return r.db.QueryRow(ctx, query,
		profile.UserID,
		profile.BirthDate,
		profile.Relationship,
		profile.RelationshipDescription,
		profile.SupportLevel,
		pq.Array(profile.MainConcerns),
		profile.MeetingParticipation,
		profile.PersonalNotes,
		profile.PrivacyAgreement,
		profile.SurveyCompleted,
		profile.CreatedAt,
		profile.UpdatedAt,
	).Scan(&profile.ID)
}

func (r *profileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE family_surveys SET
			birth_date = $2,
			relationship_to_deceased = $3,
			relationship_description = $4,
			psychological_support_level = $5,
			main_concerns = $6,
			meeting_participation_desire = $7,
			personal_notes = $8,
			privacy_agreement = $9,
			survey_completed = $10,
			updated_at = $11
		WHERE user_id = $1`

	profile.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		profile.UserID,
		profile.BirthDate,
		profile.Relationship,
		profile.RelationshipDescription,
		profile.SupportLevel,
		pq.Array(profile.MainConcerns),
		profile.MeetingParticipation,
		profile.PersonalNotes,
		profile.PrivacyAgreement,
		profile.SurveyCompleted,
		profile.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) Delete(ctx context.Context, userID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM family_surveys WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Fetch returns a page of surveys with the total count, newest first.
func (r *profileRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Profile, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM family_surveys`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + profileColumns + `
		FROM family_surveys
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, total, rows.Err()
}
