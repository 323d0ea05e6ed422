package postgres

import (
	"context"
	"errors"

	"go-griefcare-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type counselorRepo struct {
	db *pgxpool.Pool
}

// NewCounselorRepository creates a read-only counselor repository.
// Counselor rows are administered outside this service.
func NewCounselorRepository(db *pgxpool.Pool) domain.CounselorRepository {
	return &counselorRepo{db: db}
}

const counselorColumns = `
	id, name, email, phone, license_number, specialty,
	specialized_relationships, support_levels, specialized_age_groups,
	introduction, education, experience, experience_years, rating,
	total_reviews, status, profile_image, max_clients_per_day,
	current_clients_today, created_at, updated_at`

func scanCounselor(row pgx.Row) (*domain.Counselor, error) {
	var c domain.Counselor
	var rawRelationships, rawLevels, rawBrackets string

	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.LicenseNumber, &c.Specialty,
		&rawRelationships, &rawLevels, &rawBrackets,
		&c.Introduction, &c.Education, &c.Experience, &c.ExperienceYears, &c.Rating,
		&c.TotalReviews, &c.Status, &c.ProfileImage, &c.MaxClientsPerDay,
		&c.CurrentClientsToday, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.SpecializedRelationships = decodeRelationshipSet(rawRelationships)
	c.SupportLevels = decodeSupportLevelSet(rawLevels)
	c.SpecializedAgeBrackets = decodeAgeBracketSet(rawBrackets)
	return &c, nil
}

// ListAvailable returns the eligible recommendation pool: counselors
// currently accepting sessions, best-rated first.
func (r *counselorRepo) ListAvailable(ctx context.Context) ([]domain.Counselor, error) {
	query := `
		SELECT ` + counselorColumns + `
		FROM counselors
		WHERE status = $1
		ORDER BY rating DESC, experience_years DESC`

	rows, err := r.db.Query(ctx, query, domain.CounselorAvailable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counselors []domain.Counselor
	for rows.Next() {
		c, err := scanCounselor(rows)
		if err != nil {
			return nil, err
		}
		counselors = append(counselors, *c)
	}
	return counselors, rows.Err()
}

// Fetch returns the full counselor catalog, best-rated first.
func (r *counselorRepo) Fetch(ctx context.Context) ([]domain.Counselor, error) {
	query := `
		SELECT ` + counselorColumns + `
		FROM counselors
		ORDER BY rating DESC, experience_years DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counselors []domain.Counselor
	for rows.Next() {
		c, err := scanCounselor(rows)
		if err != nil {
			return nil, err
		}
		counselors = append(counselors, *c)
	}
	return counselors, rows.Err()
}

func (r *counselorRepo) GetByID(ctx context.Context, id int64) (*domain.Counselor, error) {
	query := `
		SELECT ` + counselorColumns + `
		FROM counselors
		WHERE id = $1`

	c, err := scanCounselor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
