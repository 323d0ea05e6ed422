package postgres

import (
	"context"
	"errors"
	"time"

	"go-griefcare-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type matchingRepo struct {
	db *pgxpool.Pool
}

// NewMatchingRepository creates the match record repository. The pending
// invariant (at most one PENDING record per person/candidate pair) is
// enforced by partial unique indexes, see the matchings migration.
func NewMatchingRepository(db *pgxpool.Pool) domain.MatchingRepository {
	return &matchingRepo{db: db}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Create inserts a new PENDING match record. A concurrent insert for the
// same pair loses against the partial unique index and surfaces as
// domain.ErrDuplicatePending.
func (r *matchingRepo) Create(ctx context.Context, m *domain.Matching) error {
	query := `
		INSERT INTO matchings (
			type, status, match_score, user_id, counselor_id, family_group_id,
			notes, rejection_reason, scheduled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Status == "" {
		m.Status = domain.MatchPending
	}

	err := r.db.QueryRow(ctx, query,
		m.Type,
		m.Status,
		m.MatchScore,
		m.UserID,
		m.CounselorID,
		m.FamilyGroupID,
		m.Notes,
		m.RejectionReason,
		m.ScheduledAt,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePending
		}
		return err
	}
	return nil
}

func (r *matchingRepo) GetByID(ctx context.Context, id int64) (*domain.Matching, error) {
	query := `
		SELECT
			m.id, m.type, m.status, m.match_score, m.user_id,
			m.counselor_id, m.family_group_id, m.notes, m.rejection_reason,
			m.scheduled_at, m.completed_at, m.created_at, m.updated_at,
			c.name, g.name
		FROM matchings m
		LEFT JOIN counselors c ON m.counselor_id = c.id
		LEFT JOIN family_groups g ON m.family_group_id = g.id
		WHERE m.id = $1`

	var m domain.Matching
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Type, &m.Status, &m.MatchScore, &m.UserID,
		&m.CounselorID, &m.FamilyGroupID, &m.Notes, &m.RejectionReason,
		&m.ScheduledAt, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt,
		&m.CounselorName, &m.FamilyGroupName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindPending returns the PENDING record for the pair, or nil when none
// exists.
func (r *matchingRepo) FindPending(ctx context.Context, userID string, matchType domain.MatchType, candidateID int64) (*domain.Matching, error) {
	candidateColumn := "counselor_id"
	if matchType == domain.MatchTypeFamilyGroup {
		candidateColumn = "family_group_id"
	}

	query := `
		SELECT
			id, type, status, match_score, user_id,
			counselor_id, family_group_id, notes, rejection_reason,
			scheduled_at, completed_at, created_at, updated_at
		FROM matchings
		WHERE user_id = $1 AND ` + candidateColumn + ` = $2 AND status = $3`

	var m domain.Matching
	err := r.db.QueryRow(ctx, query, userID, candidateID, domain.MatchPending).Scan(
		&m.ID, &m.Type, &m.Status, &m.MatchScore, &m.UserID,
		&m.CounselorID, &m.FamilyGroupID, &m.Notes, &m.RejectionReason,
		&m.ScheduledAt, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// ListByUser returns the person's match records newest first, with joined
// counselor/group names for list rendering.
func (r *matchingRepo) ListByUser(ctx context.Context, userID string, typeFilter *domain.MatchType) ([]domain.Matching, error) {
	query := `
		SELECT
			m.id, m.type, m.status, m.match_score, m.user_id,
			m.counselor_id, m.family_group_id, m.notes, m.rejection_reason,
			m.scheduled_at, m.completed_at, m.created_at, m.updated_at,
			c.name, g.name
		FROM matchings m
		LEFT JOIN counselors c ON m.counselor_id = c.id
		LEFT JOIN family_groups g ON m.family_group_id = g.id
		WHERE m.user_id = $1`

	args := []any{userID}
	if typeFilter != nil {
		query += ` AND m.type = $2`
		args = append(args, *typeFilter)
	}
	query += ` ORDER BY m.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matchings []domain.Matching
	for rows.Next() {
		var m domain.Matching
		if err := rows.Scan(
			&m.ID, &m.Type, &m.Status, &m.MatchScore, &m.UserID,
			&m.CounselorID, &m.FamilyGroupID, &m.Notes, &m.RejectionReason,
			&m.ScheduledAt, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt,
			&m.CounselorName, &m.FamilyGroupName,
		); err != nil {
			return nil, err
		}
		matchings = append(matchings, m)
	}
	return matchings, rows.Err()
}

// Update persists a status transition. The stored score is immutable and
// deliberately not part of the update list.
func (r *matchingRepo) Update(ctx context.Context, m *domain.Matching) error {
	query := `
		UPDATE matchings SET
			status = $2,
			notes = $3,
			rejection_reason = $4,
			scheduled_at = $5,
			completed_at = $6,
			updated_at = $7
		WHERE id = $1`

	m.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		m.ID,
		m.Status,
		m.Notes,
		m.RejectionReason,
		m.ScheduledAt,
		m.CompletedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
