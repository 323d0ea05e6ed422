package postgres

import (
	"context"
	"errors"

	"go-griefcare-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type groupRepo struct {
	db *pgxpool.Pool
}

// NewFamilyGroupRepository creates a read-only family group repository.
func NewFamilyGroupRepository(db *pgxpool.Pool) domain.FamilyGroupRepository {
	return &groupRepo{db: db}
}

const groupColumns = `
	id, name, description, location, meeting_type,
	target_relationships, target_age_groups, max_members, current_members,
	next_meeting_date, leader_name, leader_email, leader_phone, status,
	meeting_details, requirements, created_at, updated_at`

func scanGroup(row pgx.Row) (*domain.FamilyGroup, error) {
	var g domain.FamilyGroup
	var rawRelationships, rawBrackets string

	err := row.Scan(
		&g.ID, &g.Name, &g.Description, &g.Location, &g.MeetingType,
		&rawRelationships, &rawBrackets, &g.MaxMembers, &g.CurrentMembers,
		&g.NextMeetingDate, &g.LeaderName, &g.LeaderEmail, &g.LeaderPhone, &g.Status,
		&g.MeetingDetails, &g.Requirements, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	g.TargetRelationships = decodeRelationshipSet(rawRelationships)
	g.TargetAgeBrackets = decodeAgeBracketSet(rawBrackets)
	return &g, nil
}

// ListOpen returns the eligible recommendation pool: active groups that
// still have open seats, newest first.
func (r *groupRepo) ListOpen(ctx context.Context) ([]domain.FamilyGroup, error) {
	query := `
		SELECT ` + groupColumns + `
		FROM family_groups
		WHERE status = $1 AND current_members < max_members
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, domain.GroupActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.FamilyGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

// FetchActive returns all active groups for the catalog view, including
// full ones.
func (r *groupRepo) FetchActive(ctx context.Context) ([]domain.FamilyGroup, error) {
	query := `
		SELECT ` + groupColumns + `
		FROM family_groups
		WHERE status = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, domain.GroupActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.FamilyGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

func (r *groupRepo) GetByID(ctx context.Context, id int64) (*domain.FamilyGroup, error) {
	query := `
		SELECT ` + groupColumns + `
		FROM family_groups
		WHERE id = $1`

	g, err := scanGroup(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}
