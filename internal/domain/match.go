package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrDuplicatePending = errors.New("a pending match already exists for this pair")
)

type MatchStatus string

const (
	MatchPending   MatchStatus = "PENDING"
	MatchAccepted  MatchStatus = "ACCEPTED"
	MatchRejected  MatchStatus = "REJECTED"
	MatchCompleted MatchStatus = "COMPLETED"
	MatchCancelled MatchStatus = "CANCELLED"
)

type MatchType string

const (
	MatchTypeCounselor   MatchType = "COUNSELOR"
	MatchTypeFamilyGroup MatchType = "FAMILY_GROUP"
)

// Matching links a person to a counselor or family group. The score is
// computed once at creation and never recomputed.
type Matching struct {
	ID              int64       `json:"id"`
	Type            MatchType   `json:"type"`
	Status          MatchStatus `json:"status"`
	MatchScore      int         `json:"match_score"`
	UserID          string      `json:"user_id"`
	CounselorID     *int64      `json:"counselor_id,omitempty"`
	FamilyGroupID   *int64      `json:"family_group_id,omitempty"`
	Notes           *string     `json:"notes,omitempty"`
	RejectionReason *string     `json:"rejection_reason,omitempty"`
	ScheduledAt     *time.Time  `json:"scheduled_at,omitempty"`
	CompletedAt     *time.Time  `json:"completed_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	// Joined data for list responses
	CounselorName   *string `json:"counselor_name,omitempty"`
	FamilyGroupName *string `json:"family_group_name,omitempty"`
}

// ScoredCounselor annotates a counselor with its computed match score.
type ScoredCounselor struct {
	Counselor
	MatchScore int `json:"match_score"`
}

// ScoredFamilyGroup annotates a family group with its computed match score.
type ScoredFamilyGroup struct {
	FamilyGroup
	MatchScore int `json:"match_score"`
}

// MatchingRepository defines data access for match records. Create must be
// backed by a store-level uniqueness guarantee on (user, candidate, PENDING)
// and return ErrDuplicatePending when it is violated; the usecase's own
// pending check is only a fast path.
type MatchingRepository interface {
	Create(ctx context.Context, m *Matching) error
	GetByID(ctx context.Context, id int64) (*Matching, error)
	FindPending(ctx context.Context, userID string, matchType MatchType, candidateID int64) (*Matching, error)
	ListByUser(ctx context.Context, userID string, typeFilter *MatchType) ([]Matching, error)
	Update(ctx context.Context, m *Matching) error
}

type MatchingUsecase interface {
	// Recommendation
	RecommendCounselors(ctx context.Context, userID string) ([]ScoredCounselor, error)
	RecommendFamilyGroups(ctx context.Context, userID string) ([]ScoredFamilyGroup, error)

	// Catalog reads
	ListCounselors(ctx context.Context) ([]Counselor, error)
	GetCounselor(ctx context.Context, id int64) (*Counselor, error)
	ListFamilyGroups(ctx context.Context) ([]FamilyGroup, error)
	GetFamilyGroup(ctx context.Context, id int64) (*FamilyGroup, error)

	// Lifecycle
	CreateCounselorMatching(ctx context.Context, userID string, counselorID int64) (*Matching, error)
	CreateFamilyGroupMatching(ctx context.Context, userID string, familyGroupID int64) (*Matching, error)
	UpdateMatchingStatus(ctx context.Context, matchingID int64, status MatchStatus, notes, rejectionReason *string) (*Matching, error)
	GetUserMatchings(ctx context.Context, userID string, typeFilter *MatchType) ([]Matching, error)
}
