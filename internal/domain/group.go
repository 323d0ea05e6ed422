package domain

import (
	"context"
	"time"
)

type MeetingType string

const (
	MeetingOnline  MeetingType = "ONLINE"
	MeetingOffline MeetingType = "OFFLINE"
	MeetingHybrid  MeetingType = "HYBRID"
)

type FamilyGroupStatus string

const (
	GroupActive   FamilyGroupStatus = "ACTIVE"
	GroupInactive FamilyGroupStatus = "INACTIVE"
	GroupFull     FamilyGroupStatus = "FULL"
)

// FamilyGroup is a peer support group for bereaved families. Like
// counselors, groups are administered elsewhere and only read here.
type FamilyGroup struct {
	ID                  int64                    `json:"id"`
	Name                string                   `json:"name"`
	Description         string                   `json:"description"`
	Location            string                   `json:"location"`
	MeetingType         MeetingType              `json:"meeting_type"`
	TargetRelationships []RelationshipToDeceased `json:"target_relationships"`
	TargetAgeBrackets   []AgeBracket             `json:"target_age_groups"`
	MaxMembers          int                      `json:"max_members"`
	CurrentMembers      int                      `json:"current_members"`
	NextMeetingDate     *time.Time               `json:"next_meeting_date,omitempty"`
	LeaderName          string                   `json:"leader_name"`
	LeaderEmail         *string                  `json:"leader_email,omitempty"`
	LeaderPhone         *string                  `json:"leader_phone,omitempty"`
	Status              FamilyGroupStatus        `json:"status"`
	MeetingDetails      *string                  `json:"meeting_details,omitempty"`
	Requirements        *string                  `json:"requirements,omitempty"`
	CreatedAt           time.Time                `json:"created_at"`
	UpdatedAt           time.Time                `json:"updated_at"`
}

// IsFull reports whether the group has no open seats.
func (g *FamilyGroup) IsFull() bool {
	return g.CurrentMembers >= g.MaxMembers
}

// TargetsRelationship reports whether the group targets the given
// relationship category.
func (g *FamilyGroup) TargetsRelationship(rel RelationshipToDeceased) bool {
	for _, r := range g.TargetRelationships {
		if r == rel {
			return true
		}
	}
	return false
}

// TargetsAgeBracket reports whether the group targets the given age bracket.
func (g *FamilyGroup) TargetsAgeBracket(bracket AgeBracket) bool {
	for _, b := range g.TargetAgeBrackets {
		if b == bracket {
			return true
		}
	}
	return false
}

type FamilyGroupRepository interface {
	// ListOpen returns ACTIVE groups that still have open seats, newest
	// first.
	ListOpen(ctx context.Context) ([]FamilyGroup, error)
	FetchActive(ctx context.Context) ([]FamilyGroup, error)
	GetByID(ctx context.Context, id int64) (*FamilyGroup, error)
}
