package domain

import (
	"context"
	"time"
)

// CounselorSpecialty tags a counselor's primary field of practice.
type CounselorSpecialty string

const (
	SpecialtyGriefCounseling   CounselorSpecialty = "GRIEF_COUNSELING"
	SpecialtyFamilyTherapy     CounselorSpecialty = "FAMILY_THERAPY"
	SpecialtyTraumaTherapy     CounselorSpecialty = "TRAUMA_THERAPY"
	SpecialtyGroupTherapy      CounselorSpecialty = "GROUP_THERAPY"
	SpecialtyChildCounseling   CounselorSpecialty = "CHILD_COUNSELING"
	SpecialtyElderlyCounseling CounselorSpecialty = "ELDERLY_COUNSELING"
)

type CounselorStatus string

const (
	CounselorAvailable   CounselorStatus = "AVAILABLE"
	CounselorBusy        CounselorStatus = "BUSY"
	CounselorUnavailable CounselorStatus = "UNAVAILABLE"
)

// Counselor is administered outside this service; the matching core only
// reads it. The specialization sets are stored JSON-encoded and decoded by
// the repository when the row is loaded; a row with undecodable sets is
// still usable, the sets are just empty.
type Counselor struct {
	ID                       int64                    `json:"id"`
	Name                     string                   `json:"name"`
	Email                    string                   `json:"email"`
	Phone                    *string                  `json:"phone,omitempty"`
	LicenseNumber            string                   `json:"license_number"`
	Specialty                CounselorSpecialty       `json:"specialty"`
	SpecializedRelationships []RelationshipToDeceased `json:"specialized_relationships"`
	SupportLevels            []SupportLevel           `json:"support_levels"`
	SpecializedAgeBrackets   []AgeBracket             `json:"specialized_age_groups"`
	Introduction             string                   `json:"introduction"`
	Education                *string                  `json:"education,omitempty"`
	Experience               *string                  `json:"experience,omitempty"`
	ExperienceYears          int                      `json:"experience_years"`
	Rating                   float64                  `json:"rating"`
	TotalReviews             int                      `json:"total_reviews"`
	Status                   CounselorStatus          `json:"status"`
	ProfileImage             *string                  `json:"profile_image,omitempty"`
	MaxClientsPerDay         int                      `json:"max_clients_per_day"`
	CurrentClientsToday      int                      `json:"current_clients_today"`
	CreatedAt                time.Time                `json:"created_at"`
	UpdatedAt                time.Time                `json:"updated_at"`
}

// ServesRelationship reports whether the counselor specializes in the
// given relationship category.
func (c *Counselor) ServesRelationship(rel RelationshipToDeceased) bool {
	for _, r := range c.SpecializedRelationships {
		if r == rel {
			return true
		}
	}
	return false
}

// ServesSupportLevel reports whether the counselor covers the given
// psychological support level.
func (c *Counselor) ServesSupportLevel(level SupportLevel) bool {
	for _, l := range c.SupportLevels {
		if l == level {
			return true
		}
	}
	return false
}

// ServesAgeBracket reports whether the counselor specializes in the given
// age bracket.
func (c *Counselor) ServesAgeBracket(bracket AgeBracket) bool {
	for _, b := range c.SpecializedAgeBrackets {
		if b == bracket {
			return true
		}
	}
	return false
}

type CounselorRepository interface {
	// ListAvailable returns counselors with AVAILABLE status, ordered by
	// rating then experience, both descending.
	ListAvailable(ctx context.Context) ([]Counselor, error)
	Fetch(ctx context.Context) ([]Counselor, error)
	GetByID(ctx context.Context, id int64) (*Counselor, error)
}
