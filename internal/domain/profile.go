package domain

import (
	"context"
	"time"
)

// RelationshipToDeceased categorizes who the person lost.
type RelationshipToDeceased string

const (
	RelationshipSpouse  RelationshipToDeceased = "SPOUSE"
	RelationshipChild   RelationshipToDeceased = "CHILD"
	RelationshipParent  RelationshipToDeceased = "PARENT"
	RelationshipSibling RelationshipToDeceased = "SIBLING"
	RelationshipOther   RelationshipToDeceased = "OTHER"
)

// SupportLevel is the person's self-reported need for psychological support.
type SupportLevel string

const (
	SupportLevelHigh   SupportLevel = "HIGH"
	SupportLevelMedium SupportLevel = "MEDIUM"
	SupportLevelLow    SupportLevel = "LOW"
	SupportLevelNone   SupportLevel = "NONE"
)

// AgeBracket is derived from the person's birth date, never stored.
type AgeBracket string

const (
	AgeBracketChild      AgeBracket = "CHILD"       // 0-18
	AgeBracketYoungAdult AgeBracket = "YOUNG_ADULT" // 19-35
	AgeBracketMiddleAged AgeBracket = "MIDDLE_AGED" // 36-55
	AgeBracketSenior     AgeBracket = "SENIOR"      // 56+
)

// AgeBracketOf classifies a birth date as of now. The birthday not having
// occurred yet this year reduces the computed age by one.
func AgeBracketOf(birthDate, now time.Time) AgeBracket {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}

	switch {
	case age <= 18:
		return AgeBracketChild
	case age <= 35:
		return AgeBracketYoungAdult
	case age <= 55:
		return AgeBracketMiddleAged
	default:
		return AgeBracketSenior
	}
}

// Profile is the family survey a person fills in after registration. The
// matching core only reads the three normalized attributes; the remaining
// fields belong to the survey CRUD surface.
type Profile struct {
	ID                      int64                   `json:"id"`
	UserID                  string                  `json:"user_id"`
	BirthDate               *time.Time              `json:"birth_date,omitempty"`
	Relationship            *RelationshipToDeceased `json:"relationship_to_deceased,omitempty"`
	RelationshipDescription *string                 `json:"relationship_description,omitempty"`
	SupportLevel            *SupportLevel           `json:"psychological_support_level,omitempty"`
	MainConcerns            []string                `json:"main_concerns,omitempty"`
	MeetingParticipation    bool                    `json:"meeting_participation_desire"`
	PersonalNotes           *string                 `json:"personal_notes,omitempty"`
	PrivacyAgreement        bool                    `json:"privacy_agreement"`
	SurveyCompleted         bool                    `json:"survey_completed"`
	CreatedAt               time.Time               `json:"created_at"`
	UpdatedAt               time.Time               `json:"updated_at"`
}

// MatchAttributes are the scoring-relevant attributes of a person. A nil
// field means the survey did not provide it and the corresponding scoring
// terms contribute zero.
type MatchAttributes struct {
	Relationship *RelationshipToDeceased
	SupportLevel *SupportLevel
	AgeBracket   *AgeBracket
}

// MatchAttributes normalizes the profile for scoring as of now.
func (p *Profile) MatchAttributes(now time.Time) MatchAttributes {
	attrs := MatchAttributes{
		Relationship: p.Relationship,
		SupportLevel: p.SupportLevel,
	}
	if p.BirthDate != nil {
		bracket := AgeBracketOf(*p.BirthDate, now)
		attrs.AgeBracket = &bracket
	}
	return attrs
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, userID string) error
	Fetch(ctx context.Context, limit, offset int) ([]Profile, int64, error)
}

type SurveyUsecase interface {
	SubmitSurvey(ctx context.Context, profile *Profile) error
	GetMySurvey(ctx context.Context, userID string) (*Profile, error)
	UpdateMySurvey(ctx context.Context, profile *Profile) error
	DeleteMySurvey(ctx context.Context, userID string) error
	ListSurveys(ctx context.Context, page, pageSize int) ([]Profile, int64, error)
}
