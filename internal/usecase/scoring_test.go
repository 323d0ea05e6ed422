package usecase

import (
	"fmt"
	"testing"
	"time"

	"go-griefcare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func relPtr(r domain.RelationshipToDeceased) *domain.RelationshipToDeceased { return &r }
func levelPtr(l domain.SupportLevel) *domain.SupportLevel                   { return &l }
func bracketPtr(b domain.AgeBracket) *domain.AgeBracket                     { return &b }

func TestScoreCounselorWeightedSum(t *testing.T) {
	attrs := domain.MatchAttributes{
		Relationship: relPtr(domain.RelationshipSpouse),
		SupportLevel: levelPtr(domain.SupportLevelHigh),
		AgeBracket:   bracketPtr(domain.AgeBracketMiddleAged),
	}
	c := &domain.Counselor{
		Rating:                   4.9,
		ExperienceYears:          20,
		Specialty:                domain.SpecialtyGriefCounseling,
		SpecializedRelationships: []domain.RelationshipToDeceased{domain.RelationshipSpouse, domain.RelationshipParent},
		SupportLevels:            []domain.SupportLevel{domain.SupportLevelHigh, domain.SupportLevelMedium},
		SpecializedAgeBrackets:   nil, // no age specialization
		CurrentClientsToday:      2,
		MaxClientsPerDay:         8,
		TotalReviews:             156,
	}

	// 73.5 rating + 30 capped experience + 40 relationship + 8 spouse
	// + 30 support + 10 high need + 8 grief specialty + 11.25 capacity
	// + 10 review trust = 220.75, rounded half away from zero
	assert.Equal(t, 221, ScoreCounselor(attrs, c))
}

func TestScoreCounselorIsPure(t *testing.T) {
	attrs := domain.MatchAttributes{
		Relationship: relPtr(domain.RelationshipChild),
		SupportLevel: levelPtr(domain.SupportLevelMedium),
		AgeBracket:   bracketPtr(domain.AgeBracketYoungAdult),
	}
	c := &domain.Counselor{
		Rating:                   4.2,
		ExperienceYears:          7,
		Specialty:                domain.SpecialtyFamilyTherapy,
		SpecializedRelationships: []domain.RelationshipToDeceased{domain.RelationshipChild},
		SupportLevels:            []domain.SupportLevel{domain.SupportLevelMedium},
		SpecializedAgeBrackets:   []domain.AgeBracket{domain.AgeBracketYoungAdult},
		CurrentClientsToday:      3,
		MaxClientsPerDay:         10,
		TotalReviews:             25,
	}

	first := ScoreCounselor(attrs, c)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, ScoreCounselor(attrs, c))
	}
}

func TestScoreCounselorMissingAttributes(t *testing.T) {
	// An empty survey still yields the profile-independent terms: rating,
	// experience, capacity and review trust.
	c := &domain.Counselor{
		Rating:                   5.0,
		ExperienceYears:          15,
		Specialty:                domain.SpecialtyGriefCounseling,
		SpecializedRelationships: []domain.RelationshipToDeceased{domain.RelationshipSpouse},
		SupportLevels:            []domain.SupportLevel{domain.SupportLevelHigh},
		SpecializedAgeBrackets:   []domain.AgeBracket{domain.AgeBracketSenior},
		CurrentClientsToday:      0,
		MaxClientsPerDay:         5,
		TotalReviews:             10,
	}

	// 75 + 30 + 15 capacity. The specialty bonus needs both relationship
	// and age bracket, so it does not fire either.
	assert.Equal(t, 120, ScoreCounselor(domain.MatchAttributes{}, c))
}

func TestScoreCounselorExperienceCap(t *testing.T) {
	base := domain.Counselor{MaxClientsPerDay: 1}

	fifteen := base
	fifteen.ExperienceYears = 15
	forty := base
	forty.ExperienceYears = 40

	assert.Equal(t,
		ScoreCounselor(domain.MatchAttributes{}, &fifteen),
		ScoreCounselor(domain.MatchAttributes{}, &forty),
	)
}

func TestScoreCounselorZeroCapacity(t *testing.T) {
	// A counselor with max_clients_per_day = 0 must not divide by zero; the
	// denominator is clamped to 1.
	c := &domain.Counselor{
		CurrentClientsToday: 0,
		MaxClientsPerDay:    0,
	}
	assert.Equal(t, 15, ScoreCounselor(domain.MatchAttributes{}, c))
}

func TestSpecialtyBonusTable(t *testing.T) {
	cases := []struct {
		specialty domain.CounselorSpecialty
		rel       domain.RelationshipToDeceased
		bracket   domain.AgeBracket
		want      int
	}{
		{domain.SpecialtyChildCounseling, domain.RelationshipParent, domain.AgeBracketChild, 25},
		{domain.SpecialtyChildCounseling, domain.RelationshipParent, domain.AgeBracketYoungAdult, 25},
		{domain.SpecialtyChildCounseling, domain.RelationshipSpouse, domain.AgeBracketSenior, 0},
		{domain.SpecialtyElderlyCounseling, domain.RelationshipSpouse, domain.AgeBracketSenior, 25},
		{domain.SpecialtyElderlyCounseling, domain.RelationshipChild, domain.AgeBracketMiddleAged, 10},
		{domain.SpecialtyFamilyTherapy, domain.RelationshipChild, domain.AgeBracketMiddleAged, 12},
		{domain.SpecialtyFamilyTherapy, domain.RelationshipSibling, domain.AgeBracketChild, 12},
		{domain.SpecialtyFamilyTherapy, domain.RelationshipSpouse, domain.AgeBracketChild, 0},
		{domain.SpecialtyTraumaTherapy, domain.RelationshipOther, domain.AgeBracketYoungAdult, 15},
		{domain.SpecialtyTraumaTherapy, domain.RelationshipSpouse, domain.AgeBracketYoungAdult, 0},
		{domain.SpecialtyGriefCounseling, domain.RelationshipSibling, domain.AgeBracketSenior, 8},
		{domain.SpecialtyGroupTherapy, domain.RelationshipSibling, domain.AgeBracketSenior, 5},
	}

	for _, tc := range cases {
		name := fmt.Sprintf("%s/%s/%s", tc.specialty, tc.rel, tc.bracket)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, specialtyBonus(tc.specialty, tc.rel, tc.bracket))
		})
	}
}

func TestScoreFamilyGroup(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-48 * time.Hour)

	attrs := domain.MatchAttributes{
		Relationship: relPtr(domain.RelationshipParent),
		AgeBracket:   bracketPtr(domain.AgeBracketMiddleAged),
	}

	t.Run("All terms firing", func(t *testing.T) {
		g := &domain.FamilyGroup{
			TargetRelationships: []domain.RelationshipToDeceased{domain.RelationshipParent},
			TargetAgeBrackets:   []domain.AgeBracket{domain.AgeBracketMiddleAged},
			CurrentMembers:      5,
			MaxMembers:          10,
			NextMeetingDate:     &future,
		}
		assert.Equal(t, 115, ScoreFamilyGroup(attrs, g, now))
	})

	t.Run("Base score only", func(t *testing.T) {
		g := &domain.FamilyGroup{
			CurrentMembers:  1,
			MaxMembers:      10, // ratio 0.1, below the healthy band
			NextMeetingDate: &past,
		}
		assert.Equal(t, 20, ScoreFamilyGroup(domain.MatchAttributes{}, g, now))
	})

	t.Run("Member ratio band is inclusive", func(t *testing.T) {
		at := func(current, max int) int {
			g := &domain.FamilyGroup{CurrentMembers: current, MaxMembers: max}
			return ScoreFamilyGroup(domain.MatchAttributes{}, g, now)
		}
		assert.Equal(t, 35, at(3, 10))  // 0.3, lower edge
		assert.Equal(t, 35, at(8, 10))  // 0.8, upper edge
		assert.Equal(t, 20, at(29, 100)) // just below
		assert.Equal(t, 20, at(81, 100)) // just above
	})

	t.Run("Zero max members never gets the balance bonus", func(t *testing.T) {
		g := &domain.FamilyGroup{CurrentMembers: 0, MaxMembers: 0}
		assert.Equal(t, 20, ScoreFamilyGroup(domain.MatchAttributes{}, g, now))
	})

	t.Run("Meeting exactly now does not count as upcoming", func(t *testing.T) {
		g := &domain.FamilyGroup{CurrentMembers: 5, MaxMembers: 10, NextMeetingDate: &now}
		assert.Equal(t, 35, ScoreFamilyGroup(domain.MatchAttributes{}, g, now))
	})
}

func TestRankCounselorsShortlist(t *testing.T) {
	attrs := domain.MatchAttributes{
		Relationship: relPtr(domain.RelationshipSpouse),
	}

	var pool []domain.Counselor
	for i := 0; i < 25; i++ {
		pool = append(pool, domain.Counselor{
			ID:               int64(i + 1),
			Rating:           float64(i%5) + 1, // scores cycle so ties exist
			MaxClientsPerDay: 1,
		})
	}

	scored := rankCounselors(attrs, pool)

	assert.Len(t, scored, 10)
	for i := 1; i < len(scored); i++ {
		assert.GreaterOrEqual(t, scored[i-1].MatchScore, scored[i].MatchScore)
		if scored[i-1].MatchScore == scored[i].MatchScore {
			// Stable sort: ties keep the pool's original order
			assert.Less(t, scored[i-1].ID, scored[i].ID)
		}
	}
}

func TestRankCounselorsUndecodableSetsRankLower(t *testing.T) {
	attrs := domain.MatchAttributes{
		Relationship: relPtr(domain.RelationshipChild),
		SupportLevel: levelPtr(domain.SupportLevelHigh),
	}

	intact := domain.Counselor{
		ID:                       1,
		Rating:                   4.0,
		MaxClientsPerDay:         5,
		SpecializedRelationships: []domain.RelationshipToDeceased{domain.RelationshipChild},
		SupportLevels:            []domain.SupportLevel{domain.SupportLevelHigh},
	}
	// Same counselor after its specialization columns failed to decode:
	// the empty sets simply stop contributing.
	corrupt := intact
	corrupt.ID = 2
	corrupt.SpecializedRelationships = nil
	corrupt.SupportLevels = nil

	scored := rankCounselors(attrs, []domain.Counselor{corrupt, intact})

	assert.Equal(t, int64(1), scored[0].ID)
	assert.Equal(t, int64(2), scored[1].ID)
	assert.Greater(t, scored[0].MatchScore, scored[1].MatchScore)
}

func TestRankFamilyGroupsShortlist(t *testing.T) {
	now := time.Now()
	var pool []domain.FamilyGroup
	for i := 0; i < 12; i++ {
		pool = append(pool, domain.FamilyGroup{
			ID:             int64(i + 1),
			CurrentMembers: i,
			MaxMembers:     10,
		})
	}

	scored := rankFamilyGroups(domain.MatchAttributes{}, pool, now)

	assert.Len(t, scored, 10)
	for i := 1; i < len(scored); i++ {
		assert.GreaterOrEqual(t, scored[i-1].MatchScore, scored[i].MatchScore)
	}
}
