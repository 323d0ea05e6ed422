package usecase

import (
	"math"
	"sort"
	"time"

	"go-griefcare-backend/internal/domain"
)

// maxRecommendations bounds the shortlist returned to the client.
const maxRecommendations = 10

// ScoreCounselor computes the weighted match score between a person's
// survey attributes and a counselor. It is a pure function: identical
// inputs always produce the identical score.
//
// Weights:
//   - rating x15 (max 75) and capped experience years x2 (max 30)
//   - +40 relationship specialization, +10 for CHILD / +8 for SPOUSE loss
//   - +30 support level coverage, +10 when the needed level is HIGH
//   - +25 age bracket specialization (only when the birth date is known)
//   - specialty bonus table (needs both relationship and age bracket)
//   - up to +15 for spare daily capacity
//   - +10 review trust above 50 reviews, +5 above 20
func ScoreCounselor(attrs domain.MatchAttributes, c *domain.Counselor) int {
	score := c.Rating * 15
	score += float64(min(c.ExperienceYears, 15)) * 2

	if attrs.Relationship != nil && c.ServesRelationship(*attrs.Relationship) {
		score += 40
		switch *attrs.Relationship {
		case domain.RelationshipChild:
			score += 10
		case domain.RelationshipSpouse:
			score += 8
		}
	}

	if attrs.SupportLevel != nil && c.ServesSupportLevel(*attrs.SupportLevel) {
		score += 30
		if *attrs.SupportLevel == domain.SupportLevelHigh {
			score += 10
		}
	}

	if attrs.AgeBracket != nil && c.ServesAgeBracket(*attrs.AgeBracket) {
		score += 25
	}

	if attrs.Relationship != nil && attrs.AgeBracket != nil {
		score += float64(specialtyBonus(c.Specialty, *attrs.Relationship, *attrs.AgeBracket))
	}

	workloadRatio := float64(c.CurrentClientsToday) / float64(max(c.MaxClientsPerDay, 1))
	score += (1 - workloadRatio) * 15

	if c.TotalReviews > 50 {
		score += 10
	} else if c.TotalReviews > 20 {
		score += 5
	}

	return int(math.Round(score))
}

// specialtyBonus is a fixed lookup keyed by the counselor's specialty and
// the person's relationship and age bracket.
func specialtyBonus(specialty domain.CounselorSpecialty, rel domain.RelationshipToDeceased, bracket domain.AgeBracket) int {
	bonus := 0

	switch specialty {
	case domain.SpecialtyChildCounseling:
		if bracket == domain.AgeBracketChild || bracket == domain.AgeBracketYoungAdult {
			bonus += 15
		}
		if rel == domain.RelationshipParent {
			bonus += 10
		}
	case domain.SpecialtyElderlyCounseling:
		if bracket == domain.AgeBracketSenior {
			bonus += 15
		}
		if rel == domain.RelationshipSpouse || rel == domain.RelationshipChild {
			bonus += 10
		}
	case domain.SpecialtyFamilyTherapy:
		if rel == domain.RelationshipChild || rel == domain.RelationshipSibling {
			bonus += 12
		}
	case domain.SpecialtyTraumaTherapy:
		if rel == domain.RelationshipOther {
			bonus += 15
		}
	case domain.SpecialtyGriefCounseling:
		bonus += 8
	case domain.SpecialtyGroupTherapy:
		bonus += 5
	}

	return bonus
}

// ScoreFamilyGroup computes the match score between a person and a peer
// support group. Pure, like ScoreCounselor.
//
// Weights: base 20, +40 target relationship, +30 target age bracket,
// +15 when the group is neither too empty nor too crowded (member ratio
// within [0.3, 0.8]), +10 when the next meeting is scheduled in the future.
func ScoreFamilyGroup(attrs domain.MatchAttributes, g *domain.FamilyGroup, now time.Time) int {
	score := 20.0

	if attrs.Relationship != nil && g.TargetsRelationship(*attrs.Relationship) {
		score += 40
	}

	if attrs.AgeBracket != nil && g.TargetsAgeBracket(*attrs.AgeBracket) {
		score += 30
	}

	memberRatio := float64(g.CurrentMembers) / float64(g.MaxMembers)
	if memberRatio >= 0.3 && memberRatio <= 0.8 {
		score += 15
	}

	if g.NextMeetingDate != nil && g.NextMeetingDate.After(now) {
		score += 10
	}

	return int(math.Round(score))
}

// rankCounselors scores the pool, orders it by score descending and
// truncates to the shortlist bound. Ties keep the pool's relative order.
func rankCounselors(attrs domain.MatchAttributes, pool []domain.Counselor) []domain.ScoredCounselor {
	scored := make([]domain.ScoredCounselor, 0, len(pool))
	for i := range pool {
		scored = append(scored, domain.ScoredCounselor{
			Counselor:  pool[i],
			MatchScore: ScoreCounselor(attrs, &pool[i]),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})

	if len(scored) > maxRecommendations {
		scored = scored[:maxRecommendations]
	}
	return scored
}

// rankFamilyGroups is the group counterpart of rankCounselors.
func rankFamilyGroups(attrs domain.MatchAttributes, pool []domain.FamilyGroup, now time.Time) []domain.ScoredFamilyGroup {
	scored := make([]domain.ScoredFamilyGroup, 0, len(pool))
	for i := range pool {
		scored = append(scored, domain.ScoredFamilyGroup{
			FamilyGroup: pool[i],
			MatchScore:  ScoreFamilyGroup(attrs, &pool[i], now),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})

	if len(scored) > maxRecommendations {
		scored = scored[:maxRecommendations]
	}
	return scored
}
