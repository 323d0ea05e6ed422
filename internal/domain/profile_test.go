package domain_test

import (
	"testing"
	"time"

	"go-griefcare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAgeBracketOf(t *testing.T) {
	// Fixed reference date so the boundaries are exact
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	born := func(yearsAgo int) time.Time {
		return time.Date(2026-yearsAgo, 6, 15, 0, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name  string
		birth time.Time
		want  domain.AgeBracket
	}{
		{"Exactly 18 is still a child", born(18), domain.AgeBracketChild},
		{"19 is a young adult", born(19), domain.AgeBracketYoungAdult},
		{"Exactly 35 is still a young adult", born(35), domain.AgeBracketYoungAdult},
		{"36 is middle aged", born(36), domain.AgeBracketMiddleAged},
		{"Exactly 55 is still middle aged", born(55), domain.AgeBracketMiddleAged},
		{"56 is a senior", born(56), domain.AgeBracketSenior},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.AgeBracketOf(tc.birth, now))
		})
	}

	t.Run("Birthday later this year has not happened yet", func(t *testing.T) {
		// Turns 19 tomorrow; today the person is still 18
		birth := time.Date(2007, 6, 16, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, domain.AgeBracketChild, domain.AgeBracketOf(birth, now))
	})

	t.Run("Birthday earlier this month already counted", func(t *testing.T) {
		birth := time.Date(2007, 6, 14, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, domain.AgeBracketYoungAdult, domain.AgeBracketOf(birth, now))
	})
}

func TestProfileMatchAttributes(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Nil birth date leaves the bracket unset", func(t *testing.T) {
		rel := domain.RelationshipParent
		p := &domain.Profile{Relationship: &rel}

		attrs := p.MatchAttributes(now)

		assert.Equal(t, &rel, attrs.Relationship)
		assert.Nil(t, attrs.SupportLevel)
		assert.Nil(t, attrs.AgeBracket)
	})

	t.Run("Birth date is normalized into a bracket", func(t *testing.T) {
		birth := time.Date(1960, 3, 2, 0, 0, 0, 0, time.UTC)
		p := &domain.Profile{BirthDate: &birth}

		attrs := p.MatchAttributes(now)

		assert.NotNil(t, attrs.AgeBracket)
		assert.Equal(t, domain.AgeBracketSenior, *attrs.AgeBracket)
	})
}
