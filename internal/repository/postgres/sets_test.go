package postgres

import (
	"testing"

	"go-griefcare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDecodeRelationshipSet(t *testing.T) {
	t.Run("Valid JSON array", func(t *testing.T) {
		set := decodeRelationshipSet(`["SPOUSE","CHILD"]`)
		assert.Equal(t, []domain.RelationshipToDeceased{
			domain.RelationshipSpouse,
			domain.RelationshipChild,
		}, set)
	})

	t.Run("Empty array", func(t *testing.T) {
		assert.Empty(t, decodeRelationshipSet(`[]`))
	})

	t.Run("Corrupt column yields an empty set, not an error", func(t *testing.T) {
		assert.Nil(t, decodeRelationshipSet(`{"not":"an array"`))
		assert.Nil(t, decodeRelationshipSet(``))
		assert.Nil(t, decodeRelationshipSet(`SPOUSE,CHILD`))
	})
}

func TestDecodeSupportLevelSet(t *testing.T) {
	assert.Equal(t, []domain.SupportLevel{domain.SupportLevelHigh},
		decodeSupportLevelSet(`["HIGH"]`))
	assert.Nil(t, decodeSupportLevelSet(`not json`))
}

func TestDecodeAgeBracketSet(t *testing.T) {
	assert.Equal(t, []domain.AgeBracket{domain.AgeBracketYoungAdult, domain.AgeBracketSenior},
		decodeAgeBracketSet(`["YOUNG_ADULT","SENIOR"]`))
	assert.Nil(t, decodeAgeBracketSet(`42`))
}
