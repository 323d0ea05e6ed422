package postgres

import (
	"encoding/json"

	"go-griefcare-backend/internal/domain"
)

// Counselor and group specialization sets are stored as JSON-encoded text
// columns, written by the admin tooling. They are decoded exactly once,
// when the row is loaded. A column that fails to decode yields an empty
// set rather than an error: one corrupt row must not break a whole
// recommendation response, it just stops contributing to the affected
// scoring terms.

func decodeRelationshipSet(raw string) []domain.RelationshipToDeceased {
	var out []domain.RelationshipToDeceased
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func decodeSupportLevelSet(raw string) []domain.SupportLevel {
	var out []domain.SupportLevel
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func decodeAgeBracketSet(raw string) []domain.AgeBracket {
	var out []domain.AgeBracket
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}
