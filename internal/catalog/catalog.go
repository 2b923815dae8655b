// Package catalog holds the built-in definition of the assessment dimensions,
// their proof points, and the maturity level descriptors.
package catalog

import (
	"maturity/pkg/domain"
)

// Dimensions returns a deep copy of the catalog in its canonical order.
func Dimensions() []domain.DimensionTemplate {
	out := make([]domain.DimensionTemplate, len(dimensions))
	for i, d := range dimensions {
		out[i] = d.Clone()
	}
	return out
}

// Lookup returns the template for a dimension id.
func Lookup(id string) (domain.DimensionTemplate, bool) {
	for _, d := range dimensions {
		if d.ID == id {
			return d.Clone(), true
		}
	}
	return domain.DimensionTemplate{}, false
}

// MaturityLevels returns the level descriptors in ascending order.
func MaturityLevels() []domain.MaturityLevelInfo {
	return append([]domain.MaturityLevelInfo(nil), maturityLevels...)
}

// MaturityLevelInfo returns the descriptor for level.
func MaturityLevelInfo(level domain.MaturityLevel) (domain.MaturityLevelInfo, bool) {
	for _, info := range maturityLevels {
		if info.Level == level {
			return info, true
		}
	}
	return domain.MaturityLevelInfo{}, false
}
