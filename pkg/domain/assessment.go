// Package domain defines the assessment aggregate, its catalog templates, the
// derived read-only views, and the persistence port used by the store.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/civil"
)

// MaturityLevel is the organisational stage selected for a dimension. The zero
// value means no level has been assessed yet and is encoded as JSON null.
type MaturityLevel string

// Canonical maturity levels in ascending order.
const (
	// MaturityUnset marks a dimension that has not been assessed.
	MaturityUnset MaturityLevel = ""
	// MaturityInactive indicates little to no awareness or activity.
	MaturityInactive MaturityLevel = "inactive"
	// MaturityLaunch indicates a recognised need with planning initiated.
	MaturityLaunch    MaturityLevel = "launch"
	MaturityIntegrate MaturityLevel = "integrate"
	MaturityOptimize  MaturityLevel = "optimize"
)

// Valid reports whether m is one of the four defined levels or unset.
func (m MaturityLevel) Valid() bool {
	switch m {
	case MaturityUnset, MaturityInactive, MaturityLaunch, MaturityIntegrate, MaturityOptimize:
		return true
	default:
		return false
	}
}

// IsSet reports whether a level has been chosen.
func (m MaturityLevel) IsSet() bool { return m != MaturityUnset }

// ParseMaturityLevel converts user input into a level. "none" and the empty
// string map to MaturityUnset.
func ParseMaturityLevel(raw string) (MaturityLevel, error) {
	if raw == "none" {
		return MaturityUnset, nil
	}
	level := MaturityLevel(raw)
	if !level.Valid() {
		return MaturityUnset, fmt.Errorf("%w: %q", ErrInvalidMaturityLevel, raw)
	}
	return level, nil
}

// MarshalJSON encodes the unset level as null.
func (m MaturityLevel) MarshalJSON() ([]byte, error) {
	if m == MaturityUnset {
		return []byte("null"), nil
	}
	return json.Marshal(string(m))
}

// UnmarshalJSON accepts null or a string. Membership is checked by the snapshot decoder.
func (m *MaturityLevel) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = MaturityUnset
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("maturity level: %w", err)
	}
	*m = MaturityLevel(s)
	return nil
}

// MaturityLevelInfo describes a level for presentation.
type MaturityLevelInfo struct {
	Level       MaturityLevel `json:"level"`
	Label       string        `json:"label"`
	Description string        `json:"description"`
}

// ProofPointTemplate is the immutable catalog definition of a checklist item.
type ProofPointTemplate struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// DimensionTemplate is the immutable catalog definition of a dimension.
type DimensionTemplate struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	ProofPoints []ProofPointTemplate `json:"proofPoints"`
}

// ProofPoint is the runtime record for a single checklist item. Completed and
// NotApplicable are never both true.
type ProofPoint struct {
	ID            string `json:"id"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Completed     bool   `json:"completed"`
	Evidence      string `json:"evidence"`
	NotApplicable bool   `json:"notApplicable"`
}

// Dimension is the runtime record for a catalog dimension.
type Dimension struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	MaturityLevel MaturityLevel `json:"maturityLevel"`
	ProofPoints   []ProofPoint  `json:"proofPoints"`
	Notes         string        `json:"notes"`
}

// Assessment is the single mutable aggregate. Dimensions correspond 1:1, in
// order, to the catalog it was created from.
type Assessment struct {
	ID               string      `json:"id"`
	OrganizationName string      `json:"organizationName"`
	AssessmentDate   civil.Date  `json:"assessmentDate"`
	Assessors        []string    `json:"assessors"`
	Dimensions       []Dimension `json:"dimensions"`
	OverallNotes     string      `json:"overallNotes"`
}

// DimensionPatch carries the optional fields merged by an update. Nil fields are left untouched.
type DimensionPatch struct {
	Notes         *string
	MaturityLevel *MaturityLevel
}

// Empty reports whether the patch would change nothing.
func (p DimensionPatch) Empty() bool {
	return p.Notes == nil && p.MaturityLevel == nil
}

// Apply merges the patch into d and returns the result.
func (p DimensionPatch) Apply(d Dimension) Dimension {
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	if p.MaturityLevel != nil {
		d.MaturityLevel = *p.MaturityLevel
	}
	return d
}

// NewRecord clones a template into a runtime dimension with default fields.
func (t DimensionTemplate) NewRecord() Dimension {
	pps := make([]ProofPoint, len(t.ProofPoints))
	for i, p := range t.ProofPoints {
		pps[i] = ProofPoint{ID: p.ID, Category: p.Category, Description: p.Description}
	}
	return Dimension{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		ProofPoints: pps,
	}
}

// Clone returns a deep copy of the template.
func (t DimensionTemplate) Clone() DimensionTemplate {
	t.ProofPoints = append([]ProofPointTemplate(nil), t.ProofPoints...)
	return t
}

// NewAssessment builds a fresh assessment from the catalog templates.
func NewAssessment(id string, date civil.Date, templates []DimensionTemplate) Assessment {
	dims := make([]Dimension, len(templates))
	for i, t := range templates {
		dims[i] = t.NewRecord()
	}
	return Assessment{
		ID:             id,
		AssessmentDate: date,
		Assessors:      []string{},
		Dimensions:     dims,
	}
}
