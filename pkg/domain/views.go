package domain

import "strings"

// Progress summarises how many dimensions have a maturity level selected.
type Progress struct {
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// ProgressOf computes progress for a. Total is the catalog size.
func ProgressOf(a Assessment) Progress {
	p := Progress{Total: len(a.Dimensions)}
	for _, d := range a.Dimensions {
		if d.MaturityLevel.IsSet() {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percentage = float64(p.Completed) / float64(p.Total) * 100
	}
	return p
}

// Completion summarises the proof point checklist of a single dimension.
// Percentage is computed over applicable items only.
type Completion struct {
	Completed     int     `json:"completed"`
	Applicable    int     `json:"applicable"`
	NotApplicable int     `json:"notApplicable"`
	Total         int     `json:"total"`
	Percentage    float64 `json:"percentage"`
}

// Completion computes the checklist completion of d.
func (d Dimension) Completion() Completion {
	c := Completion{Total: len(d.ProofPoints)}
	for _, p := range d.ProofPoints {
		if p.NotApplicable {
			c.NotApplicable++
			continue
		}
		if p.Completed {
			c.Completed++
		}
	}
	c.Applicable = c.Total - c.NotApplicable
	if c.Applicable > 0 {
		c.Percentage = float64(c.Completed) / float64(c.Applicable) * 100
	}
	return c
}

// HasUserContent reports whether a holds anything a user entered: a
// non-blank name, notes or assessor, a selected level, dimension notes, or any
// proof point that is completed, not applicable, or carries evidence.
func HasUserContent(a Assessment) bool {
	if !blank(a.OrganizationName) || !blank(a.OverallNotes) {
		return true
	}
	for _, name := range a.Assessors {
		if !blank(name) {
			return true
		}
	}
	for _, d := range a.Dimensions {
		if d.MaturityLevel.IsSet() || !blank(d.Notes) {
			return true
		}
		for _, p := range d.ProofPoints {
			if p.Completed || p.NotApplicable || !blank(p.Evidence) {
				return true
			}
		}
	}
	return false
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
