// Package snapshot encodes and decodes the JSON interchange format of an
// assessment. The same format is used for durable storage, file export and the
// archive.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"maturity/pkg/domain"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

var (
	// ErrMalformed reports input that is not JSON or lacks the assessment shape.
	ErrMalformed = errors.New("malformed assessment snapshot")
	// ErrCatalogMismatch reports dimensions or proof points that do not line up
	// with the catalog. It wraps ErrMalformed.
	ErrCatalogMismatch = fmt.Errorf("%w: catalog mismatch", ErrMalformed)
)

// ContentType is the media type of encoded snapshots.
const ContentType = "application/json"

// Encode renders a as indented JSON.
func Encode(a domain.Assessment) ([]byte, error) {
	if a.Assessors == nil {
		a.Assessors = []string{}
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode assessment: %w", err)
	}
	return data, nil
}

// DecodeOptions supplies the catalog to validate against and the values used
// to repair optional fields.
type DecodeOptions struct {
	Catalog []domain.DimensionTemplate
	// NewID is called when the snapshot carries no id.
	NewID func() string
	// Today is used when the snapshot carries no date.
	Today civil.Date
}

type wireProofPoint struct {
	ID            string `json:"id"`
	Completed     bool   `json:"completed"`
	Evidence      string `json:"evidence"`
	NotApplicable bool   `json:"notApplicable"`
}

type wireDimension struct {
	ID            string               `json:"id"`
	MaturityLevel domain.MaturityLevel `json:"maturityLevel"`
	ProofPoints   []wireProofPoint     `json:"proofPoints"`
	Notes         string               `json:"notes"`
}

type wireAssessment struct {
	ID               string          `json:"id"`
	OrganizationName string          `json:"organizationName"`
	AssessmentDate   string          `json:"assessmentDate"`
	Assessors        []string        `json:"assessors"`
	Dimensions       []wireDimension `json:"dimensions"`
	OverallNotes     string          `json:"overallNotes"`
}

// Decode parses data into an assessment aligned with opts.Catalog.
//
// Names, descriptions and categories are taken from the catalog. A missing id
// or date is filled in, an RFC 3339 timestamp is truncated to its date, and a
// proof point marked both completed and not applicable keeps only the latter.
// Any other deviation is an error wrapping ErrMalformed.
func Decode(data []byte, opts DecodeOptions) (domain.Assessment, error) {
	var w wireAssessment
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.Assessment{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if w.Dimensions == nil {
		return domain.Assessment{}, fmt.Errorf("%w: missing dimensions", ErrMalformed)
	}
	date, err := parseDate(w.AssessmentDate, opts.Today)
	if err != nil {
		return domain.Assessment{}, err
	}
	dims, err := alignDimensions(w.Dimensions, opts.Catalog)
	if err != nil {
		return domain.Assessment{}, err
	}
	id := w.ID
	if strings.TrimSpace(id) == "" && opts.NewID != nil {
		id = opts.NewID()
	}
	assessors := w.Assessors
	if assessors == nil {
		assessors = []string{}
	}
	return domain.Assessment{
		ID:               id,
		OrganizationName: w.OrganizationName,
		AssessmentDate:   date,
		Assessors:        assessors,
		Dimensions:       dims,
		OverallNotes:     w.OverallNotes,
	}, nil
}

func parseDate(raw string, today civil.Date) (civil.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return today, nil
	}
	if d, err := civil.ParseDate(raw); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: assessmentDate %q", ErrMalformed, raw)
	}
	return civil.DateOf(ts.UTC()), nil
}

func alignDimensions(in []wireDimension, templates []domain.DimensionTemplate) ([]domain.Dimension, error) {
	if len(in) != len(templates) {
		return nil, fmt.Errorf("%w: expected %d dimensions, got %d", ErrCatalogMismatch, len(templates), len(in))
	}
	out := make([]domain.Dimension, len(templates))
	for i, tpl := range templates {
		wd := in[i]
		if wd.ID != tpl.ID {
			return nil, fmt.Errorf("%w: dimension %d is %q, expected %q", ErrCatalogMismatch, i, wd.ID, tpl.ID)
		}
		if !wd.MaturityLevel.Valid() {
			return nil, fmt.Errorf("%w: dimension %s: %w %q", ErrMalformed, wd.ID, domain.ErrInvalidMaturityLevel, wd.MaturityLevel)
		}
		if len(wd.ProofPoints) != len(tpl.ProofPoints) {
			return nil, fmt.Errorf("%w: dimension %s has %d proof points, expected %d", ErrCatalogMismatch, tpl.ID, len(wd.ProofPoints), len(tpl.ProofPoints))
		}
		d := tpl.NewRecord()
		d.MaturityLevel = wd.MaturityLevel
		d.Notes = wd.Notes
		for j, ptpl := range tpl.ProofPoints {
			wp := wd.ProofPoints[j]
			if wp.ID != ptpl.ID {
				return nil, fmt.Errorf("%w: dimension %s proof point %d is %q, expected %q", ErrCatalogMismatch, tpl.ID, j, wp.ID, ptpl.ID)
			}
			d.ProofPoints[j].Completed = wp.Completed && !wp.NotApplicable
			d.ProofPoints[j].NotApplicable = wp.NotApplicable
			d.ProofPoints[j].Evidence = wp.Evidence
		}
		out[i] = d
	}
	return out, nil
}
