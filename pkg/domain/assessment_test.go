package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"cloud.google.com/go/civil"
)

func testTemplates() []DimensionTemplate {
	return []DimensionTemplate{
		{ID: "alpha", Name: "Alpha", Description: "first", ProofPoints: []ProofPointTemplate{
			{ID: "a-1", Category: "One", Description: "first item"},
			{ID: "a-2", Category: "One", Description: "second item"},
		}},
		{ID: "beta", Name: "Beta", Description: "second", ProofPoints: []ProofPointTemplate{
			{ID: "b-1", Category: "Two", Description: "only item"},
		}},
	}
}

func testAssessment() Assessment {
	return NewAssessment("id-1", civil.Date{Year: 2024, Month: 5, Day: 1}, testTemplates())
}

func TestNewAssessmentClonesTemplates(t *testing.T) {
	a := testAssessment()
	if a.Assessors == nil || len(a.Assessors) != 0 {
		t.Fatalf("expected empty non-nil assessors, got %#v", a.Assessors)
	}
	if len(a.Dimensions) != 2 || a.Dimensions[1].ID != "beta" {
		t.Fatalf("unexpected dimensions %+v", a.Dimensions)
	}
	pp := a.Dimensions[0].ProofPoints[1]
	if pp.ID != "a-2" || pp.Category != "One" || pp.Completed || pp.NotApplicable || pp.Evidence != "" {
		t.Fatalf("unexpected proof point %+v", pp)
	}
	if a.Dimensions[0].MaturityLevel.IsSet() {
		t.Fatalf("expected unset level")
	}
}

func TestToggledCompletedTwiceRestores(t *testing.T) {
	orig := ProofPoint{ID: "x", Evidence: "doc", NotApplicable: false}
	once := orig.ToggledCompleted()
	if !once.Completed || once.Evidence != "doc" {
		t.Fatalf("unexpected first toggle %+v", once)
	}
	if twice := once.ToggledCompleted(); twice != orig {
		t.Fatalf("expected %+v, got %+v", orig, twice)
	}
}

func TestToggledNotApplicableClearsCompleted(t *testing.T) {
	cases := []struct {
		name string
		in   ProofPoint
		want ProofPoint
	}{
		{"completed becomes na", ProofPoint{Completed: true}, ProofPoint{NotApplicable: true}},
		{"open becomes na", ProofPoint{}, ProofPoint{NotApplicable: true}},
		{"na cleared keeps completed false", ProofPoint{NotApplicable: true}, ProofPoint{}},
		{"evidence survives", ProofPoint{Completed: true, Evidence: "e"}, ProofPoint{NotApplicable: true, Evidence: "e"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.ToggledNotApplicable()
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
			if got.Completed && got.NotApplicable {
				t.Fatalf("invariant violated: %+v", got)
			}
		})
	}
}

func TestWithProofPointCopiesOnWrite(t *testing.T) {
	before := testAssessment()
	after, ok := before.WithProofPoint("alpha", "a-1", ProofPoint.ToggledCompleted)
	if !ok {
		t.Fatalf("expected match")
	}
	if before.Dimensions[0].ProofPoints[0].Completed {
		t.Fatalf("original assessment was mutated")
	}
	if !after.Dimensions[0].ProofPoints[0].Completed {
		t.Fatalf("expected toggled proof point")
	}
	if &after.Dimensions[1].ProofPoints[0] != &before.Dimensions[1].ProofPoints[0] {
		t.Fatalf("expected untouched dimension to share storage")
	}
}

func TestWithProofPointUnknownIDs(t *testing.T) {
	a := testAssessment()
	if _, ok := a.WithProofPoint("missing", "a-1", ProofPoint.ToggledCompleted); ok {
		t.Fatalf("expected unknown dimension to miss")
	}
	if _, ok := a.WithProofPoint("alpha", "b-1", ProofPoint.ToggledCompleted); ok {
		t.Fatalf("expected proof point of another dimension to miss")
	}
	if _, ok := a.WithDimension("", func(d Dimension) Dimension { return d }); ok {
		t.Fatalf("expected empty id to miss")
	}
}

func TestDimensionPatchApply(t *testing.T) {
	notes := "needs work"
	level := MaturityIntegrate
	d := Dimension{ID: "alpha", Notes: "old", MaturityLevel: MaturityLaunch}
	if got := (DimensionPatch{Notes: &notes}).Apply(d); got.Notes != notes || got.MaturityLevel != MaturityLaunch {
		t.Fatalf("notes patch: %+v", got)
	}
	if got := (DimensionPatch{MaturityLevel: &level}).Apply(d); got.Notes != "old" || got.MaturityLevel != level {
		t.Fatalf("level patch: %+v", got)
	}
	if !(DimensionPatch{}).Empty() {
		t.Fatalf("expected empty patch")
	}
}

func TestCloneSharesNothing(t *testing.T) {
	a := testAssessment()
	a.Assessors = []string{"Ada"}
	c := a.Clone()
	c.Assessors[0] = "Bob"
	c.Dimensions[0].ProofPoints[0].Evidence = "changed"
	c.Dimensions[0].Notes = "changed"
	if a.Assessors[0] != "Ada" || a.Dimensions[0].ProofPoints[0].Evidence != "" || a.Dimensions[0].Notes != "" {
		t.Fatalf("clone aliased original: %+v", a)
	}
}

func TestMaturityLevelJSON(t *testing.T) {
	d := Dimension{ID: "alpha", ProofPoints: []ProofPoint{}}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if v, ok := raw["maturityLevel"]; !ok || v != nil {
		t.Fatalf("expected null maturityLevel, got %v", raw["maturityLevel"])
	}
	d.MaturityLevel = MaturityOptimize
	data, _ = json.Marshal(d)
	var back Dimension
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.MaturityLevel != MaturityOptimize {
		t.Fatalf("expected optimize, got %q", back.MaturityLevel)
	}
	if err := json.Unmarshal([]byte(`{"maturityLevel":7}`), &back); err == nil {
		t.Fatalf("expected error for numeric level")
	}
}

func TestParseMaturityLevel(t *testing.T) {
	for _, raw := range []string{"inactive", "launch", "integrate", "optimize"} {
		if got, err := ParseMaturityLevel(raw); err != nil || string(got) != raw {
			t.Fatalf("parse %s: %v %q", raw, err, got)
		}
	}
	if got, err := ParseMaturityLevel("none"); err != nil || got != MaturityUnset {
		t.Fatalf("parse none: %v %q", err, got)
	}
	if _, err := ParseMaturityLevel("Launch"); !errors.Is(err, ErrInvalidMaturityLevel) {
		t.Fatalf("expected invalid level error, got %v", err)
	}
}
