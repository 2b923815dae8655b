package domain

// Updates never modify an Assessment in place. Each helper copies the
// dimension slice and, where touched, the proof point slice, so values handed
// out earlier keep observing the state they were created from.

// DimensionIndex returns the position of the dimension with id, or -1.
func (a Assessment) DimensionIndex(id string) int {
	for i, d := range a.Dimensions {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// FindDimension returns the dimension with id.
func (a Assessment) FindDimension(id string) (Dimension, bool) {
	if i := a.DimensionIndex(id); i >= 0 {
		return a.Dimensions[i], true
	}
	return Dimension{}, false
}

// ProofPointIndex returns the position of the proof point with id, or -1.
func (d Dimension) ProofPointIndex(id string) int {
	for i, p := range d.ProofPoints {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// FindProofPoint returns the proof point with id.
func (d Dimension) FindProofPoint(id string) (ProofPoint, bool) {
	if i := d.ProofPointIndex(id); i >= 0 {
		return d.ProofPoints[i], true
	}
	return ProofPoint{}, false
}

// WithDimension returns a copy of a with the matching dimension replaced by
// fn's result. The boolean is false, and a is returned unchanged, when no
// dimension matches.
func (a Assessment) WithDimension(id string, fn func(Dimension) Dimension) (Assessment, bool) {
	idx := a.DimensionIndex(id)
	if idx < 0 {
		return a, false
	}
	dims := make([]Dimension, len(a.Dimensions))
	copy(dims, a.Dimensions)
	dims[idx] = fn(dims[idx])
	a.Dimensions = dims
	return a, true
}

// WithProofPoint returns a copy of a with the matching proof point replaced by fn's result.
func (a Assessment) WithProofPoint(dimensionID, proofPointID string, fn func(ProofPoint) ProofPoint) (Assessment, bool) {
	dimIdx := a.DimensionIndex(dimensionID)
	if dimIdx < 0 {
		return a, false
	}
	ppIdx := a.Dimensions[dimIdx].ProofPointIndex(proofPointID)
	if ppIdx < 0 {
		return a, false
	}
	return a.WithDimension(dimensionID, func(d Dimension) Dimension {
		pps := make([]ProofPoint, len(d.ProofPoints))
		copy(pps, d.ProofPoints)
		pps[ppIdx] = fn(pps[ppIdx])
		d.ProofPoints = pps
		return d
	})
}

// ToggledCompleted flips Completed. NotApplicable and Evidence are untouched.
func (p ProofPoint) ToggledCompleted() ProofPoint {
	p.Completed = !p.Completed
	return p
}

// ToggledNotApplicable flips NotApplicable. Marking an item not applicable
// clears Completed; clearing the flag leaves Completed as it is.
func (p ProofPoint) ToggledNotApplicable() ProofPoint {
	p.NotApplicable = !p.NotApplicable
	if p.NotApplicable {
		p.Completed = false
	}
	return p
}

// Clone returns a deep copy sharing no slices with a.
func (a Assessment) Clone() Assessment {
	out := a
	out.Assessors = append(make([]string, 0, len(a.Assessors)), a.Assessors...)
	out.Dimensions = make([]Dimension, len(a.Dimensions))
	for i, d := range a.Dimensions {
		d.ProofPoints = append(make([]ProofPoint, 0, len(d.ProofPoints)), d.ProofPoints...)
		out.Dimensions[i] = d
	}
	return out
}
