// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equi

// IterationState is the mutable solver state and per-iteration trackers of
// §3 ("Mutable solver state" / "Derived per-iteration quantities"). One
// IterationState is created per FindSolution call and mutated in place
// through every outer iteration.
type IterationState struct {
	PhaseAmt            []float64 // indexed by compset, mirrors CompositionSet.NP
	ChemicalPotentials  []float64 // indexed by component
	FreeStableIdx       []int     // indices into compsets, currently active
	DeltaStatevars      []float64 // length NumStatevars

	CurrentElementalAmounts []float64 // indexed by component
	CurrentSystemAmount     float64

	// per-iteration trackers, reset to zero at the start of every outer
	// iteration (§4.5 step 1).
	LargestInternalDofChange       float64
	LargestPhaseAmtChange          float64
	LargestStatevarChange          float64 // historical name; also folds in chemical-potential relative change (§9)
	MassResidual                   float64
	LargestInternalConsMaxResidual float64
}

// NewIterationState allocates a zeroed IterationState for nComponents
// components, nCompsets composition sets and nsv state variables, seeded
// with the caller's initial chemical potentials. PhaseAmt starts at zero;
// FindSolution fills it from each compset's initial NP.
func NewIterationState(nComponents, nCompsets, nsv int, initialChemPot []float64) *IterationState {
	st := &IterationState{
		PhaseAmt:                make([]float64, nCompsets),
		ChemicalPotentials:      make([]float64, nComponents),
		DeltaStatevars:          make([]float64, nsv),
		CurrentElementalAmounts: make([]float64, nComponents),
	}
	copy(st.ChemicalPotentials, initialChemPot)
	return st
}

// ResetTrackers zeroes the per-iteration trackers (§4.5 step 1).
func (o *IterationState) ResetTrackers() {
	o.LargestInternalDofChange = 0
	o.LargestPhaseAmtChange = 0
	o.LargestStatevarChange = 0
	o.MassResidual = 0
	o.LargestInternalConsMaxResidual = 0
}
