// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equi

import (
	"math"

	"github.com/cpmech/gophaseq/phase"
)

// SolutionExtractor unpacks a GlobalSystemResult into state updates (§4.3):
// new chemical potentials, phase-amount increments, and state-variable
// increments, each with clipping and change-magnitude tracking.
type SolutionExtractor struct {
	NumStatevars int
}

// Apply unpacks solution in column order [δμ_free | δN_free_phases |
// δs_free], updates state and every compset's phase amount and
// state-variable prefix in place, and folds change magnitudes into the
// IterationState trackers used by the convergence gate (§4.4).
func (o *SolutionExtractor) Apply(state *IterationState, cond *phase.ConditionSet, condensed []CondensedPhase, compsets []*phase.CompositionSet, result *GlobalSystemResult) {
	nsv := o.NumStatevars
	soln := result.Solution
	numFreeMu := len(cond.FreeChemPotIndices)
	numStable := len(condensed)

	// 1. chemical potentials (absolute, not increment).
	for k, comp := range cond.FreeChemPotIndices {
		newMu := soln[k]
		old := state.ChemicalPotentials[comp]
		if old != 0 {
			rel := math.Abs((newMu - old) / old)
			if rel > state.LargestStatevarChange {
				state.LargestStatevarChange = rel
			}
		}
		state.ChemicalPotentials[comp] = newMu
	}

	// 2. phase-amount increments.
	for p, cp := range condensed {
		delta := soln[numFreeMu+p]
		if math.Abs(delta) > state.LargestPhaseAmtChange {
			state.LargestPhaseAmtChange = math.Abs(delta)
		}
		cs := compsets[cp.Idx]
		cs.NP += delta
		cs.ClipAmount()
		state.PhaseAmt[cp.Idx] = cs.NP
	}

	// 3. state-variable increments.
	for k := range state.DeltaStatevars {
		state.DeltaStatevars[k] = 0
	}
	for k, sv := range cond.FreeStatevarIndices {
		state.DeltaStatevars[sv] = soln[numFreeMu+numStable+k]
	}
	if len(compsets) > 0 {
		ref := compsets[0].DOF[:nsv]
		for sv := 0; sv < nsv; sv++ {
			rel := state.DeltaStatevars[sv]
			if ref[sv] != 0 {
				rel = state.DeltaStatevars[sv] / ref[sv]
			}
			if math.IsNaN(rel) {
				rel = 0
			}
			if math.Abs(rel) > state.LargestStatevarChange {
				state.LargestStatevarChange = math.Abs(rel)
			}
		}
	}
	for _, cs := range compsets {
		for sv := 0; sv < nsv; sv++ {
			cs.DOF[sv] += state.DeltaStatevars[sv]
		}
	}
}
