// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equi

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gophaseq/phase"
)

func TestSolutionExtractorApply(tst *testing.T) {
	chk.PrintTitle("solution extractor: chempot, phase amount and statevar unpacking")

	cond := &phase.ConditionSet{
		NumComponents:      2,
		NumStatevars:       0,
		FreeChemPotIndices: []int{0, 1},
	}
	state := NewIterationState(2, 1, 0, []float64{100, 200})
	state.PhaseAmt[0] = 0.5

	cs := &phase.CompositionSet{NP: 0.5, DOF: []float64{}}
	compsets := []*phase.CompositionSet{cs}

	condensed := []CondensedPhase{{Idx: 0, PhaseDOF: 1}}
	result := &GlobalSystemResult{Solution: []float64{140.0 / 11, 40.0 / 11, 0.05}}

	ext := &SolutionExtractor{NumStatevars: 0}
	ext.Apply(state, cond, condensed, compsets, result)

	chk.Float64(tst, "mu[0]", 1e-9, state.ChemicalPotentials[0], 140.0/11)
	chk.Float64(tst, "mu[1]", 1e-9, state.ChemicalPotentials[1], 40.0/11)
	chk.Float64(tst, "NP", 1e-9, cs.NP, 0.55)
	chk.Float64(tst, "phase_amt[0]", 1e-9, state.PhaseAmt[0], 0.55)
	chk.Float64(tst, "largest_phase_amt_change", 1e-9, state.LargestPhaseAmtChange, 0.05)
	chk.Float64(tst, "largest_statevar_change", 1e-6, state.LargestStatevarChange, 1-40.0/2200)
}

func TestSolutionExtractorClipsPhaseAmount(tst *testing.T) {
	chk.PrintTitle("solution extractor: phase amount clipped to [0,1]")

	cond := &phase.ConditionSet{NumComponents: 1, NumStatevars: 0, FreeChemPotIndices: []int{}}
	state := NewIterationState(1, 1, 0, []float64{0})
	state.PhaseAmt[0] = 0.9

	cs := &phase.CompositionSet{NP: 0.9, DOF: []float64{}}
	compsets := []*phase.CompositionSet{cs}
	condensed := []CondensedPhase{{Idx: 0, PhaseDOF: 1}}
	result := &GlobalSystemResult{Solution: []float64{0.5}} // delta pushes NP past 1

	ext := &SolutionExtractor{NumStatevars: 0}
	ext.Apply(state, cond, condensed, compsets, result)

	chk.Float64(tst, "NP clipped", 1e-15, cs.NP, 1)
}
