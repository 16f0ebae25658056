// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

// ConditionSet is the immutable set of conditions imposed on one
// FindSolution call (§3, Condition sets).
type ConditionSet struct {
	NumComponents int
	NumStatevars  int

	FreeChemPotIndices  []int // component indices, chemical potential unknown
	FixedChemPotIndices []int // component indices, chemical potential imposed

	FreeStatevarIndices  []int // state-variable indices, free
	FixedStatevarIndices []int // state-variable indices, fixed

	PrescribedElementIndices  []int     // component indices with a mass-balance constraint
	PrescribedElementalAmounts []float64 // moles of element i, parallel to PrescribedElementIndices

	PrescribedSystemAmount float64 // total system amount (moles)

	InitialChemicalPotentials []float64 // component-indexed starting values
}

// NumFreeStablePhases reports how many of the given composition sets are
// currently in the free (stable, active) set. Validate does not use it:
// the number of stable phases cancels out of the Gibbs phase rule check.
func NumFreeStablePhases(freeStableIdx []int) int { return len(freeStableIdx) }

// Validate checks the Gibbs phase rule square-system invariant of §3:
//
//	|free_stable_phases| + |prescribed_elemental_amounts| + 1 ==
//	    |free_chemical_potentials| + |free_statevars| + |free_stable_phases|
//
// equivalently |free_chempots| + |free_statevars| == |prescribed_elements| + 1.
// A violation is fatal (ErrGibbsRuleViolation); the number of stable phases
// cancels out of the equivalent form, so it is accepted but not required
// by this check — the caller's active-set size does not by itself make the
// system non-square.
func (o *ConditionSet) Validate() error {
	lhs := len(o.FreeChemPotIndices) + len(o.FreeStatevarIndices)
	rhs := len(o.PrescribedElementIndices) + 1
	if lhs != rhs {
		return ErrGibbsRuleViolation(rhs, lhs)
	}
	return nil
}
