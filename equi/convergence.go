// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equi

import (
	"sort"

	"github.com/cpmech/gophaseq/phase"
)

// ConvergenceController implements the two-stage gate of §4.4: a
// feasibility gate, followed by active-set maintenance (additions by
// driving-force sign, removals by amount threshold) and the convergence
// predicate.
type ConvergenceController struct{}

// ConvergenceResult reports the outcome of one gate evaluation.
type ConvergenceResult struct {
	Feasible     bool
	ActiveSet    []int // new free_stable_compset_indices, sorted ascending
	DriveForces  []float64
	PhaseRemoved bool // true iff the new active set dropped any compset present before
	Converged    bool
}

// Evaluate runs the feasibility gate, recomputes the active set from
// current phase amounts and driving forces, and applies the convergence
// predicate. energies and masses are indexed by compset and must reflect
// the post-internal-update dof computed in driver step 2; masses[i] holds
// component-indexed mole quantities for compset i.
func (o *ConvergenceController) Evaluate(state *IterationState, energies []float64, masses [][]float64) *ConvergenceResult {
	res := &ConvergenceResult{}
	res.Feasible = state.MassResidual < phase.MassResidualTol &&
		state.LargestInternalConsMaxResidual < phase.InternalConsResidualTol
	if !res.Feasible {
		res.ActiveSet = append([]int(nil), state.FreeStableIdx...)
		return res
	}

	n := len(state.PhaseAmt)
	res.DriveForces = make([]float64, n)
	inOld := make(map[int]bool, len(state.FreeStableIdx))
	for _, idx := range state.FreeStableIdx {
		inOld[idx] = true
	}

	active := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		if state.PhaseAmt[i] > phase.MinSiteFraction {
			active[i] = true
		}
	}
	for i := 0; i < n; i++ {
		df := energies[i]
		for c, m := range masses[i] {
			df -= state.ChemicalPotentials[c] * m
		}
		res.DriveForces[i] = df
		if df > phase.DrivingForceAdmitTol {
			active[i] = true
		}
	}

	newActive := make([]int, 0, len(active))
	for idx := range active {
		newActive = append(newActive, idx)
	}
	sort.Ints(newActive)
	res.ActiveSet = newActive

	for idx := range inOld {
		if !active[idx] {
			res.PhaseRemoved = true
			break
		}
	}

	res.Converged = !res.PhaseRemoved &&
		state.LargestInternalDofChange < phase.InternalDofChangeTol &&
		state.LargestPhaseAmtChange < phase.PhaseAmtChangeTol &&
		state.LargestStatevarChange < phase.StatevarChangeTol

	return res
}
