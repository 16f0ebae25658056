// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equi

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestConvergenceControllerInfeasible(tst *testing.T) {
	chk.PrintTitle("convergence controller: feasibility gate blocks on mass residual")

	state := NewIterationState(1, 1, 0, []float64{0})
	state.PhaseAmt[0] = 1.0
	state.MassResidual = 1e-2 // above MassResidualTol
	state.FreeStableIdx = []int{0}

	gate := (&ConvergenceController{}).Evaluate(state, []float64{1}, [][]float64{{1}})
	if gate.Feasible {
		tst.Errorf("expected infeasible, got feasible\n")
	}
	if gate.Converged {
		tst.Errorf("infeasible iterations must never report converged\n")
	}
	chk.Array(tst, "active set unchanged", 1e-15, toF(gate.ActiveSet), toF(state.FreeStableIdx))
}

func TestConvergenceControllerAdmitsByDrivingForce(tst *testing.T) {
	chk.PrintTitle("convergence controller: admits a metastable phase with DF > -1e-5")

	state := NewIterationState(1, 2, 0, []float64{1})
	state.PhaseAmt[0] = 1.0
	state.PhaseAmt[1] = 0 // metastable, below threshold
	state.FreeStableIdx = []int{0}
	state.MassResidual = 0
	state.LargestInternalConsMaxResidual = 0
	state.LargestInternalDofChange = 0
	state.LargestPhaseAmtChange = 0
	state.LargestStatevarChange = 0

	energies := []float64{0, 5}
	masses := [][]float64{{0}, {4}} // DF[1] = 5 - 1*4 = 1 > -1e-5, admitted

	gate := (&ConvergenceController{}).Evaluate(state, energies, masses)
	if !gate.Feasible {
		tst.Errorf("expected feasible\n")
	}
	found := false
	for _, idx := range gate.ActiveSet {
		if idx == 1 {
			found = true
		}
	}
	if !found {
		tst.Errorf("expected phase 1 admitted by positive driving force, active set = %v\n", gate.ActiveSet)
	}
	if gate.Converged {
		tst.Errorf("admitting a new phase must not report converged\n")
	}
}

func TestConvergenceControllerRemovesByAmountThreshold(tst *testing.T) {
	chk.PrintTitle("convergence controller: drops a phase whose amount falls below MIN_SITE_FRACTION")

	state := NewIterationState(1, 2, 0, []float64{1})
	state.PhaseAmt[0] = 1.0
	state.PhaseAmt[1] = 0 // fell below threshold
	state.FreeStableIdx = []int{0, 1}
	state.MassResidual = 0
	state.LargestInternalConsMaxResidual = 0
	state.LargestInternalDofChange = 0
	state.LargestPhaseAmtChange = 0
	state.LargestStatevarChange = 0

	energies := []float64{0, -100} // strongly negative DF, not re-admitted
	masses := [][]float64{{0}, {0}}

	gate := (&ConvergenceController{}).Evaluate(state, energies, masses)
	if !gate.PhaseRemoved {
		tst.Errorf("expected PhaseRemoved=true\n")
	}
	if gate.Converged {
		tst.Errorf("a removal must block convergence this iteration\n")
	}
}

func TestConvergenceControllerConverges(tst *testing.T) {
	chk.PrintTitle("convergence controller: all gates pass, active set stable")

	state := NewIterationState(1, 1, 0, []float64{1})
	state.PhaseAmt[0] = 1.0
	state.FreeStableIdx = []int{0}
	state.MassResidual = 0
	state.LargestInternalConsMaxResidual = 0
	state.LargestInternalDofChange = 0
	state.LargestPhaseAmtChange = 0
	state.LargestStatevarChange = 0

	energies := []float64{-100} // strongly negative DF, stays put, no new admissions
	masses := [][]float64{{0}}

	gate := (&ConvergenceController{}).Evaluate(state, energies, masses)
	if !gate.Converged {
		tst.Errorf("expected converged, got gate=%+v\n", gate)
	}
}

func toF(a []int) []float64 {
	out := make([]float64, len(a))
	for i, v := range a {
		out[i] = float64(v)
	}
	return out
}
