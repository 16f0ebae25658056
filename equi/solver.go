// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equi

import (
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gophaseq/phase"
)

// Options configures one FindSolution call. Verbose mirrors fem's solver
// verbose flag: when set, SolverDriver logs a one-line iteration summary
// via gosl/io.
type Options struct {
	Verbose bool
}

// Solution is the find_solution triple of §6: the convergence flag, the
// packed state [dof[0] ⊕ dof[1][num_statevars:] ⊕ ... ⊕ phase_amt], and
// the final chemical potentials.
type Solution struct {
	Converged          bool
	Packed             []float64
	ChemicalPotentials []float64
}

// SolverDriver is the top-level orchestrator of §4.5: up to
// phase.MaxOuterIterations outer iterations sequencing the internal-DOF
// update, global system assembly/solve, solution extraction and
// convergence gate.
type SolverDriver struct {
	NumStatevars int

	phaseBuilder  *PhaseSystemBuilder
	globalBuilder *EquilibriumSystemBuilder
	extractor     *SolutionExtractor
	convergence   *ConvergenceController
}

// NewSolverDriver builds a driver for a system with nsv state variables.
func NewSolverDriver(nsv int) *SolverDriver {
	return &SolverDriver{
		NumStatevars:  nsv,
		phaseBuilder:  &PhaseSystemBuilder{NumStatevars: nsv},
		globalBuilder: &EquilibriumSystemBuilder{NumStatevars: nsv},
		extractor:     &SolutionExtractor{NumStatevars: nsv},
		convergence:   &ConvergenceController{},
	}
}

// FindSolution runs the bounded Newton loop of §4.5 over compsets under
// cond, mutating each CompositionSet's DOF and NP in place. It always
// returns a Solution; non-convergence after phase.MaxOuterIterations is a
// data signal (Solution.Converged == false), not an error.
func (o *SolverDriver) FindSolution(compsets []*phase.CompositionSet, cond *phase.ConditionSet, opts Options) (*Solution, error) {
	if err := cond.Validate(); err != nil {
		return nil, err
	}

	nsv := o.NumStatevars
	nComp := cond.NumComponents
	state := NewIterationState(nComp, len(compsets), nsv, cond.InitialChemicalPotentials)
	state.FreeStableIdx = initialActiveSet(compsets)
	for i, cs := range compsets {
		state.PhaseAmt[i] = cs.NP
	}

	energies := make([]float64, len(compsets))
	masses := make([][]float64, len(compsets))
	for i := range masses {
		masses[i] = make([]float64, nComp)
	}

	converged := false
	iter := 0
	for ; iter < phase.MaxOuterIterations; iter++ {
		state.ResetTrackers()

		// step 2: internal DOF update. Sequential by contract (§5); each
		// compset only touches its own dof/scratch, so this loop could be
		// parallelized, but the shared trackers and elemental-amount totals
		// it accumulates into would then need a reduction.
		for idx := range state.CurrentElementalAmounts {
			state.CurrentElementalAmounts[idx] = 0
		}
		state.CurrentSystemAmount = 0
		stable := make(map[int]bool, len(state.FreeStableIdx))
		for _, idx := range state.FreeStableIdx {
			stable[idx] = true
		}

		for idx, cs := range compsets {
			res, err := o.phaseBuilder.BuildPhaseSystem(idx, cs, state.DeltaStatevars, state.ChemicalPotentials)
			if err != nil {
				return nil, err
			}
			if res.MaxAbsCons > state.LargestInternalConsMaxResidual {
				state.LargestInternalConsMaxResidual = res.MaxAbsCons
			}
			D := cs.Eval.PhaseDOF()
			for j := 0; j < D; j++ {
				y := cs.DOF[nsv+j] + res.DeltaY[j]
				if y < phase.MinSiteFraction {
					y = phase.MinSiteFraction
				}
				if y > 1 {
					y = 1
				}
				delta := y - cs.DOF[nsv+j]
				if absf(delta) > state.LargestInternalDofChange {
					state.LargestInternalDofChange = absf(delta)
				}
				cs.DOF[nsv+j] = y
			}

			energies[idx] = cs.Eval.Obj(cs.DOF)
			for c := 0; c < nComp; c++ {
				masses[idx][c] = cs.Eval.MassObj(cs.DOF, c)
			}

			if stable[idx] {
				for c := 0; c < nComp; c++ {
					state.CurrentElementalAmounts[c] += cs.NP * masses[idx][c]
					state.CurrentSystemAmount += cs.NP * masses[idx][c]
				}
			}
		}

		// re-linearize every stable phase at its updated dof, so the
		// Hessian, gradient, mass-Jacobian and E-matrix condensed below
		// belong to the same point as its energy and masses.
		for _, idx := range state.FreeStableIdx {
			if _, err := o.phaseBuilder.BuildPhaseSystem(idx, compsets[idx], state.DeltaStatevars, state.ChemicalPotentials); err != nil {
				return nil, err
			}
		}

		// step 3: Gibbs-phase-rule check (also re-checked inside the
		// global builder, which returns the fatal mismatch error).

		// step 4: global system assembly + solve.
		condensed := make([]CondensedPhase, phase.NumFreeStablePhases(state.FreeStableIdx))
		for p, idx := range state.FreeStableIdx {
			cs := compsets[idx]
			s := cs.Scratch()
			condensed[p] = CondensedPhase{
				Idx:      idx,
				PhaseDOF: cs.Eval.PhaseDOF(),
				Energy:   energies[idx],
				Masses:   masses[idx],
				Grad:     s.Grad,
				Hess:     s.Hess,
				MassJac:  s.MassJac,
				EMatrix:  s.EMatrix,
			}
		}
		globalResult, err := o.globalBuilder.BuildGlobalSystem(state, cond, condensed)
		if err != nil {
			return nil, err
		}
		state.MassResidual = globalResult.MassResidual

		// step 5: apply global solution.
		o.extractor.Apply(state, cond, condensed, compsets, globalResult)

		// step 6: convergence gate.
		gate := o.convergence.Evaluate(state, energies, masses)
		state.FreeStableIdx = gate.ActiveSet

		if opts.Verbose {
			io.Pf("iter %3d: mass_residual=%v cons_residual=%v dof_chg=%v amt_chg=%v sv_chg=%v nstable=%d\n",
				iter, state.MassResidual, state.LargestInternalConsMaxResidual,
				state.LargestInternalDofChange, state.LargestPhaseAmtChange,
				state.LargestStatevarChange, phase.NumFreeStablePhases(state.FreeStableIdx))
		}

		if gate.Converged {
			converged = true
			if opts.Verbose {
				io.Pforan("converged after %d iterations\n", iter+1)
			}
			break
		}
	}
	if !converged && opts.Verbose {
		io.PfYel("did not converge after %d iterations\n", phase.MaxOuterIterations)
	}

	return &Solution{
		Converged:          converged,
		Packed:             packState(compsets, nsv),
		ChemicalPotentials: state.ChemicalPotentials,
	}, nil
}

func initialActiveSet(compsets []*phase.CompositionSet) []int {
	idx := make([]int, 0, len(compsets))
	for i, cs := range compsets {
		if cs.NP > phase.MinSiteFraction {
			idx = append(idx, i)
		}
	}
	return idx
}

// packState concatenates [dof[0] ⊕ dof[1][nsv:] ⊕ ... ⊕ phase_amt] per §6.
func packState(compsets []*phase.CompositionSet, nsv int) []float64 {
	n := 0
	if len(compsets) > 0 {
		n += len(compsets[0].DOF)
	}
	for i := 1; i < len(compsets); i++ {
		n += len(compsets[i].DOF) - nsv
	}
	n += len(compsets)

	out := make([]float64, 0, n)
	if len(compsets) > 0 {
		out = append(out, compsets[0].DOF...)
	}
	for i := 1; i < len(compsets); i++ {
		out = append(out, compsets[i].InternalDOF(nsv)...)
	}
	for _, cs := range compsets {
		out = append(out, cs.NP)
	}
	return out
}
