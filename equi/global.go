// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equi

import (
	"github.com/cpmech/gophaseq/linalg"
	"github.com/cpmech/gophaseq/phase"
)

// CondensedPhase is one stable phase's contribution to the global system:
// its post-internal-update energy and masses, plus the Hessian, gradient,
// mass-Jacobian and E-matrix from its PhaseSystemBuilder solve, which the
// EquilibriumSystemBuilder condenses into Sundman Eq. 44's c_G, c_sv, c_mu.
type CondensedPhase struct {
	Idx      int // composition set index
	PhaseDOF int

	Energy float64   // energy_of_phase, at post-update dof
	Masses []float64 // nComponents, at post-update dof

	Grad    []float64   // S+D, from the phase system solve
	Hess    [][]float64 // (S+D) x (S+D), from the phase system solve
	MassJac [][]float64 // nComponents x (S+D), from the phase system solve
	EMatrix [][]float64 // phase_dof x phase_dof
}

// GlobalSystemResult holds the assembled-and-solved global system.
type GlobalSystemResult struct {
	Solution     []float64 // length numFreeChemPot + numStablePhases + numFreeStatevars
	MassResidual float64
	Rank         int
}

// EquilibriumSystemBuilder assembles and solves the global linear system of
// §4.2 in the unknowns [δμ_free | δN_free_phases | δs_free].
type EquilibriumSystemBuilder struct {
	NumStatevars int
}

// BuildGlobalSystem assembles the row layout of §4.2 (one row per stable
// phase, one row per prescribed element, one system-amount row) and solves
// it via least squares with rank tolerance phase.LeastSquaresRankTol,
// returning the mass_residual gauge used by the convergence controller.
func (o *EquilibriumSystemBuilder) BuildGlobalSystem(state *IterationState, cond *phase.ConditionSet, condensed []CondensedPhase) (*GlobalSystemResult, error) {
	nsv := o.NumStatevars
	numFreeMu := len(cond.FreeChemPotIndices)
	numStable := len(condensed)
	numFreeSv := len(cond.FreeStatevarIndices)
	numFc := len(cond.PrescribedElementIndices)

	nCols := numFreeMu + numStable + numFreeSv
	nRows := numStable + numFc + 1
	if nRows != nCols {
		return nil, phase.ErrGibbsRuleViolation(nRows, nCols)
	}

	muCol := make(map[int]int, numFreeMu) // component index -> column
	for k, c := range cond.FreeChemPotIndices {
		muCol[c] = k
	}
	svCol := make(map[int]int, numFreeSv) // state index -> column
	for k, sv := range cond.FreeStatevarIndices {
		svCol[sv] = numFreeMu + numStable + k
	}

	// per-phase condensation vectors, Sundman Eq. 44.
	cG := make([][]float64, numStable)
	cSV := make([][][]float64, numStable)
	cMu := make([][][]float64, numStable)
	for p, cp := range condensed {
		D := cp.PhaseDOF
		cG[p] = make([]float64, D)
		for i := 0; i < D; i++ {
			for j := 0; j < D; j++ {
				cG[p][i] -= cp.EMatrix[i][j] * cp.Grad[nsv+j]
			}
		}
		cSV[p] = make([][]float64, D)
		for i := 0; i < D; i++ {
			cSV[p][i] = make([]float64, nsv)
			for k := 0; k < nsv; k++ {
				for j := 0; j < D; j++ {
					cSV[p][i][k] -= cp.EMatrix[i][j] * cp.Hess[nsv+j][k]
				}
			}
		}
		cMu[p] = make([][]float64, len(cp.Masses))
		for c := range cp.Masses {
			cMu[p][c] = make([]float64, D)
			for i := 0; i < D; i++ {
				for j := 0; j < D; j++ {
					cMu[p][c][i] += cp.MassJac[c][nsv+j] * cp.EMatrix[i][j]
				}
			}
		}
	}

	A := make([][]float64, nRows)
	for i := range A {
		A[i] = make([]float64, nCols)
	}
	rhs := make([]float64, nRows)

	// phase rows
	for p, cp := range condensed {
		for comp, col := range muCol {
			A[p][col] = cp.Masses[comp]
		}
		A[p][numFreeMu+p] = 0
		for sv, col := range svCol {
			A[p][col] = -cp.Grad[sv]
		}
		rhs[p] = cp.Energy
		for _, comp := range cond.FixedChemPotIndices {
			rhs[p] -= cp.Masses[comp] * state.ChemicalPotentials[comp]
		}
	}

	// fixed-element rows
	for fc, comp := range cond.PrescribedElementIndices {
		row := numStable + fc
		for p, cp := range condensed {
			massJacRow := cp.MassJac[comp][nsv:]
			for col, colIdx := range muCol {
				sum := 0.0
				for j := 0; j < cp.PhaseDOF; j++ {
					sum += massJacRow[j] * cMu[p][col][j]
				}
				A[row][colIdx] += state.PhaseAmt[cp.Idx] * sum
			}
			A[row][numFreeMu+p] += cp.Masses[comp]
			for sv, col := range svCol {
				sum := 0.0
				for j := 0; j < cp.PhaseDOF; j++ {
					sum += massJacRow[j] * cSV[p][j][sv]
				}
				A[row][col] += state.PhaseAmt[cp.Idx] * sum
			}

			sumG := 0.0
			for j := 0; j < cp.PhaseDOF; j++ {
				sumG += massJacRow[j] * cG[p][j]
			}
			rhs[row] -= state.PhaseAmt[cp.Idx] * sumG

			for _, fixedComp := range cond.FixedChemPotIndices {
				sum := 0.0
				for j := 0; j < cp.PhaseDOF; j++ {
					sum += massJacRow[j] * cMu[p][fixedComp][j]
				}
				rhs[row] -= state.PhaseAmt[cp.Idx] * state.ChemicalPotentials[fixedComp] * sum
			}
		}
		rhs[row] -= state.CurrentElementalAmounts[comp] - cond.PrescribedElementalAmounts[fc]
	}

	// system-amount row: same structure, summed over all components.
	row := nRows - 1
	for p, cp := range condensed {
		totalMassJac := make([]float64, cp.PhaseDOF)
		totalMass := 0.0
		for comp := range cp.Masses {
			totalMass += cp.Masses[comp]
			for j := 0; j < cp.PhaseDOF; j++ {
				totalMassJac[j] += cp.MassJac[comp][nsv+j]
			}
		}
		for col, colIdx := range muCol {
			sum := 0.0
			for j := 0; j < cp.PhaseDOF; j++ {
				sum += totalMassJac[j] * cMu[p][col][j]
			}
			A[row][colIdx] += state.PhaseAmt[cp.Idx] * sum
		}
		A[row][numFreeMu+p] += totalMass
		for sv, col := range svCol {
			sum := 0.0
			for j := 0; j < cp.PhaseDOF; j++ {
				sum += totalMassJac[j] * cSV[p][j][sv]
			}
			A[row][col] += state.PhaseAmt[cp.Idx] * sum
		}
		sumG := 0.0
		for j := 0; j < cp.PhaseDOF; j++ {
			sumG += totalMassJac[j] * cG[p][j]
		}
		rhs[row] -= state.PhaseAmt[cp.Idx] * sumG
		for _, fixedComp := range cond.FixedChemPotIndices {
			sum := 0.0
			for j := 0; j < cp.PhaseDOF; j++ {
				sum += totalMassJac[j] * cMu[p][fixedComp][j]
			}
			rhs[row] -= state.PhaseAmt[cp.Idx] * state.ChemicalPotentials[fixedComp] * sum
		}
	}
	rhs[row] -= state.CurrentSystemAmount - cond.PrescribedSystemAmount

	massResidual := 0.0
	for fc, comp := range cond.PrescribedElementIndices {
		d := state.CurrentElementalAmounts[comp] - cond.PrescribedElementalAmounts[fc]
		denom := cond.PrescribedElementalAmounts[fc]
		if denom == 0 {
			denom = 1
		}
		massResidual += absf(d / denom)
	}
	massResidual += absf(state.CurrentSystemAmount - cond.PrescribedSystemAmount)

	rankTol := maxAbsMatrix(A) * phase.LeastSquaresRankTol
	B := make([][]float64, nRows)
	for i := range B {
		B[i] = []float64{rhs[i]}
	}
	X, rank, err := linalg.LeastSquares(A, B, rankTol)
	if err != nil {
		return nil, err
	}
	solution := make([]float64, nCols)
	for i := 0; i < nCols; i++ {
		solution[i] = X[i][0]
	}

	return &GlobalSystemResult{
		Solution:     solution,
		MassResidual: massResidual,
		Rank:         rank,
	}, nil
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func maxAbsMatrix(a [][]float64) float64 {
	m := 0.0
	for _, row := range a {
		for _, v := range row {
			if absf(v) > m {
				m = absf(v)
			}
		}
	}
	if m == 0 {
		return 1
	}
	return m
}
