// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package equi implements the block-Newton equilibrium core: the
// per-phase KKT solve, the global linear system assembly and solve, the
// extraction of the global solution into state updates, the convergence
// gate, and the top-level SolverDriver that sequences them (§4, §4.5).
package equi

import (
	"math"

	"github.com/cpmech/gophaseq/linalg"
	"github.com/cpmech/gophaseq/phase"
)

// PhaseSystemResult holds the outcome of one PhaseSystemBuilder solve: the
// internal-DOF correction δy, the condensed E-matrix, the maximum absolute
// internal-constraint residual (the feasibility gauge of §4.1), and the
// Hessian/gradient/mass-Jacobian evaluated at the same dof — retained so
// the EquilibriumSystemBuilder can condense Sundman Eq. 44's c_G, c_sv,
// c_mu without re-evaluating the Evaluator at a different point.
type PhaseSystemResult struct {
	DeltaY     []float64
	EMatrix    [][]float64 // phase_dof x phase_dof
	MaxAbsCons float64

	Hess    [][]float64 // (S+D) x (S+D), at the pre-update dof
	Grad    []float64   // S+D, at the pre-update dof
	MassJac [][]float64 // nComponents x (S+D), at the pre-update dof
}

// PhaseSystemBuilder assembles and solves, for one composition set, the
// KKT system of §4.1:
//
//	[ H_yy   Jᵀ ] [ δy ] = [ -g_y - H_ys·δs + Σ_c μ_c·(∂m_c/∂y) ]
//	[ J      0  ] [ λ  ]   [ -c(y)                                ]
type PhaseSystemBuilder struct {
	NumStatevars int
}

// BuildPhaseSystem fills the phase's pooled Scratch with H, g, J, c(y),
// mass_jac and the assembled phase_matrix, builds the rhs, solves the
// system (storing the E-matrix in Scratch as well), and returns δy,
// the E-matrix and the feasibility gauge max|c(y)|. csIndex is used only
// to annotate a SingularPhaseMatrix error with the offending composition
// set.
func (o *PhaseSystemBuilder) BuildPhaseSystem(csIndex int, cs *phase.CompositionSet, deltaStatevars, chemicalPotentials []float64) (*PhaseSystemResult, error) {
	s := cs.Scratch()
	s.Reset()

	nsv := o.NumStatevars
	D := cs.Eval.PhaseDOF()
	K := cs.Eval.NumInternalCons()

	cs.Eval.Grad(s.Grad, cs.DOF)
	cs.Eval.Hess(s.Hess, cs.DOF)
	cs.Eval.InternalConsFunc(s.ConsVal, cs.DOF)
	cs.Eval.InternalConsJac(s.ConsJac, cs.DOF)
	for c := range chemicalPotentials {
		cs.Eval.MassGrad(s.MassJac[c], cs.DOF, c)
	}

	if err := checkFinite(csIndex, "gradient", s.Grad); err != nil {
		return nil, err
	}
	if err := checkFiniteMat(csIndex, "Hessian", s.Hess); err != nil {
		return nil, err
	}

	// H_yy (top-left D x D) and Jᵀ (top-right D x K); J (bottom-left K x D).
	for i := 0; i < D; i++ {
		for j := 0; j < D; j++ {
			s.PhaseMatrix[i][j] = s.Hess[nsv+i][nsv+j]
		}
		for k := 0; k < K; k++ {
			s.PhaseMatrix[i][D+k] = s.ConsJac[k][nsv+i]
			s.PhaseMatrix[D+k][i] = s.ConsJac[k][nsv+i]
		}
	}

	rhs := make([]float64, D+K)
	for i := 0; i < D; i++ {
		massTerm := 0.0
		for c := range chemicalPotentials {
			massTerm += chemicalPotentials[c] * s.MassJac[c][nsv+i]
		}
		hys := 0.0
		for k := 0; k < nsv; k++ {
			hys += s.Hess[nsv+i][k] * deltaStatevars[k]
		}
		rhs[i] = -s.Grad[nsv+i] - hys + massTerm
	}
	for k := 0; k < K; k++ {
		rhs[D+k] = -s.ConsVal[k]
	}

	maxAbsCons := 0.0
	for _, v := range s.ConsVal {
		if math.Abs(v) > maxAbsCons {
			maxAbsCons = math.Abs(v)
		}
	}

	solution, eMatrix, rank, err := linalg.SolveKKT(s.PhaseMatrix, rhs, D)
	if err != nil {
		return nil, err
	}
	if rank < D+K {
		return nil, phase.ErrSingularPhaseMatrix(csIndex, rank, D+K)
	}
	for i := range eMatrix {
		copy(s.EMatrix[i], eMatrix[i])
	}

	return &PhaseSystemResult{
		DeltaY:     solution[:D],
		EMatrix:    eMatrix,
		MaxAbsCons: maxAbsCons,
		Hess:       s.Hess,
		Grad:       s.Grad,
		MassJac:    s.MassJac,
	}, nil
}

func checkFinite(csIndex int, what string, v []float64) error {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return phase.ErrNumericDomainFault(csIndex, what)
		}
	}
	return nil
}

func checkFiniteMat(csIndex int, what string, m [][]float64) error {
	for _, row := range m {
		if err := checkFinite(csIndex, what, row); err != nil {
			return err
		}
	}
	return nil
}
