// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

import "github.com/cpmech/gosl/la"

// Scratch bundles the per-phase per-iteration buffers named in §5
// (Concurrency & Resource Model): phase_matrix, e_matrix, and the raw
// gradient/Hessian/mass-Jacobian/constraint buffers an Evaluator writes
// into. A CompositionSet owns one Scratch and reuses it across iterations;
// callers must Reset() it before each phase-system assembly so stale
// entries from a previous iteration never leak through.
type Scratch struct {
	nsv, phaseDOF, nCons, nComponents int

	Grad    []float64   // length S+D
	Hess    [][]float64 // (S+D) x (S+D)
	ConsVal []float64   // length K
	ConsJac [][]float64 // K x (S+D)

	// MassJac[c] is ∂m_c/∂(statevars⊕y), filled one component at a time
	// and retained for every component so the global system builder can
	// condense Σ_c μ_c·(∂m_c/∂y) (§4.1 RHS) and c_mu (§4.2) without
	// re-evaluating the Evaluator.
	MassJac [][]float64 // nComponents x (S+D)

	PhaseMatrix [][]float64 // (D+K) x (D+K) KKT matrix
	EMatrix     [][]float64 // D x D, top-left block of inv(PhaseMatrix)
}

// NewScratch allocates a Scratch sized for a phase with nsv state
// variables, phaseDOF internal DOF, nCons internal constraints and
// nComponents system components.
func NewScratch(nsv, phaseDOF, nCons, nComponents int) *Scratch {
	n := nsv + phaseDOF
	m := phaseDOF + nCons
	return &Scratch{
		nsv:         nsv,
		phaseDOF:    phaseDOF,
		nCons:       nCons,
		nComponents: nComponents,
		Grad:        make([]float64, n),
		Hess:        la.MatAlloc(n, n),
		ConsVal:     make([]float64, nCons),
		ConsJac:     la.MatAlloc(nCons, n),
		MassJac:     la.MatAlloc(nComponents, n),

		PhaseMatrix: la.MatAlloc(m, m),
		EMatrix:     la.MatAlloc(phaseDOF, phaseDOF),
	}
}

// Reset zeroes every buffer in place. Dimensions never change once a
// Scratch is allocated (a phase's phase_dof and num_internal_cons are
// fixed for the lifetime of a CompositionSet), so Reset never reallocates.
func (o *Scratch) Reset() {
	la.VecFill(o.Grad, 0)
	la.MatFill(o.Hess, 0)
	la.VecFill(o.ConsVal, 0)
	la.MatFill(o.ConsJac, 0)
	la.MatFill(o.MassJac, 0)
	la.MatFill(o.PhaseMatrix, 0)
	la.MatFill(o.EMatrix, 0)
}
