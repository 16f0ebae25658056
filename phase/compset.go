// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

// CompositionSet bundles an Evaluator with the mutable per-phase state the
// solver iterates on: the dof vector (state variables concatenated with
// internal degrees of freedom) and the phase amount NP. Composition sets
// are created by the caller and passed in to FindSolution; the solver only
// mutates DOF and NP, and on return their final state is part of the
// solution (§3, Lifecycle).
type CompositionSet struct {
	Eval Evaluator
	DOF  []float64 // length NumStatevars + Eval.PhaseDOF()
	NP   float64   // phase amount, clipped to [0,1]

	scratch *Scratch
}

// NewCompositionSet creates a CompositionSet for eval with initial dof
// vector dof (length nsv+phaseDOF) and initial phase amount np. It also
// allocates the pooled Scratch buffers sized to eval's dimensions; the
// system has nComponents chemical components in total.
func NewCompositionSet(eval Evaluator, nsv, nComponents int, dof []float64, np float64) *CompositionSet {
	d := make([]float64, len(dof))
	copy(d, dof)
	return &CompositionSet{
		Eval:    eval,
		DOF:     d,
		NP:      np,
		scratch: NewScratch(nsv, eval.PhaseDOF(), eval.NumInternalCons(), nComponents),
	}
}

// Scratch returns the pooled per-iteration buffers for this composition
// set, allocated once at construction and reused (zeroed via Reset)
// thereafter.
func (o *CompositionSet) Scratch() *Scratch { return o.scratch }

// InternalDOF returns the internal-DOF slice (site fractions), i.e. DOF
// with the leading nsv state-variable entries stripped.
func (o *CompositionSet) InternalDOF(nsv int) []float64 { return o.DOF[nsv:] }

// ClipAmount clamps NP to [0,1], the invariant of §3.
func (o *CompositionSet) ClipAmount() {
	if o.NP < 0 {
		o.NP = 0
	}
	if o.NP > 1 {
		o.NP = 1
	}
}
