// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

// Evaluator is the PhaseEvaluator capability set (§6): the thermodynamic
// model of one candidate phase. All output buffers are caller-owned and
// overwritten; implementations must not retain references to them.
//
// Let S be the number of state variables and D = PhaseDOF(). Every dof vector x passed to
// these methods has length S+D: state variables concatenated with the
// phase's internal degrees of freedom (site fractions).
type Evaluator interface {
	// Obj computes the molar Gibbs energy of the phase at dof vector x.
	Obj(x []float64) float64

	// Grad fills out (length S+D) with the gradient of Obj at x.
	Grad(out, x []float64)

	// Hess fills out (S+D x S+D, symmetric) with the Hessian of Obj at x.
	Hess(out [][]float64, x []float64)

	// MassObj returns the moles of component c per mole of phase formula
	// unit, at dof vector x.
	MassObj(x []float64, c int) float64

	// MassGrad fills out (length S+D) with the gradient of MassObj(x,c)
	// with respect to x.
	MassGrad(out, x []float64, c int)

	// InternalConsFunc fills out (length K = NumInternalCons()) with the
	// internal equality constraint residuals at x.
	InternalConsFunc(out, x []float64)

	// InternalConsJac fills out (K x S+D) with the Jacobian of
	// InternalConsFunc at x.
	InternalConsJac(out [][]float64, x []float64)

	// PhaseDOF returns D, the number of internal degrees of freedom.
	PhaseDOF() int

	// NumInternalCons returns K, the number of internal equality
	// constraints.
	NumInternalCons() int
}
