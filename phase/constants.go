// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package phase defines the data model shared by the equilibrium solver:
// the PhaseEvaluator capability set, composition sets, condition sets and
// the numeric constants and error taxonomy the solver is built around.
package phase

// numeric constants that must match exactly between this solver and the
// domain (thermodynamic) model that supplies Evaluator implementations.
const (
	// MinSiteFraction is the strictly positive floor internal site
	// fractions are clipped to. Phase amounts are clipped to [0,1]
	// instead; for them it is the threshold above which a compset
	// counts as active.
	MinSiteFraction = 1e-12

	// MaxOuterIterations bounds the SolverDriver loop.
	MaxOuterIterations = 100

	// MassResidualTol is the feasibility threshold on the global mass
	// balance / system-amount residual.
	MassResidualTol = 1e-5

	// InternalConsResidualTol is the feasibility threshold on the maximum
	// absolute internal-constraint residual across all composition sets.
	InternalConsResidualTol = 1e-10

	// InternalDofChangeTol gates convergence on internal DOF movement.
	InternalDofChangeTol = 1e-11

	// PhaseAmtChangeTol gates convergence on phase-amount movement.
	PhaseAmtChangeTol = 1e-10

	// StatevarChangeTol gates convergence on the largest relative change
	// among chemical potentials and state variables. Deliberately loose
	// (10%) because state variables are driven by conditions, not
	// optimised independently.
	StatevarChangeTol = 1e-1

	// DrivingForceAdmitTol is the threshold above which a metastable
	// phase is admitted to the active (stable) set.
	DrivingForceAdmitTol = -1e-5

	// LeastSquaresRankTol is the rank-revealing tolerance used by the
	// global system's least-squares solve.
	LeastSquaresRankTol = 1e-21
)
