// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

import "github.com/cpmech/gosl/chk"

// ErrorKind classifies the fatal error taxonomy of the solver. NonConverged
// is deliberately absent: running out of iterations is a data signal
// carried in Solution.Converged, not an error.
type ErrorKind int

const (
	// ErrKindGibbsRule marks a violation of the Gibbs phase rule square
	// system invariant (|free chempots| + |free statevars| ==
	// |prescribed elements| + 1).
	ErrKindGibbsRule ErrorKind = iota + 1

	// ErrKindSingularPhaseMatrix marks a per-phase KKT matrix that could
	// not be inverted (degenerate internal constraints).
	ErrKindSingularPhaseMatrix

	// ErrKindNumericDomainFault marks a NaN/Inf returned by an Evaluator.
	ErrKindNumericDomainFault
)

// SolverError wraps the fatal error taxonomy with the offending compset
// index, when applicable, so callers can inspect Kind without string
// matching.
type SolverError struct {
	Kind    ErrorKind
	CsIndex int // -1 when not associated with a specific composition set
	err     error
}

func (e *SolverError) Error() string { return e.err.Error() }
func (e *SolverError) Unwrap() error { return e.err }

// ErrGibbsRuleViolation builds a SolverError for a phase-rule mismatch.
func ErrGibbsRuleViolation(nEqs, nUnknowns int) error {
	return &SolverError{
		Kind:    ErrKindGibbsRule,
		CsIndex: -1,
		err:     chk.Err("conditions violate the Gibbs phase rule: %d equations vs %d unknowns; the global system must be square", nEqs, nUnknowns),
	}
}

// ErrSingularPhaseMatrix builds a SolverError for an unfactorable KKT
// matrix belonging to composition set csIndex.
func ErrSingularPhaseMatrix(csIndex, rank, size int) error {
	return &SolverError{
		Kind:    ErrKindSingularPhaseMatrix,
		CsIndex: csIndex,
		err:     chk.Err("compset %d: phase_matrix is singular (rank=%d of %d); degenerate internal constraints", csIndex, rank, size),
	}
}

// ErrNumericDomainFault builds a SolverError for a NaN/Inf produced by an
// Evaluator during internal-DOF update.
func ErrNumericDomainFault(csIndex int, what string) error {
	return &SolverError{
		Kind:    ErrKindNumericDomainFault,
		CsIndex: csIndex,
		err:     chk.Err("compset %d: %s returned a NaN/Inf value", csIndex, what),
	}
}
