// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equi

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gophaseq/models"
	"github.com/cpmech/gophaseq/phase"
)

// TestBuildPhaseSystemSatisfiesConstraintRow checks the constraint rows of
// the per-phase KKT solve directly: since those rows are [J | 0]·[δy;λ] =
// -c(y), J·δy must equal -c(y) regardless of λ, independent of the
// stationarity rows' numeric values.
func TestBuildPhaseSystemSatisfiesConstraintRow(tst *testing.T) {
	chk.PrintTitle("phase system: J*delta_y == -c(y)")

	mdl := &models.IdealSolution{G0A: -5000, G0B: -3000}
	dof := []float64{1000, 0.7, 0.3}
	cs := phase.NewCompositionSet(mdl, 1, 2, dof, 1.0)

	b := &PhaseSystemBuilder{NumStatevars: 1}
	res, err := b.BuildPhaseSystem(0, cs, []float64{0}, []float64{0, 0})
	if err != nil {
		tst.Errorf("BuildPhaseSystem failed: %v\n", err)
		return
	}

	s := cs.Scratch()
	D := mdl.PhaseDOF()
	K := mdl.NumInternalCons()
	if len(res.DeltaY) != D {
		tst.Errorf("expected delta_y of length %d, got %d\n", D, len(res.DeltaY))
	}

	for k := 0; k < K; k++ {
		lhs := 0.0
		for j := 0; j < D; j++ {
			lhs += s.ConsJac[k][1+j] * res.DeltaY[j]
		}
		chk.Float64(tst, "J*delta_y + c(y)", 1e-8, lhs+s.ConsVal[k], 0)
	}
}

func TestBuildPhaseSystemFeasibleStartHasZeroMaxAbsCons(tst *testing.T) {
	chk.PrintTitle("phase system: max_abs_cons is zero when y already sums to 1")

	mdl := &models.IdealSolution{G0A: -5000, G0B: -3000}
	dof := []float64{1000, 0.6, 0.4}
	cs := phase.NewCompositionSet(mdl, 1, 2, dof, 1.0)

	b := &PhaseSystemBuilder{NumStatevars: 1}
	res, err := b.BuildPhaseSystem(0, cs, []float64{0}, []float64{0, 0})
	if err != nil {
		tst.Errorf("BuildPhaseSystem failed: %v\n", err)
		return
	}
	chk.Float64(tst, "max_abs_cons", 1e-12, res.MaxAbsCons, 0)
}

func TestBuildPhaseSystemSingularReportsError(tst *testing.T) {
	chk.PrintTitle("phase system: degenerate evaluator yields SingularPhaseMatrix")

	mdl := &zeroEvaluator{}
	dof := []float64{0, 0.5, 0.5}
	cs := phase.NewCompositionSet(mdl, 1, 2, dof, 1.0)

	b := &PhaseSystemBuilder{NumStatevars: 1}
	_, err := b.BuildPhaseSystem(0, cs, []float64{0}, []float64{0, 0})
	if err == nil {
		tst.Errorf("expected SingularPhaseMatrix error\n")
	}
}

// zeroEvaluator is a degenerate phase.Evaluator whose Hessian and
// constraint Jacobian are both identically zero, making the KKT matrix
// singular for any internal dof.
type zeroEvaluator struct{}

func (zeroEvaluator) Obj(x []float64) float64   { return 0 }
func (zeroEvaluator) Grad(out, x []float64)     {}
func (zeroEvaluator) Hess(out [][]float64, x []float64) {}
func (zeroEvaluator) MassObj(x []float64, c int) float64 { return x[1+c] }
func (zeroEvaluator) MassGrad(out, x []float64, c int) {
	for i := range out {
		out[i] = 0
	}
	out[1+c] = 1
}
func (zeroEvaluator) InternalConsFunc(out, x []float64)        {}
func (zeroEvaluator) InternalConsJac(out [][]float64, x []float64) {}
func (zeroEvaluator) PhaseDOF() int                            { return 2 }
func (zeroEvaluator) NumInternalCons() int                     { return 1 }
