// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package models

import (
	"math"

	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gophaseq/phase"
)

// IdealSolution is a binary (A-B) ideal-solution phase.Evaluator over a
// single substitutional sublattice. State variables are x = [T]; internal
// DOF are the two site fractions y = [y_A, y_B] with the single
// constraint y_A + y_B = 1.
//
// G(x) = y_A·G0_A + y_B·G0_B + R·T·(y_A·ln y_A + y_B·ln y_B)
type IdealSolution struct {
	G0A float64 // reference molar Gibbs energy of pure A
	G0B float64 // reference molar Gibbs energy of pure B
}

func init() {
	allocators["ideal-solution"] = func() phase.Evaluator { return &IdealSolution{} }
}

const phaseDOF = 2 // y_A, y_B
const numCons = 1  // y_A + y_B = 1

// Init sets G0A/G0B from named parameters "G0A", "G0B".
func (o *IdealSolution) Init(prms fun.Prms) error {
	for _, p := range prms {
		switch p.N {
		case "G0A":
			o.G0A = p.V
		case "G0B":
			o.G0B = p.V
		}
	}
	return nil
}

func (o *IdealSolution) PhaseDOF() int        { return phaseDOF }
func (o *IdealSolution) NumInternalCons() int { return numCons }

func (o *IdealSolution) Obj(x []float64) float64 {
	T, yA, yB := x[0], x[1], x[2]
	return yA*o.G0A + yB*o.G0B + R*T*(xlnx(yA)+xlnx(yB))
}

func (o *IdealSolution) Grad(out, x []float64) {
	T, yA, yB := x[0], x[1], x[2]
	out[0] = R * (xlnx(yA) + xlnx(yB))
	out[1] = o.G0A + R*T*(math.Log(yA)+1)
	out[2] = o.G0B + R*T*(math.Log(yB)+1)
}

func (o *IdealSolution) Hess(out [][]float64, x []float64) {
	T, yA, yB := x[0], x[1], x[2]
	out[0][0] = 0
	out[0][1] = R * (math.Log(yA) + 1)
	out[0][2] = R * (math.Log(yB) + 1)
	out[1][0] = out[0][1]
	out[2][0] = out[0][2]
	out[1][1] = R * T / yA
	out[1][2] = 0
	out[2][1] = 0
	out[2][2] = R * T / yB
}

func (o *IdealSolution) MassObj(x []float64, c int) float64 {
	return x[1+c]
}

func (o *IdealSolution) MassGrad(out, x []float64, c int) {
	for i := range out {
		out[i] = 0
	}
	out[1+c] = 1
}

func (o *IdealSolution) InternalConsFunc(out, x []float64) {
	out[0] = x[1] + x[2] - 1
}

func (o *IdealSolution) InternalConsJac(out [][]float64, x []float64) {
	out[0][0] = 0
	out[0][1] = 1
	out[0][2] = 1
}

func xlnx(y float64) float64 {
	if y <= 0 {
		return 0
	}
	return y * math.Log(y)
}
