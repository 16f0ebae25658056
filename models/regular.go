// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package models

import (
	"math"

	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gophaseq/phase"
)

// RegularSolution is a binary (A-B) regular-solution phase.Evaluator: an
// IdealSolution plus a symmetric interaction term Omega·y_A·y_B, capable
// of producing a miscibility gap (two-phase tie-lines) when Omega is
// large enough relative to R·T.
//
// G(x) = y_A·G0_A + y_B·G0_B + R·T·(y_A·ln y_A + y_B·ln y_B) + Ω·y_A·y_B
type RegularSolution struct {
	G0A   float64
	G0B   float64
	Omega float64
}

func init() {
	allocators["regular-solution"] = func() phase.Evaluator { return &RegularSolution{} }
}

// Init sets G0A/G0B/Omega from named parameters "G0A", "G0B", "Omega".
func (o *RegularSolution) Init(prms fun.Prms) error {
	for _, p := range prms {
		switch p.N {
		case "G0A":
			o.G0A = p.V
		case "G0B":
			o.G0B = p.V
		case "Omega":
			o.Omega = p.V
		}
	}
	return nil
}

func (o *RegularSolution) PhaseDOF() int        { return phaseDOF }
func (o *RegularSolution) NumInternalCons() int { return numCons }

func (o *RegularSolution) Obj(x []float64) float64 {
	T, yA, yB := x[0], x[1], x[2]
	return yA*o.G0A + yB*o.G0B + R*T*(xlnx(yA)+xlnx(yB)) + o.Omega*yA*yB
}

func (o *RegularSolution) Grad(out, x []float64) {
	T, yA, yB := x[0], x[1], x[2]
	out[0] = R * (xlnx(yA) + xlnx(yB))
	out[1] = o.G0A + R*T*(math.Log(yA)+1) + o.Omega*yB
	out[2] = o.G0B + R*T*(math.Log(yB)+1) + o.Omega*yA
}

func (o *RegularSolution) Hess(out [][]float64, x []float64) {
	T, yA, yB := x[0], x[1], x[2]
	out[0][0] = 0
	out[0][1] = R * (math.Log(yA) + 1)
	out[0][2] = R * (math.Log(yB) + 1)
	out[1][0] = out[0][1]
	out[2][0] = out[0][2]
	out[1][1] = R * T / yA
	out[1][2] = o.Omega
	out[2][1] = o.Omega
	out[2][2] = R * T / yB
}

func (o *RegularSolution) MassObj(x []float64, c int) float64 {
	return x[1+c]
}

func (o *RegularSolution) MassGrad(out, x []float64, c int) {
	for i := range out {
		out[i] = 0
	}
	out[1+c] = 1
}

func (o *RegularSolution) InternalConsFunc(out, x []float64) {
	out[0] = x[1] + x[2] - 1
}

func (o *RegularSolution) InternalConsJac(out [][]float64, x []float64) {
	out[0][0] = 0
	out[0][1] = 1
	out[0][2] = 1
}
