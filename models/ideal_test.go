// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package models

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func TestIdealSolutionDerivs(tst *testing.T) {
	chk.PrintTitle("ideal solution: grad and Hess vs finite differences")

	mdl := &IdealSolution{G0A: -5000, G0B: -3000}
	x := []float64{1000, 0.7, 0.3}

	var g [3]float64
	mdl.Grad(g[:], x)
	for i := 0; i < 3; i++ {
		ii := i
		chk.DerivScaSca(tst, io.Sf("dG/dx%d", ii), 1e-6, g[ii], x[ii], 1e-3, chk.Verbose, func(xi float64) (float64, error) {
			xx := []float64{x[0], x[1], x[2]}
			xx[ii] = xi
			return mdl.Obj(xx), nil
		})
	}

	var h [3][3]float64
	hh := [][]float64{h[0][:], h[1][:], h[2][:]}
	mdl.Hess(hh, x)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			ii, jj := i, j
			chk.DerivScaSca(tst, io.Sf("d2G/dx%d dx%d", ii, jj), 1e-4, hh[ii][jj], x[jj], 1e-3, chk.Verbose, func(xj float64) (float64, error) {
				xx := []float64{x[0], x[1], x[2]}
				xx[jj] = xj
				var gg [3]float64
				mdl.Grad(gg[:], xx)
				return gg[ii], nil
			})
		}
	}
}

func TestIdealSolutionMassGrad(tst *testing.T) {
	chk.PrintTitle("ideal solution: mass_grad vs finite differences")

	mdl := &IdealSolution{G0A: -5000, G0B: -3000}
	x := []float64{1000, 0.7, 0.3}

	for c := 0; c < 2; c++ {
		cc := c
		var g [3]float64
		mdl.MassGrad(g[:], x, cc)
		for i := 0; i < 3; i++ {
			ii := i
			chk.DerivScaSca(tst, io.Sf("dm%d/dx%d", cc, ii), 1e-9, g[ii], x[ii], 1e-3, chk.Verbose, func(xi float64) (float64, error) {
				xx := []float64{x[0], x[1], x[2]}
				xx[ii] = xi
				return mdl.MassObj(xx, cc), nil
			})
		}
	}
}

func TestIdealSolutionChemPot(tst *testing.T) {
	chk.PrintTitle("ideal solution: chemical potential closed form")

	G0A, G0B := -5000.0, -3000.0
	T := 1000.0
	xB := 0.3
	mdl := &IdealSolution{G0A: G0A, G0B: G0B}

	x := []float64{T, 1 - xB, xB}
	var g [3]float64
	mdl.Grad(g[:], x)

	// mu_i = G + dG/dy_i - sum_j y_j dG/dy_j for site fractions summing to 1.
	G := mdl.Obj(x)
	sumYG := x[1]*g[1] + x[2]*g[2]

	muA := G0A + R*T*math.Log(1-xB)
	muB := G0B + R*T*math.Log(xB)
	chk.Float64(tst, "mu_A", 1e-8, G+g[1]-sumYG, muA)
	chk.Float64(tst, "mu_B", 1e-8, G+g[2]-sumYG, muB)
}
