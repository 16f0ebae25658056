// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import "math"

// SolveKKT solves the square KKT system matrix·[δy;λ] = rhs of §4.1 and, in
// the same factorization, extracts the top-left phaseDOF×phaseDOF block of
// inv(matrix) — the E-matrix of §4.1/§9 — by solving matrix·X = [I;0]
// alongside rhs (Design Notes §9: "solve K·X = [I; 0] to obtain the
// top-left block of K⁻¹ directly", avoiding a full matrix inversion).
//
// solution has length len(matrix); solution[:phaseDOF] is δy and the rest
// is λ. eMatrix is phaseDOF×phaseDOF. rank is the effective rank found by
// the underlying least-squares factorization; rank < len(matrix) means
// matrix is singular and the caller should treat this as fatal
// (phase.ErrSingularPhaseMatrix).
func SolveKKT(matrix [][]float64, rhs []float64, phaseDOF int) (solution []float64, eMatrix [][]float64, rank int, err error) {
	n := len(matrix)

	rhsMax := 0.0
	for _, row := range matrix {
		for _, v := range row {
			if math.Abs(v) > rhsMax {
				rhsMax = math.Abs(v)
			}
		}
	}
	if rhsMax == 0 {
		rhsMax = 1
	}
	tau := rhsMax * 1e-13

	b := make([][]float64, n)
	for i := 0; i < n; i++ {
		b[i] = make([]float64, 1+phaseDOF)
		b[i][0] = rhs[i]
		if i < phaseDOF {
			b[i][1+i] = 1
		}
	}

	x, rank, err := LeastSquares(matrix, b, tau)
	if err != nil {
		return nil, nil, 0, err
	}

	solution = make([]float64, n)
	eMatrix = make([][]float64, phaseDOF)
	for i := 0; i < n; i++ {
		solution[i] = x[i][0]
		if i < phaseDOF {
			eMatrix[i] = make([]float64, phaseDOF)
			copy(eMatrix[i], x[i][1:1+phaseDOF])
		}
	}
	return solution, eMatrix, rank, nil
}
