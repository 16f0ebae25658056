// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// h1/h2 are a Go transliteration of curioloop-optimizer/slsqp's
// Householder step (renamed locals, same index arithmetic); see
// DESIGN.md for provenance.

// Package linalg provides the small dense linear-algebra kernels the
// equilibrium core needs: a square solve that also extracts a block of the
// matrix inverse (used to condense a phase's KKT system into its E-matrix,
// §4.1 / §9), and a rank-revealing least-squares solve (used to assemble
// and solve the global system, §4.2).
//
// The retrieved corpus's dominant numerical dependency (gosl/la) exposes
// dense vector/matrix allocation (MatAlloc, VecFill, ...) and a sparse
// direct-solver wrapper (Triplet/CCMatrix/GetSolver) built for large FEM
// stiffness systems; it has no dense factorization or SVD entry point in
// the retrieved sources. The per-phase and per-iteration systems here are
// small and dense (sized by phase_dof and by the handful of free
// conditions), so — the way a material-point return-mapping model computes
// its own local tangent directly instead of calling the sparse solver —
// this package implements the factorization itself. The rank-revealing
// least-squares kernel below is adapted from the Householder Forward
// Triangulation with column Interchanges (HFTI) algorithm of
// Lawson & Hanson, "Solving Least Squares Problems" (1974/1995), following
// the Go port in curioloop-optimizer/slsqp — the only least-squares-with-
// explicit-rank-tolerance implementation in the retrieved corpus, and
// exactly the algorithm family (SLSQP's HFTI/LSEI stack) that CALPHAD-style
// equilibrium solvers use for their rcond-guarded pseudo-inverse fallback.
package linalg

import "math"

const eps = float64(7)/3 - float64(4)/3 - 1

// h1 builds the m-length Householder vector/scalar pair that zeroes out
// v[l:m] below pivot row p, operating on v with element stride ive. On
// return v holds the transformed vector and up is the pivot element of the
// Householder vector (kept out-of-band the way LINPACK-family routines do,
// so the pivot itself can still be read back from v[p] as the new value).
func h1(p, l, m int, v []float64, ive int) (up float64) {
	if p < 0 || p >= l || l >= m {
		return
	}
	lp, l1, lm := p*ive, l*ive, (m-1)*ive

	maxAbs := math.Abs(v[lp])
	for j := l1; j <= lm; j += ive {
		maxAbs = math.Max(math.Abs(v[j]), maxAbs)
	}
	if maxAbs <= 0 {
		return
	}

	inv := 1 / maxAbs
	sumSq := (v[lp] * inv) * (v[lp] * inv)
	for j := l1; j <= lm; j += ive {
		sumSq += (v[j] * inv) * (v[j] * inv)
	}

	s := maxAbs * math.Sqrt(sumSq)
	if v[lp] > 0 {
		s = -s
	}
	up = v[lp] - s
	v[lp] = s
	return
}

// h2 applies the Householder transformation defined by (p,l,m,u,up) to the
// ncv column vectors packed in c (element stride ice, vector stride icv).
func h2(p, l, m int, u []float64, iue int, up float64, c []float64, ice, icv, ncv int) {
	if p < 0 || p >= l || l >= m || ncv <= 0 {
		return
	}
	b := u[p*iue] * up
	if b >= 0 {
		return
	}
	b = 1 / b

	l1, lm := l*iue, (m-1)*iue
	base := ice * p
	last := base + icv*(ncv-1)
	for j := base; j <= last; j += icv {
		c1, cm := j+ice*(l-p), j+ice*(l-p)+(m-l-1)*ice
		sum := c[j] * up
		for iu, ic := l1, c1; iu <= lm && ic <= cm; {
			sum += c[ic] * u[iu]
			ic += ice
			iu += iue
		}
		if sum != 0 {
			sum *= b
			c[j] += sum * up
			for iu, ic := l1, c1; iu <= lm && ic <= cm; {
				c[ic] += sum * u[iu]
				ic += ice
				iu += iue
			}
		}
	}
}

func fillZero(v []float64) {
	for i := range v {
		v[i] = 0
	}
}
