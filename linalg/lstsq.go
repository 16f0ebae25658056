// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// LeastSquares/hfti are a Go transliteration of curioloop-optimizer/
// slsqp's HFTI solver (renamed locals, same index arithmetic); see
// DESIGN.md for provenance.

package linalg

import "math"

// LeastSquares solves the (possibly rank-deficient or non-square) linear
// least-squares problem A·X ≅ B in the minimum-2-norm sense, using
// Householder Forward Triangulation with column interchanges (HFTI). tau
// is the absolute tolerance below which a diagonal pivot is treated as
// zero when determining the effective (pseudo-)rank of A; the global
// system builder (§4.2) derives tau from LeastSquaresRankTol (1e-21)
// scaled by the largest absolute entry of A, matching the "rcond" convention
// spec.md calls for.
//
// A is m×n, B is m×nb; neither is modified — both are copied into a scratch
// buffer before factorization. The returned X is n×nb. rank is the
// effective (pseudo-)rank of A; callers should treat rank < min(m,n) as a
// signal worth logging (§9: "log rank deficiency rather than silently
// absorbing it") rather than an error — HFTI's minimum-length solution
// remains well defined regardless of rank.
func LeastSquares(A [][]float64, B [][]float64, tau float64) (X [][]float64, rank int, err error) {
	m := len(A)
	n := 0
	if m > 0 {
		n = len(A[0])
	}
	nb := 0
	if len(B) > 0 {
		nb = len(B[0])
	}
	if len(B) != m {
		return nil, 0, errShapeMismatch("LeastSquares", m, len(B))
	}

	a := flattenColMajor(A, m, n)
	// b needs max(m,n) rows: it holds the m-row right-hand side on entry
	// and the n-row solution on return.
	ldb := max(m, n)
	b := make([]float64, ldb*nb)
	for j := 0; j < nb; j++ {
		for i := 0; i < m; i++ {
			b[i+ldb*j] = B[i][j]
		}
	}

	diag := min(m, n)
	h := make([]float64, max(n, diag))
	g := make([]float64, diag)
	ip := make([]int, diag)
	norm := make([]float64, max(nb, 1))

	rank = hfti(a, m, m, n, b, ldb, nb, tau, norm, h, g, ip)

	X = unflattenColMajor(b, ldb, n, nb)
	return X, rank, nil
}

// hfti is the direct Go translation (renamed locals, same index arithmetic)
// of the Lawson & Hanson HFTI subroutine as ported by
// curioloop-optimizer/slsqp — see the package doc for provenance. a is
// m×n stored column-major with leading dimension mda; b is m×nb stored
// column-major with leading dimension mdb and holds the n×nb solution on
// return (only the first n rows of each column are meaningful).
func hfti(a []float64, mda, m, n int, b []float64, mdb, nb int, tau float64, norm, h, g []float64, ip []int) int {
	diag := min(m, n)
	if diag <= 0 {
		return 0
	}
	const factor = 0.001

	hmax := 0.0
	for j := 0; j < diag; j++ {
		lmax := j
		if j > 0 {
			best := math.Inf(-1)
			for l := j; l < n; l++ {
				t := a[(j-1)+mda*l]
				h[l] -= t * t
				if h[l] > best {
					lmax, best = l, h[l]
				}
			}
		}
		if j == 0 || factor*h[lmax] < hmax*eps {
			best := math.Inf(-1)
			for l := j; l < n; l++ {
				sum := 0.0
				for _, t := range a[j+mda*l : m+mda*l] {
					sum += t * t
				}
				h[l] = sum
				if sum > best {
					lmax, best = l, sum
				}
			}
			hmax = h[lmax]
		}

		ip[j] = lmax
		if ip[j] != j {
			c1, c2 := a[mda*j:mda*j+m], a[mda*lmax:mda*lmax+m]
			for i := 0; i < m; i++ {
				c1[i], c2[i] = c2[i], c1[i]
			}
			h[lmax] = h[j]
		}

		i := min(j+1, n-1)
		h[j] = h1(j, j+1, m, a[mda*j:], 1)
		h2(j, j+1, m, a[mda*j:], 1, h[j], a[mda*i:], 1, mda, n-j-1)
		h2(j, j+1, m, a[mda*j:], 1, h[j], b, 1, mdb, nb)
	}

	k := diag
	for j := 0; j < diag; j++ {
		if math.Abs(a[j+mda*j]) <= tau {
			k = j
			break
		}
	}

	for jb := 0; jb < nb; jb++ {
		sum := 0.0
		if k < m {
			for _, t := range b[mdb*jb+k : mdb*jb+m] {
				sum += t * t
			}
		}
		norm[jb] = math.Sqrt(sum)
	}

	if k > 0 {
		if k < n {
			for i := k - 1; i >= 0; i-- {
				g[i] = h1(i, k, n, a[i:], mda)
				h2(i, k, n, a[i:], mda, g[i], a, mda, 1, i)
			}
		}
		for jb := 0; jb < nb; jb++ {
			cb := b[mdb*jb:]
			for i := k - 1; i >= 0; i-- {
				sum := 0.0
				for j := i + 1; j < k; j++ {
					sum += a[i+mda*j] * cb[j]
				}
				cb[i] = (cb[i] - sum) / a[i+mda*i]
			}
			if k < n {
				fillZero(cb[k:n])
				for i := 0; i < k; i++ {
					h2(i, k, n, a[i:], mda, g[i], cb, 1, mdb, 1)
				}
			}
			for j := diag - 1; j >= 0; j-- {
				if l := ip[j]; l != j {
					cb[l], cb[j] = cb[j], cb[l]
				}
			}
		}
	} else if nb > 0 {
		for jb := 0; jb < nb; jb++ {
			fillZero(b[mdb*jb : mdb*jb+n])
		}
	}

	return k
}

func flattenColMajor(m [][]float64, rows, cols int) []float64 {
	flat := make([]float64, rows*cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			flat[i+rows*j] = m[i][j]
		}
	}
	return flat
}

// unflattenColMajor reads back the top n rows of each of nb columns from a
// flat buffer with leading dimension ld, returning an n x nb matrix.
func unflattenColMajor(flat []float64, ld, n, nb int) [][]float64 {
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, nb)
		for j := 0; j < nb; j++ {
			out[i][j] = flat[i+ld*j]
		}
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
