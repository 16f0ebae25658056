// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import "github.com/cpmech/gosl/chk"

func errShapeMismatch(op string, want, got int) error {
	return chk.Err("linalg: %s: matrix A has %d rows but B has %d", op, want, got)
}
