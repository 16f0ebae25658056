// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestConditionSetValidateOk(tst *testing.T) {
	chk.PrintTitle("condition set: Gibbs rule satisfied")

	cond := &ConditionSet{
		FreeChemPotIndices:        []int{0, 1},
		PrescribedElementIndices:  []int{0},
		PrescribedElementalAmounts: []float64{0.3},
	}
	if err := cond.Validate(); err != nil {
		tst.Errorf("Validate failed unexpectedly: %v\n", err)
	}
}

func TestConditionSetValidateViolation(tst *testing.T) {
	chk.PrintTitle("condition set: Gibbs rule violated (degenerate)")

	// both chempots AND both elemental amounts imposed: classic over-
	// determined degenerate case from the seed scenarios.
	cond := &ConditionSet{
		FreeChemPotIndices:        []int{0, 1},
		PrescribedElementIndices:  []int{0, 1},
		PrescribedElementalAmounts: []float64{0.7, 0.3},
	}
	err := cond.Validate()
	if err == nil {
		tst.Errorf("expected ErrGibbsRuleViolation, got nil\n")
	}
}
