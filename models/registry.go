// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package models supplies concrete phase.Evaluator implementations —
// binary ideal and regular solution models with closed-form gradients
// and Hessians — used to exercise and test the equilibrium solver core.
package models

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gophaseq/phase"
)

// R is the molar gas constant, J/(mol·K).
const R = 8.3144598

// New returns a new, uninitialised Evaluator registered under name.
func New(name string) (phase.Evaluator, error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'models' database", name)
	}
	return allocator(), nil
}

// allocators holds all available phase models; model name => allocator.
var allocators = map[string]func() phase.Evaluator{}

// initer is implemented by models that take named parameters, mirroring
// mdl/solid.Model.Init.
type initer interface {
	Init(prms fun.Prms) error
}

// Init initialises a registered model's parameters in place, returning an
// error if m does not implement initer. Parameter names a model does not
// recognise are ignored.
func Init(m phase.Evaluator, prms fun.Prms) error {
	o, ok := m.(initer)
	if !ok {
		return chk.Err("model %T does not accept parameters", m)
	}
	return o.Init(prms)
}
