// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package connfilter provides typeahead.ConnectionFilter implementations
// consulted by the Index Executor before a connection write is applied.
package connfilter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/netgraph/typeahead/internal/typeahead"
)

// AllowAll is a ConnectionFilter that accepts every connection. It is the
// filter an Engine gets when none is configured.
type AllowAll struct{}

func (AllowAll) Accept(typeahead.Connection) bool { return true }

// Expr is a ConnectionFilter compiled from an expr-lang boolean expression,
// evaluated against the connection's fields. It lets deployments reject,
// say, self-connections or below-threshold strengths without a recompile.
type Expr struct {
	program *vm.Program
}

// NewExpr compiles rule into an Expr filter.
func NewExpr(rule string) (*Expr, error) {
	program, err := expr.Compile(rule, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("connfilter: compiling rule: %w", err)
	}
	return &Expr{program: program}, nil
}

func (f *Expr) Accept(c typeahead.Connection) bool {
	env := map[string]any{
		"source":    c.Source,
		"target":    c.Target,
		"strength":  c.Strength,
		"timestamp": c.Timestamp,
		"active":    c.Active,
	}
	result, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}
	return result.(bool)
}
