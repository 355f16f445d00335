// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package selector

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/netgraph/typeahead/internal/typeahead"
)

// Rule is the JSON-friendly description of an expr-lang Selector. Match is
// a boolean expression evaluated against element/query; Score, if set, is a
// numeric expression evaluated only when Match holds and becomes the
// SelectorContext's Score. An empty Score defaults to 1.0 on match.
type Rule struct {
	Name  string `json:"name"`
	Match string `json:"match"`
	Score string `json:"score"`
}

// Expr is a Selector whose admission and scoring logic is compiled from a
// Rule at construction time, the same way connfilter.Expr compiles its
// admission rule: expr.Compile once, expr.Run per candidate.
type Expr struct {
	match *vm.Program
	score *vm.Program
}

// NewExpr compiles r into an Expr selector. It returns an error if either
// expression fails to compile.
func NewExpr(r Rule) (*Expr, error) {
	match, err := expr.Compile(r.Match, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("selector: compiling match expression %q: %w", r.Name, err)
	}

	e := &Expr{match: match}
	if r.Score != "" {
		score, err := expr.Compile(r.Score, expr.AsFloat64())
		if err != nil {
			return nil, fmt.Errorf("selector: compiling score expression %q: %w", r.Name, err)
		}
		e.score = score
	}
	return e, nil
}

func (e *Expr) Select(elem typeahead.Element, sctx *typeahead.SelectorContext) bool {
	env := map[string]any{
		"elementTerms": elem.Terms(),
		"elementScore": elem.Score(),
		"queryTerms":   sctx.Terms,
	}

	matched, err := expr.Run(e.match, env)
	if err != nil || !matched.(bool) {
		return false
	}

	if e.score == nil {
		sctx.Score = 1.0
		return true
	}

	value, err := expr.Run(e.score, env)
	if err != nil {
		return false
	}
	sctx.Score = value.(float64)
	return true
}
