// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package selector provides typeahead.Selector implementations: a literal
// prefix matcher good enough to run the engine out of the box, and an
// expr-lang backed matcher for deployments that want configurable term
// rules without a recompile.
package selector

import (
	"strings"

	"github.com/netgraph/typeahead/internal/typeahead"
)

// Prefix is the default Selector: an element matches if at least one query
// term is a case-insensitive prefix of at least one of the element's own
// terms.
// Its Score is the count of query terms that matched, so a query hitting
// more of an element's terms outranks one that barely qualified.
type Prefix struct{}

func (Prefix) Select(elem typeahead.Element, sctx *typeahead.SelectorContext) bool {
	elemTerms := elem.Terms()
	if len(elemTerms) == 0 || len(sctx.Terms) == 0 {
		return false
	}

	matched := 0
	for _, qt := range sctx.Terms {
		if qt == "" {
			continue
		}
		for _, et := range elemTerms {
			if hasPrefixFold(et, qt) {
				matched++
				break
			}
		}
	}

	if matched == 0 {
		return false
	}
	sctx.Score = float64(matched)
	return true
}

func hasPrefixFold(s, prefix string) bool {
	if len(prefix) > len(s) {
		return false
	}
	return strings.EqualFold(s[:len(prefix)], prefix)
}
