// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package sqlstore

import (
	"context"
	"time"

	"github.com/netgraph/typeahead/pkg/log"
)

type ctxKey string

const ctxKeyBegin ctxKey = "begin"

// Hooks satisfies sqlhooks.Hooks: it logs every statement at debug level
// along with its elapsed time.
type Hooks struct{}

func (h *Hooks) Before(ctx context.Context, query string, args ...interface{}) (context.Context, error) {
	log.Debugf("sqlstore: query %s %q", query, args)
	return context.WithValue(ctx, ctxKeyBegin, time.Now()), nil
}

func (h *Hooks) After(ctx context.Context, query string, args ...interface{}) (context.Context, error) {
	if begin, ok := ctx.Value(ctxKeyBegin).(time.Time); ok {
		log.Debugf("sqlstore: took %s", time.Since(begin))
	}
	return ctx, nil
}
