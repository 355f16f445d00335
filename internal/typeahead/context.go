// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package typeahead

// Context carries per-query state: the source user, a snapshot of its
// 1-hop adjacency taken at creation time, the query deadline, and the
// target Collector. Context is strictly query-local.
//
// CreateContext snapshots the 1-hop adjacency of uid once; later
// mutations to the AdjacencyStore for uid are never reflected in a
// Context already created. This is intentional: a query must see a
// consistent neighborhood for the duration of its traversal.
type Context struct {
	Source              int64
	ConnectionIDs       []int64
	ConnectionStrengths []int
	TimeoutMillis       int64
	Collector           Collector
}

// HasAdjacency reports whether this Context carries a 1-hop adjacency
// snapshot. searchNetwork falls back to a plain 1-hop search when false.
func (c *Context) HasAdjacency() bool {
	return c.ConnectionIDs != nil
}

// CreateContext snapshots uid's 1-hop adjacency from the engine's
// AdjacencyStore. If uid has no adjacency record, the returned Context
// carries no ConnectionIDs and HasAdjacency reports false.
func (e *Engine) CreateContext(uid int64) (*Context, error) {
	ctx := &Context{Source: uid, TimeoutMillis: noDeadline}

	if !e.adjacency.HasIndex(uid) {
		return ctx, nil
	}

	targets, weights, err := e.adjacency.WeightData(uid)
	if err != nil {
		return ctx, err
	}

	ctx.ConnectionIDs = targets
	ctx.ConnectionStrengths = weights
	return ctx, nil
}
