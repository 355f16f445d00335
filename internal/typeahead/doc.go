// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package typeahead implements a weighted network typeahead engine.
//
// Given a querying user (a source vertex in a social/affinity graph) and a
// list of prefix terms, Engine.SearchNetwork returns the top-scoring elements
// reachable within the user's first- and second-degree neighborhood that
// match the terms. Each neighbor edge carries a numeric connection
// strength; the score of a candidate element combines a pluggable term
// selector's score with the strength of the path that reached it.
//
// # Architecture
//
//	terms ──▶ Selector + queryMask
//	(uid, ctx) ──▶ AdjacencyStore ──▶ WeightIterator ──▶ FilterStore check ──▶ ElementStore fetch ──▶ Selector ──▶ Collector
//
// The two-hop walk repeats the inner chain for every 1-hop neighbor,
// propagating strength through a WeightAdjuster.
//
// # Concurrency
//
// Multiple query goroutines read concurrently. Writes are serialized per
// store: indexing holds one lock for element writes and a distinct lock for
// connection writes, so a query reader may run concurrently with a writer
// on the other store. See Engine.IndexElement and Engine.IndexConnection.
package typeahead
