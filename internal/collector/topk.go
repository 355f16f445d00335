// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package collector provides typeahead.Collector implementations. The core
// engine treats the Collector as an external collaborator; this package
// supplies the one most callers actually want: a bounded top-K collector
// ordered by descending score.
package collector

import (
	"container/heap"

	"github.com/netgraph/typeahead/internal/typeahead"
)

// TopK is a typeahead.Collector that keeps the k highest-scoring hits seen,
// using a min-heap so that once full, admitting a new hit only costs
// replacing the current minimum. Score ties are broken by insertion order
// (first-seen wins), matching the Query Executor's own dedup rule.
//
// TopK is not safe for concurrent use; each query should construct its own.
type TopK struct {
	k    int
	h    minHeap
	seen int
}

// NewTopK builds a TopK collector bounded to k hits. k <= 0 means unbounded:
// CanStop never reports true and Hits returns every hit added, sorted the
// same way as for a bounded TopK (the heap is not used in that mode).
func NewTopK(k int) *TopK {
	return &TopK{k: k}
}

// New adapts NewTopK to typeahead.Config.NewCollector's factory signature.
func New(maxResults int) typeahead.Collector {
	return NewTopK(maxResults)
}

func (c *TopK) Add(elem typeahead.Element, score float64, sourceName string, proximity typeahead.Proximity) {
	hit := rankedHit{
		Hit: typeahead.Hit{
			Element:    elem,
			Score:      score,
			SourceName: sourceName,
			Proximity:  proximity,
		},
		order: c.seen,
	}
	c.seen++

	if c.k <= 0 {
		c.h = append(c.h, hit)
		return
	}
	if len(c.h) < c.k {
		heap.Push(&c.h, hit)
		return
	}
	if score > c.h[0].Score {
		c.h[0] = hit
		heap.Fix(&c.h, 0)
	}
}

// CanStop reports whether the collector has reached its bound. An
// unbounded TopK (k <= 0) never stops early.
func (c *TopK) CanStop() bool {
	return c.k > 0 && len(c.h) >= c.k
}

// Hits returns the accumulated hits sorted by descending score, ties
// broken by insertion order.
func (c *TopK) Hits() []typeahead.Hit {
	sorted := make([]rankedHit, len(c.h))
	copy(sorted, c.h)
	sortRanked(sorted)

	out := make([]typeahead.Hit, len(sorted))
	for i, r := range sorted {
		out[i] = r.Hit
	}
	return out
}

type rankedHit struct {
	typeahead.Hit
	order int
}

// minHeap orders rankedHits by ascending score so the root is always the
// current lowest-scoring kept hit, the one to evict when a stronger
// candidate arrives.
type minHeap []rankedHit

func (h minHeap) Len() int      { return len(h) }
func (h minHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h minHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score < h[j].Score
	}
	// Among equal scores, the later insertion is "smaller" (evicted
	// first), so that a first-seen tie survives an eviction.
	return h[i].order > h[j].order
}
func (h *minHeap) Push(x any) {
	*h = append(*h, x.(rankedHit))
}
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func sortRanked(hits []rankedHit) {
	// Small result sets (top-K is typically tens of items): a plain
	// insertion sort avoids pulling in sort.Slice's reflection-based
	// comparator for what is, in practice, a handful of elements.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && less(hits[j], hits[j-1]); j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
}

// less reports whether a should sort before b in final output: higher
// score first, first-seen first among ties.
func less(a, b rankedHit) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.order < b.order
}
