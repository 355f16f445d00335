// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package typeahead

// ElementStore is the id-addressed element storage contract. It is an
// external collaborator: the core only ever reads immutable snapshots
// returned by GetElement and writes through SetElement during indexing.
// Implementations must be safe for one writer concurrent with many readers.
type ElementStore interface {
	HasIndex(id int64) bool
	GetElement(id int64) (Element, bool)
	SetElement(id int64, e Element, timestamp int64) error
	GetIndexStart() int64
	Capacity() int64

	// Persist flushes any buffered element writes to durable storage.
	// Flush (see Engine.Flush) calls this under the element lock,
	// symmetric with AdjacencyStore.Persist under the connection lock.
	Persist() error
}

// AdjacencyStore is the id-addressed weighted-adjacency storage contract.
// Implementations must be safe for one connection-writer concurrent with
// many readers.
type AdjacencyStore interface {
	HasIndex(uid int64) bool

	// Length reports the byte length of uid's packed adjacency record, or
	// 0 if uid has no record.
	Length(uid int64) int

	// GetBytes performs a full read of uid's adjacency record, reusing buf
	// when it is large enough. When buf is too small, GetBytes allocates a
	// fresh buffer and returns it instead; callers must use the returned
	// slice, not buf, to recover the data and must check its length
	// before returning it to a BufferPool.
	GetBytes(uid int64, buf []byte) ([]byte, error)

	// ReadBytes performs a best-effort partial read into buf, returning
	// how many bytes were written. Used only when Config.PartialReadEnabled
	// is set; implementations that cannot do partial reads may alias GetBytes.
	ReadBytes(uid int64, buf []byte) (int, error)

	// WeightData decodes uid's full adjacency record into parallel slices.
	WeightData(uid int64) (targets []int64, weights []int, err error)

	Weight(source, target int64) (strength int, ok bool)
	SetWeight(source, target int64, strength int, timestamp int64) error
	Remove(source, target int64, timestamp int64) error
	Persist() error
}

// SelectorContext is the per-candidate environment a Selector evaluates
// against. After Select returns true, Score holds the term-match score the
// query executor multiplies by the propagated strength.
type SelectorContext struct {
	Terms []string
	Score float64
}

// Selector is the pluggable term-matching predicate. Implementations range
// from literal prefix matching to compiled n-gram matchers; this core
// treats Selector as an external collaborator and never ranks beyond
// selector-score x strength itself.
type Selector interface {
	Select(elem Element, sctx *SelectorContext) bool
}

// ConnectionFilter is the connection-admission collaborator consulted by
// the Index Executor before a connection write is applied.
type ConnectionFilter interface {
	Accept(c Connection) bool
}

// Collector accumulates Hits and owns top-K selection and sorting. The
// query executor calls Add for every match and consults CanStop after each
// add to decide whether to terminate the traversal early.
type Collector interface {
	Add(elem Element, score float64, sourceName string, proximity Proximity)
	CanStop() bool
	Hits() []Hit
}

// Hasher computes the per-term hash the Bloom Filter folds into a 32-bit
// mask, independent of the core's bloom logic.
type Hasher interface {
	HashTerm(term string) uint32
}

// WeightAdjuster combines a first-hop strength with a second-hop edge
// strength into the propagated strength used to score a DEGREE_2 hit.
// Implementations must be deterministic and monotone non-decreasing in
// both arguments.
type WeightAdjuster func(inherited, edge int) int

// DefaultWeightAdjuster sums the two strengths. It is deterministic and
// trivially monotone non-decreasing in both arguments.
func DefaultWeightAdjuster(inherited, edge int) int {
	return inherited + edge
}
