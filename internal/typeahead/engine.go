// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package typeahead

import (
	"sync"
)

// QueryLogger receives one call per completed query when Config.LoggingEnabled
// is true. Engine.Search* invoke it with a preformatted summary line.
// Supplying nil disables logging entirely.
type QueryLogger func(line string)

// StatsLogger receives one call per completed query with its raw HitStats,
// regardless of Config.LoggingEnabled. It exists for metrics recorders that
// need the counters themselves rather than a formatted log line.
type StatsLogger func(stats HitStats)

// Engine is the typeahead query/index engine: a two-hop weighted
// traversal over an affinity graph, gated by a bloom prefilter and scored
// by a pluggable Selector.
//
// Engine is safe for concurrent use: many query goroutines may call
// Search*/SearchNetwork concurrently with each other and with at most one
// IndexElement call and one IndexConnection call at a time (see index.go).
type Engine struct {
	rng Range
	cfg Config

	elements  ElementStore
	adjacency AdjacencyStore

	bloom       *BloomFilter
	filterStore *FilterStore
	pool        *BufferPool

	selector   Selector
	connFilter ConnectionFilter

	logger      QueryLogger
	statsLogger StatsLogger

	elementMu    sync.Mutex
	connectionMu sync.Mutex
}

// NewEngine wires the core components into a ready-to-use Engine.
// The FilterStore always starts empty and is populated only by IndexElement
// calls; callers resuming from a persisted ElementStore should re-index
// before serving queries.
func NewEngine(
	rng Range,
	elements ElementStore,
	adjacency AdjacencyStore,
	hasher Hasher,
	selector Selector,
	connFilter ConnectionFilter,
	cfg Config,
) *Engine {
	cfg = cfg.withDefaults()

	return &Engine{
		rng:         rng,
		cfg:         cfg,
		elements:    elements,
		adjacency:   adjacency,
		bloom:       NewBloomFilter(hasher),
		filterStore: NewFilterStore(rng),
		pool:        NewBufferPool(cfg.BytesPoolSize, cfg.ByteArraySize),
		selector:    selector,
		connFilter:  connFilter,
	}
}

// SetLogger installs the query logger. Passing nil disables logging even
// if Config.LoggingEnabled is true.
func (e *Engine) SetLogger(logger QueryLogger) {
	e.logger = logger
}

// SetStatsLogger installs a hook called with every completed query's
// HitStats, independent of Config.LoggingEnabled and SetLogger. Passing nil
// disables it.
func (e *Engine) SetStatsLogger(statsLogger StatsLogger) {
	e.statsLogger = statsLogger
}

// GetRange returns the half-open element-id interval this engine serves.
func (e *Engine) GetRange() Range {
	return e.rng
}

// GetName returns the configured engine name, used in log lines.
func (e *Engine) GetName() string {
	return e.cfg.Name
}

// FilterStoreMask exposes the current ElemMask for id. Used by tests
// asserting filter-store coherence with the element store.
func (e *Engine) FilterStoreMask(id int64) uint32 {
	return e.filterStore.Get(id)
}

// PoolLen reports how many scratch buffers currently sit idle in the
// engine's BufferPool, for metrics gauges.
func (e *Engine) PoolLen() int {
	return e.pool.Len()
}
