// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package typeahead

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/netgraph/typeahead/pkg/log"
)

// noDeadline disables the deadline check entirely: a TimeoutMillis or
// deadlineMs of noDeadline means "run to completion".
const noDeadline int64 = math.MaxInt64

// deadlineCheckInterval is how many browsed edges pass between deadline
// checks inside a single adjacency walk.
const deadlineCheckInterval = 100

func deadlineExceeded(start time.Time, deadlineMs int64) bool {
	if deadlineMs == noDeadline || deadlineMs <= 0 {
		return false
	}
	return time.Since(start) >= time.Duration(deadlineMs)*time.Millisecond
}

// Search runs an unbounded, undeadlined 1-hop search and returns hits in
// whatever order the fallback Collector (Config.NewCollector) produces.
func (e *Engine) Search(uid int64, terms []string) ([]Hit, HitStats) {
	collector := e.cfg.NewCollector(0)
	collector, stats := e.SearchCollectorDeadline(uid, terms, collector, noDeadline)
	return collector.Hits(), stats
}

// SearchDeadline is Search bounded by a wall-clock deadline in milliseconds.
func (e *Engine) SearchDeadline(uid int64, terms []string, deadlineMs int64) ([]Hit, HitStats) {
	collector := e.cfg.NewCollector(0)
	collector, stats := e.SearchCollectorDeadline(uid, terms, collector, deadlineMs)
	return collector.Hits(), stats
}

// SearchMax bounds both the result count and the deadline. maxResults < 1
// returns immediately with no hits and zeroed stats: an ArgumentRejected
// condition, not an error.
func (e *Engine) SearchMax(uid int64, terms []string, maxResults int, deadlineMs int64) ([]Hit, HitStats) {
	if maxResults < 1 {
		return nil, HitStats{}
	}
	collector := e.cfg.NewCollector(maxResults)
	collector, stats := e.SearchCollectorDeadline(uid, terms, collector, deadlineMs)
	return collector.Hits(), stats
}

// SearchCollector runs a plain 1-hop search into caller-supplied collector,
// with no deadline.
func (e *Engine) SearchCollector(uid int64, terms []string, collector Collector) (Collector, HitStats) {
	return e.SearchCollectorDeadline(uid, terms, collector, noDeadline)
}

// SearchCollectorDeadline is the single-hop search: it reads uid's own
// adjacency record fresh from the AdjacencyStore, tests every candidate
// against the Bloom prefilter then the Selector, and feeds matches to
// collector until the collector is full or the deadline passes.
func (e *Engine) SearchCollectorDeadline(uid int64, terms []string, collector Collector, deadlineMs int64) (Collector, HitStats) {
	stats := HitStats{}
	start := time.Now()

	if len(terms) == 0 {
		return collector, stats
	}

	queryMask := e.bloom.QueryFilter(terms)
	e.walkBytes(uid, terms, queryMask, DegreeOne, collector, &stats, deadlineMs, start, nil, nil)

	stats.TotalTime = time.Since(start)
	e.finishQuery(uid, terms, stats)
	return collector, stats
}

// SearchNetwork is the two-hop search over a pre-snapshotted Context. When
// ctx is nil, a fresh Context is created for uid. When ctx carries no
// adjacency snapshot (HasAdjacency false), SearchNetwork degrades to a
// plain 1-hop search exactly as SearchCollectorDeadline would.
func (e *Engine) SearchNetwork(uid int64, terms []string, collector Collector, ctx *Context) (Collector, HitStats) {
	stats := HitStats{}
	start := time.Now()

	if len(terms) == 0 {
		return collector, stats
	}

	if ctx == nil {
		created, err := e.CreateContext(uid)
		if err != nil {
			log.Warnf("typeahead: CreateContext failed for uid=%d: %v", uid, err)
		}
		ctx = created
	}

	deadlineMs := ctx.TimeoutMillis
	if deadlineMs == 0 {
		deadlineMs = noDeadline
	}

	queryMask := e.bloom.QueryFilter(terms)

	if !ctx.HasAdjacency() {
		e.walkBytes(uid, terms, queryMask, DegreeOne, collector, &stats, deadlineMs, start, nil, nil)
		stats.TotalTime = time.Since(start)
		e.finishQuery(uid, terms, stats)
		return collector, stats
	}

	// uniqIds is pre-seeded with the source id so the traversal never
	// reports the querying user back as one of their own results.
	uniqIDs := map[int64]struct{}{uid: {}}

	stopped := e.walkConnections(ctx.ConnectionIDs, ctx.ConnectionStrengths, terms, queryMask,
		DegreeOne, collector, &stats, deadlineMs, start, uniqIDs, nil)

	if !stopped && !collector.CanStop() {
		for i, connID := range ctx.ConnectionIDs {
			if deadlineExceeded(start, deadlineMs) {
				break
			}
			inherited := ctx.ConnectionStrengths[i]
			adjust := func(edge int) int { return e.cfg.WeightAdjuster(inherited, edge) }
			e.walkBytes(connID, terms, queryMask, DegreeTwo, collector, &stats, deadlineMs, start, uniqIDs, adjust)
			if collector.CanStop() {
				break
			}
		}
	}

	stats.TotalTime = time.Since(start)
	e.finishQuery(uid, terms, stats)
	return collector, stats
}

// walkBytes fetches uid's packed adjacency record fresh from the
// AdjacencyStore and runs the candidate gauntlet over it via a
// WeightIterator, borrowing a scratch buffer from the engine's pool.
//
// Panics raised while decoding the record (malformed buffer, corrupt
// length) are recovered here and logged as an IteratorFailure: the
// collector keeps whatever partial results it already accumulated and the
// walk simply ends early, it never propagates to the caller.
func (e *Engine) walkBytes(
	uid int64,
	terms []string,
	queryMask uint32,
	proximity Proximity,
	collector Collector,
	stats *HitStats,
	deadlineMs int64,
	start time.Time,
	uniqIDs map[int64]struct{},
	strengthOf func(edgeWeight int) int,
) {
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("typeahead: adjacency decode failed for uid=%d: %v", uid, r)
		}
	}()

	if !e.adjacency.HasIndex(uid) {
		return
	}

	buf := e.pool.Get()
	if buf == nil {
		buf = make([]byte, e.cfg.ByteArraySize)
	}

	var data []byte
	var err error
	if e.cfg.PartialReadEnabled {
		n, rerr := e.adjacency.ReadBytes(uid, buf)
		data, err = buf[:n], rerr
	} else {
		data, err = e.adjacency.GetBytes(uid, buf)
	}
	if err != nil {
		log.Warnf("typeahead: adjacency read failed for uid=%d: %v", uid, err)
		e.pool.Put(buf)
		return
	}

	it := NewWeightIterator(data, 0, len(data))
	n := 0
	for {
		elemID, w, ok := it.Next()
		if !ok {
			break
		}
		stats.NumBrowseHits++

		strength := w
		if strengthOf != nil {
			strength = strengthOf(w)
		}
		if e.evalCandidate(elemID, strength, queryMask, terms, proximity, collector, stats, uniqIDs) {
			if collector.CanStop() {
				break
			}
		}

		n++
		if n%deadlineCheckInterval == 0 && deadlineExceeded(start, deadlineMs) {
			break
		}
	}

	// Always return the original canonical-size buffer, not the decoded
	// slice: GetBytes may have returned a larger, separately allocated
	// slice when buf was too small, and a partial ReadBytes slices buf
	// down to n without changing buf's own length.
	e.pool.Put(buf)
}

// walkConnections runs the candidate gauntlet directly over an already
// decoded (ids, weights) pair, as used for the first pass of the two-hop
// algorithm over a Context's own adjacency snapshot. It returns true if it
// stopped early (collector full or deadline passed).
func (e *Engine) walkConnections(
	ids []int64,
	weights []int,
	terms []string,
	queryMask uint32,
	proximity Proximity,
	collector Collector,
	stats *HitStats,
	deadlineMs int64,
	start time.Time,
	uniqIDs map[int64]struct{},
	strengthOf func(i, edgeWeight int) int,
) bool {
	for i, id := range ids {
		stats.NumBrowseHits++

		strength := weights[i]
		if strengthOf != nil {
			strength = strengthOf(i, strength)
		}
		if e.evalCandidate(id, strength, queryMask, terms, proximity, collector, stats, uniqIDs) {
			if collector.CanStop() {
				return true
			}
		}

		if (i+1)%deadlineCheckInterval == 0 && deadlineExceeded(start, deadlineMs) {
			return true
		}
	}
	return false
}

// evalCandidate runs one candidate element through the filter-store check,
// the ElementStore fetch, and the Selector, adding it to collector on a
// match. It reports whether the candidate was added.
func (e *Engine) evalCandidate(
	elemID int64,
	edgeStrength int,
	queryMask uint32,
	terms []string,
	proximity Proximity,
	collector Collector,
	stats *HitStats,
	uniqIDs map[int64]struct{},
) bool {
	if uniqIDs != nil {
		if _, seen := uniqIDs[elemID]; seen {
			return false
		}
	}

	if !e.elements.HasIndex(elemID) {
		return false
	}
	if (e.filterStore.Get(elemID) & queryMask) != queryMask {
		return false
	}
	stats.NumFilterHits++

	elem, found := e.elements.GetElement(elemID)
	if !found {
		return false
	}

	sctx := &SelectorContext{Terms: terms}
	if !e.selector.Select(elem, sctx) {
		return false
	}
	stats.NumResultHits++

	score := sctx.Score * float64(edgeStrength+1)
	collector.Add(elem, score, e.cfg.Name, proximity)

	if uniqIDs != nil {
		uniqIDs[elemID] = struct{}{}
	}
	return true
}

// finishQuery emits one formatted line through the configured QueryLogger,
// e.g. "typeahead user=42 time=3ms hits=118|4|3 terms={al,an}", and, if a
// StatsLogger is installed, hands it the raw HitStats regardless of
// Config.LoggingEnabled.
func (e *Engine) finishQuery(uid int64, terms []string, stats HitStats) {
	if e.cfg.LoggingEnabled && e.logger != nil {
		line := fmt.Sprintf("%s user=%d time=%dms hits=%d|%d|%d terms={%s}",
			e.cfg.Name, uid, stats.TotalTime.Milliseconds(),
			stats.NumBrowseHits, stats.NumFilterHits, stats.NumResultHits,
			strings.Join(terms, ","))
		e.logger(line)
	}
	if e.statsLogger != nil {
		e.statsLogger(stats)
	}
}
