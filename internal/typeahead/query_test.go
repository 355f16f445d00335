// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package typeahead

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlineExceededDisabledByNoDeadline(t *testing.T) {
	start := time.Now().Add(-time.Hour)
	assert.False(t, deadlineExceeded(start, noDeadline))
}

func TestDeadlineExceededDisabledByNonPositive(t *testing.T) {
	start := time.Now().Add(-time.Hour)
	assert.False(t, deadlineExceeded(start, 0))
	assert.False(t, deadlineExceeded(start, -1))
}

func TestDeadlineExceededTrips(t *testing.T) {
	start := time.Now().Add(-time.Hour)
	assert.True(t, deadlineExceeded(start, 10))
}

func TestDeadlineExceededNotYetTripped(t *testing.T) {
	start := time.Now()
	assert.False(t, deadlineExceeded(start, 60_000))
}

func setupOneHopEngine(t *testing.T) (*Engine, *fakeAdjacencyStore) {
	t.Helper()
	rng := Range{IndexStart: 0, Capacity: 1000}
	elements := newFakeElementStore(rng)
	adjacency := newFakeAdjacencyStore()
	hasher := fakeHasher{bits: map[string]uint32{"al": 0}}
	engine := NewEngine(rng, elements, adjacency, hasher, prefixSelector{}, allowAllFilter{}, Config{})

	_, err := engine.IndexElement(fakeElement{id: 2, terms: []string{"al"}}, 0)
	require.NoError(t, err)
	_, err = engine.IndexElement(fakeElement{id: 3, terms: []string{"al"}}, 0)
	require.NoError(t, err)

	return engine, adjacency
}

func TestSearchOneHopReturnsDirectNeighbor(t *testing.T) {
	engine, adjacency := setupOneHopEngine(t)
	adjacency.seed(1, []int64{2}, []int{3})

	hits, stats := engine.Search(1, []string{"al"})
	require.Len(t, hits, 1)
	assert.Equal(t, int64(2), hits[0].Element.ElementID())
	assert.Equal(t, DegreeOne, hits[0].Proximity)
	assert.Equal(t, float64(1*(3+1)), hits[0].Score)
	assert.EqualValues(t, 1, stats.NumBrowseHits)
	assert.EqualValues(t, 1, stats.NumFilterHits)
	assert.EqualValues(t, 1, stats.NumResultHits)
}

func TestSearchEmptyTermsReturnsNothing(t *testing.T) {
	engine, adjacency := setupOneHopEngine(t)
	adjacency.seed(1, []int64{2}, []int{3})

	hits, stats := engine.Search(1, nil)
	assert.Empty(t, hits)
	assert.Zero(t, stats.NumBrowseHits)
}

func TestSearchExcludesUnindexedElement(t *testing.T) {
	engine, adjacency := setupOneHopEngine(t)
	adjacency.seed(1, []int64{2, 99}, []int{3, 3})

	hits, _ := engine.Search(1, []string{"al"})
	require.Len(t, hits, 1)
	assert.Equal(t, int64(2), hits[0].Element.ElementID())
}

func TestSearchNetworkTwoHopAppliesWeightAdjuster(t *testing.T) {
	engine, adjacency := setupOneHopEngine(t)
	// 1 -> 2 (1-hop, strength 5); 2 -> 3 (2-hop edge, strength 2); element 3
	// is not itself a 1-hop neighbor of 1, so it is only reachable via 2.
	adjacency.seed(1, []int64{2}, []int{5})
	adjacency.seed(2, []int64{3}, []int{2})

	ctx, err := engine.CreateContext(1)
	require.NoError(t, err)

	collector := newFIFOCollector(0)
	result, _ := engine.SearchNetwork(1, []string{"al"}, collector, ctx)
	hits := result.Hits()

	var hit2, hit3 *Hit
	for i := range hits {
		switch hits[i].Element.ElementID() {
		case 2:
			hit2 = &hits[i]
		case 3:
			hit3 = &hits[i]
		}
	}
	require.NotNil(t, hit2)
	require.NotNil(t, hit3)

	assert.Equal(t, DegreeOne, hit2.Proximity)
	assert.Equal(t, float64(1*(5+1)), hit2.Score)

	assert.Equal(t, DegreeTwo, hit3.Proximity)
	adjustedStrength := DefaultWeightAdjuster(5, 2)
	assert.Equal(t, 7, adjustedStrength)
	assert.Equal(t, float64(1*(adjustedStrength+1)), hit3.Score)
}

func TestSearchNetworkExcludesSourceAndDedups(t *testing.T) {
	engine, adjacency := setupOneHopEngine(t)
	// 2 is both a direct neighbor of 1 and reachable again through itself
	// being its own 2nd-degree target; 1 must never appear as a hit.
	adjacency.seed(1, []int64{2}, []int{5})
	adjacency.seed(2, []int64{1, 2, 3}, []int{1, 1, 2})

	ctx, err := engine.CreateContext(1)
	require.NoError(t, err)

	collector := newFIFOCollector(0)
	result, _ := engine.SearchNetwork(1, []string{"al"}, collector, ctx)

	seen := map[int64]int{}
	for _, h := range result.Hits() {
		seen[h.Element.ElementID()]++
	}
	assert.NotContains(t, seen, int64(1), "the querying user must never appear as its own hit")
	for id, count := range seen {
		assert.Equal(t, 1, count, "element %d must not be counted twice", id)
	}
}

func TestSearchNetworkNilContextIsCreatedAutomatically(t *testing.T) {
	engine, adjacency := setupOneHopEngine(t)
	adjacency.seed(1, []int64{2}, []int{3})

	collector := newFIFOCollector(0)
	result, _ := engine.SearchNetwork(1, []string{"al"}, collector, nil)
	assert.Len(t, result.Hits(), 1)
}

func TestSearchNetworkDegradesToOneHopWithoutAdjacency(t *testing.T) {
	engine, adjacency := setupOneHopEngine(t)
	adjacency.seed(1, []int64{2}, []int{3})

	collector := newFIFOCollector(0)
	emptyCtx := &Context{Source: 99, TimeoutMillis: noDeadline}
	result, _ := engine.SearchNetwork(1, []string{"al"}, collector, emptyCtx)
	assert.Len(t, result.Hits(), 1, "a context with no adjacency snapshot must still search uid's own neighborhood")
}

func TestSearchMaxRejectsNonPositiveLimit(t *testing.T) {
	engine, adjacency := setupOneHopEngine(t)
	adjacency.seed(1, []int64{2}, []int{3})

	hits, stats := engine.SearchMax(1, []string{"al"}, 0, noDeadline)
	assert.Nil(t, hits)
	assert.Zero(t, stats)
}

func TestSearchMaxStopsCollectorEarly(t *testing.T) {
	engine, adjacency := setupOneHopEngine(t)
	adjacency.seed(1, []int64{2, 3}, []int{1, 1})

	hits, _ := engine.SearchMax(1, []string{"al"}, 1, noDeadline)
	assert.Len(t, hits, 1)
}

// panicAdjacencyStore wraps fakeAdjacencyStore but deliberately panics from
// GetBytes for one uid, exercising walkBytes's IteratorFailure recovery.
type panicAdjacencyStore struct {
	*fakeAdjacencyStore
	panicUID int64
}

func (s *panicAdjacencyStore) GetBytes(uid int64, buf []byte) ([]byte, error) {
	if uid == s.panicUID {
		panic("simulated decode failure")
	}
	return s.fakeAdjacencyStore.GetBytes(uid, buf)
}

func TestSearchRecoversFromDecodePanic(t *testing.T) {
	rng := Range{IndexStart: 0, Capacity: 1000}
	elements := newFakeElementStore(rng)
	base := newFakeAdjacencyStore()
	base.seed(1, []int64{2}, []int{3})
	adjacency := &panicAdjacencyStore{fakeAdjacencyStore: base, panicUID: 1}
	hasher := fakeHasher{bits: map[string]uint32{"al": 0}}
	engine := NewEngine(rng, elements, adjacency, hasher, prefixSelector{}, allowAllFilter{}, Config{})
	_, err := engine.IndexElement(fakeElement{id: 2, terms: []string{"al"}}, 0)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		hits, _ := engine.Search(1, []string{"al"})
		assert.Empty(t, hits, "a recovered IteratorFailure yields no hits rather than propagating the panic")
	})
}

func TestSearchCollectorDeadlineUsesCallerCollector(t *testing.T) {
	engine, adjacency := setupOneHopEngine(t)
	adjacency.seed(1, []int64{2}, []int{3})

	collector := newFIFOCollector(0)
	result, _ := engine.SearchCollector(1, []string{"al"}, collector)
	assert.Same(t, collector, result)
}
