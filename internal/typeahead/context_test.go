// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package typeahead

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() (*Engine, *fakeElementStore, *fakeAdjacencyStore) {
	rng := Range{IndexStart: 0, Capacity: 1000}
	elements := newFakeElementStore(rng)
	adjacency := newFakeAdjacencyStore()
	engine := NewEngine(rng, elements, adjacency, fakeHasher{}, prefixSelector{}, allowAllFilter{}, Config{})
	return engine, elements, adjacency
}

func TestCreateContextSnapshotsAdjacency(t *testing.T) {
	engine, _, adjacency := newTestEngine()
	adjacency.seed(1, []int64{2, 3}, []int{5, 7})

	ctx, err := engine.CreateContext(1)
	require.NoError(t, err)
	assert.True(t, ctx.HasAdjacency())
	assert.Equal(t, []int64{2, 3}, ctx.ConnectionIDs)
	assert.Equal(t, []int{5, 7}, ctx.ConnectionStrengths)
}

func TestCreateContextNoAdjacencyYieldsEmptyContext(t *testing.T) {
	engine, _, _ := newTestEngine()
	ctx, err := engine.CreateContext(42)
	require.NoError(t, err)
	assert.False(t, ctx.HasAdjacency())
}

func TestCreateContextIsImmuneToLaterMutation(t *testing.T) {
	engine, _, adjacency := newTestEngine()
	adjacency.seed(1, []int64{2}, []int{5})

	ctx, err := engine.CreateContext(1)
	require.NoError(t, err)

	require.NoError(t, engine.adjacency.SetWeight(1, 3, 9, 0))

	assert.Equal(t, []int64{2}, ctx.ConnectionIDs, "a Context must not see writes after it was created")
}
