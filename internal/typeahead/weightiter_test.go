// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package typeahead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightIteratorRoundTrip(t *testing.T) {
	buf := EncodeWeights([]int64{10, 20, 30}, []int{1, -2, 300})
	it := NewWeightIterator(buf, 0, len(buf))

	id, w, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, int64(10), id)
	assert.Equal(t, 1, w)

	id, w, ok = it.Next()
	assert.True(t, ok)
	assert.Equal(t, int64(20), id)
	assert.Equal(t, -2, w)

	id, w, ok = it.Next()
	assert.True(t, ok)
	assert.Equal(t, int64(30), id)
	assert.Equal(t, 300, w)

	_, _, ok = it.Next()
	assert.False(t, ok)
}

func TestWeightIteratorEmptyBuffer(t *testing.T) {
	it := NewWeightIterator(nil, 0, 0)
	_, _, ok := it.Next()
	assert.False(t, ok)
}

func TestWeightIteratorShortTrailingRecordStops(t *testing.T) {
	buf := EncodeWeights([]int64{1, 2}, []int{1, 2})
	truncated := buf[:len(buf)-1]
	it := NewWeightIterator(truncated, 0, len(truncated))

	_, _, ok := it.Next()
	assert.True(t, ok)
	_, _, ok = it.Next()
	assert.False(t, ok, "a short trailing record must not be decoded")
}

func TestWeightIteratorOffsetAndLengthClamp(t *testing.T) {
	buf := EncodeWeights([]int64{1, 2, 3}, []int{1, 2, 3})
	it := NewWeightIterator(buf, recordSize, len(buf)+1000)

	id, _, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)
}

func TestWeightIteratorArrayReturnsBackingSlice(t *testing.T) {
	buf := EncodeWeights([]int64{7}, []int{7})
	it := NewWeightIterator(buf, 0, len(buf))
	assert.Equal(t, buf, it.Array())
}
