// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package typeahead

import "encoding/binary"

// recordSize is the packed encoding of one (elementId, weight) pair: an
// 8-byte little-endian element id followed by a 4-byte little-endian
// weight.
const recordSize = 12

// WeightIterator is a lazy, forward-only, non-restartable decoder over a
// packed adjacency byte buffer. It is the shape AdjacencyStore
// implementations are expected to hand back from GetBytes/ReadBytes.
type WeightIterator struct {
	buf []byte
	pos int
	end int
}

// NewWeightIterator constructs an iterator over buf[offset : offset+length].
// The buffer is borrowed for the iterator's lifetime.
func NewWeightIterator(buf []byte, offset, length int) *WeightIterator {
	end := offset + length
	if end > len(buf) {
		end = len(buf)
	}
	if offset > end {
		offset = end
	}
	return &WeightIterator{buf: buf, pos: offset, end: end}
}

// Next yields the next (elementId, weight) pair. ok is false once the
// buffer is exhausted or a short trailing record is encountered.
func (it *WeightIterator) Next() (elementID int64, weight int, ok bool) {
	if it.pos+recordSize > it.end {
		return 0, 0, false
	}
	elementID = int64(binary.LittleEndian.Uint64(it.buf[it.pos : it.pos+8]))
	weight = int(int32(binary.LittleEndian.Uint32(it.buf[it.pos+8 : it.pos+12])))
	it.pos += recordSize
	return elementID, weight, true
}

// Array returns the underlying buffer backing this iterator, so the
// caller can recover a possibly-reallocated buffer (e.g. one grown by
// AdjacencyStore.GetBytes) and decide whether to return it to a BufferPool.
func (it *WeightIterator) Array() []byte {
	return it.buf
}

// EncodeWeights packs (target, weight) pairs into the wire format consumed
// by WeightIterator. It is used by the reference AdjacencyStore and by
// tests that need to construct adjacency bytes directly.
func EncodeWeights(targets []int64, weights []int) []byte {
	out := make([]byte, len(targets)*recordSize)
	for i, t := range targets {
		off := i * recordSize
		binary.LittleEndian.PutUint64(out[off:off+8], uint64(t))
		binary.LittleEndian.PutUint32(out[off+8:off+12], uint32(int32(weights[i])))
	}
	return out
}
