// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package typeahead

import "sync"

// DefaultBytesPoolSize is the default number of buffers a BufferPool holds.
const DefaultBytesPoolSize = 100

// DefaultByteArraySize is the default size, in bytes, of a pooled buffer.
const DefaultByteArraySize = 32768

// BufferPool is a bounded, thread-safe LIFO of fixed-size scratch buffers
// used by the query path to avoid per-query allocation when decoding
// adjacency bytes. It deliberately rejects buffers that are not of its
// canonical size so that a single oversized record does not poison the
// pool; such buffers are left to the allocator/GC.
//
// Get is non-blocking and returns nil when the pool is empty; callers must
// allocate in that case. Put is non-blocking and silently drops a buffer
// that does not fit (wrong size, or pool already at capacity).
type BufferPool struct {
	mu         sync.Mutex
	bufs       [][]byte
	maxEntries int
	bufSize    int
}

// NewBufferPool creates a pool holding at most maxEntries buffers of
// exactly bufSize bytes each.
func NewBufferPool(maxEntries, bufSize int) *BufferPool {
	if maxEntries <= 0 {
		maxEntries = DefaultBytesPoolSize
	}
	if bufSize <= 0 {
		bufSize = DefaultByteArraySize
	}
	return &BufferPool{
		bufs:       make([][]byte, 0, maxEntries),
		maxEntries: maxEntries,
		bufSize:    bufSize,
	}
}

// Get returns a pooled buffer, or nil if none is available. The returned
// buffer has length and capacity equal to BufSize.
func (p *BufferPool) Get() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.bufs)
	if n == 0 {
		return nil
	}
	buf := p.bufs[n-1]
	p.bufs = p.bufs[:n-1]
	return buf
}

// Put returns buf to the pool. buf is accepted only if its length equals
// BufSize and the pool is not already at capacity; otherwise it is dropped.
func (p *BufferPool) Put(buf []byte) {
	if len(buf) != p.bufSize {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.bufs) >= p.maxEntries {
		return
	}
	p.bufs = append(p.bufs, buf)
}

// BufSize returns the canonical buffer size for this pool.
func (p *BufferPool) BufSize() int {
	return p.bufSize
}

// Len reports how many buffers are currently pooled. Used by tests and by
// internal/metrics to expose a gauge.
func (p *BufferPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.bufs)
}
