// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package typeahead

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPoolGetEmptyReturnsNil(t *testing.T) {
	p := NewBufferPool(2, 16)
	assert.Nil(t, p.Get())
}

func TestBufferPoolPutGetRoundTrip(t *testing.T) {
	p := NewBufferPool(2, 16)
	buf := make([]byte, 16)
	p.Put(buf)
	assert.Equal(t, 1, p.Len())

	got := p.Get()
	assert.Equal(t, 16, len(got))
	assert.Equal(t, 0, p.Len())
}

func TestBufferPoolRejectsWrongSize(t *testing.T) {
	p := NewBufferPool(2, 16)
	p.Put(make([]byte, 8))
	assert.Equal(t, 0, p.Len())
}

func TestBufferPoolRejectsOverCapacity(t *testing.T) {
	p := NewBufferPool(1, 16)
	p.Put(make([]byte, 16))
	p.Put(make([]byte, 16))
	assert.Equal(t, 1, p.Len())
}

func TestBufferPoolDefaultsApplied(t *testing.T) {
	p := NewBufferPool(0, 0)
	assert.Equal(t, DefaultByteArraySize, p.BufSize())
}

func TestBufferPoolConcurrentUse(t *testing.T) {
	p := NewBufferPool(50, 16)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		p.Put(make([]byte, 16))
	}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := p.Get()
			if buf != nil {
				p.Put(buf)
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, p.Len(), 50)
}
