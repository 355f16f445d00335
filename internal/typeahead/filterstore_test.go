// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package typeahead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterStoreGetSetRoundTrip(t *testing.T) {
	fs := NewFilterStore(Range{IndexStart: 100, Capacity: 10})
	fs.Set(105, 0xABCD)
	assert.Equal(t, uint32(0xABCD), fs.Get(105))
}

func TestFilterStoreOutOfRangeReadsZero(t *testing.T) {
	fs := NewFilterStore(Range{IndexStart: 100, Capacity: 10})
	assert.Equal(t, uint32(0), fs.Get(50))
	assert.Equal(t, uint32(0), fs.Get(110))
}

func TestFilterStoreOutOfRangeSetIsNoop(t *testing.T) {
	fs := NewFilterStore(Range{IndexStart: 100, Capacity: 10})
	fs.Set(999, 0xFF)
	assert.Equal(t, uint32(0), fs.Get(999))
}

func TestFilterStoreRangeAccessor(t *testing.T) {
	rng := Range{IndexStart: 5, Capacity: 20}
	fs := NewFilterStore(rng)
	assert.Equal(t, rng, fs.Range())
}
