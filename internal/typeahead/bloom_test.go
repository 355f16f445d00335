// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package typeahead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// identityHasher maps a term to a fixed bit position via a lookup table
// (unlisted terms map to 0), so tests can reason about exact mask bits
// without depending on a real hash algorithm's distribution.
type identityHasher struct {
	bits map[string]uint32
}

func (h identityHasher) HashTerm(term string) uint32 {
	return h.bits[term]
}

type termsElement struct {
	terms []string
}

func (e termsElement) ElementID() int64   { return 1 }
func (e termsElement) Timestamp() int64   { return 0 }
func (e termsElement) Terms() []string    { return e.terms }
func (e termsElement) Score() float64     { return 0 }

func TestBloomFilterSupersetContract(t *testing.T) {
	hasher := identityHasher{bits: map[string]uint32{"al": 1, "an": 2, "ice": 3}}
	bf := NewBloomFilter(hasher)

	elem := termsElement{terms: []string{"al", "an", "ice"}}
	elemMask := bf.IndexFilter(elem)

	queryMask := bf.QueryFilter([]string{"al", "an"})
	assert.Equal(t, queryMask, elemMask&queryMask, "every bit the query needs must be set on the element")
}

func TestBloomFilterRejectsMissingTerm(t *testing.T) {
	hasher := identityHasher{bits: map[string]uint32{"al": 1, "zz": 5}}
	bf := NewBloomFilter(hasher)

	elem := termsElement{terms: []string{"al"}}
	elemMask := bf.IndexFilter(elem)
	queryMask := bf.QueryFilter([]string{"al", "zz"})

	assert.NotEqual(t, queryMask, elemMask&queryMask)
}

func TestBloomFilterEmptyTermIgnored(t *testing.T) {
	hasher := identityHasher{bits: map[string]uint32{"al": 1}}
	bf := NewBloomFilter(hasher)

	mask := bf.QueryFilter([]string{"", "al", ""})
	assert.Equal(t, uint32(1)<<1, mask)
}

func TestBloomFilterHashModuloWraps(t *testing.T) {
	hasher := identityHasher{bits: map[string]uint32{"big": 40}}
	bf := NewBloomFilter(hasher)
	mask := bf.QueryFilter([]string{"big"})
	assert.Equal(t, uint32(1)<<(40%32), mask)
}

// TestBloomFilterAcceptsGenuinePrefixOfLongerTerm is the case Selector
// actually relies on: a query term that is a true, non-equal prefix of a
// much longer indexed term must still pass the superset test, because
// IndexFilter hashes every prefix of "alice" and "smith", not just the
// whole words.
func TestBloomFilterAcceptsGenuinePrefixOfLongerTerm(t *testing.T) {
	hasher := identityHasher{bits: map[string]uint32{
		"a": 1, "al": 2, "ali": 3, "alic": 4, "alice": 5,
		"s": 6, "sm": 7, "smi": 8, "smit": 9, "smith": 10,
		"b": 11, "bo": 12, "bob": 13,
	}}
	bf := NewBloomFilter(hasher)

	elem := termsElement{terms: []string{"alice", "smith"}}
	elemMask := bf.IndexFilter(elem)

	queryMask := bf.QueryFilter([]string{"al"})
	assert.Equal(t, queryMask, elemMask&queryMask, "\"al\" is a true prefix of \"alice\" and must pass the bloom prefilter")

	bobMask := bf.IndexFilter(termsElement{terms: []string{"bob"}})
	boQuery := bf.QueryFilter([]string{"bo"})
	assert.Equal(t, boQuery, bobMask&boQuery, "\"bo\" is a true prefix of \"bob\" and must pass the bloom prefilter")
}
