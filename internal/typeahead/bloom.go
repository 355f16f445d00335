// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package typeahead

// BloomFilter maps an element's terms to a 32-bit mask at index time and a
// query's terms to a 32-bit mask at query time. A candidate passes the
// prefilter iff (elemMask & queryMask) == queryMask: every bit the query
// needs is also set on the element. False positives are expected and
// cheap to reject later via Selector; false negatives must never happen,
// which is why indexFilter and queryFilter both derive bits the same way
// from the same Hasher.
type BloomFilter struct {
	hasher Hasher
}

// NewBloomFilter builds a BloomFilter around the given term Hasher.
func NewBloomFilter(hasher Hasher) *BloomFilter {
	return &BloomFilter{hasher: hasher}
}

// IndexFilter computes the ElemMask for an element from its terms. Selector
// matches a query term as a prefix of a full element term, so the mask must
// set a bit for every prefix of every term, not just the whole word: a query
// for "al" has to find a set bit that was put there by indexing "alice".
func (b *BloomFilter) IndexFilter(e Element) uint32 {
	var mask uint32
	for _, t := range e.Terms() {
		mask |= b.prefixMask(t)
	}
	return mask
}

// QueryFilter computes the QueryMask for a set of query terms. Each query
// term is hashed once, as-is: it is itself the prefix a Selector will look
// for, and IndexFilter has already set a bit for that same prefix on any
// element whose term it is a prefix of.
func (b *BloomFilter) QueryFilter(terms []string) uint32 {
	return b.mask(terms)
}

func (b *BloomFilter) mask(terms []string) uint32 {
	var mask uint32
	for _, t := range terms {
		if t == "" {
			continue
		}
		mask |= 1 << (b.hasher.HashTerm(t) % 32)
	}
	return mask
}

// prefixMask sets a bit for every non-empty prefix of t, so that a query
// term equal to any true prefix of t passes the (elemMask & queryMask) ==
// queryMask superset test.
func (b *BloomFilter) prefixMask(t string) uint32 {
	var mask uint32
	runes := []rune(t)
	for i := 1; i <= len(runes); i++ {
		prefix := string(runes[:i])
		mask |= 1 << (b.hasher.HashTerm(prefix) % 32)
	}
	return mask
}
