// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bloomhash provides the default typeahead.Hasher, a thin wrapper
// around a 32-bit murmur3 hash. It is deliberately the only collaborator
// the core package's Bloom Filter depends on through an interface rather
// than inlining, so callers needing a different hash distribution (or a
// seeded variant for testing) can supply their own.
package bloomhash

import "github.com/spaolacci/murmur3"

// Murmur3 is a typeahead.Hasher backed by 32-bit murmur3 with a fixed seed.
// The zero value is ready to use.
type Murmur3 struct {
	Seed uint32
}

// HashTerm returns the murmur3 hash of term under h's seed.
func (h Murmur3) HashTerm(term string) uint32 {
	return murmur3.Sum32WithSeed([]byte(term), h.Seed)
}

// New returns the default Murmur3 hasher, seeded with 0.
func New() Murmur3 {
	return Murmur3{}
}
