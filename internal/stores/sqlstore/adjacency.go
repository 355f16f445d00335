// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package sqlstore

import (
	"database/sql"
	"errors"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/netgraph/typeahead/internal/typeahead"
)

// AdjacencyStore is a sqlite-backed typeahead.AdjacencyStore. Each source
// id's adjacency is stored as a single packed BLOB using the core's own
// wire format (typeahead.EncodeWeights / typeahead.WeightIterator), so a
// full read is one row fetch and requires no per-edge joins.
//
// Per-source writes (SetWeight/Remove) read-modify-write that row under the
// store's own mutex: sqlite already serializes writers, but the
// read-modify-write needs to be atomic with respect to other writers of
// the very same row, which SetMaxOpenConns(1) alone does not guarantee
// across the two separate statements.
type AdjacencyStore struct {
	db        *sqlx.DB
	stmtCache *sq.StmtCache
	mu        sync.Mutex
}

// NewAdjacencyStore builds an AdjacencyStore over db.
func NewAdjacencyStore(db *sqlx.DB) *AdjacencyStore {
	return &AdjacencyStore{db: db, stmtCache: sq.NewStmtCache(db.DB)}
}

func (s *AdjacencyStore) HasIndex(uid int64) bool {
	_, found, _ := s.fetch(uid)
	return found
}

func (s *AdjacencyStore) Length(uid int64) int {
	data, found, _ := s.fetch(uid)
	if !found {
		return 0
	}
	return len(data)
}

func (s *AdjacencyStore) GetBytes(uid int64, buf []byte) ([]byte, error) {
	data, found, err := s.fetch(uid)
	if err != nil {
		return nil, err
	}
	if !found {
		return buf[:0], nil
	}
	if len(buf) < len(data) {
		return data, nil
	}
	n := copy(buf, data)
	return buf[:n], nil
}

// ReadBytes performs a best-effort partial read: it copies as much of
// uid's record as fits in buf and reports how many bytes were written,
// silently truncating rather than growing buf.
func (s *AdjacencyStore) ReadBytes(uid int64, buf []byte) (int, error) {
	data, found, err := s.fetch(uid)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	return copy(buf, data), nil
}

func (s *AdjacencyStore) WeightData(uid int64) ([]int64, []int, error) {
	data, found, err := s.fetch(uid)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, nil, nil
	}

	it := typeahead.NewWeightIterator(data, 0, len(data))
	var targets []int64
	var weights []int
	for {
		id, w, ok := it.Next()
		if !ok {
			break
		}
		targets = append(targets, id)
		weights = append(weights, w)
	}
	return targets, weights, nil
}

func (s *AdjacencyStore) Weight(source, target int64) (int, bool) {
	targets, weights, err := s.WeightData(source)
	if err != nil {
		return 0, false
	}
	for i, t := range targets {
		if t == target {
			return weights[i], true
		}
	}
	return 0, false
}

func (s *AdjacencyStore) SetWeight(source, target int64, strength int, timestamp int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	targets, weights, _, err := s.decode(source)
	if err != nil {
		return err
	}

	replaced := false
	for i, t := range targets {
		if t == target {
			weights[i] = strength
			replaced = true
			break
		}
	}
	if !replaced {
		targets = append(targets, target)
		weights = append(weights, strength)
	}

	return s.store(source, targets, weights, timestamp)
}

func (s *AdjacencyStore) Remove(source, target int64, timestamp int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	targets, weights, found, err := s.decode(source)
	if err != nil || !found {
		return err
	}

	idx := -1
	for i, t := range targets {
		if t == target {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	targets = append(targets[:idx], targets[idx+1:]...)
	weights = append(weights[:idx], weights[idx+1:]...)
	return s.store(source, targets, weights, timestamp)
}

// Persist checkpoints the WAL, mirroring ElementStore.Persist.
func (s *AdjacencyStore) Persist() error {
	_, err := s.db.Exec("PRAGMA wal_checkpoint(PASSIVE)")
	return err
}

func (s *AdjacencyStore) decode(uid int64) ([]int64, []int, bool, error) {
	targets, weights, err := s.WeightData(uid)
	if err != nil {
		return nil, nil, false, err
	}
	return targets, weights, targets != nil, nil
}

func (s *AdjacencyStore) store(uid int64, targets []int64, weights []int, timestamp int64) error {
	data := typeahead.EncodeWeights(targets, weights)

	_, err := sq.Insert("adjacency").
		Columns("source", "data", "timestamp").
		Values(uid, data, timestamp).
		Suffix("ON CONFLICT(source) DO UPDATE SET data=excluded.data, timestamp=excluded.timestamp").
		RunWith(s.stmtCache).Exec()
	return err
}

func (s *AdjacencyStore) fetch(uid int64) ([]byte, bool, error) {
	q, args, err := sq.Select("data").From("adjacency").Where(sq.Eq{"source": uid}).ToSql()
	if err != nil {
		return nil, false, err
	}

	var data []byte
	if err := s.db.QueryRow(q, args...).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}
