// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package sqlstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/netgraph/typeahead/internal/cache"
	"github.com/netgraph/typeahead/internal/typeahead"
)

// Row is the concrete typeahead.Element this store reads back: a plain
// (id, terms, score) tuple with no domain-specific payload. Callers
// indexing richer elements should implement typeahead.Element themselves;
// SetElement only ever persists the four fields the interface exposes.
type Row struct {
	id        int64
	termList  []string
	score     float64
	timestamp int64
}

func (r Row) ElementID() int64 { return r.id }
func (r Row) Timestamp() int64 { return r.timestamp }
func (r Row) Terms() []string  { return r.termList }
func (r Row) Score() float64   { return r.score }

// ElementStore is a sqlite-backed typeahead.ElementStore, with an
// in-process read-through cache in front of the database.
type ElementStore struct {
	db        *sqlx.DB
	stmtCache *sq.StmtCache
	rng       typeahead.Range
	reads     *cache.Cache[Row]
	ttl       time.Duration
}

// NewElementStore builds an ElementStore over db, serving the half-open
// id range rng. cacheBytes bounds the read-through cache's accounting
// budget (entries are sized as 1 unit each).
func NewElementStore(db *sqlx.DB, rng typeahead.Range, cacheBytes int) *ElementStore {
	return &ElementStore{
		db:        db,
		stmtCache: sq.NewStmtCache(db.DB),
		rng:       rng,
		reads:     cache.New[Row](cacheBytes),
		ttl:       30 * time.Second,
	}
}

func (s *ElementStore) HasIndex(id int64) bool {
	if !s.rng.Contains(id) {
		return false
	}
	_, ok := s.get(id)
	return ok
}

func (s *ElementStore) GetElement(id int64) (typeahead.Element, bool) {
	row, ok := s.get(id)
	if !ok {
		return nil, false
	}
	return row, true
}

// get is the read-through path: a cache miss fetches from sqlite and a
// not-found row is cached as a zero Row so repeated misses for the same id
// don't keep hitting the database. fetch always gives a found row a non-nil
// termList, so a cached Row whose termList is nil is treated as a store
// miss below.
func (s *ElementStore) get(id int64) (Row, bool) {
	key := rowKey(id)
	row, hit := s.reads.Get(key, func() (Row, time.Duration, int) {
		row, found, err := s.fetch(id)
		if err != nil || !found {
			return Row{}, s.ttl, 1
		}
		return row, s.ttl, 1
	})
	if !hit || row.termList == nil {
		return Row{}, false
	}
	return row, true
}

func (s *ElementStore) fetch(id int64) (Row, bool, error) {
	q, args, err := sq.Select("id", "terms", "score", "timestamp").
		From("elements").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return Row{}, false, err
	}

	var termsJSON string
	row := Row{}
	if err := s.db.QueryRow(q, args...).Scan(&row.id, &termsJSON, &row.score, &row.timestamp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Row{}, false, nil
		}
		return Row{}, false, err
	}
	if err := json.Unmarshal([]byte(termsJSON), &row.termList); err != nil {
		return Row{}, false, err
	}
	if row.termList == nil {
		row.termList = []string{}
	}
	return row, true, nil
}

func (s *ElementStore) SetElement(id int64, e typeahead.Element, timestamp int64) error {
	termsJSON, err := json.Marshal(e.Terms())
	if err != nil {
		return err
	}

	_, err = sq.Insert("elements").
		Columns("id", "terms", "score", "timestamp").
		Values(id, string(termsJSON), e.Score(), timestamp).
		Suffix("ON CONFLICT(id) DO UPDATE SET terms=excluded.terms, score=excluded.score, timestamp=excluded.timestamp").
		RunWith(s.stmtCache).Exec()
	if err != nil {
		return err
	}

	s.reads.Del(rowKey(id))
	return nil
}

func (s *ElementStore) GetIndexStart() int64 { return s.rng.IndexStart }
func (s *ElementStore) Capacity() int64      { return s.rng.Capacity }

// Persist checkpoints the WAL. Every write already lands durably via
// SetElement's own statement; Persist exists to satisfy the symmetry
// Engine.Flush expects with AdjacencyStore.Persist.
func (s *ElementStore) Persist() error {
	_, err := s.db.Exec("PRAGMA wal_checkpoint(PASSIVE)")
	return err
}

func rowKey(id int64) string {
	return "elem:" + strconv.FormatInt(id, 10)
}
