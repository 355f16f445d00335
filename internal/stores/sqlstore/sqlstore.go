// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sqlstore is a reference typeahead.ElementStore and
// typeahead.AdjacencyStore pair backed by sqlite3. It exists so the engine
// is runnable out of the box; production deployments with their own
// element/adjacency storage are expected to implement the two interfaces
// directly instead.
package sqlstore

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/qustavo/sqlhooks/v2"

	"github.com/netgraph/typeahead/pkg/log"
)

var registerOnce sync.Once

// Open opens (and, if needed, creates) a sqlite3-backed database at path,
// wrapping the driver with the query-timing Hooks from hooks.go.
func Open(path string) (*sqlx.DB, error) {
	registerOnce.Do(func() {
		sql.Register("sqlite3_typeahead", sqlhooks.Wrap(&sqlite3.SQLiteDriver{}, &Hooks{}))
	})

	db, err := sqlx.Open("sqlite3_typeahead", fmt.Sprintf("%s?_foreign_keys=on", path))
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s: %w", path, err)
	}

	// sqlite does not benefit from concurrent writers; serialize at the
	// connection-pool level rather than contending on database locks.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: migrate: %w", err)
	}

	log.Infof("sqlstore: opened %s", path)
	return db, nil
}
