// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package sqlstore

import "github.com/jmoiron/sqlx"

const schema = `
CREATE TABLE IF NOT EXISTS elements (
	id        INTEGER PRIMARY KEY,
	terms     TEXT NOT NULL,
	score     REAL NOT NULL DEFAULT 0,
	timestamp INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS adjacency (
	source    INTEGER PRIMARY KEY,
	data      BLOB NOT NULL,
	timestamp INTEGER NOT NULL DEFAULT 0
);
`

func migrate(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	return err
}
