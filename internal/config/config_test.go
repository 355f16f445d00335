// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeTempConfig(t, `{
		"name": "prod",
		"range": {"indexStart": 0, "capacity": 1000000},
		"loggingEnabled": false
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Name)
	assert.Equal(t, int64(1000000), cfg.Range.Capacity)
	assert.False(t, cfg.LoggingEnabled)
	// Unset fields still fall back to Default().
	assert.Equal(t, 100, cfg.BytesPoolSize)
}

func TestLoadMissingRangeFails(t *testing.T) {
	path := writeTempConfig(t, `{"name": "prod"}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadZeroCapacityFails(t *testing.T) {
	path := writeTempConfig(t, `{"range": {"capacity": 0}}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadUnknownFieldFails(t *testing.T) {
	path := writeTempConfig(t, `{"range": {"capacity": 10}, "bogus": true}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsMalformedSchema(t *testing.T) {
	err := Validate([]byte(`{"range": {"capacity": -1}}`))
	assert.Error(t, err)
}
