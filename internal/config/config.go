// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads and validates the on-disk JSON configuration for a
// typeahead deployment: the engine's tunables plus the optional sqlite,
// NATS, and metrics wiring cmd/typeaheadd assembles around it.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Keys holds the process-wide configuration, populated by Load.
var Keys = Default()

// Config is the top-level on-disk configuration shape.
type Config struct {
	Name string `json:"name"`

	Range struct {
		IndexStart int64 `json:"indexStart"`
		Capacity   int64 `json:"capacity"`
	} `json:"range"`

	BytesPoolSize      int  `json:"bytesPoolSize"`
	ByteArraySize      int  `json:"byteArraySize"`
	LoggingEnabled     bool `json:"loggingEnabled"`
	PartialReadEnabled bool `json:"partialReadEnabled"`

	Store struct {
		Driver     string `json:"driver"`
		Path       string `json:"path"`
		CacheBytes int    `json:"cacheBytes"`
	} `json:"store"`

	Nats struct {
		Address       string  `json:"address"`
		Subject       string  `json:"subject"`
		RatePerSecond float64 `json:"ratePerSecond"`
		Burst         int     `json:"burst"`
	} `json:"nats"`

	Metrics struct {
		Enabled bool   `json:"enabled"`
		Addr    string `json:"addr"`
	} `json:"metrics"`

	FlushInterval string `json:"flushInterval"`
}

// Default returns a Config populated with the engine's own documented
// defaults (see typeahead.DefaultConfig), plus a local sqlite store.
func Default() Config {
	var cfg Config
	cfg.Name = "typeahead"
	cfg.BytesPoolSize = 100
	cfg.ByteArraySize = 32768
	cfg.LoggingEnabled = true
	cfg.Store.Driver = "sqlite3"
	cfg.Store.Path = "./var/typeahead.db"
	cfg.Store.CacheBytes = 1024 * 1024
	cfg.FlushInterval = "30s"
	return cfg
}

// Load reads path, validates it against Schema, and decodes it over
// Default()'s values (so a partial file only overrides what it sets).
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := Validate(raw); err != nil {
		return Config{}, fmt.Errorf("config: validate %s: %w", path, err)
	}

	cfg := Default()
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if cfg.Range.Capacity <= 0 {
		return Config{}, fmt.Errorf("config: range.capacity must be positive")
	}

	Keys = cfg
	return cfg, nil
}
