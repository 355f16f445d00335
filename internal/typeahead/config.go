// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package typeahead

// Config holds the engine's tunables. All fields are optional; Engine
// replaces zero-valued numeric, name, adjuster and collector fields with
// the defaults below. The boolean fields keep whatever value is supplied,
// so a zero Config has LoggingEnabled false; DefaultConfig sets it true.
type Config struct {
	// Name identifies this engine instance in log lines.
	Name string

	BytesPoolSize      int
	ByteArraySize      int
	LoggingEnabled     bool
	PartialReadEnabled bool

	// WeightAdjuster combines a 1st-degree strength with a 2nd-degree
	// strength into the propagated strength for DEGREE_2 hits. Defaults
	// to DefaultWeightAdjuster (simple sum).
	WeightAdjuster WeightAdjuster

	// NewCollector builds the Collector the Search/SearchMax convenience
	// methods hand the query executor; maxResults is 0 for unbounded.
	// Defaults to a FIFO collector that does not sort by score. Supply a
	// real top-K implementation (see internal/collector) for production use.
	NewCollector func(maxResults int) Collector
}

// withDefaults returns a copy of cfg with zero-valued fields replaced by
// their documented defaults.
func (cfg Config) withDefaults() Config {
	if cfg.BytesPoolSize <= 0 {
		cfg.BytesPoolSize = DefaultBytesPoolSize
	}
	if cfg.ByteArraySize <= 0 {
		cfg.ByteArraySize = DefaultByteArraySize
	}
	if cfg.WeightAdjuster == nil {
		cfg.WeightAdjuster = DefaultWeightAdjuster
	}
	if cfg.Name == "" {
		cfg.Name = "typeahead"
	}
	if cfg.NewCollector == nil {
		cfg.NewCollector = newFIFOCollector
	}
	return cfg
}

// DefaultConfig returns a Config with every field set to its documented
// default, including LoggingEnabled = true.
func DefaultConfig() Config {
	return Config{
		Name:               "typeahead",
		BytesPoolSize:      DefaultBytesPoolSize,
		ByteArraySize:      DefaultByteArraySize,
		LoggingEnabled:     true,
		PartialReadEnabled: false,
		WeightAdjuster:     DefaultWeightAdjuster,
	}
}
