// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package config

// Schema is the JSON schema the on-disk configuration file must satisfy.
// Only range.capacity is required: everything else falls back to Default.
const Schema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"name": { "type": "string" },
		"range": {
			"type": "object",
			"properties": {
				"indexStart": { "type": "integer", "minimum": 0 },
				"capacity":   { "type": "integer", "minimum": 1 }
			},
			"required": ["capacity"]
		},
		"bytesPoolSize":      { "type": "integer", "minimum": 0 },
		"byteArraySize":      { "type": "integer", "minimum": 0 },
		"loggingEnabled":     { "type": "boolean" },
		"partialReadEnabled": { "type": "boolean" },
		"store": {
			"type": "object",
			"properties": {
				"driver":     { "type": "string" },
				"path":       { "type": "string" },
				"cacheBytes": { "type": "integer", "minimum": 0 }
			}
		},
		"nats": {
			"type": "object",
			"properties": {
				"address":       { "type": "string" },
				"subject":       { "type": "string" },
				"ratePerSecond": { "type": "number", "minimum": 0 },
				"burst":         { "type": "integer", "minimum": 0 }
			}
		},
		"metrics": {
			"type": "object",
			"properties": {
				"enabled": { "type": "boolean" },
				"addr":    { "type": "string" }
			}
		},
		"flushInterval": { "type": "string" }
	},
	"required": ["range"]
}`
