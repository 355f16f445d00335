// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validate checks raw against Schema.
func Validate(raw []byte) error {
	sch, err := jsonschema.CompileString("typeahead-config.json", Schema)
	if err != nil {
		return fmt.Errorf("config: compiling schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("config: parsing instance: %w", err)
	}

	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("config: schema violation: %w", err)
	}
	return nil
}
