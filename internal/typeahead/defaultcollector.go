// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package typeahead

// fifoCollector is the trivial Collector the engine falls back to when
// Config.NewCollector is not supplied. It accepts hits in traversal order
// and stops once maxResults is reached; it does not sort by score.
// Production callers should supply a real top-K Collector (see
// internal/collector) via Config.NewCollector, the same way a Selector is
// supplied at construction rather than hardcoded.
type fifoCollector struct {
	max  int
	hits []Hit
}

func newFIFOCollector(max int) Collector {
	return &fifoCollector{max: max}
}

func (c *fifoCollector) Add(elem Element, score float64, sourceName string, proximity Proximity) {
	c.hits = append(c.hits, Hit{Element: elem, Score: score, SourceName: sourceName, Proximity: proximity})
}

func (c *fifoCollector) CanStop() bool {
	return c.max > 0 && len(c.hits) >= c.max
}

func (c *fifoCollector) Hits() []Hit {
	return c.hits
}
