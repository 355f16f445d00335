// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package typeahead

// IndexElement applies an element update. It serializes with Flush's
// element-store pass under the same lock.
//
// The filter store is updated before the element store, so a concurrent
// reader either sees the old element with the old mask (consistent) or,
// in a brief interleaving, the new mask with the old element (harmless:
// Selector re-checks the fetched element before it ever reaches the
// Collector).
//
// Returns (false, nil) if elem's id falls outside the engine's Range: an
// ArgumentRejected condition carries no error. A non-nil error
// means the underlying ElementStore write failed (IndexFailure); the
// filter store is not rolled back in that case (at-least-once semantics).
func (e *Engine) IndexElement(elem Element, timestamp int64) (bool, error) {
	e.elementMu.Lock()
	defer e.elementMu.Unlock()

	if !e.rng.Contains(elem.ElementID()) {
		return false, nil
	}

	mask := e.bloom.IndexFilter(elem)
	e.filterStore.Set(elem.ElementID(), mask)

	if err := e.elements.SetElement(elem.ElementID(), elem, timestamp); err != nil {
		return true, err
	}
	return true, nil
}

// IndexConnection applies a connection update. It serializes with Flush's
// connection-store pass under the connection lock.
//
// A rejected connection (per the configured ConnectionFilter) returns
// (false, nil): ArgumentRejected carries no error. An active connection
// with Strength <= 0 inherits the currently stored strength for
// (Source, Target), or 0 if none is stored; the inherit-then-set is not
// additionally synchronized beyond the connection lock already held here
// (see DESIGN.md for the rationale).
func (e *Engine) IndexConnection(conn Connection) (bool, error) {
	e.connectionMu.Lock()
	defer e.connectionMu.Unlock()

	if e.connFilter != nil && !e.connFilter.Accept(conn) {
		return false, nil
	}

	if !conn.Active {
		if err := e.adjacency.Remove(conn.Source, conn.Target, conn.Timestamp); err != nil {
			return true, err
		}
		return true, nil
	}

	strength := conn.Strength
	if strength <= 0 {
		if stored, ok := e.adjacency.Weight(conn.Source, conn.Target); ok {
			strength = stored
		} else {
			strength = 0
		}
	}

	if err := e.adjacency.SetWeight(conn.Source, conn.Target, strength, conn.Timestamp); err != nil {
		return true, err
	}
	return true, nil
}

// Accept reports whether the configured ConnectionFilter would admit c,
// without applying any write. A nil filter accepts everything.
func (e *Engine) Accept(c Connection) bool {
	if e.connFilter == nil {
		return true
	}
	return e.connFilter.Accept(c)
}

// AcceptParams is the positional-argument form of Accept.
func (e *Engine) AcceptParams(source, target int64, active bool) bool {
	return e.Accept(Connection{Source: source, Target: target, Active: active})
}

// Flush acquires the element lock and the connection lock in turn and
// persists the corresponding store through each.
func (e *Engine) Flush() error {
	e.elementMu.Lock()
	elemErr := e.elements.Persist()
	e.elementMu.Unlock()
	if elemErr != nil {
		return elemErr
	}

	e.connectionMu.Lock()
	connErr := e.adjacency.Persist()
	e.connectionMu.Unlock()
	return connErr
}
