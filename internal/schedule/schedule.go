// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package schedule runs an Engine's periodic Flush on a gocron scheduler.
package schedule

import (
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/netgraph/typeahead/pkg/log"
)

// Flusher is satisfied by *typeahead.Engine.
type Flusher interface {
	Flush() error
}

// Scheduler wraps a gocron.Scheduler running one engine's Flush on a
// fixed interval.
type Scheduler struct {
	s gocron.Scheduler
}

// NewScheduler creates and starts a Scheduler that calls engine.Flush
// every interval, logging (but not propagating) any error Flush returns:
// indexing is at-least-once and never rolled back, so a failed flush is
// simply retried on the next tick.
func NewScheduler(engine Flusher, interval time.Duration) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := engine.Flush(); err != nil {
				log.Errorf("schedule: flush failed: %v", err)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	return &Scheduler{s: s}, nil
}

// Shutdown stops the scheduler, waiting for any in-flight flush to finish.
func (sch *Scheduler) Shutdown() error {
	return sch.s.Shutdown()
}
