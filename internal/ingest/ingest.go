// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ingest feeds an Engine's Index Executor from a NATS subject,
// decoding wire messages into typeahead.Connection updates. It is the
// optional streaming counterpart to a batch/backfill importer; nothing in
// internal/typeahead depends on it.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
	"golang.org/x/time/rate"

	"github.com/netgraph/typeahead/internal/typeahead"
	"github.com/netgraph/typeahead/pkg/log"
)

// ConnectionIndexer is satisfied by *typeahead.Engine.
type ConnectionIndexer interface {
	IndexConnection(c typeahead.Connection) (bool, error)
}

// wireConnection is the JSON payload expected on the configured subject.
type wireConnection struct {
	Source    int64 `json:"source"`
	Target    int64 `json:"target"`
	Strength  int   `json:"strength"`
	Timestamp int64 `json:"timestamp"`
	Active    bool  `json:"active"`
}

// Subscriber wraps a NATS connection dedicated to streaming connection
// updates into an Engine, with an optional rate limit to keep a bursty
// publisher from starving the Index Executor's connection lock.
type Subscriber struct {
	conn    *nats.Conn
	limiter *rate.Limiter
	engine  ConnectionIndexer

	mu   sync.Mutex
	subs []*nats.Subscription
}

// Config carries the NATS connection address and throttle settings.
type Config struct {
	Address string

	// RatePerSecond bounds how many connection updates per second are
	// applied; 0 disables throttling.
	RatePerSecond float64
	Burst         int
}

// Connect dials NATS and returns a Subscriber feeding engine.
func Connect(cfg Config, engine ConnectionIndexer) (*Subscriber, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("ingest: address is required")
	}

	conn, err := nats.Connect(cfg.Address,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warnf("ingest: disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Infof("ingest: reconnected to %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("ingest: connect: %w", err)
	}

	s := &Subscriber{conn: conn, engine: engine}
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	log.Infof("ingest: connected to %s", cfg.Address)
	return s, nil
}

// Subscribe starts consuming connection updates from subject. Malformed
// messages are logged and skipped rather than killing the subscription: a
// rejected/unparsable update is an ArgumentRejected condition, not an
// IndexFailure.
func (s *Subscriber) Subscribe(subject string) error {
	sub, err := s.conn.Subscribe(subject, func(msg *nats.Msg) {
		s.handle(msg.Data)
	})
	if err != nil {
		return fmt.Errorf("ingest: subscribe to %q: %w", subject, err)
	}

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
	return nil
}

func (s *Subscriber) handle(data []byte) {
	if s.limiter != nil {
		if err := s.limiter.Wait(context.Background()); err != nil {
			return
		}
	}

	var wc wireConnection
	if err := json.Unmarshal(data, &wc); err != nil {
		log.Warnf("ingest: malformed connection payload: %v", err)
		return
	}

	conn := typeahead.Connection{
		Source:    wc.Source,
		Target:    wc.Target,
		Strength:  wc.Strength,
		Timestamp: wc.Timestamp,
		Active:    wc.Active,
	}

	if _, err := s.engine.IndexConnection(conn); err != nil {
		log.Errorf("ingest: IndexConnection failed: %v", err)
	}
}

// Close unsubscribes and closes the underlying NATS connection.
func (s *Subscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil {
			log.Warnf("ingest: unsubscribe failed: %v", err)
		}
	}
	s.subs = nil
	s.conn.Close()
}
