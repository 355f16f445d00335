// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics self-instruments an Engine with Prometheus collectors:
// per-query hit-stage counters, query latency, and the byte-buffer pool's
// occupancy. Wiring it is optional and entirely outside the engine core;
// cmd/typeaheadd wires it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/netgraph/typeahead/internal/typeahead"
)

// Recorder exposes the Prometheus collectors registered for one engine
// instance, keyed by its name so multiple engines can share a registry.
type Recorder struct {
	browseHits  prometheus.Counter
	filterHits  prometheus.Counter
	resultHits  prometheus.Counter
	queryTime   prometheus.Histogram
	queryErrors prometheus.Counter
}

// NewRecorder registers a fresh set of collectors for engineName against
// reg and returns a Recorder to feed from a typeahead.StatsLogger or
// directly after each Search* call. Passing prometheus.DefaultRegisterer
// matches the global-registry style most callers expect; tests should
// pass a fresh prometheus.NewRegistry() to avoid duplicate-registration
// panics across cases.
func NewRecorder(engineName string, reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"engine": engineName}
	return &Recorder{
		browseHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "typeahead",
			Name:        "browse_hits_total",
			Help:        "Adjacency edges visited during query traversal.",
			ConstLabels: labels,
		}),
		filterHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "typeahead",
			Name:        "filter_hits_total",
			Help:        "Candidates that passed the Bloom prefilter.",
			ConstLabels: labels,
		}),
		resultHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "typeahead",
			Name:        "result_hits_total",
			Help:        "Candidates the Selector accepted.",
			ConstLabels: labels,
		}),
		queryTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "typeahead",
			Name:        "query_duration_seconds",
			Help:        "Wall-clock duration of a completed query.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}),
		queryErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "typeahead",
			Name:        "query_errors_total",
			Help:        "Queries that hit an IteratorFailure or IndexFailure.",
			ConstLabels: labels,
		}),
	}
}

// Observe records one completed query's HitStats.
func (r *Recorder) Observe(stats typeahead.HitStats) {
	r.browseHits.Add(float64(stats.NumBrowseHits))
	r.filterHits.Add(float64(stats.NumFilterHits))
	r.resultHits.Add(float64(stats.NumResultHits))
	r.queryTime.Observe(stats.TotalTime.Seconds())
}

// ObserveError records a query that ended in an error.
func (r *Recorder) ObserveError() {
	r.queryErrors.Inc()
}

// PoolGauge registers a gauge tracking engine's BufferPool occupancy
// against reg.
func PoolGauge(engineName string, engine *typeahead.Engine, reg prometheus.Registerer) prometheus.GaugeFunc {
	return promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   "typeahead",
		Name:        "buffer_pool_available",
		Help:        "Buffers currently sitting idle in the pool.",
		ConstLabels: prometheus.Labels{"engine": engineName},
	}, func() float64 { return float64(engine.PoolLen()) })
}
