// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/netgraph/typeahead/internal/bloomhash"
	"github.com/netgraph/typeahead/internal/collector"
	"github.com/netgraph/typeahead/internal/config"
	"github.com/netgraph/typeahead/internal/connfilter"
	"github.com/netgraph/typeahead/internal/ingest"
	"github.com/netgraph/typeahead/internal/metrics"
	"github.com/netgraph/typeahead/internal/schedule"
	"github.com/netgraph/typeahead/internal/selector"
	"github.com/netgraph/typeahead/internal/stores/sqlstore"
	"github.com/netgraph/typeahead/internal/typeahead"
	"github.com/netgraph/typeahead/pkg/log"
)

func main() {
	var flagConfigFile, flagLogLevel string
	var flagLogDate bool
	flag.StringVar(&flagConfigFile, "config", "./config.json", "Load engine configuration from `config.json`")
	flag.StringVar(&flagLogLevel, "loglevel", "info", "One of debug, info, notice, warn, err, crit")
	flag.BoolVar(&flagLogDate, "logdate", false, "Prefix log lines with the current time")
	flag.Parse()

	log.Configure(flagLogLevel, flagLogDate)

	cfg := config.Default()
	if _, err := os.Stat(flagConfigFile); err == nil {
		loaded, err := config.Load(flagConfigFile)
		if err != nil {
			log.Fatalf("loading %s: %s", flagConfigFile, err.Error())
		}
		cfg = loaded
	}

	db, err := sqlstore.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("opening store %s: %s", cfg.Store.Path, err.Error())
	}

	rng := typeahead.Range{IndexStart: cfg.Range.IndexStart, Capacity: cfg.Range.Capacity}
	elements := sqlstore.NewElementStore(db, rng, cfg.Store.CacheBytes)
	adjacency := sqlstore.NewAdjacencyStore(db)

	engCfg := typeahead.DefaultConfig()
	engCfg.Name = cfg.Name
	engCfg.BytesPoolSize = cfg.BytesPoolSize
	engCfg.ByteArraySize = cfg.ByteArraySize
	engCfg.LoggingEnabled = cfg.LoggingEnabled
	engCfg.PartialReadEnabled = cfg.PartialReadEnabled
	engCfg.NewCollector = func(maxResults int) typeahead.Collector {
		if maxResults <= 0 {
			maxResults = 20
		}
		return collector.New(maxResults)
	}

	engine := typeahead.NewEngine(rng, elements, adjacency, bloomhash.New(), selector.Prefix{}, connfilter.AllowAll{}, engCfg)
	engine.SetLogger(func(line string) { log.Info(line) })

	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(cfg.Name, reg)
	metrics.PoolGauge(cfg.Name, engine, reg)
	engine.SetStatsLogger(rec.Observe)

	flushInterval, err := time.ParseDuration(cfg.FlushInterval)
	if err != nil {
		flushInterval = 30 * time.Second
	}
	sched, err := schedule.NewScheduler(engine, flushInterval)
	if err != nil {
		log.Fatalf("starting flush scheduler: %s", err.Error())
	}

	var sub *ingest.Subscriber
	if cfg.Nats.Address != "" {
		sub, err = ingest.Connect(ingest.Config{
			Address:       cfg.Nats.Address,
			RatePerSecond: cfg.Nats.RatePerSecond,
			Burst:         cfg.Nats.Burst,
		}, engine)
		if err != nil {
			log.Fatalf("connecting to nats: %s", err.Error())
		}
		subject := cfg.Nats.Subject
		if subject == "" {
			subject = "typeahead.connections"
		}
		if err := sub.Subscribe(subject); err != nil {
			log.Fatalf("subscribing to %s: %s", subject, err.Error())
		}
	}

	var wg sync.WaitGroup
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		addr := cfg.Metrics.Addr
		if addr == "" {
			addr = ":9090"
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{Addr: addr, Handler: mux}

		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Infof("metrics server listening at %s", addr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Errorf("metrics server: %s", err.Error())
			}
		}()
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	log.Print("shutting down...")
	if sub != nil {
		sub.Close()
	}
	if err := sched.Shutdown(); err != nil {
		log.Warnf("scheduler shutdown: %s", err.Error())
	}
	if err := engine.Flush(); err != nil {
		log.Warnf("final flush: %s", err.Error())
	}
	if metricsServer != nil {
		metricsServer.Close()
	}
	wg.Wait()
	log.Print("graceful shutdown completed")
}
