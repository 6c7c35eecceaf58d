// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/pdiddy/research-server/internal/arxiv"
	"github.com/pdiddy/research-server/internal/history"
	"github.com/pdiddy/research-server/internal/observability"
	"github.com/pdiddy/research-server/internal/paperstore"
	"github.com/pdiddy/research-server/internal/research"
	"github.com/pdiddy/research-server/pkg/types"
)

// app holds the components shared by all commands.
type app struct {
	cfg      types.Config
	log      zerolog.Logger
	registry *prometheus.Registry
	metrics  *observability.Metrics
	history  *history.Store
	service  *research.Service
}

// newApp wires the research service from cfg. Logs go to stderr unless
// logsToConfiguredOutput is set.
func newApp(cfg types.Config, logsToConfiguredOutput bool) (*app, error) {
	a := &app{
		cfg: cfg,
		log: observability.NewLogger(cfg.Logging, !logsToConfiguredOutput),
	}

	opts := []research.Option{research.WithLogger(a.log)}

	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		a.metrics = observability.NewMetrics(a.registry)
		opts = append(opts, research.WithMetrics(a.metrics))
	}

	if cfg.History.Enabled {
		h, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		a.history = h
		opts = append(opts, research.WithRecorder(h))
	}

	a.service = research.NewService(arxiv.New(cfg.Arxiv), paperstore.New(cfg.PapersDir), opts...)
	return a, nil
}

// Close releases the history database.
func (a *app) Close() error {
	if a.history != nil {
		return a.history.Close()
	}
	return nil
}

// setupApp loads the configuration and builds an app for a terminal command.
func setupApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newApp(cfg, false)
}
