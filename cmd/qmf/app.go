// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MrOnlineCoder/qmf/config"
	"github.com/MrOnlineCoder/qmf/enumerate"
	"github.com/MrOnlineCoder/qmf/monotone"
	"github.com/MrOnlineCoder/qmf/repl"
	"github.com/MrOnlineCoder/qmf/transform"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const metricsShutdownTimeout = 5 * time.Second

// app is the wired runtime behind every command.
type app struct {
	cfg     *config.Config
	logger  *logrus.Logger
	shell   *repl.Shell
	metrics *http.Server
}

// newApp loads the config, applies flag overrides and wires the shell.
func newApp(cmd *cobra.Command, f *rootFlags, interactive bool) (*app, error) {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return nil, err
	}
	logger, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	log := logger.WithField("action", "startup")

	sel, err := cfg.SelectorValue()
	if err != nil {
		return nil, err
	}
	engine, err := transform.NewEngine(cfg.Vars, sel)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}
	enumOpts := []enumerate.Option{
		enumerate.WithPolicy(cfg.Policy()),
		enumerate.WithTolerance(cfg.Tolerance),
		enumerate.WithLogger(logger),
	}
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		enumOpts = append(enumOpts, enumerate.WithMetrics(enumerate.NewMetrics(reg)))
		a.metrics = serveMetrics(cfg.Metrics.Addr, reg, logger)
	}

	a.shell = repl.New(repl.Config{
		Engine:           engine,
		Oracle:           monotone.New(monotone.WithTolerance(cfg.Tolerance)),
		Backend:          cfg.Backend(logger),
		EnumerateOptions: enumOpts,
		HistogramPath:    cfg.Enumeration.HistogramPath,
		HistoryFile:      f.historyFile,
		Interactive:      interactive,
		Out:              cmd.OutOrStdout(),
		Logger:           logger,
	})
	a.shell.SetDebug(f.debug)

	log.WithFields(logrus.Fields{
		"vars":     cfg.Vars,
		"selector": engine.Snapshot().Selector().String(),
		"policy":   cfg.Policy().String(),
	}).Debug("qmf ready")

	return a, nil
}

// loadConfig reads --config (or the defaults) and applies changed flags.
func loadConfig(cmd *cobra.Command, f *rootFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("vars") {
		cfg.Vars = f.vars
		if !flags.Changed("selector") && len(cfg.Selector) != f.vars {
			cfg.Selector = nil
		}
	}
	if flags.Changed("selector") {
		cfg.Selector = f.selector
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = f.tolerance
	}
	if flags.Changed("hist") {
		cfg.Enumeration.HistogramPath = f.histogram
	}
	if flags.Changed("workers") {
		cfg.Enumeration.Workers = f.workers
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = f.metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger logrus.FieldLogger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log := logger.WithFields(logrus.Fields{"action": "metrics", "addr": addr})
		log.Info("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server stopped")
		}
	}()

	return srv
}

// Close stops the metrics server, if any.
func (a *app) Close() {
	if a.metrics == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
	defer cancel()
	if err := a.metrics.Shutdown(ctx); err != nil {
		a.logger.WithError(err).Warn("metrics shutdown")
	}
}
