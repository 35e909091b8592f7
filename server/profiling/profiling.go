/*
 * Copyright 2026 The ZoneSync Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package profiling hosts the diagnostics endpoint of the server: event and
// reconciler counters under /metrics, and optionally the runtime profiles
// under /debug/pprof.
package profiling

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zonesync-team/zonesync/server/logging"
	"github.com/zonesync-team/zonesync/server/profiling/prometheus"
)

// ErrInvalidProfilingPort occurs when the configured port is out of range.
var ErrInvalidProfilingPort = errors.New("invalid port number for profiling server")

// Config holds the diagnostics endpoint settings. Pprof is off unless asked
// for since the profile handlers are not free.
type Config struct {
	Port        int  `yaml:"Port"`
	EnablePprof bool `yaml:"EnablePprof"`
}

// Validate checks the port range.
func (c *Config) Validate() error {
	if c.Port < 1 || 65535 < c.Port {
		return fmt.Errorf("must be between 1 and 65535, given %d: %w", c.Port, ErrInvalidProfilingPort)
	}
	return nil
}

// Server serves the diagnostics endpoint on its own port, next to the
// in-process team service.
type Server struct {
	conf       *Config
	httpServer *http.Server
}

// NewServer returns a diagnostics server for the given metrics. A nil metrics
// registry leaves /metrics unregistered, which tests use to run without
// collectors.
func NewServer(conf *Config, metrics *prometheus.Metrics) *Server {
	return &Server{
		conf: conf,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", conf.Port),
			Handler: buildRoutes(conf, metrics),
		},
	}
}

func buildRoutes(conf *Config, metrics *prometheus.Metrics) *http.ServeMux {
	mux := http.NewServeMux()
	if metrics != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	}
	if conf.EnablePprof {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return mux
}

// Start serves in the background. Listen errors other than a clean shutdown
// are logged, not returned, so a busy port does not take the team service
// down with it.
func (s *Server) Start() error {
	go func() {
		logging.DefaultLogger().Infof("serving profiling on %d", s.conf.Port)
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logging.DefaultLogger().Errorf("profiling server: %v", err)
		}
	}()
	return nil
}

// Shutdown stops the server, draining in-flight requests when graceful.
func (s *Server) Shutdown(graceful bool) {
	if graceful {
		if err := s.httpServer.Shutdown(context.Background()); err != nil {
			logging.DefaultLogger().Errorf("profiling server shutdown: %v", err)
		}
		return
	}

	if err := s.httpServer.Close(); err != nil {
		logging.DefaultLogger().Errorf("profiling server close: %v", err)
	}
}
