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

package server

import (
	"sync"

	"github.com/zonesync-team/zonesync/server/backend"
	"github.com/zonesync-team/zonesync/server/logging"
	"github.com/zonesync-team/zonesync/server/profiling"
	"github.com/zonesync-team/zonesync/server/profiling/prometheus"
	"github.com/zonesync-team/zonesync/server/teams"
)

// ZoneSync is the reference in-process server. It owns the backend, the
// team service and the profiling endpoint.
type ZoneSync struct {
	conf            *Config
	backend         *backend.Backend
	teams           *teams.Service
	profilingServer *profiling.Server

	shutdown     bool
	shutdownLock sync.Mutex
}

// New creates a server instance from the given config.
func New(conf *Config) (*ZoneSync, error) {
	conf.ensureDefaultValue()
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	metrics, err := prometheus.NewMetrics()
	if err != nil {
		return nil, err
	}

	be, err := backend.New(conf.Auth.SecretKey, conf.ParseSessionDuration(), metrics)
	if err != nil {
		return nil, err
	}

	var profilingServer *profiling.Server
	if conf.Profiling != nil {
		profilingServer = profiling.NewServer(conf.Profiling, metrics)
	}

	return &ZoneSync{
		conf:            conf,
		backend:         be,
		teams:           teams.New(be),
		profilingServer: profilingServer,
	}, nil
}

// Start starts the auxiliary servers. The team service itself is consumed
// in-process.
func (z *ZoneSync) Start() error {
	if z.profilingServer != nil {
		if err := z.profilingServer.Start(); err != nil {
			return err
		}
	}
	logging.DefaultLogger().Info("server started")
	return nil
}

// Shutdown releases the server's resources. It is idempotent.
func (z *ZoneSync) Shutdown(graceful bool) error {
	z.shutdownLock.Lock()
	defer z.shutdownLock.Unlock()
	if z.shutdown {
		return nil
	}
	z.shutdown = true

	if z.profilingServer != nil {
		z.profilingServer.Shutdown(graceful)
	}
	return z.backend.Shutdown()
}

// Teams returns the team service. It satisfies both the client's team and
// auth contracts.
func (z *ZoneSync) Teams() *teams.Service {
	return z.teams
}

// Broker returns the realtime broker, adapted to the client's contract.
func (z *ZoneSync) Broker() *Broker {
	return &Broker{pubsub: z.backend.PubSub}
}
