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

// Package backend bundles the storage, realtime channel and token issuance
// that the reference team service runs on.
package backend

import (
	"time"

	"github.com/zonesync-team/zonesync/server/auth"
	"github.com/zonesync-team/zonesync/server/backend/pubsub"
	"github.com/zonesync-team/zonesync/server/backend/teamdb"
	"github.com/zonesync-team/zonesync/server/profiling/prometheus"
)

// Backend is the collection of server-side components the team service
// depends on.
type Backend struct {
	DB           *teamdb.DB
	PubSub       *pubsub.PubSub
	TokenManager *auth.TokenManager
	Metrics      *prometheus.Metrics
}

// New creates an instance of Backend.
func New(secretKey string, sessionDuration time.Duration, metrics *prometheus.Metrics) (*Backend, error) {
	db, err := teamdb.New()
	if err != nil {
		return nil, err
	}

	var pubSubOpts []pubsub.Option
	if metrics != nil {
		pubSubOpts = append(pubSubOpts, pubsub.WithMetrics(metrics))
	}

	return &Backend{
		DB:           db,
		PubSub:       pubsub.New(pubSubOpts...),
		TokenManager: auth.NewTokenManager(secretKey, sessionDuration),
		Metrics:      metrics,
	}, nil
}

// Shutdown closes the backend resources.
func (b *Backend) Shutdown() error {
	return b.DB.Close()
}
