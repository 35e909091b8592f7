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

// Package prometheus provides a Prometheus metrics exporter.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/zonesync-team/zonesync/internal/version"
)

const (
	namespace          = "zonesync"
	versionLabel       = "version"
	operationLabel     = "operation"
	teamEventTypeLabel = "team_event_type"
)

// Metrics manages the metric information that ZoneSync is trying to measure.
type Metrics struct {
	registry *prometheus.Registry

	serverVersion *prometheus.GaugeVec

	teamOperationsTotal  *prometheus.CounterVec
	publishedEventsTotal *prometheus.CounterVec
	droppedEventsTotal   *prometheus.CounterVec
}

// NewMetrics creates an instance of Metrics.
func NewMetrics() (*Metrics, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, err
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}

	metrics := &Metrics{
		registry: reg,
		serverVersion: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "version",
			Help:      "Which version is running. 1 for 'server_version' label with current version.",
		}, []string{versionLabel}),
		teamOperationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "teams",
			Name:      "operations_total",
			Help:      "The total count of team mutation operations.",
		}, []string{operationLabel}),
		publishedEventsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pubsub",
			Name:      "published_events_total",
			Help:      "The total count of events published to team channels.",
		}, []string{teamEventTypeLabel}),
		droppedEventsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pubsub",
			Name:      "dropped_events_total",
			Help:      "The total count of events dropped on stalled subscribers.",
		}, []string{teamEventTypeLabel}),
	}

	metrics.serverVersion.With(prometheus.Labels{
		versionLabel: version.Version,
	}).Set(1)

	return metrics, nil
}

// AddTeamOperation adds one to the counter of the given mutation operation.
func (m *Metrics) AddTeamOperation(operation string) {
	m.teamOperationsTotal.With(prometheus.Labels{
		operationLabel: operation,
	}).Inc()
}

// AddPublishedEvent adds one to the published event counter.
func (m *Metrics) AddPublishedEvent(eventType string) {
	m.publishedEventsTotal.With(prometheus.Labels{
		teamEventTypeLabel: eventType,
	}).Inc()
}

// AddDroppedEvent adds one to the dropped event counter.
func (m *Metrics) AddDroppedEvent(eventType string) {
	m.droppedEventsTotal.With(prometheus.Labels{
		teamEventTypeLabel: eventType,
	}).Inc()
}

// Registry returns the registry of this metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
