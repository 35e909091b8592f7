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

// Package pubsub provides the in-process publish/subscribe channel that
// propagates team mutation events between attached clients.
package pubsub

import (
	"context"

	"go.uber.org/zap"

	"github.com/zonesync-team/zonesync/api/types"
	"github.com/zonesync-team/zonesync/api/types/events"
	"github.com/zonesync-team/zonesync/pkg/cmap"
	"github.com/zonesync-team/zonesync/server/logging"
)

// teamSubs holds the subscriptions of one team channel.
type teamSubs struct {
	teamID types.ID
	subs   *cmap.Map[string, *Subscription]
}

func newTeamSubs(teamID types.ID) *teamSubs {
	return &teamSubs{
		teamID: teamID,
		subs:   cmap.New[string, *Subscription](),
	}
}

// Metrics is the subset of the metrics exporter the channel reports to.
type Metrics interface {
	AddPublishedEvent(eventType string)
	AddDroppedEvent(eventType string)
}

// Option configures a PubSub.
type Option func(*PubSub)

// WithMetrics sets the metrics exporter of the channel.
func WithMetrics(metrics Metrics) Option {
	return func(p *PubSub) {
		p.metrics = metrics
	}
}

// PubSub is the in-process realtime channel. Events published to a team are
// fanned out to every subscription of that team's channel.
type PubSub struct {
	subsByTeam *cmap.Map[types.ID, *teamSubs]
	metrics    Metrics
	logger     logging.Logger
}

// New creates an instance of PubSub.
func New(opts ...Option) *PubSub {
	pubSub := &PubSub{
		subsByTeam: cmap.New[types.ID, *teamSubs](),
		logger:     logging.New("pubsub"),
	}
	for _, opt := range opts {
		opt(pubSub)
	}
	return pubSub
}

// Subscribe subscribes to the events of the given team.
func (p *PubSub) Subscribe(_ context.Context, teamID types.ID) (*Subscription, error) {
	sub := NewSubscription()

	channel := p.subsByTeam.Upsert(teamID, func(subs *teamSubs, exists bool) *teamSubs {
		if !exists {
			subs = newTeamSubs(teamID)
		}
		return subs
	})
	channel.subs.Set(sub.ID(), sub)

	if logging.Enabled(zap.DebugLevel) {
		p.logger.Debugf("subscribe: team=%s sub=%s subs=%d", teamID, sub.ID(), channel.subs.Len())
	}
	return sub, nil
}

// Unsubscribe unsubscribes the given subscription from the team channel and
// closes it. The channel entry is removed when its last subscriber leaves.
func (p *PubSub) Unsubscribe(_ context.Context, teamID types.ID, sub *Subscription) {
	sub.Close()

	if channel, ok := p.subsByTeam.Get(teamID); ok {
		channel.subs.Delete(sub.ID(), func(_ *Subscription, exists bool) bool {
			return exists
		})

		p.subsByTeam.Delete(teamID, func(subs *teamSubs, exists bool) bool {
			return exists && subs.subs.Len() == 0
		})
	}

	if logging.Enabled(zap.DebugLevel) {
		p.logger.Debugf("unsubscribe: team=%s sub=%s", teamID, sub.ID())
	}
}

// Publish publishes the given event to every subscription of the event's
// team channel. Deliveries to stalled subscribers are dropped with a log;
// the channel promises at-least-once for live subscribers, not durability.
func (p *PubSub) Publish(_ context.Context, event events.TeamEvent) {
	if p.metrics != nil {
		p.metrics.AddPublishedEvent(string(event.Type))
	}

	channel, ok := p.subsByTeam.Get(event.TeamID)
	if !ok {
		return
	}

	for _, sub := range channel.subs.Values() {
		if !sub.Publish(event) {
			if p.metrics != nil {
				p.metrics.AddDroppedEvent(string(event.Type))
			}
			p.logger.Warnf(
				"publish timeout: team=%s event=%s sub=%s",
				event.TeamID, event.Type, sub.ID(),
			)
		}
	}
}

// ChannelLen returns the number of subscribers of the given team channel.
func (p *PubSub) ChannelLen(teamID types.ID) int {
	if channel, ok := p.subsByTeam.Get(teamID); ok {
		return channel.subs.Len()
	}
	return 0
}
