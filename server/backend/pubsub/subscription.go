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

package pubsub

import (
	"sync"
	gotime "time"

	"github.com/rs/xid"

	"github.com/zonesync-team/zonesync/api/types/events"
)

const (
	// publishTimeout is the timeout for publishing an event to one
	// subscriber. A subscriber that stalls longer drops the event; the
	// at-least-once contract is per delivery attempt, not a queue.
	publishTimeout = 100 * gotime.Millisecond

	// subscriptionBufferSize is the size of each subscription's event
	// channel.
	subscriptionBufferSize = 64
)

// Subscription represents a subscription of one client to the events of one
// team channel.
type Subscription struct {
	id     string
	mu     sync.Mutex
	closed bool
	events chan events.TeamEvent
}

// NewSubscription creates a new instance of Subscription.
func NewSubscription() *Subscription {
	return &Subscription{
		id:     xid.New().String(),
		events: make(chan events.TeamEvent, subscriptionBufferSize),
	}
}

// ID returns the id of this subscription.
func (s *Subscription) ID() string {
	return s.id
}

// Events returns the event channel of this subscription.
func (s *Subscription) Events() <-chan events.TeamEvent {
	return s.events
}

// Close closes all resources of this Subscription.
func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.events)
	}
}

// Publish publishes the given event to the subscriber and reports whether
// the delivery succeeded within the publish timeout.
func (s *Subscription) Publish(event events.TeamEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.events <- event:
		return true
	case <-gotime.After(publishTimeout):
		return false
	}
}
