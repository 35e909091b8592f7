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

// Package team provides the authoritative in-memory state of one team. The
// store holds a single snapshot seeded by one fetch and mutated from two
// concurrent sources: optimistic local edits and realtime event deliveries.
// Every mutation funnels through the store, rebuilds the affected slices
// instead of mutating in place, and is safe under at-least-once redelivery.
package team

import (
	"sync"
	"time"

	"github.com/zonesync-team/zonesync/api/types"
	"github.com/zonesync-team/zonesync/api/types/events"
	"github.com/zonesync-team/zonesync/server/logging"
)

const (
	// DefaultRemovalDedupWindow is how long a second delivery of the same
	// removal is suppressed so the user is not notified twice.
	DefaultRemovalDedupWindow = 1500 * time.Millisecond
)

// Snapshot is one immutable view of a team and the viewer's role on it.
// Consumers must not hold a writable copy; they read snapshots and send
// mutations through the store.
type Snapshot struct {
	// Team is the team state.
	Team types.Team

	// Role is the capability level of the viewer's session.
	Role types.Role

	// Version increases by one for every applied mutation, so a consumer
	// can cheaply detect staleness of a previously taken snapshot.
	Version int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for the removal de-dup window.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger of the store.
func WithLogger(logger logging.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithRemovalDedupWindow sets the suppression window for redelivered
// removal events.
func WithRemovalDedupWindow(window time.Duration) Option {
	return func(s *Store) {
		s.dedupWindow = window
	}
}

// Store is the single writer over one team's snapshot. All mutations, local
// and remote, are expressed as team events and applied under the store's
// lock, so there is one logical writer at a time and queued transforms apply
// in order.
type Store struct {
	mu sync.Mutex

	snapshot Snapshot
	seeded   bool

	now         func() time.Time
	dedupWindow time.Duration

	// recentRemovals remembers recently applied removals per entity id so
	// redeliveries inside the window are absorbed silently.
	recentRemovals map[types.ID]time.Time

	logger logging.Logger
}

// NewStore creates an empty store. It holds nothing until Seed is called.
func NewStore(opts ...Option) *Store {
	store := &Store{
		now:            time.Now,
		dedupWindow:    DefaultRemovalDedupWindow,
		recentRemovals: make(map[types.ID]time.Time),
		logger:         logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Seed replaces the snapshot with the result of an authoritative fetch.
func (s *Store) Seed(team types.Team, role types.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = Snapshot{
		Team:    team.DeepCopy(),
		Role:    role,
		Version: s.snapshot.Version + 1,
	}
	s.seeded = true
}

// Seeded returns true once the store holds a fetched team.
func (s *Store) Seeded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.seeded
}

// Snapshot returns the current snapshot. The returned team is a deep copy;
// consumers can read it without racing with the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.snapshot
	out.Team = s.snapshot.Team.DeepCopy()
	return out
}

// Apply reconciles one realtime event into the snapshot and reports whether
// the snapshot changed. Duplicate and out-of-order deliveries are absorbed:
// a duplicate add is ignored, a redelivered removal inside the de-dup window
// is suppressed, and updates are last-write-wins.
func (s *Store) Apply(event events.TeamEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.seeded {
		return false
	}

	changed := s.applyLocked(event)
	if changed {
		s.snapshot.Version++
	}
	return changed
}

// Optimistic applies a local mutation, expressed as the event it mirrors,
// before the backing request is confirmed. It returns a single-use rollback
// that restores the pre-mutation snapshot, and whether the mutation changed
// anything. Running local writes through the same transforms as realtime
// deliveries keeps the later echo of the write a no-op.
func (s *Store) Optimistic(event events.TeamEvent) (func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.seeded {
		return func() {}, false
	}

	captured := s.snapshot
	captured.Team = s.snapshot.Team.DeepCopy()

	if !s.applyLocked(event) {
		return func() {}, false
	}
	s.snapshot.Version++

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			version := s.snapshot.Version + 1
			s.snapshot = captured
			s.snapshot.Version = version

			// A rolled-back removal must not suppress a real one.
			switch event.Type {
			case types.MemberRemovedEvent:
				delete(s.recentRemovals, event.MemberID)
			case types.GroupRemovedEvent:
				delete(s.recentRemovals, event.GroupID)
			}
		})
	}, true
}

// applyLocked dispatches the event to its transform. The caller must hold
// the store's lock.
func (s *Store) applyLocked(event events.TeamEvent) bool {
	current := s.snapshot.Team
	var next types.Team
	var changed bool

	switch event.Type {
	case types.MemberAddedEvent:
		if event.Member == nil {
			return false
		}
		next, changed = memberAdded(current, *event.Member)
	case types.MemberUpdatedEvent:
		if event.Member == nil {
			return false
		}
		next, changed = memberUpdated(current, *event.Member)
	case types.MemberRemovedEvent:
		if s.suppressRemoval(event.MemberID) {
			return false
		}
		next, changed = memberRemoved(current, event.MemberID)
		if changed {
			s.recentRemovals[event.MemberID] = s.now()
		}
	case types.MembersReorderedEvent:
		next, changed = membersReordered(current, event.Order)
	case types.TeamNameUpdatedEvent:
		next, changed = teamNameUpdated(current, event.Name)
	case types.GroupCreatedEvent:
		if event.Group == nil {
			return false
		}
		next, changed = groupCreated(current, *event.Group)
	case types.GroupUpdatedEvent:
		if event.Group == nil {
			return false
		}
		next, changed = groupUpdated(current, *event.Group)
	case types.GroupRemovedEvent:
		if s.suppressRemoval(event.GroupID) {
			return false
		}
		next, changed = groupRemoved(current, event.GroupID)
		if changed {
			s.recentRemovals[event.GroupID] = s.now()
		}
	case types.GroupsReorderedEvent:
		next, changed = groupsReordered(current, event.Order)
	default:
		s.logger.Warnf("unknown team event type: %s", event.Type)
		return false
	}

	if !changed {
		return false
	}

	s.snapshot.Team = next
	return true
}

// suppressRemoval reports whether a removal of the given id arrived inside
// the de-dup window. Stale entries are pruned on the way.
func (s *Store) suppressRemoval(id types.ID) bool {
	now := s.now()
	for key, at := range s.recentRemovals {
		if now.Sub(at) > s.dedupWindow {
			delete(s.recentRemovals, key)
		}
	}

	at, ok := s.recentRemovals[id]
	return ok && now.Sub(at) <= s.dedupWindow
}
