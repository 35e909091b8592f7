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

// Package client provides the team collaboration client. A client attaches
// to one team at a time: it loads the authoritative state, keeps it fresh
// through the realtime broker, applies admin writes optimistically and rolls
// them back when the service rejects them.
package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zonesync-team/zonesync/api/types"
	"github.com/zonesync-team/zonesync/api/types/events"
	"github.com/zonesync-team/zonesync/client/identity"
	"github.com/zonesync-team/zonesync/pkg/errors"
	"github.com/zonesync-team/zonesync/pkg/kv"
	"github.com/zonesync-team/zonesync/pkg/overlap"
	"github.com/zonesync-team/zonesync/pkg/tzone"
	"github.com/zonesync-team/zonesync/server/logging"
	"github.com/zonesync-team/zonesync/team"
)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger of the client.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithClock sets the time source of the client. Tests use this to control
// session expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// Client is a team collaboration client. It is safe for concurrent use.
type Client struct {
	service TeamService
	auth    AuthService
	broker  Broker
	kv      kv.Store
	logger  logging.Logger
	now     func() time.Time

	mu       sync.Mutex
	attached bool
	teamID   types.ID
	session  types.Session
	store    *team.Store
	identity *identity.Resolver
	sub      Subscription
	pumpDone chan struct{}

	watcherSeq int
	watchers   map[int]chan team.Snapshot

	lastErr error
}

// New creates a client over the given service, auth and broker ports. The
// key-value store persists sessions, identity selections and UI state across
// restarts.
func New(service TeamService, auth AuthService, broker Broker, store kv.Store, opts ...Option) *Client {
	c := &Client{
		service:  service,
		auth:     auth,
		broker:   broker,
		kv:       store,
		logger:   logging.DefaultLogger(),
		now:      time.Now,
		watchers: make(map[int]chan team.Snapshot),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticate exchanges a team password for a session and persists it. The
// team is remembered in the recent-teams list on success.
func (c *Client) Authenticate(ctx context.Context, teamID types.ID, password string) error {
	session, err := c.auth.Authenticate(ctx, teamID, password)
	if err != nil {
		return err
	}

	if err := c.saveSession(teamID, session); err != nil {
		return err
	}
	if err := c.rememberTeam(teamID); err != nil {
		c.logger.Warnf("remember team %s: %v", teamID, err)
	}
	return nil
}

// Attach loads the team using the persisted session, seeds the local store
// and starts consuming realtime events. A client is attached to at most one
// team at a time.
func (c *Client) Attach(ctx context.Context, teamID types.ID) error {
	c.mu.Lock()
	if c.attached {
		c.mu.Unlock()
		return errors.FailedPrecond("client is already attached")
	}
	c.mu.Unlock()

	session, ok := c.loadSession(teamID)
	if !ok {
		return errors.Unauthenticated(fmt.Sprintf("no session for team %s", teamID))
	}

	teamData, role, err := c.service.GetTeam(ctx, teamID, session.Token)
	if err != nil {
		c.recordFailure(teamID, err)
		return err
	}

	sub, err := c.broker.Subscribe(ctx, teamID)
	if err != nil {
		return err
	}

	logger := logging.New("client", logging.NewField("team", string(teamID)))
	store := team.NewStore(team.WithClock(c.now), team.WithLogger(logger))
	store.Seed(teamData, role)

	resolver := identity.NewResolver(c.kv, teamID)
	if err := resolver.Reconcile(teamData.Members); err != nil {
		logger.Warnf("reconcile identity: %v", err)
	}

	pumpDone := make(chan struct{})

	c.mu.Lock()
	c.attached = true
	c.teamID = teamID
	c.session = session
	c.store = store
	c.identity = resolver
	c.sub = sub
	c.pumpDone = pumpDone
	c.mu.Unlock()

	if err := c.rememberTeam(teamID); err != nil {
		c.logger.Warnf("remember team %s: %v", teamID, err)
	}

	go c.pump(logger, store, resolver, sub, pumpDone)
	return nil
}

// Detach stops the realtime stream and releases the team.
func (c *Client) Detach(ctx context.Context) error {
	c.mu.Lock()
	if !c.attached {
		c.mu.Unlock()
		return errors.FailedPrecond("client is not attached")
	}
	teamID := c.teamID
	sub := c.sub
	pumpDone := c.pumpDone

	c.attached = false
	c.teamID = ""
	c.session = types.Session{}
	c.store = nil
	c.identity = nil
	c.sub = nil
	c.pumpDone = nil
	watchers := c.watchers
	c.watchers = make(map[int]chan team.Snapshot)
	c.mu.Unlock()

	c.broker.Unsubscribe(ctx, teamID, sub)
	<-pumpDone

	for _, ch := range watchers {
		close(ch)
	}
	return nil
}

// pump consumes the realtime stream until the subscription closes. Echoes of
// this client's own optimistic writes reduce to no-ops inside the store.
func (c *Client) pump(logger logging.Logger, store *team.Store, resolver *identity.Resolver, sub Subscription, done chan struct{}) {
	defer close(done)

	for event := range sub.Events() {
		if !store.Apply(event) {
			continue
		}
		if err := resolver.Reconcile(store.Snapshot().Team.Members); err != nil {
			logger.Warnf("reconcile identity: %v", err)
		}
		c.notifyWatchers(store)
	}
}

// Refresh refetches the authoritative team state and reseeds the local
// store. It recovers from missed events after a broker hiccup.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if !c.attached {
		c.mu.Unlock()
		return errors.FailedPrecond("client is not attached")
	}
	teamID := c.teamID
	token := c.session.Token
	store := c.store
	resolver := c.identity
	c.mu.Unlock()

	teamData, role, err := c.service.GetTeam(ctx, teamID, token)
	if err != nil {
		c.recordFailure(teamID, err)
		return err
	}

	store.Seed(teamData, role)
	if err := resolver.Reconcile(teamData.Members); err != nil {
		c.logger.Warnf("reconcile identity of team %s: %v", teamID, err)
	}
	c.notifyWatchers(store)
	return nil
}

// Snapshot returns the current local view of the attached team.
func (c *Client) Snapshot() (team.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.attached {
		return team.Snapshot{}, errors.FailedPrecond("client is not attached")
	}
	return c.store.Snapshot(), nil
}

// Watch returns a channel that delivers a fresh snapshot after every local
// change. Slow consumers only ever lose intermediate snapshots, never the
// latest one. The channel closes when the context ends or the client
// detaches.
func (c *Client) Watch(ctx context.Context) (<-chan team.Snapshot, error) {
	c.mu.Lock()
	if !c.attached {
		c.mu.Unlock()
		return nil, errors.FailedPrecond("client is not attached")
	}

	ch := make(chan team.Snapshot, 1)
	c.watcherSeq++
	id := c.watcherSeq
	c.watchers[id] = ch
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		if _, ok := c.watchers[id]; ok {
			delete(c.watchers, id)
			close(ch)
		}
		c.mu.Unlock()
	}()
	return ch, nil
}

// notifyWatchers publishes the latest snapshot to every watcher, replacing
// an undelivered older one.
func (c *Client) notifyWatchers(store *team.Store) {
	snapshot := store.Snapshot()

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.watchers {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

// HasAdminAccess reports whether the attached session permits writes.
func (c *Client) HasAdminAccess() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attached && c.session.HasAdminAccess() && !c.session.Expired(c.now())
}

// TeamID returns the attached team id, or the empty id when detached.
func (c *Client) TeamID() types.ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.teamID
}

// Identity returns the identity resolver of the attached team.
func (c *Client) Identity() (*identity.Resolver, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.attached {
		return nil, errors.FailedPrecond("client is not attached")
	}
	return c.identity, nil
}

// Err returns the last write or fetch failure, if any. Reading does not
// clear it; the next successful write does.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// AddMember creates a member. The creation is not optimistic: the id is
// assigned by the service, so the local store only learns the member from
// the response or its event echo, whichever lands first.
func (c *Client) AddMember(ctx context.Context, fields types.CreateMemberFields) (types.Member, error) {
	teamID, token, store, err := c.writeContext()
	if err != nil {
		return types.Member{}, err
	}
	if err := fields.Validate(); err != nil {
		return types.Member{}, errors.Wrap(err, errors.ErrCodeInvalidArgument)
	}

	member, err := c.service.AddMember(ctx, teamID, token, fields)
	if err != nil {
		c.recordFailure(teamID, err)
		return types.Member{}, err
	}

	if store.Apply(events.TeamEvent{
		Type:   types.MemberAddedEvent,
		TeamID: teamID,
		Member: &member,
	}) {
		c.notifyWatchers(store)
	}
	c.clearFailure()
	return member, nil
}

// UpdateMember updates a member optimistically. On rejection the local
// change is rolled back and the error is retained until the next successful
// write.
func (c *Client) UpdateMember(ctx context.Context, memberID types.ID, fields types.UpdatableMemberFields) error {
	teamID, token, store, err := c.writeContext()
	if err != nil {
		return err
	}
	if err := fields.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidArgument)
	}

	current, ok := store.Snapshot().Team.FindMember(memberID)
	if !ok {
		return errors.NotFound(fmt.Sprintf("member %s not found", memberID))
	}
	updated := fields.ApplyTo(current)

	return c.optimistic(ctx, store, events.TeamEvent{
		Type:   types.MemberUpdatedEvent,
		TeamID: teamID,
		Member: &updated,
	}, func(ctx context.Context) error {
		_, err := c.service.UpdateMember(ctx, teamID, token, memberID, fields)
		return err
	})
}

// RemoveMember removes a member optimistically.
func (c *Client) RemoveMember(ctx context.Context, memberID types.ID) error {
	teamID, token, store, err := c.writeContext()
	if err != nil {
		return err
	}

	return c.optimistic(ctx, store, events.TeamEvent{
		Type:     types.MemberRemovedEvent,
		TeamID:   teamID,
		MemberID: memberID,
	}, func(ctx context.Context) error {
		return c.service.RemoveMember(ctx, teamID, token, memberID)
	})
}

// ReorderMembers applies the given member order optimistically. The service
// completes a partial order; the echo carries the authoritative sequence.
func (c *Client) ReorderMembers(ctx context.Context, order []types.ID) error {
	teamID, token, store, err := c.writeContext()
	if err != nil {
		return err
	}

	return c.optimistic(ctx, store, events.TeamEvent{
		Type:   types.MembersReorderedEvent,
		TeamID: teamID,
		Order:  order,
	}, func(ctx context.Context) error {
		return c.service.ReorderMembers(ctx, teamID, token, order)
	})
}

// AddGroup creates a group. Like AddMember, creation is not optimistic.
func (c *Client) AddGroup(ctx context.Context, fields types.GroupFields) (types.Group, error) {
	teamID, token, store, err := c.writeContext()
	if err != nil {
		return types.Group{}, err
	}
	if err := fields.Validate(); err != nil {
		return types.Group{}, errors.Wrap(err, errors.ErrCodeInvalidArgument)
	}

	group, err := c.service.AddGroup(ctx, teamID, token, fields)
	if err != nil {
		c.recordFailure(teamID, err)
		return types.Group{}, err
	}

	if store.Apply(events.TeamEvent{
		Type:   types.GroupCreatedEvent,
		TeamID: teamID,
		Group:  &group,
	}) {
		c.notifyWatchers(store)
	}
	c.clearFailure()
	return group, nil
}

// UpdateGroup renames a group optimistically.
func (c *Client) UpdateGroup(ctx context.Context, groupID types.ID, fields types.GroupFields) error {
	teamID, token, store, err := c.writeContext()
	if err != nil {
		return err
	}
	if err := fields.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidArgument)
	}

	current, ok := store.Snapshot().Team.FindGroup(groupID)
	if !ok {
		return errors.NotFound(fmt.Sprintf("group %s not found", groupID))
	}
	current.Name = fields.Name

	return c.optimistic(ctx, store, events.TeamEvent{
		Type:   types.GroupUpdatedEvent,
		TeamID: teamID,
		Group:  &current,
	}, func(ctx context.Context) error {
		_, err := c.service.UpdateGroup(ctx, teamID, token, groupID, fields)
		return err
	})
}

// RemoveGroup removes a group optimistically. Members of the group become
// ungrouped, never removed.
func (c *Client) RemoveGroup(ctx context.Context, groupID types.ID) error {
	teamID, token, store, err := c.writeContext()
	if err != nil {
		return err
	}

	return c.optimistic(ctx, store, events.TeamEvent{
		Type:    types.GroupRemovedEvent,
		TeamID:  teamID,
		GroupID: groupID,
	}, func(ctx context.Context) error {
		return c.service.RemoveGroup(ctx, teamID, token, groupID)
	})
}

// ReorderGroups applies the given group order optimistically.
func (c *Client) ReorderGroups(ctx context.Context, order []types.ID) error {
	teamID, token, store, err := c.writeContext()
	if err != nil {
		return err
	}

	return c.optimistic(ctx, store, events.TeamEvent{
		Type:   types.GroupsReorderedEvent,
		TeamID: teamID,
		Order:  order,
	}, func(ctx context.Context) error {
		return c.service.ReorderGroups(ctx, teamID, token, order)
	})
}

// UpdateTeamName renames the team optimistically.
func (c *Client) UpdateTeamName(ctx context.Context, fields types.TeamNameFields) error {
	teamID, token, store, err := c.writeContext()
	if err != nil {
		return err
	}
	if err := fields.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidArgument)
	}

	return c.optimistic(ctx, store, events.TeamEvent{
		Type:   types.TeamNameUpdatedEvent,
		TeamID: teamID,
		Name:   fields.Name,
	}, func(ctx context.Context) error {
		return c.service.UpdateTeamName(ctx, teamID, token, fields)
	})
}

// OverlapMask computes the working-hours intersection of the given members
// in the viewer's timezone. With no ids, every member participates.
func (c *Client) OverlapMask(viewerTimezone string, memberIDs ...types.ID) (overlap.Mask, error) {
	snapshot, err := c.Snapshot()
	if err != nil {
		return overlap.Mask{}, err
	}

	members := snapshot.Team.Members
	if len(memberIDs) > 0 {
		selected := make([]types.Member, 0, len(memberIDs))
		for _, id := range memberIDs {
			member, ok := snapshot.Team.FindMember(id)
			if !ok {
				return overlap.Mask{}, errors.NotFound(fmt.Sprintf("member %s not found", id))
			}
			selected = append(selected, member)
		}
		members = selected
	}

	viewer, err := tzone.LoadLocation(viewerTimezone)
	if err != nil {
		return overlap.Mask{}, errors.Wrap(err, errors.ErrCodeInvalidArgument)
	}

	masks := make([]overlap.Mask, 0, len(members))
	for _, member := range members {
		mask, err := overlap.MemberMaskAt(c.now(), viewer, member)
		if err != nil {
			return overlap.Mask{}, err
		}
		masks = append(masks, mask)
	}
	return overlap.Intersect(masks...), nil
}

// optimistic applies the event to the local store, calls the service, and
// rolls the local change back when the service rejects it.
func (c *Client) optimistic(
	ctx context.Context,
	store *team.Store,
	event events.TeamEvent,
	call func(ctx context.Context) error,
) error {
	rollback, changed := store.Optimistic(event)
	if changed {
		c.notifyWatchers(store)
	}

	if err := call(ctx); err != nil {
		rollback()
		if changed {
			c.notifyWatchers(store)
		}
		c.recordFailure(event.TeamID, err)
		return err
	}

	c.clearFailure()
	return nil
}

// writeContext checks attachment and admin access and returns what a write
// needs without holding the lock during the call.
func (c *Client) writeContext() (types.ID, string, *team.Store, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.attached {
		return "", "", nil, errors.FailedPrecond("client is not attached")
	}
	if !c.session.HasAdminAccess() || c.session.Expired(c.now()) {
		return "", "", nil, errors.PermissionDenied("admin access required")
	}
	return c.teamID, c.session.Token, c.store, nil
}

// recordFailure retains the error for Err and drops the persisted session
// when the service no longer accepts it.
func (c *Client) recordFailure(teamID types.ID, err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()

	if errors.IsUnauthenticated(err) {
		if clearErr := c.clearSession(teamID); clearErr != nil {
			c.logger.Warnf("clear session of team %s: %v", teamID, clearErr)
		}
	}
	c.logger.Warnf("team %s: %v", teamID, err)
}

func (c *Client) clearFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = nil
}
