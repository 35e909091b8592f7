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

package client

import (
	"context"

	"github.com/zonesync-team/zonesync/api/types"
	"github.com/zonesync-team/zonesync/api/types/events"
)

// TeamService is the authoritative team API the client consumes. The
// in-process reference implementation lives in server/teams; a remote
// transport satisfies the same contract.
type TeamService interface {
	GetTeam(ctx context.Context, teamID types.ID, token string) (types.Team, types.Role, error)
	AddMember(ctx context.Context, teamID types.ID, token string, fields types.CreateMemberFields) (types.Member, error)
	UpdateMember(ctx context.Context, teamID types.ID, token string, memberID types.ID, fields types.UpdatableMemberFields) (types.Member, error)
	RemoveMember(ctx context.Context, teamID types.ID, token string, memberID types.ID) error
	ReorderMembers(ctx context.Context, teamID types.ID, token string, order []types.ID) error
	AddGroup(ctx context.Context, teamID types.ID, token string, fields types.GroupFields) (types.Group, error)
	UpdateGroup(ctx context.Context, teamID types.ID, token string, groupID types.ID, fields types.GroupFields) (types.Group, error)
	RemoveGroup(ctx context.Context, teamID types.ID, token string, groupID types.ID) error
	ReorderGroups(ctx context.Context, teamID types.ID, token string, order []types.ID) error
	UpdateTeamName(ctx context.Context, teamID types.ID, token string, fields types.TeamNameFields) error
}

// AuthService exchanges a team password for a session.
type AuthService interface {
	Authenticate(ctx context.Context, teamID types.ID, password string) (types.Session, error)
}

// Subscription is a stream of team events for one team.
type Subscription interface {
	ID() string
	Events() <-chan events.TeamEvent
	Close()
}

// Broker delivers realtime team events.
type Broker interface {
	Subscribe(ctx context.Context, teamID types.ID) (Subscription, error)
	Unsubscribe(ctx context.Context, teamID types.ID, sub Subscription)
}
