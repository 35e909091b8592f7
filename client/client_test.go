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

package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zonesync-team/zonesync/api/types"
	"github.com/zonesync-team/zonesync/client"
	"github.com/zonesync-team/zonesync/pkg/errors"
	"github.com/zonesync-team/zonesync/pkg/kv/memory"
	"github.com/zonesync-team/zonesync/server"
)

const (
	adminPassword  = "admin-pw"
	memberPassword = "member-pw"
)

func newServer(t *testing.T) *server.ZoneSync {
	t.Helper()

	z, err := server.New(server.NewConfig())
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, z.Shutdown(true))
	})
	return z
}

func newClient(z *server.ZoneSync) *client.Client {
	svc := z.Teams()
	return client.New(svc, svc, z.Broker(), memory.New())
}

func newTeam(t *testing.T, z *server.ZoneSync) types.Team {
	t.Helper()

	created, _, err := z.Teams().CreateTeam(context.Background(), "platform", adminPassword, memberPassword)
	require.NoError(t, err)
	return created
}

func attach(t *testing.T, cli *client.Client, teamID types.ID, password string) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, cli.Authenticate(ctx, teamID, password))
	require.NoError(t, cli.Attach(ctx, teamID))
	t.Cleanup(func() {
		if cli.TeamID() != "" {
			assert.NoError(t, cli.Detach(ctx))
		}
	})
}

func memberFields(name string) types.CreateMemberFields {
	return types.CreateMemberFields{
		Name:              name,
		Timezone:          "UTC",
		WorkingHoursStart: 9,
		WorkingHoursEnd:   17,
	}
}

func TestAuthenticate(t *testing.T) {
	z := newServer(t)
	ctx := context.Background()

	t.Run("session is persisted test", func(t *testing.T) {
		created := newTeam(t, z)
		cli := newClient(z)

		assert.False(t, cli.HasSession(created.ID))
		assert.NoError(t, cli.Authenticate(ctx, created.ID, adminPassword))
		assert.True(t, cli.HasSession(created.ID))
	})

	t.Run("wrong password leaves no session test", func(t *testing.T) {
		created := newTeam(t, z)
		cli := newClient(z)

		err := cli.Authenticate(ctx, created.ID, "wrong")
		assert.True(t, errors.IsUnauthenticated(err))
		assert.False(t, cli.HasSession(created.ID))
	})

	t.Run("recent teams are most recently used first test", func(t *testing.T) {
		teamA := newTeam(t, z)
		teamB := newTeam(t, z)
		cli := newClient(z)

		require.NoError(t, cli.Authenticate(ctx, teamA.ID, adminPassword))
		require.NoError(t, cli.Authenticate(ctx, teamB.ID, adminPassword))
		assert.Equal(t, []types.ID{teamB.ID, teamA.ID}, cli.RecentTeams())

		require.NoError(t, cli.Authenticate(ctx, teamA.ID, adminPassword))
		assert.Equal(t, []types.ID{teamA.ID, teamB.ID}, cli.RecentTeams())
	})
}

func TestAttach(t *testing.T) {
	z := newServer(t)
	ctx := context.Background()

	t.Run("attach seeds the snapshot test", func(t *testing.T) {
		created := newTeam(t, z)
		cli := newClient(z)
		attach(t, cli, created.ID, adminPassword)

		snapshot, err := cli.Snapshot()
		assert.NoError(t, err)
		assert.Equal(t, created.ID, snapshot.Team.ID)
		assert.Equal(t, types.RoleAdmin, snapshot.Role)
		assert.True(t, cli.HasAdminAccess())
	})

	t.Run("attach without session test", func(t *testing.T) {
		created := newTeam(t, z)
		cli := newClient(z)

		err := cli.Attach(ctx, created.ID)
		assert.True(t, errors.IsUnauthenticated(err))
	})

	t.Run("second attach is rejected test", func(t *testing.T) {
		created := newTeam(t, z)
		cli := newClient(z)
		attach(t, cli, created.ID, adminPassword)

		err := cli.Attach(ctx, created.ID)
		assert.Error(t, err)
	})

	t.Run("detach releases the team test", func(t *testing.T) {
		created := newTeam(t, z)
		cli := newClient(z)
		attach(t, cli, created.ID, adminPassword)

		assert.NoError(t, cli.Detach(ctx))
		assert.Equal(t, types.ID(""), cli.TeamID())
		_, err := cli.Snapshot()
		assert.Error(t, err)
	})
}

func TestWrites(t *testing.T) {
	z := newServer(t)
	ctx := context.Background()

	t.Run("add member updates the snapshot test", func(t *testing.T) {
		created := newTeam(t, z)
		cli := newClient(z)
		attach(t, cli, created.ID, adminPassword)

		member, err := cli.AddMember(ctx, memberFields("ada"))
		assert.NoError(t, err)
		assert.NotEmpty(t, member.ID)

		snapshot, err := cli.Snapshot()
		assert.NoError(t, err)
		assert.Len(t, snapshot.Team.Members, 1)

		// The echo of the write must not duplicate the member.
		assert.Never(t, func() bool {
			snapshot, err := cli.Snapshot()
			return err != nil || len(snapshot.Team.Members) != 1
		}, 300*time.Millisecond, 50*time.Millisecond)
	})

	t.Run("member role cannot write test", func(t *testing.T) {
		created := newTeam(t, z)
		cli := newClient(z)
		attach(t, cli, created.ID, memberPassword)

		assert.False(t, cli.HasAdminAccess())
		_, err := cli.AddMember(ctx, memberFields("ada"))
		assert.True(t, errors.IsPermissionDenied(err))
	})

	t.Run("optimistic update applies locally test", func(t *testing.T) {
		created := newTeam(t, z)
		cli := newClient(z)
		attach(t, cli, created.ID, adminPassword)

		member, err := cli.AddMember(ctx, memberFields("ada"))
		require.NoError(t, err)

		title := "Staff Engineer"
		assert.NoError(t, cli.UpdateMember(ctx, member.ID, types.UpdatableMemberFields{Title: &title}))

		snapshot, err := cli.Snapshot()
		assert.NoError(t, err)
		updated, ok := snapshot.Team.FindMember(member.ID)
		require.True(t, ok)
		assert.Equal(t, title, updated.Title)
		assert.NoError(t, cli.Err())
	})

	t.Run("rejected write rolls back test", func(t *testing.T) {
		created := newTeam(t, z)
		cli := newClient(z)
		attach(t, cli, created.ID, adminPassword)

		member, err := cli.AddMember(ctx, memberFields("ada"))
		require.NoError(t, err)

		// The group does not exist on the server, so the write is rejected
		// after the optimistic apply.
		ghost := types.ID("g-missing")
		err = cli.UpdateMember(ctx, member.ID, types.UpdatableMemberFields{GroupID: &ghost})
		assert.Error(t, err)
		assert.Error(t, cli.Err())

		snapshot, err := cli.Snapshot()
		assert.NoError(t, err)
		reverted, ok := snapshot.Team.FindMember(member.ID)
		require.True(t, ok)
		assert.Equal(t, types.ID(""), reverted.GroupID)
	})

	t.Run("group lifecycle test", func(t *testing.T) {
		created := newTeam(t, z)
		cli := newClient(z)
		attach(t, cli, created.ID, adminPassword)

		group, err := cli.AddGroup(ctx, types.GroupFields{Name: "backend"})
		assert.NoError(t, err)

		assert.NoError(t, cli.UpdateGroup(ctx, group.ID, types.GroupFields{Name: "platform"}))
		assert.False(t, cli.IsGroupCollapsed(group.ID))
		assert.NoError(t, cli.ToggleGroupCollapsed(group.ID))
		assert.True(t, cli.IsGroupCollapsed(group.ID))

		assert.NoError(t, cli.RemoveGroup(ctx, group.ID))
		snapshot, err := cli.Snapshot()
		assert.NoError(t, err)
		assert.Empty(t, snapshot.Team.Groups)
	})

	t.Run("rename team test", func(t *testing.T) {
		created := newTeam(t, z)
		cli := newClient(z)
		attach(t, cli, created.ID, adminPassword)

		assert.NoError(t, cli.UpdateTeamName(ctx, types.TeamNameFields{Name: "renamed"}))
		snapshot, err := cli.Snapshot()
		assert.NoError(t, err)
		assert.Equal(t, "renamed", snapshot.Team.Name)
	})
}

func TestRealtime(t *testing.T) {
	z := newServer(t)
	ctx := context.Background()

	t.Run("writes propagate to other clients test", func(t *testing.T) {
		created := newTeam(t, z)

		admin := newClient(z)
		attach(t, admin, created.ID, adminPassword)

		viewer := newClient(z)
		attach(t, viewer, created.ID, memberPassword)

		_, err := admin.AddMember(ctx, memberFields("ada"))
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			snapshot, err := viewer.Snapshot()
			return err == nil && len(snapshot.Team.Members) == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("watch delivers fresh snapshots test", func(t *testing.T) {
		created := newTeam(t, z)

		admin := newClient(z)
		attach(t, admin, created.ID, adminPassword)

		viewer := newClient(z)
		attach(t, viewer, created.ID, memberPassword)

		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		ch, err := viewer.Watch(watchCtx)
		require.NoError(t, err)

		require.NoError(t, admin.UpdateTeamName(ctx, types.TeamNameFields{Name: "renamed"}))

		select {
		case snapshot := <-ch:
			assert.Equal(t, "renamed", snapshot.Team.Name)
		case <-time.After(time.Second):
			assert.Fail(t, "no snapshot delivered")
		}
	})

	t.Run("refresh reseeds from the service test", func(t *testing.T) {
		created := newTeam(t, z)

		admin := newClient(z)
		attach(t, admin, created.ID, adminPassword)

		// Mutate behind the client's back, directly through the service.
		session, err := z.Teams().Authenticate(ctx, created.ID, adminPassword)
		require.NoError(t, err)
		require.NoError(t, admin.Detach(ctx))
		_, err = z.Teams().AddMember(ctx, created.ID, session.Token, memberFields("ada"))
		require.NoError(t, err)

		require.NoError(t, admin.Attach(ctx, created.ID))
		snapshot, err := admin.Snapshot()
		assert.NoError(t, err)
		assert.Len(t, snapshot.Team.Members, 1)

		require.NoError(t, admin.Refresh(ctx))
		snapshot, err = admin.Snapshot()
		assert.NoError(t, err)
		assert.Len(t, snapshot.Team.Members, 1)
	})
}

// failingService satisfies the write path with a service that always rejects
// the session, to exercise the session-purge behavior.
type failingService struct {
	client.TeamService
	client.AuthService
}

func (failingService) Authenticate(_ context.Context, _ types.ID, _ string) (types.Session, error) {
	return types.Session{
		Token:     "stale-token",
		Role:      types.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (failingService) GetTeam(_ context.Context, _ types.ID, _ string) (types.Team, types.Role, error) {
	return types.Team{}, "", errors.Unauthenticated("session expired")
}

func TestSessionPurge(t *testing.T) {
	t.Run("rejected session is purged test", func(t *testing.T) {
		ctx := context.Background()
		svc := failingService{}
		cli := client.New(svc, svc, nil, memory.New())

		require.NoError(t, cli.Authenticate(ctx, "team-1", "pw"))
		require.True(t, cli.HasSession("team-1"))

		err := cli.Attach(ctx, "team-1")
		assert.True(t, errors.IsUnauthenticated(err))
		assert.False(t, cli.HasSession("team-1"))
		assert.Error(t, cli.Err())
	})
}
