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

package teamdb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zonesync-team/zonesync/api/types"
	"github.com/zonesync-team/zonesync/pkg/errors"
	"github.com/zonesync-team/zonesync/server/backend/teamdb"
)

func TestDB(t *testing.T) {
	ctx := context.Background()

	t.Run("create and find test", func(t *testing.T) {
		db, err := teamdb.New()
		require.NoError(t, err)

		created, err := db.CreateTeam(ctx, "platform", "admin-hash", "member-hash")
		assert.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		found, err := db.FindTeam(ctx, types.ID(created.ID))
		assert.NoError(t, err)
		assert.Equal(t, created.Name, found.Name)
		assert.Empty(t, found.Members)
	})

	t.Run("find unknown team test", func(t *testing.T) {
		db, err := teamdb.New()
		require.NoError(t, err)

		_, err = db.FindTeam(ctx, types.ID("missing"))
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("update is read-modify-write test", func(t *testing.T) {
		db, err := teamdb.New()
		require.NoError(t, err)

		created, err := db.CreateTeam(ctx, "platform", "admin-hash", "member-hash")
		require.NoError(t, err)

		updated, err := db.UpdateTeam(ctx, types.ID(created.ID), func(info *teamdb.TeamInfo) error {
			info.Members = append(info.Members, types.Member{ID: "m-a", Name: "ada", Timezone: "UTC"})
			return nil
		})
		assert.NoError(t, err)
		assert.Len(t, updated.Members, 1)

		found, err := db.FindTeam(ctx, types.ID(created.ID))
		assert.NoError(t, err)
		assert.Len(t, found.Members, 1)
	})

	t.Run("failed mutation leaves the team untouched test", func(t *testing.T) {
		db, err := teamdb.New()
		require.NoError(t, err)

		created, err := db.CreateTeam(ctx, "platform", "admin-hash", "member-hash")
		require.NoError(t, err)

		_, err = db.UpdateTeam(ctx, types.ID(created.ID), func(info *teamdb.TeamInfo) error {
			info.Name = "mutated"
			return errors.InvalidArgument("rejected")
		})
		assert.Error(t, err)

		found, err := db.FindTeam(ctx, types.ID(created.ID))
		assert.NoError(t, err)
		assert.Equal(t, "platform", found.Name)
	})

	t.Run("returned info is isolated test", func(t *testing.T) {
		db, err := teamdb.New()
		require.NoError(t, err)

		created, err := db.CreateTeam(ctx, "platform", "admin-hash", "member-hash")
		require.NoError(t, err)
		created.Name = "mutated"

		found, err := db.FindTeam(ctx, types.ID(created.ID))
		assert.NoError(t, err)
		assert.Equal(t, "platform", found.Name)
	})

	t.Run("list teams test", func(t *testing.T) {
		db, err := teamdb.New()
		require.NoError(t, err)

		_, err = db.CreateTeam(ctx, "one", "a", "b")
		require.NoError(t, err)
		_, err = db.CreateTeam(ctx, "two", "a", "b")
		require.NoError(t, err)

		infos, err := db.ListTeams(ctx)
		assert.NoError(t, err)
		assert.Len(t, infos, 2)
	})
}
