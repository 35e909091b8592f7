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

package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zonesync-team/zonesync/api/types"
	"github.com/zonesync-team/zonesync/client/identity"
	"github.com/zonesync-team/zonesync/pkg/kv/memory"
)

var members = []types.Member{
	{ID: "m-a", Name: "ada", Timezone: "UTC"},
	{ID: "m-b", Name: "bo", Timezone: "Asia/Seoul"},
	{ID: "m-c", Name: "cai", Timezone: "Asia/Seoul"},
}

func TestSelection(t *testing.T) {
	t.Run("explicit selection round trip test", func(t *testing.T) {
		resolver := identity.NewResolver(memory.New(), "team-1")

		_, ok := resolver.Selection()
		assert.False(t, ok)

		assert.NoError(t, resolver.SetCurrentUser("m-a", identity.SourceExplicit))
		selection, ok := resolver.Selection()
		assert.True(t, ok)
		assert.Equal(t, types.ID("m-a"), selection.MemberID)
		assert.Equal(t, identity.SourceExplicit, selection.Source)
		assert.True(t, resolver.IsCurrentUser("m-a"))
		assert.False(t, resolver.IsCurrentUser("m-b"))
	})

	t.Run("clear keeps dismissals test", func(t *testing.T) {
		resolver := identity.NewResolver(memory.New(), "team-1")
		assert.NoError(t, resolver.DismissSuggestion("m-a"))
		assert.NoError(t, resolver.SetCurrentUser("m-b", identity.SourceExplicit))
		assert.NoError(t, resolver.ClearCurrentUser())

		selection, ok := resolver.Selection()
		assert.False(t, ok)
		assert.Equal(t, []types.ID{"m-a"}, selection.Dismissed)
	})

	t.Run("selections are per team test", func(t *testing.T) {
		store := memory.New()
		resolverA := identity.NewResolver(store, "team-1")
		resolverB := identity.NewResolver(store, "team-2")

		assert.NoError(t, resolverA.SetCurrentUser("m-a", identity.SourceExplicit))
		_, ok := resolverB.Selection()
		assert.False(t, ok)
	})
}

func TestSuggestedUser(t *testing.T) {
	t.Run("single timezone match is suggested test", func(t *testing.T) {
		resolver := identity.NewResolver(memory.New(), "team-1")
		suggested, ok := resolver.SuggestedUser(members, "UTC")
		assert.True(t, ok)
		assert.Equal(t, types.ID("m-a"), suggested.ID)
	})

	t.Run("ambiguous match is not suggested test", func(t *testing.T) {
		resolver := identity.NewResolver(memory.New(), "team-1")
		_, ok := resolver.SuggestedUser(members, "Asia/Seoul")
		assert.False(t, ok)
	})

	t.Run("no match test", func(t *testing.T) {
		resolver := identity.NewResolver(memory.New(), "team-1")
		_, ok := resolver.SuggestedUser(members, "Europe/Berlin")
		assert.False(t, ok)
	})

	t.Run("existing selection suppresses suggestion test", func(t *testing.T) {
		resolver := identity.NewResolver(memory.New(), "team-1")
		assert.NoError(t, resolver.SetCurrentUser("m-b", identity.SourceExplicit))
		_, ok := resolver.SuggestedUser(members, "UTC")
		assert.False(t, ok)
	})

	t.Run("dismissal suppresses suggestion test", func(t *testing.T) {
		resolver := identity.NewResolver(memory.New(), "team-1")
		assert.NoError(t, resolver.DismissSuggestion("m-a"))
		_, ok := resolver.SuggestedUser(members, "UTC")
		assert.False(t, ok)
	})

	t.Run("accepting a suggestion selects it test", func(t *testing.T) {
		resolver := identity.NewResolver(memory.New(), "team-1")
		suggested, ok := resolver.SuggestedUser(members, "UTC")
		assert.True(t, ok)

		assert.NoError(t, resolver.AcceptSuggestion(suggested.ID))
		selection, ok := resolver.Selection()
		assert.True(t, ok)
		assert.Equal(t, identity.SourceSuggested, selection.Source)
	})
}

func TestReconcile(t *testing.T) {
	t.Run("selection of a removed member is cleared test", func(t *testing.T) {
		resolver := identity.NewResolver(memory.New(), "team-1")
		assert.NoError(t, resolver.SetCurrentUser("m-x", identity.SourceExplicit))

		assert.NoError(t, resolver.Reconcile(members))
		_, ok := resolver.Selection()
		assert.False(t, ok)
	})

	t.Run("present selection survives test", func(t *testing.T) {
		resolver := identity.NewResolver(memory.New(), "team-1")
		assert.NoError(t, resolver.SetCurrentUser("m-a", identity.SourceExplicit))

		assert.NoError(t, resolver.Reconcile(members))
		assert.True(t, resolver.IsCurrentUser("m-a"))
	})

	t.Run("empty member list is left alone test", func(t *testing.T) {
		resolver := identity.NewResolver(memory.New(), "team-1")
		assert.NoError(t, resolver.SetCurrentUser("m-x", identity.SourceExplicit))

		assert.NoError(t, resolver.Reconcile(nil))
		assert.True(t, resolver.IsCurrentUser("m-x"))
	})
}
