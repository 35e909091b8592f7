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

package pubsub_test

import (
	"context"
	gosync "sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zonesync-team/zonesync/api/types"
	"github.com/zonesync-team/zonesync/api/types/events"
	"github.com/zonesync-team/zonesync/server/backend/pubsub"
)

func TestPubSub(t *testing.T) {
	teamID := types.ID("team-1")
	event := events.TeamEvent{
		Type:   types.TeamNameUpdatedEvent,
		TeamID: teamID,
		Name:   "platform",
	}

	t.Run("publish subscribe test", func(t *testing.T) {
		pubSub := pubsub.New()
		ctx := context.Background()

		sub, err := pubSub.Subscribe(ctx, teamID)
		assert.NoError(t, err)
		defer pubSub.Unsubscribe(ctx, teamID, sub)

		var wg gosync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := <-sub.Events()
			assert.Equal(t, event, e)
		}()

		pubSub.Publish(ctx, event)
		wg.Wait()
	})

	t.Run("fan out to multiple subscribers test", func(t *testing.T) {
		pubSub := pubsub.New()
		ctx := context.Background()

		subA, err := pubSub.Subscribe(ctx, teamID)
		assert.NoError(t, err)
		subB, err := pubSub.Subscribe(ctx, teamID)
		assert.NoError(t, err)
		assert.NotEqual(t, subA.ID(), subB.ID())
		assert.Equal(t, 2, pubSub.ChannelLen(teamID))

		pubSub.Publish(ctx, event)
		assert.Equal(t, event, <-subA.Events())
		assert.Equal(t, event, <-subB.Events())

		pubSub.Unsubscribe(ctx, teamID, subA)
		pubSub.Unsubscribe(ctx, teamID, subB)
		assert.Equal(t, 0, pubSub.ChannelLen(teamID))
	})

	t.Run("events are scoped to the team test", func(t *testing.T) {
		pubSub := pubsub.New()
		ctx := context.Background()

		other, err := pubSub.Subscribe(ctx, types.ID("team-2"))
		assert.NoError(t, err)
		defer pubSub.Unsubscribe(ctx, types.ID("team-2"), other)

		pubSub.Publish(ctx, event)
		select {
		case e := <-other.Events():
			assert.Fail(t, "unexpected event", e)
		default:
		}
	})

	t.Run("publish after unsubscribe does not panic test", func(t *testing.T) {
		pubSub := pubsub.New()
		ctx := context.Background()

		sub, err := pubSub.Subscribe(ctx, teamID)
		assert.NoError(t, err)
		pubSub.Unsubscribe(ctx, teamID, sub)

		pubSub.Publish(ctx, event)
	})
}
