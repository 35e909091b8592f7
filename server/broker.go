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

package server

import (
	"context"

	"github.com/zonesync-team/zonesync/api/types"
	"github.com/zonesync-team/zonesync/client"
	"github.com/zonesync-team/zonesync/server/backend/pubsub"
)

// Broker adapts the in-process pubsub to the client's broker contract.
type Broker struct {
	pubsub *pubsub.PubSub
}

// Subscribe opens an event stream for the given team.
func (b *Broker) Subscribe(ctx context.Context, teamID types.ID) (client.Subscription, error) {
	return b.pubsub.Subscribe(ctx, teamID)
}

// Unsubscribe closes the given stream.
func (b *Broker) Unsubscribe(ctx context.Context, teamID types.ID, sub client.Subscription) {
	if s, ok := sub.(*pubsub.Subscription); ok {
		b.pubsub.Unsubscribe(ctx, teamID, s)
		return
	}
	sub.Close()
}
