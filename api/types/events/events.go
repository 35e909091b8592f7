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

// Package events defines the payloads delivered over the realtime channel.
package events

import "github.com/zonesync-team/zonesync/api/types"

// TeamEvent is a realtime mutation of one team. The fields that are set
// depend on Type; unset fields stay zero. Delivery is at-least-once, so
// consumers must absorb duplicates.
type TeamEvent struct {
	// Type is the kind of the mutation.
	Type types.TeamEventType

	// TeamID is the team the mutation belongs to.
	TeamID types.ID

	// Publisher optionally identifies the originating client so it can
	// recognize echoes of its own writes. Consumers must stay correct
	// when it is empty; the transforms are idempotent either way.
	Publisher string

	// Member carries the full member for member-added and member-updated.
	Member *types.Member

	// MemberID carries the removed member id for member-removed.
	MemberID types.ID

	// Group carries the full group for group-created and group-updated.
	Group *types.Group

	// GroupID carries the removed group id for group-removed.
	GroupID types.ID

	// Name carries the new team name for team-name-updated.
	Name string

	// Order carries the authoritative id sequence for members-reordered and
	// groups-reordered.
	Order []types.ID
}
