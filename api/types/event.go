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

package types

// TeamEventType represents the kind of a realtime team mutation event that
// the server delivers to subscribed clients.
type TeamEventType string

const (
	// MemberAddedEvent indicates that a member joined the team.
	MemberAddedEvent TeamEventType = "member-added"

	// MemberUpdatedEvent indicates that a member's fields were replaced.
	MemberUpdatedEvent TeamEventType = "member-updated"

	// MemberRemovedEvent indicates that a member was removed from the team.
	MemberRemovedEvent TeamEventType = "member-removed"

	// MembersReorderedEvent indicates that the member order was replaced by
	// an authoritative id sequence.
	MembersReorderedEvent TeamEventType = "members-reordered"

	// TeamNameUpdatedEvent indicates that the team was renamed.
	TeamNameUpdatedEvent TeamEventType = "team-name-updated"

	// GroupCreatedEvent indicates that a group was created.
	GroupCreatedEvent TeamEventType = "group-created"

	// GroupUpdatedEvent indicates that a group's fields were replaced.
	GroupUpdatedEvent TeamEventType = "group-updated"

	// GroupRemovedEvent indicates that a group was removed. Members of the
	// group are unassigned, not deleted.
	GroupRemovedEvent TeamEventType = "group-removed"

	// GroupsReorderedEvent indicates that the group order was replaced by an
	// authoritative id sequence.
	GroupsReorderedEvent TeamEventType = "groups-reordered"
)
