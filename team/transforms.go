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

package team

import "github.com/zonesync-team/zonesync/api/types"

// The transforms below are pure snapshot-to-snapshot functions. Each one
// rebuilds the slices it touches and reports whether anything changed, so
// redelivered events collapse to no-ops.

// memberAdded appends the member unless its id is already present.
func memberAdded(t types.Team, member types.Member) (types.Team, bool) {
	if _, ok := t.FindMember(member.ID); ok {
		return t, false
	}

	out := t
	out.Members = make([]types.Member, 0, len(t.Members)+1)
	out.Members = append(out.Members, t.Members...)
	out.Members = append(out.Members, member)
	return out, true
}

// memberUpdated replaces the member with the same id, last-write-wins. An
// update for an unknown id is dropped, and an update carrying the current
// state is a no-op so echoes of local writes stay silent.
func memberUpdated(t types.Team, member types.Member) (types.Team, bool) {
	current, ok := t.FindMember(member.ID)
	if !ok || current == member {
		return t, false
	}

	out := t
	out.Members = make([]types.Member, len(t.Members))
	for i, m := range t.Members {
		if m.ID == member.ID {
			out.Members[i] = member
		} else {
			out.Members[i] = m
		}
	}
	return out, true
}

// memberRemoved filters out the member with the given id.
func memberRemoved(t types.Team, id types.ID) (types.Team, bool) {
	if _, ok := t.FindMember(id); !ok {
		return t, false
	}

	out := t
	out.Members = make([]types.Member, 0, len(t.Members)-1)
	for _, m := range t.Members {
		if m.ID != id {
			out.Members = append(out.Members, m)
		}
	}
	return out, true
}

// membersReordered replaces the member order with the given authoritative id
// sequence. Ids not present in the team are dropped, and members missing
// from the sequence are lost; the sequence must come from a complete
// authoritative order.
func membersReordered(t types.Team, order []types.ID) (types.Team, bool) {
	byID := make(map[types.ID]types.Member, len(t.Members))
	for _, m := range t.Members {
		byID[m.ID] = m
	}

	reordered := make([]types.Member, 0, len(order))
	for _, id := range order {
		if m, ok := byID[id]; ok {
			reordered = append(reordered, m)
		}
	}

	if sameMemberOrder(t.Members, reordered) {
		return t, false
	}

	out := t
	out.Members = reordered
	return out, true
}

// teamNameUpdated replaces the team name, last-write-wins.
func teamNameUpdated(t types.Team, name string) (types.Team, bool) {
	if t.Name == name {
		return t, false
	}

	out := t
	out.Name = name
	return out, true
}

// groupCreated appends the group unless its id is already present.
func groupCreated(t types.Team, group types.Group) (types.Team, bool) {
	if _, ok := t.FindGroup(group.ID); ok {
		return t, false
	}

	out := t
	out.Groups = make([]types.Group, 0, len(t.Groups)+1)
	out.Groups = append(out.Groups, t.Groups...)
	out.Groups = append(out.Groups, group)
	return out, true
}

// groupUpdated replaces the group with the same id, last-write-wins. An
// update carrying the current state is a no-op.
func groupUpdated(t types.Team, group types.Group) (types.Team, bool) {
	current, ok := t.FindGroup(group.ID)
	if !ok || current == group {
		return t, false
	}

	out := t
	out.Groups = make([]types.Group, len(t.Groups))
	for i, g := range t.Groups {
		if g.ID == group.ID {
			out.Groups[i] = group
		} else {
			out.Groups[i] = g
		}
	}
	return out, true
}

// groupRemoved filters out the group and unassigns its members. Members are
// never deleted by a group removal.
func groupRemoved(t types.Team, id types.ID) (types.Team, bool) {
	if _, ok := t.FindGroup(id); !ok {
		return t, false
	}

	out := t
	out.Groups = make([]types.Group, 0, len(t.Groups)-1)
	for _, g := range t.Groups {
		if g.ID != id {
			out.Groups = append(out.Groups, g)
		}
	}

	out.Members = make([]types.Member, len(t.Members))
	for i, m := range t.Members {
		if m.GroupID == id {
			m.GroupID = ""
		}
		out.Members[i] = m
	}
	return out, true
}

// groupsReordered replaces the group order with the given id sequence and
// assigns each group's Order to its position. Same lossy contract as
// membersReordered.
func groupsReordered(t types.Team, order []types.ID) (types.Team, bool) {
	byID := make(map[types.ID]types.Group, len(t.Groups))
	for _, g := range t.Groups {
		byID[g.ID] = g
	}

	reordered := make([]types.Group, 0, len(order))
	for _, id := range order {
		if g, ok := byID[id]; ok {
			g.Order = len(reordered)
			reordered = append(reordered, g)
		}
	}

	if sameGroupOrder(t.Groups, reordered) {
		return t, false
	}

	out := t
	out.Groups = reordered
	return out, true
}

func sameMemberOrder(a, b []types.Member) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

func sameGroupOrder(a, b []types.Group) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Order != b[i].Order {
			return false
		}
	}
	return true
}
