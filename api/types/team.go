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

// Team represents a shared workspace: an ordered list of members and a set of
// groups. The canonical in-memory copy of a team lives in the team state
// store; every other consumer works on snapshots.
type Team struct {
	// ID is the unique identifier of the team.
	ID ID `json:"id" yaml:"id"`

	// Name is the display name of the team.
	Name string `json:"name" yaml:"name"`

	// Members is the ordered list of members.
	Members []Member `json:"members" yaml:"members"`

	// Groups is the list of groups, sorted by Order.
	Groups []Group `json:"groups" yaml:"groups"`
}

// FindMember returns the member with the given ID, if present.
func (t Team) FindMember(id ID) (Member, bool) {
	for _, m := range t.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// FindGroup returns the group with the given ID, if present.
func (t Team) FindGroup(id ID) (Group, bool) {
	for _, g := range t.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// GroupMemberCount returns the number of members assigned to the given group.
func (t Team) GroupMemberCount(id ID) int {
	count := 0
	for _, m := range t.Members {
		if m.GroupID == id {
			count++
		}
	}
	return count
}

// DeepCopy returns a deep copy of this team. Members and groups are value
// types, so copying the slices is enough.
func (t Team) DeepCopy() Team {
	copied := t
	copied.Members = make([]Member, len(t.Members))
	copy(copied.Members, t.Members)
	copied.Groups = make([]Group, len(t.Groups))
	copy(copied.Groups, t.Groups)
	return copied
}
