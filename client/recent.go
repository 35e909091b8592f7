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
	"fmt"

	"github.com/zonesync-team/zonesync/api/types"
	"github.com/zonesync-team/zonesync/pkg/errors"
	"github.com/zonesync-team/zonesync/pkg/kv"
)

const (
	recentTeamsKey = "recent-teams"
	maxRecentTeams = 10
)

// RecentTeams returns team ids in most-recently-used order. Malformed
// persisted state reads as empty.
func (c *Client) RecentTeams() []types.ID {
	var ids []types.ID
	kv.GetJSON(c.kv, recentTeamsKey, &ids)
	return ids
}

// rememberTeam moves the team to the front of the recent list, trimming the
// tail beyond maxRecentTeams.
func (c *Client) rememberTeam(teamID types.ID) error {
	ids := c.RecentTeams()

	updated := make([]types.ID, 0, len(ids)+1)
	updated = append(updated, teamID)
	for _, id := range ids {
		if id == teamID {
			continue
		}
		updated = append(updated, id)
	}
	if len(updated) > maxRecentTeams {
		updated = updated[:maxRecentTeams]
	}
	return kv.SetJSON(c.kv, recentTeamsKey, updated)
}

// ForgetTeam drops the team from the recent list and removes its persisted
// session and UI state.
func (c *Client) ForgetTeam(teamID types.ID) error {
	ids := c.RecentTeams()
	updated := make([]types.ID, 0, len(ids))
	for _, id := range ids {
		if id != teamID {
			updated = append(updated, id)
		}
	}
	if err := kv.SetJSON(c.kv, recentTeamsKey, updated); err != nil {
		return err
	}
	if err := c.clearSession(teamID); err != nil {
		return err
	}
	return c.kv.Delete(collapsedGroupsKey(teamID))
}

func collapsedGroupsKey(teamID types.ID) string {
	return fmt.Sprintf("collapsed-groups/%s", teamID)
}

// IsGroupCollapsed reports whether the group is collapsed in the attached
// team's view.
func (c *Client) IsGroupCollapsed(groupID types.ID) bool {
	c.mu.Lock()
	teamID := c.teamID
	c.mu.Unlock()
	if teamID == "" {
		return false
	}

	var ids []types.ID
	kv.GetJSON(c.kv, collapsedGroupsKey(teamID), &ids)
	for _, id := range ids {
		if id == groupID {
			return true
		}
	}
	return false
}

// ToggleGroupCollapsed flips the collapsed state of the group in the
// attached team's view.
func (c *Client) ToggleGroupCollapsed(groupID types.ID) error {
	c.mu.Lock()
	teamID := c.teamID
	c.mu.Unlock()
	if teamID == "" {
		return errors.FailedPrecond("client is not attached")
	}

	key := collapsedGroupsKey(teamID)
	var ids []types.ID
	kv.GetJSON(c.kv, key, &ids)

	updated := make([]types.ID, 0, len(ids)+1)
	found := false
	for _, id := range ids {
		if id == groupID {
			found = true
			continue
		}
		updated = append(updated, id)
	}
	if !found {
		updated = append(updated, groupID)
	}
	return kv.SetJSON(c.kv, key, updated)
}
