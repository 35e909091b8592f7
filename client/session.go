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
	"github.com/zonesync-team/zonesync/pkg/kv"
)

func sessionKey(teamID types.ID) string {
	return fmt.Sprintf("team-session/%s", teamID)
}

// loadSession returns the persisted session of the given team. Expired or
// malformed sessions read as absent and are purged.
func (c *Client) loadSession(teamID types.ID) (types.Session, bool) {
	key := sessionKey(teamID)

	var session types.Session
	if !kv.GetJSON(c.kv, key, &session) || session.Token == "" {
		if err := c.kv.Delete(key); err != nil {
			c.logger.Warnf("purge session of team %s: %v", teamID, err)
		}
		return types.Session{}, false
	}

	if session.Expired(c.now()) {
		if err := c.kv.Delete(key); err != nil {
			c.logger.Warnf("purge session of team %s: %v", teamID, err)
		}
		return types.Session{}, false
	}
	return session, true
}

func (c *Client) saveSession(teamID types.ID, session types.Session) error {
	return kv.SetJSON(c.kv, sessionKey(teamID), session)
}

func (c *Client) clearSession(teamID types.ID) error {
	return c.kv.Delete(sessionKey(teamID))
}

// HasSession reports whether a usable session for the given team is
// persisted, without attaching.
func (c *Client) HasSession(teamID types.ID) bool {
	_, ok := c.loadSession(teamID)
	return ok
}
