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

import "time"

// Role is the capability level a session grants on a team.
type Role string

const (
	// RoleAdmin may mutate the team: members, groups and the team name.
	RoleAdmin Role = "admin"

	// RoleMember may only read the team.
	RoleMember Role = "member"
)

// Valid returns true if the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Session is an authenticated handle on one team. The role is fixed for the
// life of the token; re-authenticating produces a new session.
type Session struct {
	// Token is the opaque credential presented to the team service.
	Token string `json:"token"`

	// Role is the capability level of the token.
	Role Role `json:"role"`

	// ExpiresAt is the wall-clock expiry of the session.
	ExpiresAt time.Time `json:"expires_at"`
}

// HasAdminAccess returns true if the session exists and grants admin rights.
func (s Session) HasAdminAccess() bool {
	return s.Token != "" && s.Role == RoleAdmin
}

// Expired returns true if the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
