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

// Member represents a person in a team. Working hours are half-open integer
// hour slots [Start, End) in the member's own timezone; Start greater than
// End means the window wraps past midnight. Start equal to End means the
// member is never working.
type Member struct {
	// ID is the unique identifier of the member.
	ID ID `json:"id" yaml:"id"`

	// Name is the display name of the member.
	Name string `json:"name" yaml:"name"`

	// Title is an optional role description such as "Backend Engineer".
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Timezone is the IANA timezone name of the member, e.g. "Asia/Seoul".
	Timezone string `json:"timezone" yaml:"timezone"`

	// WorkingHoursStart is the first working hour slot, in [0, 24).
	WorkingHoursStart int `json:"working_hours_start" yaml:"working_hours_start"`

	// WorkingHoursEnd is the exclusive end hour slot, in [0, 24).
	WorkingHoursEnd int `json:"working_hours_end" yaml:"working_hours_end"`

	// GroupID is the group the member belongs to. Empty means unassigned.
	GroupID ID `json:"group_id,omitempty" yaml:"group_id,omitempty"`
}
