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

// Group represents a named subset of a team's members. The member count of a
// group is derived from the member list, never stored.
type Group struct {
	// ID is the unique identifier of the group.
	ID ID `json:"id" yaml:"id"`

	// Name is the display name of the group.
	Name string `json:"name" yaml:"name"`

	// Order is the display order of the group, unique within a team.
	Order int `json:"order" yaml:"order"`
}
