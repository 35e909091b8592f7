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

import "github.com/zonesync-team/zonesync/internal/validation"

// GroupFields is the set of fields required to create or rename a group.
type GroupFields struct {
	// Name is the display name of the group.
	Name string `validate:"required,trimmed,max=50"`
}

// Validate validates the GroupFields.
func (f *GroupFields) Validate() error {
	return validation.ValidateStruct(f)
}

// TeamNameFields is the editable team name.
type TeamNameFields struct {
	// Name is the display name of the team.
	Name string `validate:"required,trimmed,max=50"`
}

// Validate validates the TeamNameFields.
func (f *TeamNameFields) Validate() error {
	return validation.ValidateStruct(f)
}
