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

import (
	"errors"

	"github.com/zonesync-team/zonesync/internal/validation"
)

// ErrEmptyMemberFields is returned when all the updatable fields are nil.
var ErrEmptyMemberFields = errors.New("UpdatableMemberFields is empty")

// CreateMemberFields is the set of fields required to add a member.
type CreateMemberFields struct {
	// Name is the display name of the member.
	Name string `validate:"required,trimmed,max=50"`

	// Title is an optional role description.
	Title string `validate:"omitempty,max=50"`

	// Timezone is the IANA timezone name of the member.
	Timezone string `validate:"required,tzname"`

	// WorkingHoursStart is the first working hour slot.
	WorkingHoursStart int `validate:"hourslot"`

	// WorkingHoursEnd is the exclusive end hour slot.
	WorkingHoursEnd int `validate:"hourslot"`

	// GroupID optionally assigns the member to a group.
	GroupID ID
}

// Validate validates the CreateMemberFields.
func (f *CreateMemberFields) Validate() error {
	return validation.ValidateStruct(f)
}

// UpdatableMemberFields is the set of fields that can be updated on a member.
// Nil fields are left untouched.
type UpdatableMemberFields struct {
	// Name is the display name of the member.
	Name *string `validate:"omitempty,trimmed,max=50"`

	// Title is an optional role description.
	Title *string `validate:"omitempty,max=50"`

	// Timezone is the IANA timezone name of the member.
	Timezone *string `validate:"omitempty,tzname"`

	// WorkingHoursStart is the first working hour slot.
	WorkingHoursStart *int `validate:"omitempty,hourslot"`

	// WorkingHoursEnd is the exclusive end hour slot.
	WorkingHoursEnd *int `validate:"omitempty,hourslot"`

	// GroupID reassigns the member to a group. An empty ID unassigns.
	GroupID *ID
}

// Validate validates the UpdatableMemberFields.
func (f *UpdatableMemberFields) Validate() error {
	if f.Name == nil && f.Title == nil && f.Timezone == nil &&
		f.WorkingHoursStart == nil && f.WorkingHoursEnd == nil && f.GroupID == nil {
		return ErrEmptyMemberFields
	}
	return validation.ValidateStruct(f)
}

// ApplyTo returns a copy of the given member with the non-nil fields replaced.
func (f *UpdatableMemberFields) ApplyTo(member Member) Member {
	if f.Name != nil {
		member.Name = *f.Name
	}
	if f.Title != nil {
		member.Title = *f.Title
	}
	if f.Timezone != nil {
		member.Timezone = *f.Timezone
	}
	if f.WorkingHoursStart != nil {
		member.WorkingHoursStart = *f.WorkingHoursStart
	}
	if f.WorkingHoursEnd != nil {
		member.WorkingHoursEnd = *f.WorkingHoursEnd
	}
	if f.GroupID != nil {
		member.GroupID = *f.GroupID
	}
	return member
}
