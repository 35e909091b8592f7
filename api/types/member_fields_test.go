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

package types_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zonesync-team/zonesync/api/types"
)

func validCreateFields() types.CreateMemberFields {
	return types.CreateMemberFields{
		Name:              "ada",
		Title:             "Backend Engineer",
		Timezone:          "Asia/Seoul",
		WorkingHoursStart: 9,
		WorkingHoursEnd:   18,
	}
}

func TestCreateMemberFields(t *testing.T) {
	t.Run("valid fields test", func(t *testing.T) {
		fields := validCreateFields()
		assert.NoError(t, fields.Validate())
	})

	t.Run("blank name test", func(t *testing.T) {
		fields := validCreateFields()
		fields.Name = "   "
		assert.Error(t, fields.Validate())
	})

	t.Run("name too long test", func(t *testing.T) {
		fields := validCreateFields()
		fields.Name = strings.Repeat("x", 51)
		assert.Error(t, fields.Validate())
	})

	t.Run("unknown timezone test", func(t *testing.T) {
		fields := validCreateFields()
		fields.Timezone = "Nowhere/Land"
		assert.Error(t, fields.Validate())
	})

	t.Run("hour slot out of range test", func(t *testing.T) {
		fields := validCreateFields()
		fields.WorkingHoursEnd = 24
		assert.Error(t, fields.Validate())
	})

	t.Run("empty title is allowed test", func(t *testing.T) {
		fields := validCreateFields()
		fields.Title = ""
		assert.NoError(t, fields.Validate())
	})
}

func TestUpdatableMemberFields(t *testing.T) {
	t.Run("no fields test", func(t *testing.T) {
		fields := types.UpdatableMemberFields{}
		assert.ErrorIs(t, fields.Validate(), types.ErrEmptyMemberFields)
	})

	t.Run("single valid field test", func(t *testing.T) {
		title := "Staff Engineer"
		fields := types.UpdatableMemberFields{Title: &title}
		assert.NoError(t, fields.Validate())
	})

	t.Run("invalid timezone test", func(t *testing.T) {
		tz := "Nowhere/Land"
		fields := types.UpdatableMemberFields{Timezone: &tz}
		assert.Error(t, fields.Validate())
	})

	t.Run("apply replaces only set fields test", func(t *testing.T) {
		member := types.Member{
			ID:                "m-a",
			Name:              "ada",
			Title:             "Backend Engineer",
			Timezone:          "UTC",
			WorkingHoursStart: 9,
			WorkingHoursEnd:   17,
			GroupID:           "g-1",
		}

		name := "ada lovelace"
		unassign := types.ID("")
		fields := types.UpdatableMemberFields{Name: &name, GroupID: &unassign}

		updated := fields.ApplyTo(member)
		assert.Equal(t, "ada lovelace", updated.Name)
		assert.Equal(t, types.ID(""), updated.GroupID)
		assert.Equal(t, member.Title, updated.Title)
		assert.Equal(t, member.Timezone, updated.Timezone)
	})
}

func TestGroupFields(t *testing.T) {
	t.Run("valid name test", func(t *testing.T) {
		fields := types.GroupFields{Name: "backend"}
		assert.NoError(t, fields.Validate())
	})

	t.Run("blank name test", func(t *testing.T) {
		fields := types.GroupFields{Name: " "}
		assert.Error(t, fields.Validate())
	})
}
