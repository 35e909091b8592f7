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

package tzone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zonesync-team/zonesync/pkg/tzone"
)

func TestLoadLocation(t *testing.T) {
	t.Run("valid name test", func(t *testing.T) {
		loc, err := tzone.LoadLocation("UTC")
		assert.NoError(t, err)
		assert.Equal(t, "UTC", loc.String())
	})

	t.Run("invalid name test", func(t *testing.T) {
		_, err := tzone.LoadLocation("Nowhere/Land")
		assert.Error(t, err)
	})

	t.Run("cached lookup returns the same location test", func(t *testing.T) {
		first, err := tzone.LoadLocation("Asia/Seoul")
		assert.NoError(t, err)
		second, err := tzone.LoadLocation("Asia/Seoul")
		assert.NoError(t, err)
		assert.Same(t, first, second)
	})
}

func TestConvertHour(t *testing.T) {
	east := time.FixedZone("east", 9*60*60)
	west := time.FixedZone("west", -5*60*60)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("forward offset test", func(t *testing.T) {
		// 09:00 in UTC+9 is 00:00 in UTC.
		assert.Equal(t, 0, tzone.ConvertHourAt(now, 9, east, time.UTC))
	})

	t.Run("backward offset test", func(t *testing.T) {
		// 09:00 in UTC-5 is 14:00 in UTC.
		assert.Equal(t, 14, tzone.ConvertHourAt(now, 9, west, time.UTC))
	})

	t.Run("round trip test", func(t *testing.T) {
		for hour := 0; hour < 24; hour++ {
			converted := tzone.ConvertHourAt(now, hour, east, west)
			back := tzone.ConvertHourAt(now, converted, west, east)
			assert.Equal(t, hour, back)
		}
	})

	t.Run("same location is identity test", func(t *testing.T) {
		for hour := 0; hour < 24; hour++ {
			assert.Equal(t, hour, tzone.ConvertHourAt(now, hour, east, east))
		}
	})
}

func TestIsWorkingAt(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2026, 3, 10, hour, 30, 0, 0, time.UTC)
	}

	t.Run("plain window test", func(t *testing.T) {
		assert.True(t, tzone.IsWorkingAt(at(9), time.UTC, 9, 17))
		assert.True(t, tzone.IsWorkingAt(at(12), time.UTC, 9, 17))
		assert.False(t, tzone.IsWorkingAt(at(17), time.UTC, 9, 17))
		assert.False(t, tzone.IsWorkingAt(at(20), time.UTC, 9, 17))
	})

	t.Run("window wrapping past midnight test", func(t *testing.T) {
		assert.True(t, tzone.IsWorkingAt(at(23), time.UTC, 22, 6))
		assert.True(t, tzone.IsWorkingAt(at(2), time.UTC, 22, 6))
		assert.False(t, tzone.IsWorkingAt(at(10), time.UTC, 22, 6))
		assert.False(t, tzone.IsWorkingAt(at(6), time.UTC, 22, 6))
	})

	t.Run("degenerate window is never working test", func(t *testing.T) {
		for hour := 0; hour < 24; hour++ {
			assert.False(t, tzone.IsWorkingAt(at(hour), time.UTC, 9, 9))
		}
	})
}

func TestMinutesUntilAvailable(t *testing.T) {
	t.Run("inside window test", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 12, 15, 0, 0, time.UTC)
		minutes, err := tzone.MinutesUntilAvailableAt(now, time.UTC, 9, 17)
		assert.NoError(t, err)
		assert.Equal(t, 0, minutes)
	})

	t.Run("before window test", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC)
		minutes, err := tzone.MinutesUntilAvailableAt(now, time.UTC, 9, 17)
		assert.NoError(t, err)
		assert.Equal(t, 90, minutes)
	})

	t.Run("after window rolls to tomorrow test", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
		minutes, err := tzone.MinutesUntilAvailableAt(now, time.UTC, 9, 17)
		assert.NoError(t, err)
		assert.Equal(t, 15*60, minutes)
	})

	t.Run("wrapping window test", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)
		minutes, err := tzone.MinutesUntilAvailableAt(now, time.UTC, 22, 6)
		assert.NoError(t, err)
		assert.Equal(t, 60, minutes)
	})

	t.Run("degenerate window test", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
		_, err := tzone.MinutesUntilAvailableAt(now, time.UTC, 9, 9)
		assert.ErrorIs(t, err, tzone.ErrNeverAvailable)
	})
}
