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

// Package tzone provides timezone arithmetic over integer hour-of-day slots.
// A working-hours window [start, end) may wrap past midnight when start is
// greater than end. A window with start equal to end never opens.
package tzone

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/zonesync-team/zonesync/pkg/cmap"
)

// ErrNeverAvailable is returned when the working window is degenerate and
// never opens.
var ErrNeverAvailable = errors.New("working window never opens")

// locations caches loaded IANA locations. time.LoadLocation reads the zone
// database from disk on every call, so lookups are cached process-wide.
var locations = cmap.New[string, *time.Location]()

// LoadLocation returns the IANA location with the given name.
func LoadLocation(name string) (*time.Location, error) {
	if loc, ok := locations.Get(name); ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}

	locations.Set(name, loc)
	return loc, nil
}

// ConvertHourAt maps the integer hour-of-day in the from location to the
// corresponding hour-of-day in the to location, anchored on the date of the
// given instant so DST offsets are the ones in effect at that moment. The
// result is in [0, 24).
func ConvertHourAt(now time.Time, hour int, from, to *time.Location) int {
	local := now.In(from)
	anchored := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, from)
	return anchored.In(to).Hour()
}

// ConvertHour is ConvertHourAt anchored on the current instant.
func ConvertHour(hour int, from, to *time.Location) int {
	return ConvertHourAt(time.Now(), hour, from, to)
}

// IsWorkingAt reports whether the given instant's local hour in loc falls
// inside [start, end). A window with start greater than end spans midnight:
// working iff hour >= start or hour < end. A window with start equal to end
// is treated as never working.
func IsWorkingAt(now time.Time, loc *time.Location, start, end int) bool {
	if start == end {
		return false
	}

	hour := now.In(loc).Hour()
	if start < end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}

// IsCurrentlyWorking is IsWorkingAt anchored on the current instant.
func IsCurrentlyWorking(loc *time.Location, start, end int) bool {
	return IsWorkingAt(time.Now(), loc, start, end)
}

// MinutesUntilAvailableAt returns the minutes from the given instant until
// the window next opens, 0 when the instant is already inside the window,
// and ErrNeverAvailable for a degenerate window.
func MinutesUntilAvailableAt(now time.Time, loc *time.Location, start, end int) (int, error) {
	if start == end {
		return 0, ErrNeverAvailable
	}

	if IsWorkingAt(now, loc, start, end) {
		return 0, nil
	}

	local := now.In(loc)
	opens := time.Date(local.Year(), local.Month(), local.Day(), start, 0, 0, 0, loc)
	if !opens.After(local) {
		opens = opens.AddDate(0, 0, 1)
	}

	return int(math.Ceil(opens.Sub(local).Minutes())), nil
}

// MinutesUntilAvailable is MinutesUntilAvailableAt anchored on the current
// instant.
func MinutesUntilAvailable(loc *time.Location, start, end int) (int, error) {
	return MinutesUntilAvailableAt(time.Now(), loc, start, end)
}
