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

// Package overlap derives working-hour availability masks in a viewer's local
// time and computes their intersections. Everything here is a pure function
// of its inputs, so callers can recompute on every render without side
// effects.
package overlap

import (
	"fmt"
	"time"

	"github.com/zonesync-team/zonesync/api/types"
	"github.com/zonesync-team/zonesync/pkg/tzone"
)

// HoursPerDay is the number of slots in a mask.
const HoursPerDay = 24

// Mask is a 24-slot availability mask indexed by viewer-local hour. A slot
// is true when the member is inside their working window during that hour.
type Mask [HoursPerDay]bool

// Window is a half-open hour interval [Start, End) in viewer-local time.
// End less than or equal to Start means the window wraps past midnight.
type Window struct {
	Start int
	End   int
}

// MemberMaskAt builds the availability mask of the given member in the
// viewer's local hours, anchored on the given instant. The member's window
// is walked hour by hour through the timezone conversion so wraparound
// windows land on the right slots.
func MemberMaskAt(now time.Time, viewer *time.Location, member types.Member) (Mask, error) {
	var mask Mask

	loc, err := tzone.LoadLocation(member.Timezone)
	if err != nil {
		return mask, err
	}

	start, end := member.WorkingHoursStart, member.WorkingHoursEnd
	if start == end {
		// Degenerate window: never working.
		return mask, nil
	}

	mark := func(hour int) {
		mask[tzone.ConvertHourAt(now, hour, loc, viewer)] = true
	}

	if start < end {
		for hour := start; hour < end; hour++ {
			mark(hour)
		}
		return mask, nil
	}

	for hour := start; hour < HoursPerDay; hour++ {
		mark(hour)
	}
	for hour := 0; hour < end; hour++ {
		mark(hour)
	}
	return mask, nil
}

// MemberMask is MemberMaskAt anchored on the current instant.
func MemberMask(viewer *time.Location, member types.Member) (Mask, error) {
	return MemberMaskAt(time.Now(), viewer, member)
}

// Intersect returns the element-wise AND of the given masks. With no masks
// it returns the empty mask.
func Intersect(masks ...Mask) Mask {
	if len(masks) == 0 {
		return Mask{}
	}

	out := masks[0]
	for _, mask := range masks[1:] {
		for hour := range out {
			out[hour] = out[hour] && mask[hour]
		}
	}
	return out
}

// Any reports whether at least one slot of the mask is true.
func (m Mask) Any() bool {
	for _, on := range m {
		if on {
			return true
		}
	}
	return false
}

// Count returns the number of true slots.
func (m Mask) Count() int {
	count := 0
	for _, on := range m {
		if on {
			count++
		}
	}
	return count
}

// Summary returns a compact textual description of the mask as a single
// window from its first true slot to one past its last true slot, or
// "no overlap" when the mask is empty.
//
// The mask is not guaranteed contiguous: a member wrapping midnight can
// produce gaps, and this takes the first and last true indices regardless.
// It is an approximation; use Windows for an exact report.
func Summary(mask Mask) string {
	first, last := -1, -1
	for hour, on := range mask {
		if !on {
			continue
		}
		if first == -1 {
			first = hour
		}
		last = hour
	}

	if first == -1 {
		return "no overlap"
	}
	return fmt.Sprintf("%02d:00 - %02d:00", first, (last+1)%HoursPerDay)
}

// Windows returns the exact contiguous windows of the mask in viewer-local
// time. A run crossing midnight is reported as one wrapping window.
func Windows(mask Mask) []Window {
	if !mask.Any() {
		return nil
	}

	var windows []Window
	inRun := false
	for hour := 0; hour < HoursPerDay; hour++ {
		if mask[hour] && !inRun {
			windows = append(windows, Window{Start: hour})
			inRun = true
		}
		if !mask[hour] && inRun {
			windows[len(windows)-1].End = hour
			inRun = false
		}
	}
	if inRun {
		windows[len(windows)-1].End = HoursPerDay
	}

	// Merge a run ending at midnight into one starting at midnight.
	if len(windows) > 1 && windows[0].Start == 0 && windows[len(windows)-1].End == HoursPerDay {
		last := windows[len(windows)-1]
		windows[0].Start = last.Start
		windows = windows[:len(windows)-1]
	}

	return windows
}

// String formats the window as "HH:00 - HH:00" in viewer-local time.
func (w Window) String() string {
	return fmt.Sprintf("%02d:00 - %02d:00", w.Start, w.End%HoursPerDay)
}
