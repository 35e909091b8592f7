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

// Package identity tracks the per-team "which member am I" selection: an
// explicit choice by the user, or an accepted suggestion derived from the
// viewer's timezone. Only selections and dismissals persist; suggestions
// themselves are recomputed on demand.
package identity

import (
	"fmt"

	"github.com/zonesync-team/zonesync/api/types"
	"github.com/zonesync-team/zonesync/pkg/kv"
)

// Source tags how a selection came to be.
type Source string

const (
	// SourceExplicit marks a selection the user made directly.
	SourceExplicit Source = "explicit"

	// SourceSuggested marks a selection accepted from a timezone suggestion.
	SourceSuggested Source = "suggested"
)

// Selection is the persisted identity state of one team.
type Selection struct {
	// MemberID is the chosen member. Empty means no selection.
	MemberID types.ID `json:"member_id,omitempty"`

	// Source tags the provenance of the selection.
	Source Source `json:"source,omitempty"`

	// Dismissed holds member ids whose suggestion the user rejected.
	Dismissed []types.ID `json:"dismissed,omitempty"`
}

// Resolver maintains the identity selection of one team over the key-value
// port. Malformed persisted state reads as no selection.
type Resolver struct {
	store  kv.Store
	teamID types.ID
}

// NewResolver creates a resolver for the given team.
func NewResolver(store kv.Store, teamID types.ID) *Resolver {
	return &Resolver{
		store:  store,
		teamID: teamID,
	}
}

// Selection returns the current selection. The second return value is false
// when no member is selected; the dismissed set may still be non-empty.
func (r *Resolver) Selection() (Selection, bool) {
	selection := r.load()
	return selection, selection.MemberID != ""
}

// SetCurrentUser selects the given member with the given provenance.
func (r *Resolver) SetCurrentUser(memberID types.ID, source Source) error {
	selection := r.load()
	selection.MemberID = memberID
	selection.Source = source
	return r.save(selection)
}

// ClearCurrentUser clears the selection. Dismissals are kept.
func (r *Resolver) ClearCurrentUser() error {
	selection := r.load()
	selection.MemberID = ""
	selection.Source = ""
	return r.save(selection)
}

// DismissSuggestion records that the user rejected the suggestion of the
// given member. Dismissing twice is a no-op.
func (r *Resolver) DismissSuggestion(memberID types.ID) error {
	selection := r.load()
	for _, id := range selection.Dismissed {
		if id == memberID {
			return nil
		}
	}
	selection.Dismissed = append(selection.Dismissed, memberID)
	return r.save(selection)
}

// AcceptSuggestion selects the suggested member.
func (r *Resolver) AcceptSuggestion(memberID types.ID) error {
	return r.SetCurrentUser(memberID, SourceSuggested)
}

// IsCurrentUser reports whether the given member is the current selection.
func (r *Resolver) IsCurrentUser(memberID types.ID) bool {
	selection := r.load()
	return selection.MemberID != "" && selection.MemberID == memberID
}

// SuggestedUser returns the member to suggest as "this might be you": the
// single member whose timezone exactly equals the viewer's, provided no
// selection exists yet and that member was not dismissed before.
func (r *Resolver) SuggestedUser(members []types.Member, viewerTimezone string) (types.Member, bool) {
	selection := r.load()
	if selection.MemberID != "" {
		return types.Member{}, false
	}

	var match types.Member
	count := 0
	for _, m := range members {
		if m.Timezone == viewerTimezone {
			match = m
			count++
		}
	}
	if count != 1 {
		return types.Member{}, false
	}

	for _, id := range selection.Dismissed {
		if id == match.ID {
			return types.Member{}, false
		}
	}
	return match, true
}

// Reconcile clears a selection whose member no longer exists in the given
// list. It only acts on a known, non-empty member list so a still-loading
// team does not wipe the selection.
func (r *Resolver) Reconcile(members []types.Member) error {
	if len(members) == 0 {
		return nil
	}

	selection := r.load()
	if selection.MemberID == "" {
		return nil
	}

	for _, m := range members {
		if m.ID == selection.MemberID {
			return nil
		}
	}
	return r.ClearCurrentUser()
}

func (r *Resolver) key() string {
	return fmt.Sprintf("team-identity/%s", r.teamID)
}

func (r *Resolver) load() Selection {
	var selection Selection
	kv.GetJSON(r.store, r.key(), &selection)
	return selection
}

func (r *Resolver) save(selection Selection) error {
	return kv.SetJSON(r.store, r.key(), selection)
}
