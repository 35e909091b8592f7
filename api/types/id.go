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

// Package types provides the types shared between the client engine and the
// reference server of ZoneSync.
package types

import (
	"errors"

	"github.com/rs/xid"
)

var (
	// ErrInvalidID is returned when the given ID is empty or malformed.
	ErrInvalidID = errors.New("invalid ID")
)

// ID represents the identity of an entity such as a team, member or group.
type ID string

// NewID creates a new globally unique ID.
func NewID() ID {
	return ID(xid.New().String())
}

// String returns a string representation of this ID.
func (id ID) String() string {
	return string(id)
}

// Validate returns an error if this ID is invalid.
func (id ID) Validate() error {
	if _, err := xid.FromString(string(id)); err != nil {
		return ErrInvalidID
	}
	return nil
}
