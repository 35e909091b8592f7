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

// Package kv defines the key-value port for persisted client state: team
// sessions, identity selections, the recent-team list and collapsed groups.
// Readers must treat missing or malformed values as absent, never as errors.
package kv

import "encoding/json"

// Store is a device-scoped key-value store.
type Store interface {
	// Get returns the value for the key and whether it exists.
	Get(key string) ([]byte, bool)

	// Set stores the value for the key.
	Set(key string, value []byte) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(key string) error
}

// GetJSON reads the key and unmarshals it into out. It returns false when
// the key is missing or the value is malformed; out is left untouched in
// that case, so callers keep their defaults.
func GetJSON(store Store, key string, out interface{}) bool {
	raw, ok := store.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// SetJSON marshals the value and stores it under the key.
func SetJSON(store Store, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return store.Set(key, raw)
}
