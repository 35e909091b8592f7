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

// Package memory implements the kv port in memory, for tests or temporarily.
package memory

import "github.com/zonesync-team/zonesync/pkg/cmap"

// Store is an in-memory key-value store.
type Store struct {
	items *cmap.Map[string, []byte]
}

// New returns a new in-memory store.
func New() *Store {
	return &Store{
		items: cmap.New[string, []byte](),
	}
}

// Get returns the value for the key and whether it exists.
func (s *Store) Get(key string) ([]byte, bool) {
	value, ok := s.items.Get(key)
	if !ok {
		return nil, false
	}

	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, true
}

// Set stores the value for the key.
func (s *Store) Set(key string, value []byte) error {
	copied := make([]byte, len(value))
	copy(copied, value)
	s.items.Set(key, copied)
	return nil
}

// Delete removes the key.
func (s *Store) Delete(key string) error {
	s.items.Delete(key, func([]byte, bool) bool { return true })
	return nil
}
