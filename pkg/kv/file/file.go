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

// Package file implements the kv port on a single JSON file, the way the
// CLI persists its device-scoped state under the user's home directory.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a key-value store backed by one JSON file. Malformed or missing
// files read as empty.
type Store struct {
	mu   sync.Mutex
	path string
}

// New returns a store backed by the file at the given path. The parent
// directory is created if needed.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &Store{path: path}, nil
}

// Get returns the value for the key and whether it exists.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	value, ok := items[key]
	if !ok {
		return nil, false
	}
	return value, true
}

// Set stores the value for the key.
func (s *Store) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	copied := make([]byte, len(value))
	copy(copied, value)
	items[key] = copied
	return s.save(items)
}

// Delete removes the key.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return s.save(items)
}

// load reads the backing file. A missing or malformed file reads as empty
// rather than failing. Values are stored as []byte so arbitrary, non-JSON
// bytes survive the round trip; encoding/json base64-encodes them.
func (s *Store) load() map[string][]byte {
	items := make(map[string][]byte)

	raw, err := os.ReadFile(filepath.Clean(s.path))
	if err != nil {
		return items
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return make(map[string][]byte)
	}
	return items
}

func (s *Store) save(items map[string][]byte) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
