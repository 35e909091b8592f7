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

// Package cmap provides a concurrent map.
package cmap

import "sync"

// Map is a concurrent map that is safe for multiple goroutines.
type Map[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// New creates a new Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		items: make(map[K]V),
	}
}

// Set sets a key-value pair.
func (m *Map[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = value
}

// Get retrieves the value for a key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.items[key]
	return value, exists
}

// Has checks if a key exists in the map.
func (m *Map[K, V]) Has(key K) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.items[key]
	return exists
}

// Upsert updates an existing key or inserts a new one using the provided
// function. The function receives the current value and whether it exists.
func (m *Map[K, V]) Upsert(key K, fn func(value V, exists bool) V) V {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.items[key]
	updated := fn(current, exists)
	m.items[key] = updated
	return updated
}

// Delete removes a key from the map if the provided condition is met.
func (m *Map[K, V]) Delete(key K, fn func(value V, exists bool) bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.items[key]
	if fn(current, exists) {
		delete(m.items, key)
		return true
	}
	return false
}

// Keys returns a slice of all keys in the map.
func (m *Map[K, V]) Keys() []K {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]K, 0, len(m.items))
	for key := range m.items {
		keys = append(keys, key)
	}
	return keys
}

// Values returns a slice of all values in the map.
func (m *Map[K, V]) Values() []V {
	m.mu.RLock()
	defer m.mu.RUnlock()

	values := make([]V, 0, len(m.items))
	for _, value := range m.items {
		values = append(values, value)
	}
	return values
}

// Len returns the number of items in the map.
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.items)
}
