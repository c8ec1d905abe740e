/*
 * Copyright 2025 Carver Automation Corporation.
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

// Package accordion models an exclusive expand/collapse group: at most one
// section is open at a time.
package accordion

import "fmt"

// State is either None or Expanded(key).
type State[K comparable] struct {
	key      K
	expanded bool
}

// None returns the all-collapsed state.
func None[K comparable]() State[K] {
	return State[K]{}
}

// Expanded returns the state with only key open.
func Expanded[K comparable](key K) State[K] {
	return State[K]{key: key, expanded: true}
}

// Toggle applies a header click. Clicking the open section collapses it;
// clicking any other section opens it and closes the rest.
func Toggle[K comparable](current State[K], clicked K) State[K] {
	if current.expanded && current.key == clicked {
		return None[K]()
	}

	return Expanded(clicked)
}

// Toggle is the method form of Toggle.
func (s State[K]) Toggle(clicked K) State[K] {
	return Toggle(s, clicked)
}

// Key returns the open section, if any.
func (s State[K]) Key() (K, bool) {
	return s.key, s.expanded
}

// IsExpanded reports whether key is the open section.
func (s State[K]) IsExpanded(key K) bool {
	return s.expanded && s.key == key
}

// IsNone reports whether every section is collapsed.
func (s State[K]) IsNone() bool {
	return !s.expanded
}

func (s State[K]) String() string {
	if !s.expanded {
		return "None"
	}

	return fmt.Sprintf("Expanded(%v)", s.key)
}
