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

package accordion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type group string

const (
	groupPing  group = "ping"
	groupSpeed group = "speedtest"
)

func TestToggleTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current State[group]
		click   group
		want    State[group]
	}{
		{name: "collapse open group", current: Expanded(groupPing), click: groupPing, want: None[group]()},
		{name: "switch to other group", current: Expanded(groupPing), click: groupSpeed, want: Expanded(groupSpeed)},
		{name: "open from none", current: None[group](), click: groupSpeed, want: Expanded(groupSpeed)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Toggle(tt.current, tt.click)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, tt.current.Toggle(tt.click))
		})
	}
}

func TestAtMostOneExpanded(t *testing.T) {
	keys := []group{groupPing, groupSpeed, groupPing, groupPing, groupSpeed, groupSpeed}
	s := Expanded(groupPing)

	for _, k := range keys {
		s = s.Toggle(k)

		open := 0
		for _, candidate := range []group{groupPing, groupSpeed} {
			if s.IsExpanded(candidate) {
				open++
			}
		}

		assert.LessOrEqual(t, open, 1)
		assert.Equal(t, open == 0, s.IsNone())
	}
}

func TestKeyAndString(t *testing.T) {
	k, ok := None[group]().Key()
	assert.False(t, ok)
	assert.Empty(t, k)
	assert.Equal(t, "None", None[group]().String())

	k, ok = Expanded(groupSpeed).Key()
	assert.True(t, ok)
	assert.Equal(t, groupSpeed, k)
	assert.Equal(t, "Expanded(speedtest)", Expanded(groupSpeed).String())
}
