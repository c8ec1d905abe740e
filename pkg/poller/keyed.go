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

package poller

import (
	"context"
	"sync"

	"github.com/carverauto/devicewatch/pkg/logger"
)

// Keyed owns at most one Session at a time, bound to a key such as a device
// id. Rearm with a new key tears down the old session before the new one
// starts, so a late response for the previous key can never be delivered.
type Keyed[T any] struct {
	clock  Clock
	logger logger.Logger

	mu      sync.Mutex
	key     string
	session *Session[T]
}

// NewKeyed returns an idle supervisor.
func NewKeyed[T any](clock Clock, log logger.Logger) *Keyed[T] {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Keyed[T]{clock: clock, logger: log}
}

// Rearm starts polling for key. Re-arming with the active key is a no-op.
func (k *Keyed[T]) Rearm(ctx context.Context, key string, opts Options[T]) (*Session[T], error) {
	if key == "" {
		return nil, errKeyRequired
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if k.session != nil && k.key == key && k.session.State() != StateCancelled {
		return k.session, nil
	}

	if k.session != nil {
		k.logger.Debug().Str("from", k.key).Str("to", key).Msg("Re-arming poller")
	}

	k.session.Cancel()
	k.session = nil
	k.key = ""

	s, err := Start(ctx, opts, k.clock, k.logger)
	if err != nil {
		return nil, err
	}

	k.key = key
	k.session = s

	return s, nil
}

// Stop cancels the active session, if any.
func (k *Keyed[T]) Stop() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.session.Cancel()
	k.session = nil
	k.key = ""
}

// Key returns the active key.
func (k *Keyed[T]) Key() (string, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	return k.key, k.session != nil
}

// Session returns the active session, or nil.
func (k *Keyed[T]) Session() *Session[T] {
	k.mu.Lock()
	defer k.mu.Unlock()

	return k.session
}
