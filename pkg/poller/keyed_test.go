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
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/devicewatch/pkg/logger"
)

func TestKeyedRearmTearsDownPreviousSession(t *testing.T) {
	keyed := NewKeyed[string](newManualClock(), logger.NewTestLogger())
	rec := newRecorder()

	releaseA := make(chan struct{})
	startedA := make(chan struct{})

	sessionA, err := keyed.Rearm(context.Background(), "device-a", rec.options(func(context.Context) (string, error) {
		close(startedA)
		<-releaseA

		return "tests for a", nil
	}))
	require.NoError(t, err)

	receive(t, startedA)

	sessionB, err := keyed.Rearm(context.Background(), "device-b", rec.options(func(context.Context) (string, error) {
		return "tests for b", nil
	}))
	require.NoError(t, err)

	defer keyed.Stop()

	assert.Equal(t, StateCancelled, sessionA.State())
	assert.NotSame(t, sessionA, sessionB)

	close(releaseA)
	sessionA.Wait()

	assert.Equal(t, "tests for b", receive(t, rec.data))
	assert.Empty(t, rec.data)

	key, active := keyed.Key()
	assert.True(t, active)
	assert.Equal(t, "device-b", key)
}

func TestKeyedRearmSameKeyIsNoop(t *testing.T) {
	keyed := NewKeyed[string](newManualClock(), logger.NewTestLogger())

	var starts atomic.Int32

	opts := Options[string]{
		Interval: time.Second,
		Fetch: func(context.Context) (string, error) {
			starts.Add(1)
			return "", nil
		},
	}

	first, err := keyed.Rearm(context.Background(), "d1", opts)
	require.NoError(t, err)

	second, err := keyed.Rearm(context.Background(), "d1", opts)
	require.NoError(t, err)

	assert.Same(t, first, second)

	keyed.Stop()
	first.Wait()

	assert.Equal(t, int32(1), starts.Load())
	assert.Nil(t, keyed.Session())

	_, active := keyed.Key()
	assert.False(t, active)

	// stopping twice is harmless
	keyed.Stop()
}

func TestKeyedRearmAfterStopStartsFresh(t *testing.T) {
	keyed := NewKeyed[string](newManualClock(), logger.NewTestLogger())
	rec := newRecorder()

	opts := rec.options(func(context.Context) (string, error) { return "x", nil })

	first, err := keyed.Rearm(context.Background(), "d1", opts)
	require.NoError(t, err)
	receive(t, rec.data)

	keyed.Stop()

	second, err := keyed.Rearm(context.Background(), "d1", opts)
	require.NoError(t, err)
	receive(t, rec.data)

	assert.NotSame(t, first, second)
	keyed.Stop()
}

func TestKeyedRequiresKey(t *testing.T) {
	keyed := NewKeyed[string](nil, nil)

	_, err := keyed.Rearm(context.Background(), "", Options[string]{})
	require.ErrorIs(t, err, errKeyRequired)
}
