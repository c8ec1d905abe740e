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

// Package poller runs a fetch immediately and then on a fixed interval until
// cancelled, delivering each result through callbacks.
package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/carverauto/devicewatch/pkg/logger"
)

// State is the lifecycle of a polling session.
type State int32

const (
	StateIdle State = iota
	StateFetching
	StateLoaded
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Options configures a Session. Fetch and Interval are required; the
// callbacks are optional.
type Options[T any] struct {
	Name     string
	Interval time.Duration
	Fetch    func(ctx context.Context) (T, error)

	// OnData receives each applied payload.
	OnData func(T)
	// OnError receives each applied failure. The previous payload is kept.
	OnError func(error)
	// OnLoaded fires once, after the first applied result of either kind.
	OnLoaded func()
}

// Session is one running poll schedule.
//
// Fetches may overlap when a response takes longer than Interval. Every fetch
// is stamped with a sequence number and a result is applied only if it is
// newer than the last applied one, so an old response can never overwrite a
// newer snapshot.
//
// Callbacks run with the delivery lock held and must not call Cancel on their
// own session.
type Session[T any] struct {
	opts   Options[T]
	ticker Ticker
	logger logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	// mu serializes delivery against Cancel.
	mu        sync.Mutex
	cancelled bool
	seq       uint64
	applied   uint64

	state   atomic.Int32
	loading atomic.Bool

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Start begins polling. The first fetch is issued immediately and later ones
// on every tick of a ticker created from clock.
func Start[T any](ctx context.Context, opts Options[T], clock Clock, log logger.Logger) (*Session[T], error) {
	if opts.Fetch == nil {
		return nil, errFetchRequired
	}

	if opts.Interval <= 0 {
		return nil, errInvalidInterval
	}

	if clock == nil {
		clock = realClock{}
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	sessionCtx, cancel := context.WithCancel(ctx)

	s := &Session[T]{
		opts:   opts,
		logger: log,
		ctx:    sessionCtx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.loading.Store(true)
	s.state.Store(int32(StateIdle))
	s.ticker = clock.Ticker(opts.Interval)

	s.logger.Debug().
		Str("poller", opts.Name).
		Dur("interval", opts.Interval).
		Msg("Starting poll session")

	s.launch()

	s.wg.Add(1)

	go s.loop()

	return s, nil
}

func (s *Session[T]) loop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.done:
			return
		case <-s.ctx.Done():
			s.Cancel()
			return
		case <-s.ticker.Chan():
			s.launch()
		}
	}
}

// launch issues one fetch unless the session is already cancelled.
func (s *Session[T]) launch() {
	s.mu.Lock()

	if s.cancelled {
		s.mu.Unlock()
		return
	}

	s.seq++
	seq := s.seq

	s.state.Store(int32(StateFetching))
	s.wg.Add(1)
	s.mu.Unlock()

	go s.run(seq)
}

func (s *Session[T]) run(seq uint64) {
	defer s.wg.Done()

	payload, err := s.opts.Fetch(s.ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelled {
		s.logger.Debug().Str("poller", s.opts.Name).Uint64("seq", seq).Msg("Discarding response after cancel")
		return
	}

	if seq <= s.applied {
		s.logger.Debug().
			Str("poller", s.opts.Name).
			Uint64("seq", seq).
			Uint64("applied", s.applied).
			Msg("Dropping stale poll response")

		return
	}

	s.applied = seq

	if err != nil {
		s.state.Store(int32(StateFailed))
		s.logger.Warn().Err(err).Str("poller", s.opts.Name).Uint64("seq", seq).Msg("Poll failed")

		if s.opts.OnError != nil {
			s.opts.OnError(err)
		}
	} else {
		s.state.Store(int32(StateLoaded))

		if s.opts.OnData != nil {
			s.opts.OnData(payload)
		}
	}

	if s.loading.CompareAndSwap(true, false) && s.opts.OnLoaded != nil {
		s.opts.OnLoaded()
	}
}

// Cancel stops the schedule and aborts any in-flight fetch. Once it returns no
// callback is running and none will run again. It is safe to call more than
// once and on a nil Session.
func (s *Session[T]) Cancel() {
	if s == nil {
		return
	}

	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.cancelled = true
		s.state.Store(int32(StateCancelled))
		s.mu.Unlock()

		s.cancel()
		s.ticker.Stop()
		close(s.done)

		s.logger.Debug().Str("poller", s.opts.Name).Msg("Poll session cancelled")
	})
}

// Wait blocks until the schedule loop and every fetch goroutine have exited.
func (s *Session[T]) Wait() {
	if s == nil {
		return
	}

	s.wg.Wait()
}

// Done is closed when the session is cancelled.
func (s *Session[T]) Done() <-chan struct{} {
	return s.done
}

// Loading reports whether the first result is still outstanding.
func (s *Session[T]) Loading() bool {
	return s.loading.Load() && s.State() != StateCancelled
}

// State returns the current lifecycle state.
func (s *Session[T]) State() State {
	return State(s.state.Load())
}

// Name returns the session name used in logs.
func (s *Session[T]) Name() string {
	return s.opts.Name
}
