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

package logger

import (
	"io"

	"github.com/rs/zerolog"
)

type Logger interface {
	Trace() *zerolog.Event
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
	Fatal() *zerolog.Event
	Panic() *zerolog.Event
	With() zerolog.Context
	WithComponent(component string) zerolog.Logger
	WithFields(fields map[string]interface{}) zerolog.Logger
	SetLevel(level zerolog.Level)
	SetDebug(debug bool)
}

// NewTestLogger creates a no-op logger for testing that discards all output
func NewTestLogger() Logger {
	return &testLogger{zl: zerolog.New(io.Discard).Level(zerolog.Disabled)}
}

// NewCaptureLogger writes debug-level JSON lines to w. Tests use it to assert
// on what a component logged; w must be safe for concurrent writes.
func NewCaptureLogger(w io.Writer) Logger {
	return &testLogger{zl: zerolog.New(w).Level(zerolog.DebugLevel)}
}

type testLogger struct {
	zl zerolog.Logger
}

func (t *testLogger) Trace() *zerolog.Event { return t.zl.Trace() }
func (t *testLogger) Debug() *zerolog.Event { return t.zl.Debug() }
func (t *testLogger) Info() *zerolog.Event  { return t.zl.Info() }
func (t *testLogger) Warn() *zerolog.Event  { return t.zl.Warn() }
func (t *testLogger) Error() *zerolog.Event { return t.zl.Error() }
func (t *testLogger) Fatal() *zerolog.Event { return t.zl.Fatal() }
func (t *testLogger) Panic() *zerolog.Event { return t.zl.Panic() }
func (t *testLogger) With() zerolog.Context { return t.zl.With() }
func (t *testLogger) WithComponent(component string) zerolog.Logger {
	return t.zl.With().Str("component", component).Logger()
}
func (t *testLogger) WithFields(fields map[string]interface{}) zerolog.Logger {
	return t.zl.With().Fields(fields).Logger()
}
func (t *testLogger) SetLevel(level zerolog.Level) { t.zl = t.zl.Level(level) }
func (*testLogger) SetDebug(_ bool)                { /* no-op */ }
