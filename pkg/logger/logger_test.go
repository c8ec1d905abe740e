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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("DEBUG", "yes")
	t.Setenv("LOG_OUTPUT", "stderr")

	cfg := DefaultConfig()

	assert.Equal(t, "warn", cfg.Level)
	assert.True(t, cfg.Debug)
	assert.Equal(t, OutputStderr, cfg.Output)
}

func TestZerologLevel(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    zerolog.Level
		wantErr bool
	}{
		{name: "default", cfg: Config{}, want: zerolog.InfoLevel},
		{name: "debug wins", cfg: Config{Level: "error", Debug: true}, want: zerolog.DebugLevel},
		{name: "upper case", cfg: Config{Level: "WARN"}, want: zerolog.WarnLevel},
		{name: "bogus", cfg: Config{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.ZerologLevel()
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devicewatch.log")

	w, closer, err := OpenOutput(path)
	require.NoError(t, err)

	_, err = w.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(b))
}

func TestOpenOutputStreams(t *testing.T) {
	for _, name := range []string{"", OutputStdout, OutputStderr, OutputDiscard} {
		w, closer, err := OpenOutput(name)
		require.NoError(t, err)
		assert.NotNil(t, w)
		require.NoError(t, closer.Close())
	}

	_, _, err := OpenOutput(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	require.Error(t, err)
}

func TestCaptureLogger(t *testing.T) {
	var buf bytes.Buffer

	log := NewCaptureLogger(&buf)
	log.Debug().Str("poller", "devices").Msg("tick")

	assert.Contains(t, buf.String(), `"poller":"devices"`)
	assert.Contains(t, buf.String(), `"message":"tick"`)

	NewTestLogger().Error().Msg("dropped")
}
