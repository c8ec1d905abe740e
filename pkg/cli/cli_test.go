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

package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/devicewatch/pkg/logger"
	"github.com/carverauto/devicewatch/pkg/models"
	"github.com/carverauto/devicewatch/pkg/view"
)

func TestParseFlags(t *testing.T) {
	cmd, err := ParseFlags([]string{"-api", "http://inv:8000", "-debug", "-once", "-all", "-query", "rpi", "extra"})
	require.NoError(t, err)

	assert.Equal(t, "http://inv:8000", cmd.APIURL)
	assert.True(t, cmd.Debug)
	assert.True(t, cmd.Once)
	assert.True(t, cmd.All)
	assert.Equal(t, "rpi", cmd.Query)
	assert.Equal(t, []string{"extra"}, cmd.Args)

	_, err = ParseFlags([]string{"-nope"})
	assert.Error(t, err)
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, models.Duration(5*time.Second), cfg.DevicePollInterval)
	assert.Equal(t, models.Duration(10*time.Second), cfg.TestPollInterval)
	assert.Equal(t, "8.8.8.8", cfg.DefaultPingTarget)
	assert.Equal(t, 4, cfg.PingCount)
	require.NotNil(t, cfg.Logging)
	assert.NotEqual(t, logger.OutputStdout, cfg.Logging.Output)

	require.ErrorIs(t, cfg.Validate(), errAPIURLRequired)

	cfg.APIURL = "ftp://inv"
	require.ErrorIs(t, cfg.Validate(), errAPIURLInvalid)

	cfg.APIURL = " http://inv:8000 "
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://inv:8000", cfg.APIURL)

	cfg.PingCount = -1
	require.ErrorIs(t, cfg.Validate(), errPingCountInvalid)
}

func TestApplyFlags(t *testing.T) {
	cfg := &Config{APIURL: "http://from-file"}

	cfg.ApplyFlags(&CmdConfig{APIURL: "http://from-flag", Debug: true, LogOutput: logger.OutputStderr})

	assert.Equal(t, "http://from-flag", cfg.APIURL)
	require.NotNil(t, cfg.Logging)
	assert.True(t, cfg.Logging.Debug)
	assert.Equal(t, logger.OutputStderr, cfg.Logging.Output)

	cfg.ApplyFlags(&CmdConfig{})
	assert.Equal(t, "http://from-flag", cfg.APIURL)
}

func TestShowHelp(t *testing.T) {
	var buf bytes.Buffer

	ShowHelp(&buf)

	assert.Contains(t, buf.String(), "-api string")
	assert.Contains(t, buf.String(), "DEVICEWATCH_API_URL")
}

func TestRunOnce(t *testing.T) {
	inv := testInventory()

	var buf bytes.Buffer

	require.NoError(t, RunOnce(context.Background(), inv, &buf, &CmdConfig{}, time.Now()))

	out := buf.String()
	assert.Contains(t, out, "Found 3 device(s) | 1 online | 2 active in last hour")
	assert.Contains(t, out, "rpi-02")
	assert.NotContains(t, out, "rpi-03")

	buf.Reset()

	require.NoError(t, RunOnce(context.Background(), inv, &buf, &CmdConfig{All: true, Query: "attic"}, time.Now()))
	assert.Contains(t, buf.String(), "rpi-03")
	assert.NotContains(t, buf.String(), "rpi-01")

	buf.Reset()

	require.NoError(t, RunOnce(context.Background(), inv, &buf, &CmdConfig{Query: "zzz"}, time.Now()))
	assert.Contains(t, buf.String(), view.NoDevicesText)

	inv.devicesErr = errBackendDown
	require.ErrorIs(t, RunOnce(context.Background(), inv, &buf, &CmdConfig{}, time.Now()), errBackendDown)
}

func TestMailboxDeliversInOrderAndStopsOnClose(t *testing.T) {
	box := newMailbox()
	listen := box.listen()

	box.post(devicesLoadedMsg{gen: 1})
	box.post(devicesLoadedMsg{gen: 2})

	assert.Equal(t, inboxMsg{msg: devicesLoadedMsg{gen: 1}}, listen())
	assert.Equal(t, inboxMsg{msg: devicesLoadedMsg{gen: 2}}, listen())

	got := make(chan any, 1)

	go func() { got <- listen() }()

	box.close()
	box.close()

	select {
	case msg := <-got:
		assert.Nil(t, msg)
	case <-time.After(waitFor):
		t.Fatal("listen did not return after close")
	}
}
