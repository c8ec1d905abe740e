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

package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/devicewatch/pkg/accordion"
	"github.com/carverauto/devicewatch/pkg/inventory"
	"github.com/carverauto/devicewatch/pkg/models"
)

func ptr[T any](v T) *T {
	return &v
}

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)

func TestComposeDeviceListCountsFullSnapshot(t *testing.T) {
	snapshot := []models.Device{
		{DeviceID: "d1", Name: "Router", Online: true, LastSeen: models.NewTimestamp(now.Add(-time.Minute))},
		{DeviceID: "d2", Online: false, LastSeen: models.NewTimestamp(now.Add(-10 * time.Minute))},
		{DeviceID: "d3", Online: true, LastSeen: models.NewTimestamp(now.Add(-3 * time.Hour))},
	}

	list := ComposeDeviceList(snapshot, inventory.FilterOptions{OnlineOnly: true}, false, now)

	require.Len(t, list.Rows, 1)
	assert.Equal(t, "d1", list.Rows[0].DeviceID)
	assert.Equal(t, "ONLINE", list.Rows[0].Status())
	assert.True(t, list.Rows[0].RecentlyActive)
	assert.Equal(t, "06/01/2025, 11:59:00", list.Rows[0].LastSeen)
	assert.Equal(t, "Found 3 device(s) | 2 online | 2 active in last hour", list.Header())
}

func TestComposeDeviceListInvalidLastSeen(t *testing.T) {
	snapshot := []models.Device{{DeviceID: "d1", LastSeen: models.ParseTimestamp("??")}}

	list := ComposeDeviceList(snapshot, inventory.FilterOptions{IncludeInactive: true}, true, now)

	require.Len(t, list.Rows, 1)
	assert.Equal(t, models.InvalidDate, list.Rows[0].LastSeen)
	assert.Equal(t, "OFFLINE", list.Rows[0].Status())
	assert.True(t, list.Loading)
}

func TestComposeDetailStates(t *testing.T) {
	loading := ComposeDetail("d1", nil, DefaultAccordion(), true)
	assert.True(t, loading.Loading)
	assert.Empty(t, loading.Groups)

	empty := ComposeDetail("d1", []models.TestRecord{}, DefaultAccordion(), false)
	assert.True(t, empty.NoTests)
	assert.Empty(t, empty.Groups)
}

func TestComposeDetailGroups(t *testing.T) {
	ts := models.NewTimestamp(time.Date(2025, 1, 2, 15, 4, 5, 0, time.Local))

	tests := []models.TestRecord{
		{ID: "3", TestType: models.TestTypeSpeedtest, Timestamp: ts,
			DownloadMbps: ptr(93.456), UploadMbps: ptr(11.0), PingMs: ptr(14.333)},
		{ID: "2", TestType: models.TestTypePing, Timestamp: ts, Target: ptr("8.8.8.8"),
			RTTAvg: ptr(12.5), RTTMin: ptr(10.0), RTTMax: ptr(15.999), PacketLoss: ptr(25.0)},
		{ID: "1", TestType: models.TestTypePing, Timestamp: models.ParseTimestamp("bad"),
			PacketLoss: ptr(0.0)},
	}

	d := ComposeDetail("d1", tests, DefaultAccordion(), false)

	require.Len(t, d.Groups, 2)

	ping := d.Groups[0]
	assert.Equal(t, models.TestTypePing, ping.Key)
	assert.Equal(t, "Ping Tests", ping.Title)
	assert.Equal(t, 2, ping.Count)
	assert.True(t, ping.Expanded)
	require.Len(t, ping.Rows, 2)

	assert.Equal(t, []Cell{
		{Text: "01/02/2025, 15:04:05"},
		{Text: "8.8.8.8"},
		{Text: "12.50 ms"},
		{Text: "10.00 ms"},
		{Text: "16.00 ms"},
		{Text: "25%", Emphasis: EmphasisBad},
	}, ping.Rows[0])

	assert.Equal(t, models.InvalidDate, ping.Rows[1][0].Text)
	assert.Equal(t, NotAvailable, ping.Rows[1][1].Text)
	assert.Equal(t, NotAvailable, ping.Rows[1][2].Text)
	assert.Equal(t, Cell{Text: "0%", Emphasis: EmphasisGood}, ping.Rows[1][5])

	speed := d.Groups[1]
	assert.Equal(t, models.TestTypeSpeedtest, speed.Key)
	assert.False(t, speed.Expanded)
	require.Len(t, speed.Rows, 1)
	assert.Equal(t, Cell{Text: "93.46 Mbps", Emphasis: EmphasisPrimary}, speed.Rows[0][1])
	assert.Equal(t, Cell{Text: "11.00 Mbps", Emphasis: EmphasisSecondary}, speed.Rows[0][2])
	assert.Equal(t, "14.33 ms", speed.Rows[0][3].Text)
	assert.Equal(t, NotAvailable, speed.Rows[0][4].Text)
}

func TestComposeDetailAccordion(t *testing.T) {
	tests := []models.TestRecord{{TestType: models.TestTypeSpeedtest, ServerName: ptr("Comcast")}}

	d := ComposeDetail("d1", tests, accordion.Expanded(models.TestTypeSpeedtest), false)
	require.Len(t, d.Groups, 2)
	assert.False(t, d.Groups[0].Expanded)
	assert.Equal(t, 0, d.Groups[0].Count)
	assert.Empty(t, d.Groups[0].Rows)
	assert.True(t, d.Groups[1].Expanded)
	assert.Equal(t, "Comcast", d.Groups[1].Rows[0][4].Text)

	d = ComposeDetail("d1", tests, accordion.None[models.TestType](), false)
	assert.False(t, d.Groups[0].Expanded)
	assert.False(t, d.Groups[1].Expanded)
}
