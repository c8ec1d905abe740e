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
	"github.com/carverauto/devicewatch/pkg/accordion"
	"github.com/carverauto/devicewatch/pkg/models"
)

const (
	LoadingTestsText = "Loading Tests..."
	NoTestsText      = "No tests yet. Run a test above!"
)

// Group is one accordion section of the detail screen.
type Group struct {
	Key       models.TestType
	Title     string
	Count     int
	Expanded  bool
	EmptyText string
	Columns   []string
	Rows      [][]Cell
}

// Detail is the composed device detail screen.
type Detail struct {
	DeviceID string
	Loading  bool
	NoTests  bool
	Groups   []Group
}

// GroupOrder is the fixed order of accordion sections.
var GroupOrder = []models.TestType{models.TestTypePing, models.TestTypeSpeedtest}

var (
	pingColumns      = []string{"Time", "Target", "Avg RTT", "Min RTT", "Max RTT", "Packet Loss"}
	speedtestColumns = []string{"Time", "Download", "Upload", "Ping", "Server"}
)

// DefaultAccordion is the state a freshly opened detail screen starts in.
func DefaultAccordion() accordion.State[models.TestType] {
	return accordion.Expanded(models.TestTypePing)
}

// ComposeDetail partitions tests into the ping and speedtest sections.
// Records keep the inventory's newest-first order.
func ComposeDetail(deviceID string, tests []models.TestRecord, acc accordion.State[models.TestType], loading bool) Detail {
	d := Detail{DeviceID: deviceID, Loading: loading}

	if loading {
		return d
	}

	if len(tests) == 0 {
		d.NoTests = true
		return d
	}

	ping, speed := models.PartitionTests(tests)

	pingGroup := Group{
		Key:       models.TestTypePing,
		Title:     "Ping Tests",
		Count:     len(ping),
		Expanded:  acc.IsExpanded(models.TestTypePing),
		EmptyText: "No ping tests yet.",
		Columns:   pingColumns,
		Rows:      make([][]Cell, 0, len(ping)),
	}

	for i := range ping {
		pingGroup.Rows = append(pingGroup.Rows, pingRow(&ping[i]))
	}

	speedGroup := Group{
		Key:       models.TestTypeSpeedtest,
		Title:     "Speed Tests",
		Count:     len(speed),
		Expanded:  acc.IsExpanded(models.TestTypeSpeedtest),
		EmptyText: "No speed tests yet.",
		Columns:   speedtestColumns,
		Rows:      make([][]Cell, 0, len(speed)),
	}

	for i := range speed {
		speedGroup.Rows = append(speedGroup.Rows, speedtestRow(&speed[i]))
	}

	d.Groups = []Group{pingGroup, speedGroup}

	return d
}

func pingRow(r *models.TestRecord) []Cell {
	loss := Cell{Text: FormatPercent(r.PacketLoss), Emphasis: EmphasisGood}
	if r.PacketLoss == nil {
		loss.Emphasis = EmphasisNone
	} else if *r.PacketLoss > 0 {
		loss.Emphasis = EmphasisBad
	}

	return []Cell{
		plain(FormatTimestamp(r.Timestamp)),
		plain(stringOr(r.Target, NotAvailable)),
		plain(FormatMeasure(r.RTTAvg, "ms")),
		plain(FormatMeasure(r.RTTMin, "ms")),
		plain(FormatMeasure(r.RTTMax, "ms")),
		loss,
	}
}

func speedtestRow(r *models.TestRecord) []Cell {
	server, ok := r.ServerLabel()
	if !ok {
		server = NotAvailable
	}

	return []Cell{
		plain(FormatTimestamp(r.Timestamp)),
		{Text: FormatMeasure(r.DownloadMbps, "Mbps"), Emphasis: EmphasisPrimary},
		{Text: FormatMeasure(r.UploadMbps, "Mbps"), Emphasis: EmphasisSecondary},
		plain(FormatMeasure(r.PingMs, "ms")),
		plain(server),
	}
}
