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
	"fmt"
	"time"

	"github.com/carverauto/devicewatch/pkg/inventory"
	"github.com/carverauto/devicewatch/pkg/models"
)

const (
	LoadingDevicesText = "Loading devices..."
	NoDevicesText      = "No devices match the current filters."
)

// DeviceRow is one device in the list screen.
type DeviceRow struct {
	DeviceID       string
	Name           string
	Online         bool
	RecentlyActive bool
	LastSeen       string
}

// Status is the ONLINE/OFFLINE badge text.
func (r DeviceRow) Status() string {
	if r.Online {
		return "ONLINE"
	}

	return "OFFLINE"
}

// DeviceList is the composed list screen.
type DeviceList struct {
	Rows    []DeviceRow
	Counts  inventory.Counts
	Loading bool
}

// Header is the summary line above the list.
func (l DeviceList) Header() string {
	return fmt.Sprintf("Found %d device(s) | %d online | %d active in last hour",
		l.Counts.Total, l.Counts.Online, l.Counts.RecentlyActive)
}

// ComposeDeviceList filters snapshot for display. Counts always cover the
// whole snapshot, not just the visible rows.
func ComposeDeviceList(snapshot []models.Device, opts inventory.FilterOptions, loading bool, now time.Time) DeviceList {
	visible := inventory.FilterDevices(snapshot, opts, now)

	rows := make([]DeviceRow, 0, len(visible))
	for i := range visible {
		rows = append(rows, DeviceRow{
			DeviceID:       visible[i].DeviceID,
			Name:           visible[i].Name,
			Online:         visible[i].Online,
			RecentlyActive: inventory.DeviceRecentlyActive(&visible[i], now),
			LastSeen:       FormatTimestamp(visible[i].LastSeen),
		})
	}

	return DeviceList{
		Rows:    rows,
		Counts:  inventory.Summarize(snapshot, now),
		Loading: loading,
	}
}
