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

// Package inventory holds the pure device rules: liveness classification,
// list filtering and summary counts. Nothing here reads the wall clock.
package inventory

import (
	"time"

	"github.com/carverauto/devicewatch/pkg/models"
)

// RecentWindow is how far back last_seen may be for a device to count as
// recently active.
const RecentWindow = time.Hour

// IsRecentlyActive reports whether lastSeen falls within RecentWindow of now.
// The boundary is inclusive and future instants count as active.
func IsRecentlyActive(lastSeen, now time.Time) bool {
	return now.Sub(lastSeen) <= RecentWindow
}

// DeviceRecentlyActive applies IsRecentlyActive to a device. A device whose
// last_seen could not be parsed is never recently active.
func DeviceRecentlyActive(d *models.Device, now time.Time) bool {
	if !d.LastSeen.Valid() {
		return false
	}

	return IsRecentlyActive(d.LastSeen.Time(), now)
}
