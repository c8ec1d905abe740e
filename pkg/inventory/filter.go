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

package inventory

import (
	"strings"
	"time"

	"github.com/carverauto/devicewatch/pkg/models"
)

// FilterOptions are the user-controlled list filters.
type FilterOptions struct {
	OnlineOnly      bool
	IncludeInactive bool
	Query           string
}

// Matches reports whether a single device passes opts at now.
//
// OnlineOnly and IncludeInactive act as pre-filters; when a query is present it
// is the final test and a device must match it regardless of the other rules.
func (opts FilterOptions) Matches(d *models.Device, now time.Time) bool {
	if opts.OnlineOnly && !d.Online {
		return false
	}

	if !opts.IncludeInactive && !DeviceRecentlyActive(d, now) {
		return false
	}

	if opts.Query == "" {
		return true
	}

	q := strings.ToLower(opts.Query)

	if strings.Contains(strings.ToLower(d.DeviceID), q) {
		return true
	}

	return d.Name != "" && strings.Contains(strings.ToLower(d.Name), q)
}

// FilterDevices returns the devices that pass opts, in input order. The result
// is always a fresh slice, never nil.
func FilterDevices(devices []models.Device, opts FilterOptions, now time.Time) []models.Device {
	out := make([]models.Device, 0, len(devices))

	for i := range devices {
		if opts.Matches(&devices[i], now) {
			out = append(out, devices[i])
		}
	}

	return out
}
