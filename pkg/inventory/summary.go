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
	"time"

	"github.com/carverauto/devicewatch/pkg/models"
)

// Counts summarizes a device snapshot.
type Counts struct {
	Total          int
	Online         int
	RecentlyActive int
}

// Summarize counts the whole snapshot. Callers pass the unfiltered collection.
func Summarize(devices []models.Device, now time.Time) Counts {
	c := Counts{Total: len(devices)}

	for i := range devices {
		if devices[i].Online {
			c.Online++
		}

		if DeviceRecentlyActive(&devices[i], now) {
			c.RecentlyActive++
		}
	}

	return c
}
