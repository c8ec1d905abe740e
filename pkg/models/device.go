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

package models

// Device represents a monitored network endpoint as reported by the inventory.
type Device struct {
	DeviceID string    `json:"device_id"`
	Name     string    `json:"name,omitempty"`
	Online   bool      `json:"online"`
	LastSeen Timestamp `json:"last_seen"`
}

// DevicesResponse is the body of GET /devices.
type DevicesResponse struct {
	Devices []Device `json:"devices"`
}
