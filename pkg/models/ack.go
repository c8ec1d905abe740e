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

// AckStatusError is the status the inventory uses when it refuses a command,
// e.g. because the device is not connected.
const AckStatusError = "error"

// Ack is the inventory's acknowledgement of a test command. An Ack only says
// the command was accepted or refused; results show up later in the history.
type Ack struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// Rejected reports whether the inventory refused the command.
func (a Ack) Rejected() bool {
	return a.Status == AckStatusError
}

// Summary returns the best human-readable description of the ack.
func (a Ack) Summary() string {
	if a.Message != "" {
		return a.Message
	}

	return a.Status
}
