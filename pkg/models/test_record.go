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

import (
	"bytes"
	"encoding/json"
)

// TestType distinguishes the two kinds of diagnostic tests.
type TestType string

const (
	TestTypePing      TestType = "ping"
	TestTypeSpeedtest TestType = "speedtest"
)

// TestRecord is one completed diagnostic test. Which measurement fields are
// populated depends on TestType; absent values stay nil.
type TestRecord struct {
	ID        RecordID    `json:"id,omitempty"`
	DeviceID  string      `json:"device_id"`
	TestType  TestType    `json:"test_type"`
	Timestamp Timestamp   `json:"timestamp"`

	// ping
	Target     *string  `json:"target,omitempty"`
	RTTAvg     *float64 `json:"rtt_avg,omitempty"`
	RTTMin     *float64 `json:"rtt_min,omitempty"`
	RTTMax     *float64 `json:"rtt_max,omitempty"`
	PacketLoss *float64 `json:"packet_loss,omitempty"`

	// speedtest
	DownloadMbps *float64 `json:"download_mbps,omitempty"`
	UploadMbps   *float64 `json:"upload_mbps,omitempty"`
	PingMs       *float64 `json:"ping_ms,omitempty"`
	ServerName   *string  `json:"server_name,omitempty"`
}

// RecordID identifies a test record. The inventory may send it as a JSON
// string or as an integer row id; both decode to the same textual form.
type RecordID string

func (id *RecordID) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}

		*id = RecordID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}

	*id = RecordID(n.String())

	return nil
}

// TestsResponse is the body of GET /tests?device_id={id}, newest first.
type TestsResponse struct {
	Tests []TestRecord `json:"tests"`
}

// IsPing reports whether the record came from a ping test.
func (r *TestRecord) IsPing() bool {
	return r.TestType == TestTypePing
}

// IsSpeedtest reports whether the record came from a speedtest.
func (r *TestRecord) IsSpeedtest() bool {
	return r.TestType == TestTypeSpeedtest
}

// ServerLabel is the speedtest server to display: server_name, then target.
func (r *TestRecord) ServerLabel() (string, bool) {
	if r.ServerName != nil && *r.ServerName != "" {
		return *r.ServerName, true
	}

	if r.Target != nil && *r.Target != "" {
		return *r.Target, true
	}

	return "", false
}

// PartitionTests splits records into ping and speedtest groups, preserving the
// inventory's newest-first order. Records of other types are ignored.
func PartitionTests(tests []TestRecord) (ping, speed []TestRecord) {
	ping = make([]TestRecord, 0, len(tests))
	speed = make([]TestRecord, 0, len(tests))

	for i := range tests {
		switch tests[i].TestType {
		case TestTypePing:
			ping = append(ping, tests[i])
		case TestTypeSpeedtest:
			speed = append(speed, tests[i])
		}
	}

	return ping, speed
}
