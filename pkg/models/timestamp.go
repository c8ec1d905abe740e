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
	"strings"
	"time"
)

// InvalidDate is the display form of a timestamp that could not be parsed.
const InvalidDate = "Invalid Date"

// DisplayLayout renders instants as MM/DD/YYYY, HH:MM:SS on a 24h clock.
const DisplayLayout = "01/02/2006, 15:04:05"

// naive layouts are interpreted in the local zone, the inventory writes
// datetime.now().isoformat() without an offset.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Timestamp is an instant received from the inventory. Malformed values do not
// fail decoding; they produce an invalid Timestamp that renders as InvalidDate.
type Timestamp struct {
	t     time.Time
	valid bool
	raw   string
}

// NewTimestamp wraps a known-good instant.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t, valid: true}
}

// ParseTimestamp parses the textual forms emitted by the inventory. It never
// returns an error; check Valid on the result.
func ParseTimestamp(s string) Timestamp {
	value := strings.TrimSpace(s)
	if value == "" {
		return Timestamp{raw: s}
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return Timestamp{t: t, valid: true, raw: s}
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return Timestamp{t: t, valid: true, raw: s}
		}
	}

	return Timestamp{raw: s}
}

// Valid reports whether the timestamp holds a real instant.
func (ts Timestamp) Valid() bool {
	return ts.valid
}

// Time returns the instant, or the zero time when invalid.
func (ts Timestamp) Time() time.Time {
	return ts.t
}

// Raw returns the original wire text, if any.
func (ts Timestamp) Raw() string {
	return ts.raw
}

// Display formats the instant in the local zone with DisplayLayout.
func (ts Timestamp) Display() string {
	if !ts.valid {
		return InvalidDate
	}

	return ts.t.Local().Format(DisplayLayout)
}

func (ts Timestamp) String() string {
	return ts.Display()
}

// UnmarshalJSON accepts RFC 3339 strings, naive ISO strings and epoch
// milliseconds. Anything else decodes as an invalid timestamp.
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		*ts = Timestamp{raw: string(trimmed)}
		return nil
	}

	switch value := v.(type) {
	case string:
		*ts = ParseTimestamp(value)
	case float64:
		*ts = Timestamp{t: time.UnixMilli(int64(value)), valid: true, raw: string(trimmed)}
	default:
		*ts = Timestamp{raw: string(trimmed)}
	}

	return nil
}

// MarshalJSON writes valid instants as RFC 3339 and echoes the raw text of
// invalid ones so a round trip does not invent data.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.valid {
		return json.Marshal(ts.t.Format(time.RFC3339Nano))
	}

	if ts.raw == "" {
		return []byte("null"), nil
	}

	return json.Marshal(ts.raw)
}
