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

package cli

import (
	"fmt"
	"io"
)

// ShowHelp prints usage information.
func ShowHelp(w io.Writer) {
	fmt.Fprint(w, `devicewatch: terminal dashboard for the device inventory

Usage:
  devicewatch [options]

Options:
  -config string   path to devicewatch.json config file
  -api string      inventory API base URL (overrides api_url)
  -debug           enable debug logging
  -log string      log destination: stdout, stderr, discard or a file path
                   (default devicewatch.log while the dashboard runs)
  -once            print the device list once and exit
  -all             with -once, include devices inactive for more than an hour
  -query string    with -once, only show devices matching this search
  -version         print the version and exit
  -help            show this help message

Device list keys:
  /            search by device ID or name
  o            toggle online only
  a            toggle showing devices inactive for more than an hour
  up/down      select a device
  enter        open the device
  y            copy the selected device ID
  q            quit

Device keys:
  t or tab     edit the ping target
  p            run a ping test
  s            run a speedtest
  1 / 2        expand ping or speed tests
  up/down      move between sections, enter toggles
  b or esc     back to the device list

Environment:
  CONFIG_SOURCE=env reads DEVICEWATCH_* variables instead of a file,
  e.g. DEVICEWATCH_API_URL=http://localhost:8000

Examples:
  devicewatch -api http://localhost:8000
  devicewatch -config /etc/devicewatch/devicewatch.json -debug
  devicewatch -api http://localhost:8000 -once -all
`)
}
