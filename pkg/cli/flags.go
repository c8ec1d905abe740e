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
	"flag"
	"fmt"
	"io"
)

// ParseFlags parses the devicewatch command line.
func ParseFlags(args []string) (*CmdConfig, error) {
	fs := flag.NewFlagSet("devicewatch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	help := fs.Bool("help", false, "show help message")
	showVersion := fs.Bool("version", false, "print the version and exit")
	configFile := fs.String("config", "", "path to devicewatch.json config file")
	apiURL := fs.String("api", "", "inventory API base URL (overrides api_url)")
	debug := fs.Bool("debug", false, "enable debug logging")
	logOutput := fs.String("log", "", "log destination: stdout, stderr, discard or a file path")
	once := fs.Bool("once", false, "print the device list once and exit")
	all := fs.Bool("all", false, "with -once, include devices inactive for more than an hour")
	query := fs.String("query", "", "with -once, only show devices matching this search")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	return &CmdConfig{
		Help:       *help,
		Version:    *showVersion,
		ConfigFile: *configFile,
		APIURL:     *apiURL,
		Debug:      *debug,
		LogOutput:  *logOutput,
		Once:       *once,
		All:        *all,
		Query:      *query,
		Args:       fs.Args(),
	}, nil
}
