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
	"net/url"
	"strings"
	"time"

	"github.com/carverauto/devicewatch/pkg/dispatch"
	"github.com/carverauto/devicewatch/pkg/logger"
	"github.com/carverauto/devicewatch/pkg/models"
)

const (
	defaultDevicePollInterval = 5 * time.Second
	defaultTestPollInterval   = 10 * time.Second
	defaultRequestTimeout     = 10 * time.Second
	defaultLogFile            = "devicewatch.log"
)

// CmdConfig holds parsed command-line flags.
type CmdConfig struct {
	Help       bool
	Version    bool
	ConfigFile string
	APIURL     string
	Debug      bool
	LogOutput  string
	Once       bool
	All        bool
	Query      string
	Args       []string
}

// Config is the devicewatch configuration file.
type Config struct {
	APIURL             string          `json:"api_url"`
	DevicePollInterval models.Duration `json:"device_poll_interval"`
	TestPollInterval   models.Duration `json:"test_poll_interval"`
	RequestTimeout     models.Duration `json:"request_timeout"`
	DefaultPingTarget  string          `json:"default_ping_target"`
	PingCount          int             `json:"ping_count"`
	Logging            *logger.Config  `json:"logging"`
}

// DefaultConfig returns a config with every optional field defaulted.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()

	return cfg
}

func (c *Config) applyDefaults() {
	if c.DevicePollInterval == 0 {
		c.DevicePollInterval = models.Duration(defaultDevicePollInterval)
	}

	if c.TestPollInterval == 0 {
		c.TestPollInterval = models.Duration(defaultTestPollInterval)
	}

	if c.RequestTimeout == 0 {
		c.RequestTimeout = models.Duration(defaultRequestTimeout)
	}

	if c.DefaultPingTarget == "" {
		c.DefaultPingTarget = dispatch.DefaultPingTarget
	}

	if c.PingCount == 0 {
		c.PingCount = dispatch.DefaultPingCount
	}

	if c.Logging == nil {
		c.Logging = logger.DefaultConfig()
		// the TUI owns the terminal
		if c.Logging.Output == logger.OutputStdout {
			c.Logging.Output = defaultLogFile
		}
	}
}

// Validate fills defaults and rejects values the client cannot run with.
func (c *Config) Validate() error {
	c.applyDefaults()

	c.APIURL = strings.TrimSpace(c.APIURL)
	if c.APIURL == "" {
		return errAPIURLRequired
	}

	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errAPIURLInvalid
	}

	if c.DevicePollInterval < 0 || c.TestPollInterval < 0 {
		return errIntervalInvalid
	}

	if c.RequestTimeout < 0 {
		return errTimeoutInvalid
	}

	if c.PingCount < 0 {
		return errPingCountInvalid
	}

	return nil
}

// ApplyFlags overlays command-line flags on a loaded config.
func (c *Config) ApplyFlags(cmd *CmdConfig) {
	if cmd.APIURL != "" {
		c.APIURL = cmd.APIURL
	}

	if c.Logging == nil {
		c.applyDefaults()
	}

	if cmd.Debug {
		c.Logging.Debug = true
	}

	if cmd.LogOutput != "" {
		c.Logging.Output = cmd.LogOutput
	}
}
