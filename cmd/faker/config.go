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

package main

import (
	"errors"
	"time"

	httpx "github.com/carverauto/devicewatch/pkg/http"
	"github.com/carverauto/devicewatch/pkg/logger"
	"github.com/carverauto/devicewatch/pkg/models"
)

var (
	errListenAddressRequired = errors.New("listen_address is required")
	errDevicesInvalid        = errors.New("devices must be > 0")
	errOfflinePercentInvalid = errors.New("offline_percent must be between 0 and 100")
)

const (
	defaultListenAddress = ":8000"
	defaultReadTimeout   = 10 * time.Second
	defaultWriteTimeout  = 30 * time.Second
	defaultIdleTimeout   = 30 * time.Second
	defaultDevices       = 12
	defaultOffline       = 25
	defaultPingDelay     = 3 * time.Second
	defaultSpeedDelay    = 30 * time.Second
	defaultChurnInterval = 20 * time.Second
	defaultTickInterval  = 250 * time.Millisecond
	percentageBase       = 100
)

// Config holds the configuration for the faker inventory.
type Config struct {
	ListenAddress string          `json:"listen_address"`
	ReadTimeout   models.Duration `json:"read_timeout"`
	WriteTimeout  models.Duration `json:"write_timeout"`
	IdleTimeout   models.Duration `json:"idle_timeout"`

	CORS httpx.CORSConfig `json:"cors"`

	Simulation struct {
		Devices        int             `json:"devices"`
		OfflinePercent int             `json:"offline_percent"`
		PingDelay      models.Duration `json:"ping_delay"`
		SpeedtestDelay models.Duration `json:"speedtest_delay"`
		ChurnInterval  models.Duration `json:"churn_interval"`
		Seed           uint64          `json:"seed"`
	} `json:"simulation"`

	Logging *logger.Config `json:"logging"`
}

// Validate ensures the configuration is well-formed while applying defaults for optional fields.
func (c *Config) Validate() error {
	c.applyDefaults()

	if c.ListenAddress == "" {
		return errListenAddressRequired
	}

	if c.Simulation.Devices <= 0 {
		return errDevicesInvalid
	}

	if c.Simulation.OfflinePercent < 0 || c.Simulation.OfflinePercent > percentageBase {
		return errOfflinePercentInvalid
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddress == "" {
		c.ListenAddress = defaultListenAddress
	}

	if c.ReadTimeout == 0 {
		c.ReadTimeout = models.Duration(defaultReadTimeout)
	}

	if c.WriteTimeout == 0 {
		c.WriteTimeout = models.Duration(defaultWriteTimeout)
	}

	if c.IdleTimeout == 0 {
		c.IdleTimeout = models.Duration(defaultIdleTimeout)
	}

	if c.Simulation.Devices == 0 {
		c.Simulation.Devices = defaultDevices
	}

	if c.Simulation.OfflinePercent == 0 {
		c.Simulation.OfflinePercent = defaultOffline
	}

	if c.Simulation.PingDelay == 0 {
		c.Simulation.PingDelay = models.Duration(defaultPingDelay)
	}

	if c.Simulation.SpeedtestDelay == 0 {
		c.Simulation.SpeedtestDelay = models.Duration(defaultSpeedDelay)
	}

	if c.Simulation.ChurnInterval == 0 {
		c.Simulation.ChurnInterval = models.Duration(defaultChurnInterval)
	}

	if c.Logging == nil {
		c.Logging = logger.DefaultConfig()
	}
}
