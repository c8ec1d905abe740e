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
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carverauto/devicewatch/pkg/logger"
	"github.com/carverauto/devicewatch/pkg/models"
)

const (
	maxTestsPerDevice = 50
	staleHours        = 6
	maxLossPercent    = 5
	minRTT            = 4.0
	rttSpread         = 40.0
	minDownload       = 50.0
	downloadSpread    = 850.0
	uploadRatio       = 0.2
	churnPercent      = 5
)

//nolint:gochecknoglobals // fixed fixtures
var (
	siteNames = []string{"Kitchen", "Garage", "Office", "Attic", "Basement", "Lobby", "Warehouse", "Lab"}
	servers   = []string{"Cloudflare - Frankfurt", "Comcast - Denver", "Vodafone - London", "Telia - Stockholm"}
)

type pendingJob struct {
	deviceID string
	kind     models.TestType
	target   string
	count    int
	dueAt    time.Time
}

// Inventory is the faker's in-memory device and test store.
type Inventory struct {
	mu      sync.RWMutex
	devices []models.Device
	tests   map[string][]models.TestRecord
	pending []pendingJob
	rng     *rand.Rand

	pingDelay  time.Duration
	speedDelay time.Duration
	now        func() time.Time
	logger     logger.Logger
}

// NewInventory seeds n devices. offlinePercent of them start offline and
// some of those have not been seen for hours.
func NewInventory(cfg *Config, now func() time.Time, log logger.Logger) *Inventory {
	if now == nil {
		now = time.Now
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = uint64(now().UnixNano())
	}

	inv := &Inventory{
		tests:      make(map[string][]models.TestRecord),
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		pingDelay:  cfg.Simulation.PingDelay.Std(),
		speedDelay: cfg.Simulation.SpeedtestDelay.Std(),
		now:        now,
		logger:     log,
	}

	inv.devices = inv.generateDevices(cfg.Simulation.Devices, cfg.Simulation.OfflinePercent)

	return inv
}

func (inv *Inventory) generateDevices(n, offlinePercent int) []models.Device {
	devices := make([]models.Device, 0, n)
	now := inv.now()

	for i := 0; i < n; i++ {
		d := models.Device{
			DeviceID: fmt.Sprintf("rpi-%02d-%04x", i+1, inv.rng.IntN(0x10000)),
			Online:   true,
			LastSeen: models.NewTimestamp(now.Add(-time.Duration(inv.rng.IntN(60)) * time.Second)),
		}

		// roughly one in four devices has no friendly name
		if inv.rng.IntN(4) != 0 {
			d.Name = fmt.Sprintf("%s %d", siteNames[i%len(siteNames)], i/len(siteNames)+1)
		}

		if inv.rng.IntN(percentageBase) < offlinePercent {
			d.Online = false

			ago := time.Duration(inv.rng.IntN(50)) * time.Minute
			if inv.rng.IntN(2) == 0 {
				ago = time.Duration(1+inv.rng.IntN(staleHours)) * time.Hour
			}

			d.LastSeen = models.NewTimestamp(now.Add(-ago))
		}

		devices = append(devices, d)
	}

	sort.Slice(devices, func(i, j int) bool { return devices[i].DeviceID < devices[j].DeviceID })

	return devices
}

// Devices returns a copy of the device list.
func (inv *Inventory) Devices() []models.Device {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make([]models.Device, len(inv.devices))
	copy(out, inv.devices)

	return out
}

// Tests returns the device's history, newest first.
func (inv *Inventory) Tests(deviceID string) []models.TestRecord {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make([]models.TestRecord, len(inv.tests[deviceID]))
	copy(out, inv.tests[deviceID])

	return out
}

func (inv *Inventory) lookup(deviceID string) (*models.Device, bool) {
	for i := range inv.devices {
		if inv.devices[i].DeviceID == deviceID {
			return &inv.devices[i], true
		}
	}

	return nil, false
}

// Schedule queues a job and acknowledges it. Unknown and offline devices are
// refused with an error status.
func (inv *Inventory) Schedule(requestID, deviceID string, kind models.TestType, target string, count int) models.Ack {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	d, ok := inv.lookup(deviceID)
	if !ok {
		return models.Ack{Status: models.AckStatusError, Message: "unknown device " + deviceID}
	}

	if !d.Online {
		return models.Ack{Status: models.AckStatusError, Message: "device is offline"}
	}

	delay := inv.pingDelay
	if kind == models.TestTypeSpeedtest {
		delay = inv.speedDelay
	}

	inv.pending = append(inv.pending, pendingJob{
		deviceID: deviceID,
		kind:     kind,
		target:   target,
		count:    count,
		dueAt:    inv.now().Add(delay),
	})

	inv.logger.Info().
		Str("request_id", requestID).
		Str("device_id", deviceID).
		Str("test_type", string(kind)).
		Str("target", target).
		Dur("delay", delay).
		Msg("Queued simulated test")

	return models.Ack{Status: "queued", Message: fmt.Sprintf("%s scheduled", kind)}
}

// Pending reports how many jobs have not completed yet.
func (inv *Inventory) Pending() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	return len(inv.pending)
}

// CompleteDue turns every job due by now into a test record and returns how
// many completed.
func (inv *Inventory) CompleteDue() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	now := inv.now()
	remaining := inv.pending[:0]
	done := 0

	for _, job := range inv.pending {
		if job.dueAt.After(now) {
			remaining = append(remaining, job)
			continue
		}

		rec := inv.result(job, now)

		history := append([]models.TestRecord{rec}, inv.tests[job.deviceID]...)
		if len(history) > maxTestsPerDevice {
			history = history[:maxTestsPerDevice]
		}

		inv.tests[job.deviceID] = history
		done++

		inv.logger.Debug().Str("device_id", job.deviceID).Str("id", string(rec.ID)).Msg("Simulated test finished")
	}

	inv.pending = remaining

	return done
}

func (inv *Inventory) result(job pendingJob, now time.Time) models.TestRecord {
	rec := models.TestRecord{
		ID:        models.RecordID(uuid.NewString()),
		DeviceID:  job.deviceID,
		TestType:  job.kind,
		Timestamp: models.NewTimestamp(now),
	}

	if job.kind == models.TestTypeSpeedtest {
		down := minDownload + inv.rng.Float64()*downloadSpread
		up := down * (uploadRatio + inv.rng.Float64()*uploadRatio)
		ping := minRTT + inv.rng.Float64()*rttSpread
		server := servers[inv.rng.IntN(len(servers))]

		rec.DownloadMbps, rec.UploadMbps, rec.PingMs, rec.ServerName = &down, &up, &ping, &server

		return rec
	}

	lo := minRTT + inv.rng.Float64()*rttSpread
	hi := lo + inv.rng.Float64()*rttSpread
	avg := (lo + hi) / 2

	lost := 0
	if inv.rng.IntN(maxLossPercent) == 0 {
		lost = 1
	}

	loss := float64(lost) / float64(max(job.count, 1)) * percentageBase
	target := job.target

	rec.Target, rec.RTTMin, rec.RTTMax, rec.RTTAvg, rec.PacketLoss = &target, &lo, &hi, &avg, &loss

	return rec
}

// Churn flips a share of devices between online and offline and refreshes
// last_seen for everything that is online.
func (inv *Inventory) Churn() {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	now := inv.now()
	flipped := 0

	for i := range inv.devices {
		d := &inv.devices[i]

		if inv.rng.IntN(percentageBase) < churnPercent {
			d.Online = !d.Online
			flipped++
		}

		if d.Online {
			d.LastSeen = models.NewTimestamp(now)
		}
	}

	inv.logger.Debug().Int("flipped", flipped).Msg("Simulated device churn")
}
