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

// Package dispatch submits ping and speedtest commands. Submission only
// confirms the inventory accepted the job; results arrive through polling.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/carverauto/devicewatch/pkg/api"
	"github.com/carverauto/devicewatch/pkg/logger"
	"github.com/carverauto/devicewatch/pkg/models"
)

const (
	DefaultPingTarget = "8.8.8.8"
	DefaultPingCount  = 4
)

// Kind names the submitted command.
type Kind string

const (
	KindPing      Kind = "ping"
	KindSpeedtest Kind = "speedtest"
)

// Result is the outcome of an asynchronous submission.
type Result struct {
	Kind     Kind
	DeviceID string
	Ack      *models.Ack
	Err      error
}

// Accepted reports whether the inventory took the job.
func (r Result) Accepted() bool {
	return r.Err == nil && r.Ack != nil && !r.Ack.Rejected()
}

// Dispatcher validates and forwards test commands.
type Dispatcher struct {
	submitter Submitter
	logger    logger.Logger
}

func New(submitter Submitter, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Dispatcher{submitter: submitter, logger: log}
}

// SubmitPingTest asks the device to ping target count times. Bad input is
// rejected before any request is sent.
func (d *Dispatcher) SubmitPingTest(ctx context.Context, deviceID, target string, count int) (*models.Ack, error) {
	if err := validateDevice(deviceID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(target) == "" {
		return nil, fmt.Errorf("%w: ping target is required", api.ErrInvalidInput)
	}

	if count <= 0 {
		return nil, fmt.Errorf("%w: ping count must be positive, got %d", api.ErrInvalidInput, count)
	}

	ack, requestID, err := d.submitter.TriggerPing(ctx, deviceID, target, count)

	return d.finish(KindPing, deviceID, requestID, ack, err)
}

// SubmitSpeedtest asks the device to run a speedtest.
func (d *Dispatcher) SubmitSpeedtest(ctx context.Context, deviceID string) (*models.Ack, error) {
	if err := validateDevice(deviceID); err != nil {
		return nil, err
	}

	ack, requestID, err := d.submitter.TriggerSpeedtest(ctx, deviceID)

	return d.finish(KindSpeedtest, deviceID, requestID, ack, err)
}

// Go runs submit on its own goroutine and delivers exactly one Result on the
// returned channel.
func (d *Dispatcher) Go(
	ctx context.Context, kind Kind, deviceID string,
	submit func(ctx context.Context) (*models.Ack, error)) <-chan Result {
	out := make(chan Result, 1)

	go func() {
		ack, err := submit(ctx)
		out <- Result{Kind: kind, DeviceID: deviceID, Ack: ack, Err: err}
	}()

	return out
}

// PingAsync is SubmitPingTest on a goroutine.
func (d *Dispatcher) PingAsync(ctx context.Context, deviceID, target string, count int) <-chan Result {
	return d.Go(ctx, KindPing, deviceID, func(ctx context.Context) (*models.Ack, error) {
		return d.SubmitPingTest(ctx, deviceID, target, count)
	})
}

// SpeedtestAsync is SubmitSpeedtest on a goroutine.
func (d *Dispatcher) SpeedtestAsync(ctx context.Context, deviceID string) <-chan Result {
	return d.Go(ctx, KindSpeedtest, deviceID, func(ctx context.Context) (*models.Ack, error) {
		return d.SubmitSpeedtest(ctx, deviceID)
	})
}

func (d *Dispatcher) finish(kind Kind, deviceID, requestID string, ack *models.Ack, err error) (*models.Ack, error) {
	if err != nil {
		d.logger.Error().
			Err(err).
			Str("kind", string(kind)).
			Str("device_id", deviceID).
			Str("request_id", requestID).
			Msg("Test submission failed")

		return nil, fmt.Errorf("submit %s for %s: %w", kind, deviceID, err)
	}

	if ack == nil {
		ack = &models.Ack{}
	}

	event := d.logger.Info()
	if ack.Rejected() {
		event = d.logger.Warn()
	}

	event.
		Str("kind", string(kind)).
		Str("device_id", deviceID).
		Str("request_id", requestID).
		Str("status", ack.Status).
		Str("message", ack.Message).
		Msg("Test submission acknowledged")

	return ack, nil
}

func validateDevice(deviceID string) error {
	if strings.TrimSpace(deviceID) == "" {
		return fmt.Errorf("%w: device id is required", api.ErrInvalidInput)
	}

	return nil
}
