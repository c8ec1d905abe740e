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

// Package api is the HTTP client for the device inventory service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carverauto/devicewatch/pkg/logger"
	"github.com/carverauto/devicewatch/pkg/models"
)

const (
	defaultRequestTimeout = 10 * time.Second
	maxResponseBytes      = 4 << 20
	maxErrorBodyBytes     = 256

	// RequestIDHeader correlates a client call with inventory logs.
	RequestIDHeader = "X-Request-ID"
)

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL    string
	HTTPClient HTTPClient
	Timeout    time.Duration
	Logger     logger.Logger
}

// Client talks to the inventory's four read and trigger endpoints.
type Client struct {
	base    *url.URL
	http    HTTPClient
	timeout time.Duration
	logger  logger.Logger
}

// NewClient validates cfg and returns a ready client. The base URL is fixed
// for the life of the client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errBaseURLRequired
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBaseURLRequired, err)
	}

	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", errBaseURLScheme, cfg.BaseURL)
	}

	c := &Client{
		base:    base,
		http:    cfg.HTTPClient,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}

	if c.http == nil {
		c.http = &http.Client{}
	}

	if c.timeout <= 0 {
		c.timeout = defaultRequestTimeout
	}

	if c.logger == nil {
		c.logger = logger.NewTestLogger()
	}

	return c, nil
}

// BaseURL returns the inventory base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// ListDevices fetches GET /devices. A missing or null collection is empty.
func (c *Client) ListDevices(ctx context.Context) ([]models.Device, error) {
	var resp models.DevicesResponse

	if _, err := c.getJSON(ctx, c.endpoint(nil, "devices"), &resp); err != nil {
		return nil, err
	}

	if resp.Devices == nil {
		resp.Devices = []models.Device{}
	}

	return resp.Devices, nil
}

// ListTests fetches GET /tests?device_id={id}, newest first.
func (c *Client) ListTests(ctx context.Context, deviceID string) ([]models.TestRecord, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("%w: device id is required", ErrInvalidInput)
	}

	q := url.Values{}
	q.Set("device_id", deviceID)

	var resp models.TestsResponse

	if _, err := c.getJSON(ctx, c.endpoint(q, "tests"), &resp); err != nil {
		return nil, err
	}

	if resp.Tests == nil {
		resp.Tests = []models.TestRecord{}
	}

	return resp.Tests, nil
}

// TriggerPing asks the inventory to run a ping test on the device. It returns
// once the command is acknowledged; results land in the history later.
func (c *Client) TriggerPing(ctx context.Context, deviceID, target string, count int) (*models.Ack, string, error) {
	q := url.Values{}
	q.Set("target", target)
	q.Set("count", strconv.Itoa(count))

	return c.trigger(ctx, c.endpoint(q, "device", deviceID, "test"))
}

// TriggerSpeedtest asks the inventory to run a speedtest on the device.
func (c *Client) TriggerSpeedtest(ctx context.Context, deviceID string) (*models.Ack, string, error) {
	return c.trigger(ctx, c.endpoint(nil, "device", deviceID, "speedtest"))
}

// trigger accepts any JSON body as an acknowledgement. When the body is an
// object its status and message are surfaced.
func (c *Client) trigger(ctx context.Context, target string) (*models.Ack, string, error) {
	var raw json.RawMessage

	requestID, err := c.getJSON(ctx, target, &raw)
	if err != nil {
		return nil, requestID, err
	}

	ack := &models.Ack{}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		// non-string status fields are ignored rather than rejected
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err == nil {
			_ = json.Unmarshal(fields["status"], &ack.Status)
			_ = json.Unmarshal(fields["message"], &ack.Message)
		}
	}

	return ack, requestID, nil
}

func (c *Client) endpoint(query url.Values, segments ...string) string {
	u := *c.base

	var b strings.Builder

	b.WriteString(strings.TrimRight(u.EscapedPath(), "/"))

	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}

	u.RawPath = b.String()

	if unescaped, err := url.PathUnescape(u.RawPath); err == nil {
		u.Path = unescaped
	}

	if query != nil {
		u.RawQuery = query.Encode()
	}

	return u.String()
}

// getJSON performs a GET and decodes the body into out. It returns the
// request id sent with the call.
func (c *Client) getJSON(ctx context.Context, target string, out interface{}) (string, error) {
	requestID := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return requestID, fmt.Errorf("%w: %w", ErrFetchFailure, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return requestID, fmt.Errorf("%w: %w", ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return requestID, fmt.Errorf("%w: reading body: %w", ErrFetchFailure, err)
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Inventory request completed")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return requestID, fmt.Errorf("%w: status %d, response: %s",
			ErrFetchFailure, resp.StatusCode, truncate(body, maxErrorBodyBytes))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return requestID, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	return requestID, nil
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}
