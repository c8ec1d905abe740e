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

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/devicewatch/pkg/logger"
)

func newMockClient(t *testing.T) (*Client, *MockHTTPClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	c, err := NewClient(ClientConfig{
		BaseURL:    "http://inventory.local:8000/",
		HTTPClient: httpClient,
		Logger:     logger.NewTestLogger(),
	})
	require.NoError(t, err)

	return c, httpClient
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestNewClientValidatesBaseURL(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	require.ErrorIs(t, err, errBaseURLRequired)

	_, err = NewClient(ClientConfig{BaseURL: "ftp://example.com"})
	require.ErrorIs(t, err, errBaseURLScheme)

	c, err := NewClient(ClientConfig{BaseURL: "https://example.com/api/"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/api", c.BaseURL())
	assert.Equal(t, defaultRequestTimeout, c.timeout)
}

func TestListDevices(t *testing.T) {
	c, httpClient := newMockClient(t)

	httpClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "http://inventory.local:8000/devices", req.URL.String())
		assert.Equal(t, "application/json", req.Header.Get("Accept"))

		_, err := uuid.Parse(req.Header.Get(RequestIDHeader))
		assert.NoError(t, err)

		return jsonResponse(http.StatusOK,
			`{"devices":[{"device_id":"d1","name":"Router","online":true,"last_seen":"2025-01-01T10:00:00"}]}`), nil
	})

	devices, err := c.ListDevices(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "d1", devices[0].DeviceID)
	assert.True(t, devices[0].Online)
	assert.True(t, devices[0].LastSeen.Valid())
}

func TestListDevicesMissingCollectionIsEmpty(t *testing.T) {
	for _, body := range []string{`{}`, `{"devices":null}`, `null`} {
		t.Run(body, func(t *testing.T) {
			c, httpClient := newMockClient(t)
			httpClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(http.StatusOK, body), nil)

			devices, err := c.ListDevices(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, devices)
			assert.Empty(t, devices)
		})
	}
}

func TestListDevicesFailures(t *testing.T) {
	tests := []struct {
		name    string
		resp    *http.Response
		doErr   error
		wantErr error
		wantMsg string
	}{
		{
			name:    "transport error",
			doErr:   errors.New("connection refused"),
			wantErr: ErrFetchFailure,
			wantMsg: "connection refused",
		},
		{
			name:    "server error",
			resp:    jsonResponse(http.StatusInternalServerError, `{"detail":"boom"}`),
			wantErr: ErrFetchFailure,
			wantMsg: "status 500",
		},
		{
			name:    "not found",
			resp:    jsonResponse(http.StatusNotFound, strings.Repeat("x", 1000)),
			wantErr: ErrFetchFailure,
			wantMsg: "status 404",
		},
		{
			name:    "html body",
			resp:    jsonResponse(http.StatusOK, `<html>oops</html>`),
			wantErr: ErrParseFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, httpClient := newMockClient(t)
			httpClient.EXPECT().Do(gomock.Any()).Return(tt.resp, tt.doErr)

			devices, err := c.ListDevices(context.Background())
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, devices)

			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}

			assert.Less(t, len(err.Error()), 400)
		})
	}
}

func TestListTestsEscapesDeviceID(t *testing.T) {
	c, httpClient := newMockClient(t)

	httpClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/tests", req.URL.Path)
		assert.Equal(t, "a&b c", req.URL.Query().Get("device_id"))

		return jsonResponse(http.StatusOK, `{"tests":[{"id":1,"device_id":"a&b c","test_type":"ping","timestamp":"bad"}]}`), nil
	})

	tests, err := c.ListTests(context.Background(), "a&b c")
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.False(t, tests[0].Timestamp.Valid())
}

func TestListTestsRequiresDeviceID(t *testing.T) {
	c, _ := newMockClient(t)

	_, err := c.ListTests(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestTriggerPing(t *testing.T) {
	c, httpClient := newMockClient(t)

	httpClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/device/pi%2F1/test", req.URL.EscapedPath())
		assert.Equal(t, "1.1.1.1", req.URL.Query().Get("target"))
		assert.Equal(t, "4", req.URL.Query().Get("count"))

		return jsonResponse(http.StatusOK, `{"status":"command_sent","device_id":"pi/1"}`), nil
	})

	ack, requestID, err := c.TriggerPing(context.Background(), "pi/1", "1.1.1.1", 4)
	require.NoError(t, err)
	assert.NotEmpty(t, requestID)
	assert.Equal(t, "command_sent", ack.Status)
	assert.False(t, ack.Rejected())
}

func TestTriggerSpeedtestRejected(t *testing.T) {
	c, httpClient := newMockClient(t)

	httpClient.EXPECT().Do(gomock.Any()).
		Return(jsonResponse(http.StatusOK, `{"status":"error","message":"Device d1 not connected"}`), nil)

	ack, _, err := c.TriggerSpeedtest(context.Background(), "d1")
	require.NoError(t, err)
	assert.True(t, ack.Rejected())
	assert.Equal(t, "Device d1 not connected", ack.Message)
}

func TestTriggerAcceptsAnyJSON(t *testing.T) {
	for _, body := range []string{`true`, `[]`, `"ok"`, `{"status":5}`} {
		t.Run(body, func(t *testing.T) {
			c, httpClient := newMockClient(t)
			httpClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(http.StatusAccepted, body), nil)

			ack, _, err := c.TriggerSpeedtest(context.Background(), "d1")
			require.NoError(t, err)
			assert.False(t, ack.Rejected())
		})
	}
}

func TestClientAgainstHTTPServer(t *testing.T) {
	seen := make(chan string, 4)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.URL.RequestURI()

		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/devices":
			_, _ = io.WriteString(w, `{"devices":[{"device_id":"d1","online":false,"last_seen":null}]}`)
		case "/tests":
			_, _ = io.WriteString(w, `{"tests":[]}`)
		case "/device/d1/speedtest":
			_, _ = io.WriteString(w, `{"status":"command_sent"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, err := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)

	devices, err := c.ListDevices(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.False(t, devices[0].LastSeen.Valid())

	tests, err := c.ListTests(context.Background(), "d1")
	require.NoError(t, err)
	assert.Empty(t, tests)

	ack, _, err := c.TriggerSpeedtest(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "command_sent", ack.Status)

	_, _, err = c.TriggerPing(context.Background(), "d1", "8.8.8.8", 4)
	require.ErrorIs(t, err, ErrFetchFailure)

	assert.Equal(t, "/devices", <-seen)
	assert.Equal(t, "/tests?device_id=d1", <-seen)
	assert.Equal(t, "/device/d1/speedtest", <-seen)
	assert.Equal(t, "/device/d1/test?count=4&target=8.8.8.8", <-seen)
}

func TestRequestTimeout(t *testing.T) {
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.ListDevices(context.Background())
	require.ErrorIs(t, err, ErrFetchFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
