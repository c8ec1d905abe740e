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

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/devicewatch/pkg/common"
	"github.com/carverauto/devicewatch/pkg/logger"
)

func okHandler(seen *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen, _ = common.GetRequestID(r.Context())

		_, _ = w.Write([]byte("OK"))
	})
}

func TestCommonMiddleware_CORS(t *testing.T) {
	var seen string

	handler := CommonMiddleware(okHandler(&seen), CORSConfig{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
	}, logger.NewTestLogger())

	req := httptest.NewRequest(http.MethodGet, "/devices", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/devices", http.NoBody)
	req.Header.Set("Origin", "http://evil.com")

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCommonMiddleware_Preflight(t *testing.T) {
	var seen string

	handler := CommonMiddleware(okHandler(&seen), CORSConfig{AllowedOrigins: []string{"*"}}, logger.NewTestLogger())

	req := httptest.NewRequest(http.MethodOptions, "/devices", http.NoBody)
	req.Header.Set("Origin", "http://anywhere")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://anywhere", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rr.Body.String())
	assert.Empty(t, seen, "preflight must not reach the handler")
}

func TestCommonMiddleware_RequestID(t *testing.T) {
	var seen string

	handler := CommonMiddleware(okHandler(&seen), CORSConfig{}, logger.NewTestLogger())

	req := httptest.NewRequest(http.MethodGet, "/devices", http.NoBody)
	req.Header.Set(RequestIDHeader, "req-42")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rr.Header().Get(RequestIDHeader))

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/devices", http.NoBody))

	require.NotEmpty(t, seen)
	assert.NotEqual(t, "req-42", seen)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
}
