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
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/carverauto/devicewatch/pkg/common"
	httpx "github.com/carverauto/devicewatch/pkg/http"
	"github.com/carverauto/devicewatch/pkg/logger"
	"github.com/carverauto/devicewatch/pkg/models"
)

const defaultPingCount = 4

type server struct {
	inv    *Inventory
	logger logger.Logger
}

func newHandler(inv *Inventory, cors httpx.CORSConfig, log logger.Logger) http.Handler {
	s := &server{inv: inv, logger: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /devices", s.devicesHandler)
	mux.HandleFunc("GET /tests", s.testsHandler)
	mux.HandleFunc("GET /device/{id}/test", s.pingHandler)
	mux.HandleFunc("GET /device/{id}/speedtest", s.speedtestHandler)

	return httpx.CommonMiddleware(mux, cors, log)
}

func requestID(r *http.Request) string {
	id, _ := common.GetRequestID(r.Context())
	return id
}

func (s *server) devicesHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, models.DevicesResponse{Devices: s.inv.Devices()})
}

func (s *server) testsHandler(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device_id")
	if deviceID == "" {
		http.Error(w, "device_id is required", http.StatusBadRequest)
		return
	}

	s.writeJSON(w, http.StatusOK, models.TestsResponse{Tests: s.inv.Tests(deviceID)})
}

func (s *server) pingHandler(w http.ResponseWriter, r *http.Request) {
	target := strings.TrimSpace(r.URL.Query().Get("target"))
	if target == "" {
		http.Error(w, "target is required", http.StatusBadRequest)
		return
	}

	count := defaultPingCount

	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "count must be a positive integer", http.StatusBadRequest)
			return
		}

		count = n
	}

	ack := s.inv.Schedule(requestID(r), r.PathValue("id"), models.TestTypePing, target, count)
	s.writeJSON(w, http.StatusOK, ack)
}

func (s *server) speedtestHandler(w http.ResponseWriter, r *http.Request) {
	ack := s.inv.Schedule(requestID(r), r.PathValue("id"), models.TestTypeSpeedtest, "", 0)
	s.writeJSON(w, http.StatusOK, ack)
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding response")
	}
}
