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

package dispatch

//go:generate mockgen -destination=mock_dispatch.go -package=dispatch github.com/carverauto/devicewatch/pkg/dispatch Submitter

import (
	"context"

	"github.com/carverauto/devicewatch/pkg/models"
)

// Submitter sends test commands to the inventory. *api.Client satisfies it.
type Submitter interface {
	TriggerPing(ctx context.Context, deviceID, target string, count int) (*models.Ack, string, error)
	TriggerSpeedtest(ctx context.Context, deviceID string) (*models.Ack, string, error)
}
