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

package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	_, ok := GetRequestID(context.Background())
	assert.False(t, ok)

	ctx := WithRequestID(context.Background(), "req-1")

	id, ok := GetRequestID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-1", id)

	_, ok = GetRequestID(WithRequestID(ctx, ""))
	assert.False(t, ok)
}
