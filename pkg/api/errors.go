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

import "errors"

var (
	// ErrFetchFailure covers transport errors and non-2xx responses.
	ErrFetchFailure = errors.New("fetch failed")
	// ErrParseFailure means the body was not the JSON we expected.
	ErrParseFailure = errors.New("malformed response body")
	// ErrInvalidInput is returned before any request is made.
	ErrInvalidInput = errors.New("invalid input")

	errBaseURLRequired = errors.New("base URL is required")
	errBaseURLScheme   = errors.New("base URL must be http or https")
)
