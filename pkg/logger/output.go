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

package logger

import (
	"fmt"
	"io"
	"os"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenOutput resolves a Config.Output value to a writer. The returned closer
// must be closed when logging stops; it is a no-op for the standard streams.
func OpenOutput(output string) (io.Writer, io.Closer, error) {
	switch output {
	case "", OutputStdout:
		return os.Stdout, nopCloser{}, nil
	case OutputStderr:
		return os.Stderr, nopCloser{}, nil
	case OutputDiscard:
		return io.Discard, nopCloser{}, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log output %q: %w", output, err)
	}

	return f, f, nil
}
