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

package cli

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// inboxMsg carries a message posted from outside the event loop.
type inboxMsg struct {
	msg tea.Msg
}

// mailbox is an unbounded queue between poller goroutines and the bubbletea
// loop. post never blocks, so a poller callback holding its delivery lock can
// not stall against an Update that is cancelling that poller.
type mailbox struct {
	mu     sync.Mutex
	queue  []tea.Msg
	signal chan struct{}
	closed chan struct{}
	once   sync.Once
}

func newMailbox() *mailbox {
	return &mailbox{
		signal: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (b *mailbox) post(msg tea.Msg) {
	b.mu.Lock()
	b.queue = append(b.queue, msg)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

func (b *mailbox) tryPop() (tea.Msg, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.queue) == 0 {
		return nil, false
	}

	msg := b.queue[0]
	b.queue[0] = nil
	b.queue = b.queue[1:]

	return msg, true
}

// listen returns a command that waits for the next posted message. The model
// re-issues it after every inboxMsg.
func (b *mailbox) listen() tea.Cmd {
	return func() tea.Msg {
		for {
			if msg, ok := b.tryPop(); ok {
				return inboxMsg{msg: msg}
			}

			select {
			case <-b.signal:
			case <-b.closed:
				return nil
			}
		}
	}
}

func (b *mailbox) close() {
	b.once.Do(func() { close(b.closed) })
}
