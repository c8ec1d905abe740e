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
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/devicewatch/pkg/accordion"
	"github.com/carverauto/devicewatch/pkg/api"
	"github.com/carverauto/devicewatch/pkg/dispatch"
	"github.com/carverauto/devicewatch/pkg/inventory"
	"github.com/carverauto/devicewatch/pkg/logger"
	"github.com/carverauto/devicewatch/pkg/models"
	"github.com/carverauto/devicewatch/pkg/poller"
	"github.com/carverauto/devicewatch/pkg/view"
)

const (
	clockRefresh   = time.Second
	devicesPollKey = "devices"
	inputWidth     = 40
)

// Inventory is the read side of the inventory API. *api.Client satisfies it.
type Inventory interface {
	ListDevices(ctx context.Context) ([]models.Device, error)
	ListTests(ctx context.Context, deviceID string) ([]models.TestRecord, error)
}

type screen int

const (
	screenList screen = iota
	screenDetail
)

type noticeKind int

const (
	noticeSuccess noticeKind = iota
	noticeRejected
	noticeFailure
)

type notice struct {
	kind  noticeKind
	title string
	text  string
}

// Poll results are tagged with the generation of the session that produced
// them; anything from an older generation is dropped on arrival.
type (
	devicesMsg struct {
		gen     uint64
		devices []models.Device
	}
	devicesErrMsg struct {
		gen uint64
		err error
	}
	devicesLoadedMsg struct {
		gen uint64
	}
	testsMsg struct {
		gen   uint64
		tests []models.TestRecord
	}
	testsErrMsg struct {
		gen uint64
		err error
	}
	testsLoadedMsg struct {
		gen uint64
	}
	submitMsg struct {
		result dispatch.Result
	}
	clockMsg struct{}
)

// Options wires the dashboard to its collaborators.
type Options struct {
	Config     *Config
	Inventory  Inventory
	Dispatcher *dispatch.Dispatcher
	Clock      poller.Clock
	Logger     logger.Logger
	// Copy writes to the clipboard; nil uses the system clipboard.
	Copy func(string) error
}

type model struct {
	ctx        context.Context
	cfg        *Config
	inv        Inventory
	dispatcher *dispatch.Dispatcher
	clock      poller.Clock
	logger     logger.Logger
	copyFn     func(string) error
	canCopy    bool

	box          *mailbox
	listPoller   *poller.Keyed[[]models.Device]
	detailPoller *poller.Keyed[[]models.TestRecord]

	styles  styles
	spinner spinner.Model
	width   int
	height  int
	now     time.Time
	screen  screen
	notice  *notice

	// device list
	search         textinput.Model
	searching      bool
	filter         inventory.FilterOptions
	devices        []models.Device
	devicesLoading bool
	devicesErr     error
	listGen        uint64
	cursor         int
	copyMessage    string

	// device detail
	deviceID      string
	target        textinput.Model
	targetFocused bool
	tests         []models.TestRecord
	testsLoading  bool
	testsErr      error
	detailGen     uint64
	acc           accordion.State[models.TestType]
	groupCursor   int
}

func newModel(ctx context.Context, opts Options) *model {
	cfg := opts.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}

	clock := opts.Clock
	if clock == nil {
		clock = poller.RealClock()
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewTestLogger()
	}

	copyFn := opts.Copy
	canCopy := true

	if copyFn == nil {
		copyFn = clipboard.WriteAll
		canCopy = !clipboard.Unsupported
	}

	search := textinput.New()
	search.Placeholder = "Search devices by ID or name..."
	search.Prompt = "/ "
	search.Width = inputWidth
	search.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan))
	search.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaForeground))
	search.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment))

	target := textinput.New()
	target.Placeholder = dispatch.DefaultPingTarget
	target.Prompt = "Target: "
	target.Width = inputWidth
	target.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan))
	target.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaForeground))
	target.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment))

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaPink))

	return &model{
		ctx:          ctx,
		cfg:          cfg,
		inv:          opts.Inventory,
		dispatcher:   opts.Dispatcher,
		clock:        clock,
		logger:       log,
		copyFn:       copyFn,
		canCopy:      canCopy,
		box:          newMailbox(),
		listPoller:   poller.NewKeyed[[]models.Device](clock, log),
		detailPoller: poller.NewKeyed[[]models.TestRecord](clock, log),
		styles:       newStyles(),
		spinner:      spin,
		now:          clock.Now(),
		search:       search,
		target:       target,
		acc:          view.DefaultAccordion(),
	}
}

func (m *model) Init() tea.Cmd {
	m.armList()

	return tea.Batch(m.box.listen(), m.spinner.Tick, m.tickClock())
}

func (m *model) tickClock() tea.Cmd {
	return tea.Tick(clockRefresh, func(time.Time) tea.Msg { return clockMsg{} })
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case inboxMsg:
		m.handleInbox(msg.msg)
		return m, m.box.listen()
	case clockMsg:
		// liveness is recomputed against the current time on every render
		m.now = m.clock.Now()
		return m, m.tickClock()
	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case submitMsg:
		m.handleSubmit(msg.result)
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *model) handleInbox(msg tea.Msg) {
	switch msg := msg.(type) {
	case devicesMsg:
		if m.staleList(msg.gen) {
			return
		}

		m.devices = msg.devices
		m.devicesErr = nil
		m.clampCursor()
	case devicesErrMsg:
		if m.staleList(msg.gen) {
			return
		}

		m.devicesErr = msg.err
	case devicesLoadedMsg:
		if m.staleList(msg.gen) {
			return
		}

		m.devicesLoading = false
	case testsMsg:
		if m.staleDetail(msg.gen) {
			return
		}

		m.tests = msg.tests
		m.testsErr = nil
	case testsErrMsg:
		if m.staleDetail(msg.gen) {
			return
		}

		m.testsErr = msg.err
	case testsLoadedMsg:
		if m.staleDetail(msg.gen) {
			return
		}

		m.testsLoading = false
	}
}

func (m *model) staleList(gen uint64) bool {
	if gen == m.listGen && m.screen == screenList {
		return false
	}

	m.logger.Debug().Uint64("gen", gen).Uint64("current", m.listGen).Msg("Dropping device list update from an old session")

	return true
}

func (m *model) staleDetail(gen uint64) bool {
	if gen == m.detailGen && m.screen == screenDetail {
		return false
	}

	m.logger.Debug().Uint64("gen", gen).Uint64("current", m.detailGen).Msg("Dropping test history update from an old session")

	return true
}

func (m *model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	// a notice is modal: the next key only dismisses it
	if m.notice != nil {
		m.notice = nil
		return m, nil
	}

	if m.screen == screenDetail {
		return m.updateDetail(msg)
	}

	return m.updateList(msg)
}

func (m *model) quit() (tea.Model, tea.Cmd) {
	m.stopPollers()
	m.box.close()

	return m, tea.Quit
}

func (m *model) stopPollers() {
	m.listPoller.Stop()
	m.detailPoller.Stop()
}

func (m *model) armList() {
	m.listGen++
	gen := m.listGen

	m.devices = nil
	m.devicesErr = nil
	m.devicesLoading = true

	_, err := m.listPoller.Rearm(m.ctx, devicesPollKey, poller.Options[[]models.Device]{
		Name:     "devices",
		Interval: m.cfg.DevicePollInterval.Std(),
		Fetch:    m.inv.ListDevices,
		OnData:   func(devices []models.Device) { m.box.post(devicesMsg{gen: gen, devices: devices}) },
		OnError:  func(err error) { m.box.post(devicesErrMsg{gen: gen, err: err}) },
		OnLoaded: func() { m.box.post(devicesLoadedMsg{gen: gen}) },
	})
	if err != nil {
		m.logger.Error().Err(err).Msg("Failed to start device polling")
		m.devicesErr = err
		m.devicesLoading = false
	}
}

func (m *model) armDetail(deviceID string) {
	m.detailGen++
	gen := m.detailGen

	m.tests = nil
	m.testsErr = nil
	m.testsLoading = true

	_, err := m.detailPoller.Rearm(m.ctx, deviceID, poller.Options[[]models.TestRecord]{
		Name:     "tests",
		Interval: m.cfg.TestPollInterval.Std(),
		Fetch: func(ctx context.Context) ([]models.TestRecord, error) {
			return m.inv.ListTests(ctx, deviceID)
		},
		OnData:   func(tests []models.TestRecord) { m.box.post(testsMsg{gen: gen, tests: tests}) },
		OnError:  func(err error) { m.box.post(testsErrMsg{gen: gen, err: err}) },
		OnLoaded: func() { m.box.post(testsLoadedMsg{gen: gen}) },
	})
	if err != nil {
		m.logger.Error().Err(err).Str("device_id", deviceID).Msg("Failed to start test polling")
		m.testsErr = err
		m.testsLoading = false
	}
}

func (m *model) handleSubmit(res dispatch.Result) {
	switch {
	case res.Err != nil && errors.Is(res.Err, api.ErrInvalidInput):
		m.notice = &notice{kind: noticeFailure, title: "Nothing submitted", text: res.Err.Error()}
	case res.Err != nil:
		m.notice = &notice{kind: noticeFailure, title: "Submission failed", text: res.Err.Error()}
	case res.Ack != nil && res.Ack.Rejected():
		m.notice = &notice{kind: noticeRejected, title: "Backend did not accept the test", text: res.Ack.Summary()}
	case res.Kind == dispatch.KindSpeedtest:
		m.notice = &notice{kind: noticeSuccess, title: "Speedtest started!", text: "This takes 30-60 seconds."}
	default:
		m.notice = &notice{kind: noticeSuccess, title: "Ping test started!", text: "Results will appear in a few seconds."}
	}
}

func (m *model) View() string {
	if m.notice != nil {
		return m.renderNotice()
	}

	var body string

	if m.screen == screenDetail {
		body = m.renderDetail()
	} else {
		body = m.renderList()
	}

	return m.styles.app.Align(lipgloss.Left).Render(body)
}

func (m *model) renderNotice() string {
	titleStyle := m.styles.success

	switch m.notice.kind {
	case noticeRejected:
		titleStyle = m.styles.hint
	case noticeFailure:
		titleStyle = m.styles.error
	case noticeSuccess:
	}

	box := m.styles.notice.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(m.notice.title),
		m.notice.text,
		"",
		m.styles.help.Render("press any key to continue"),
	))

	if m.width == 0 || m.height == 0 {
		return box
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
