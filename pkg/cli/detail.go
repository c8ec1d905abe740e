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
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/devicewatch/pkg/accordion"
	"github.com/carverauto/devicewatch/pkg/view"
)

const columnGap = 3

func (m *model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.targetFocused {
		return m.updateTarget(msg)
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "b", "esc":
		m.closeDetail()
	case "t", "tab":
		m.targetFocused = true
		return m, m.target.Focus()
	case "p":
		return m, m.submitPing()
	case "s":
		return m, m.submitSpeedtest()
	case "1":
		m.toggleGroup(0)
	case "2":
		m.toggleGroup(1)
	case "up", "k":
		if m.groupCursor > 0 {
			m.groupCursor--
		}
	case "down", "j":
		if m.groupCursor < len(view.GroupOrder)-1 {
			m.groupCursor++
		}
	case "enter", " ":
		m.toggleGroup(m.groupCursor)
	}

	return m, nil
}

func (m *model) updateTarget(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeyTab:
		m.targetFocused = false
		m.target.Blur()

		return m, nil
	default:
	}

	var cmd tea.Cmd

	m.target, cmd = m.target.Update(msg)

	return m, cmd
}

func (m *model) toggleGroup(i int) {
	if i < 0 || i >= len(view.GroupOrder) {
		return
	}

	m.groupCursor = i
	m.acc = accordion.Toggle(m.acc, view.GroupOrder[i])
}

func (m *model) closeDetail() {
	m.detailPoller.Stop()
	m.logger.Debug().Str("device_id", m.deviceID).Msg("Closing device")

	m.screen = screenList
	m.deviceID = ""
	m.tests = nil
	m.testsErr = nil
	m.targetFocused = false
	m.target.Blur()

	m.armList()
}

func (m *model) submitPing() tea.Cmd {
	ctx, d := m.ctx, m.dispatcher
	deviceID, target, count := m.deviceID, m.target.Value(), m.cfg.PingCount

	return func() tea.Msg {
		return submitMsg{result: <-d.PingAsync(ctx, deviceID, target, count)}
	}
}

func (m *model) submitSpeedtest() tea.Cmd {
	ctx, d := m.ctx, m.dispatcher
	deviceID := m.deviceID

	return func() tea.Msg {
		return submitMsg{result: <-d.SpeedtestAsync(ctx, deviceID)}
	}
}

func (m *model) renderDetail() string {
	var content strings.Builder

	st := m.styles

	content.WriteString(st.title.Render("Device: "+m.deviceID) + "\n\n")
	content.WriteString(st.header.Render("Run Tests") + "\n")
	content.WriteString(m.target.View() + "\n")
	content.WriteString(st.hint.Render(fmt.Sprintf("[p] Ping (%d packets)   [s] Speedtest", m.cfg.PingCount)) + "\n\n")

	detail := view.ComposeDetail(m.deviceID, m.tests, m.acc, m.testsLoading)

	if m.testsErr != nil {
		content.WriteString(st.error.Render("Could not refresh tests: "+m.testsErr.Error()) + "\n\n")
	}

	switch {
	case detail.Loading:
		content.WriteString(m.spinner.View() + " " + view.LoadingTestsText + "\n")
	case detail.NoTests:
		content.WriteString(st.dim.Render(view.NoTestsText) + "\n")
	default:
		for i, g := range detail.Groups {
			content.WriteString(m.renderGroup(g, i == m.groupCursor) + "\n")
		}
	}

	content.WriteString("\n" + st.help.Render("t target | p ping | s speedtest | 1/2 or enter expand | b back | q quit"))

	return content.String()
}

func (m *model) renderGroup(g view.Group, focused bool) string {
	st := m.styles

	arrow := "▶"
	headerStyle := st.groupClosed

	if g.Expanded {
		arrow = "▼"
		headerStyle = st.groupOpen
	}

	pointer := "  "
	if focused {
		pointer = st.selected.Render("> ")
	}

	header := pointer + headerStyle.Render(fmt.Sprintf("%s %s (%d)", arrow, g.Title, g.Count))

	if !g.Expanded {
		return header
	}

	if g.Count == 0 {
		return header + "\n    " + st.dim.Render(g.EmptyText) + "\n"
	}

	return header + "\n" + m.renderTable(g.Columns, g.Rows) + "\n"
}

func (m *model) renderTable(columns []string, rows [][]view.Cell) string {
	widths := make([]int, len(columns))

	for i, c := range columns {
		widths[i] = lipgloss.Width(c)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell.Text) > widths[i] {
				widths[i] = lipgloss.Width(cell.Text)
			}
		}
	}

	var b strings.Builder

	b.WriteString("    ")

	for i, c := range columns {
		b.WriteString(m.styles.header.Render(pad(c, widths[i])))
	}

	for _, row := range rows {
		b.WriteString("\n    ")

		for i, cell := range row {
			if i >= len(widths) {
				break
			}

			b.WriteString(m.cellStyle(cell.Emphasis).Render(pad(cell.Text, widths[i])))
		}
	}

	return b.String()
}

func (m *model) cellStyle(e view.Emphasis) lipgloss.Style {
	switch e {
	case view.EmphasisGood:
		return m.styles.success
	case view.EmphasisBad:
		return m.styles.error
	case view.EmphasisPrimary:
		return m.styles.download
	case view.EmphasisSecondary:
		return m.styles.upload
	case view.EmphasisNone:
	}

	return lipgloss.NewStyle()
}

func pad(s string, width int) string {
	gap := width - lipgloss.Width(s) + columnGap
	if gap < 0 {
		gap = 0
	}

	return s + strings.Repeat(" ", gap)
}
