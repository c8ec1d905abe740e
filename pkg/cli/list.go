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

	"github.com/carverauto/devicewatch/pkg/view"
)

func (m *model) deviceList() view.DeviceList {
	return view.ComposeDeviceList(m.devices, m.filter, m.devicesLoading, m.now)
}

func (m *model) clampCursor() {
	n := len(m.deviceList().Rows)

	if m.cursor >= n {
		m.cursor = n - 1
	}

	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.updateSearch(msg)
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "/":
		m.searching = true
		m.copyMessage = ""

		return m, m.search.Focus()
	case "o":
		m.filter.OnlineOnly = !m.filter.OnlineOnly
		m.clampCursor()
	case "a":
		m.filter.IncludeInactive = !m.filter.IncludeInactive
		m.clampCursor()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.deviceList().Rows)-1 {
			m.cursor++
		}
	case "y":
		m.copySelected()
	case "enter":
		rows := m.deviceList().Rows
		if m.cursor < len(rows) {
			m.openDetail(rows[m.cursor].DeviceID)
		}
	}

	return m, nil
}

func (m *model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeyTab:
		m.searching = false
		m.search.Blur()

		return m, nil
	default:
	}

	var cmd tea.Cmd

	m.search, cmd = m.search.Update(msg)
	m.filter.Query = m.search.Value()
	m.clampCursor()

	return m, cmd
}

func (m *model) copySelected() {
	rows := m.deviceList().Rows
	if m.cursor >= len(rows) {
		return
	}

	if !m.canCopy {
		m.copyMessage = "Clipboard not available"
		return
	}

	id := rows[m.cursor].DeviceID

	if err := m.copyFn(id); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to copy device id")
		m.copyMessage = "Failed to copy to clipboard"

		return
	}

	m.copyMessage = fmt.Sprintf("Copied %s to clipboard!", id)
}

func (m *model) openDetail(deviceID string) {
	m.listPoller.Stop()

	m.screen = screenDetail
	m.deviceID = deviceID
	m.copyMessage = ""
	m.acc = view.DefaultAccordion()
	m.groupCursor = 0
	m.target.SetValue(m.cfg.DefaultPingTarget)
	m.target.Blur()
	m.targetFocused = false

	m.logger.Debug().Str("device_id", deviceID).Msg("Opening device")
	m.armDetail(deviceID)
}

func (m *model) renderList() string {
	var content strings.Builder

	st := m.styles

	content.WriteString(st.title.Render("Network Testing Dashboard") + "\n")
	content.WriteString(st.dim.Render("Select a device to view details and run tests") + "\n\n")

	list := m.deviceList()

	if list.Loading {
		content.WriteString(m.spinner.View() + " " + view.LoadingDevicesText + "\n")
		return content.String()
	}

	content.WriteString(st.header.Render(list.Header()) + "\n\n")
	content.WriteString(m.search.View() + "\n")
	content.WriteString(checkbox(m.filter.OnlineOnly) + " Show online only   ")
	content.WriteString(checkbox(m.filter.IncludeInactive) + " Show all devices (including inactive >1h)\n\n")

	if m.devicesErr != nil {
		content.WriteString(st.error.Render("Could not refresh devices: "+m.devicesErr.Error()) + "\n\n")
	}

	if len(list.Rows) == 0 {
		content.WriteString(st.dim.Render(view.NoDevicesText) + "\n")
	}

	for i, row := range list.Rows {
		content.WriteString(m.renderDeviceRow(row, i == m.cursor) + "\n")
	}

	if m.copyMessage != "" {
		msgStyle := st.success
		if strings.HasPrefix(m.copyMessage, "Failed") || !m.canCopy {
			msgStyle = st.error
		}

		content.WriteString("\n" + msgStyle.Render(m.copyMessage) + "\n")
	}

	content.WriteString("\n" + st.help.Render("/ search | o online only | a show inactive | ↑/↓ select | enter open | y copy ID | q quit"))

	return content.String()
}

func (m *model) renderDeviceRow(row view.DeviceRow, selected bool) string {
	st := m.styles

	pointer := "  "
	idStyle := lipgloss.NewStyle().Bold(true)

	if selected {
		pointer = st.selected.Render("> ")
		idStyle = st.selected
	}

	badge := st.badge.Inherit(st.offline).Render(row.Status())
	if row.Online {
		badge = st.badge.Inherit(st.online).Render(row.Status())
	}

	line := pointer + idStyle.Render(row.DeviceID) + " " + badge
	if row.Name != "" {
		line += "  " + row.Name
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		line,
		"    "+st.dim.Render("Last seen: "+row.LastSeen),
	)
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}

	return "[ ]"
}
