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

import "github.com/charmbracelet/lipgloss"

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaOrange     = "#FFB86C"
	draculaPink       = "#FF79C6"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaYellow     = "#F1FA8C"
	draculaComment    = "#6272A4"
)

const (
	appPadding    = 2
	noticePadding = 1
)

type styles struct {
	title, header, help, hint, success, error, selected, dim lipgloss.Style
	online, offline, badge, groupOpen, groupClosed           lipgloss.Style
	download, upload, app, notice                            lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaOrange)),
		success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)),
		error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)).
			Bold(true),
		dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		online: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)).
			Bold(true),
		offline: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)).
			Bold(true),
		badge: lipgloss.NewStyle().
			Padding(0, 1),
		groupOpen: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPurple)).
			Bold(true),
		groupClosed: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaForeground)),
		download: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)).
			Bold(true),
		upload: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaOrange)).
			Bold(true),
		app: lipgloss.NewStyle().
			Padding(1, appPadding).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(draculaCyan)).
			Foreground(lipgloss.Color(draculaForeground)),
		notice: lipgloss.NewStyle().
			Padding(noticePadding, appPadding).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(draculaPurple)),
	}
}
