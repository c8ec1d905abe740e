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
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/carverauto/devicewatch/pkg/api"
	"github.com/carverauto/devicewatch/pkg/dispatch"
	"github.com/carverauto/devicewatch/pkg/inventory"
	"github.com/carverauto/devicewatch/pkg/logger"
	"github.com/carverauto/devicewatch/pkg/version"
	"github.com/carverauto/devicewatch/pkg/view"
)

// NewAPIClient builds the inventory client described by cfg.
func NewAPIClient(cfg *Config, log logger.Logger) (*api.Client, error) {
	return api.NewClient(api.ClientConfig{
		BaseURL: cfg.APIURL,
		Timeout: cfg.RequestTimeout.Std(),
		Logger:  log,
	})
}

// RunInteractive runs the dashboard until the user quits or ctx is done.
func RunInteractive(ctx context.Context, cfg *Config, log logger.Logger) error {
	client, err := NewAPIClient(cfg, log)
	if err != nil {
		return err
	}

	m := newModel(ctx, Options{
		Config:     cfg,
		Inventory:  client,
		Dispatcher: dispatch.New(client, log),
		Logger:     log,
	})

	log.Info().
		Str("api_url", client.BaseURL()).
		Str("version", version.GetFullVersion()).
		Msg("Starting devicewatch dashboard")

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err = p.Run()

	// the program may exit on ctx without passing through quit
	m.stopPollers()
	m.box.close()

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	log.Info().Msg("Dashboard stopped")

	return nil
}

// RunOnce prints a single device list snapshot to w.
func RunOnce(ctx context.Context, inv Inventory, w io.Writer, cmd *CmdConfig, now time.Time) error {
	devices, err := inv.ListDevices(ctx)
	if err != nil {
		return err
	}

	list := view.ComposeDeviceList(devices, inventory.FilterOptions{
		IncludeInactive: cmd.All,
		Query:           cmd.Query,
	}, false, now)

	fmt.Fprintln(w, list.Header())

	if len(list.Rows) == 0 {
		fmt.Fprintln(w, view.NoDevicesText)
		return nil
	}

	for _, row := range list.Rows {
		name := row.Name
		if name == "" {
			name = "-"
		}

		fmt.Fprintf(w, "%-36s  %-7s  %-24s  %s\n", row.DeviceID, row.Status(), name, row.LastSeen)
	}

	return nil
}
