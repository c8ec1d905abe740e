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

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/carverauto/devicewatch/pkg/cli"
	"github.com/carverauto/devicewatch/pkg/config"
	"github.com/carverauto/devicewatch/pkg/lifecycle"
	"github.com/carverauto/devicewatch/pkg/version"
)

var errFailedToLoadConfig = errors.New("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cmd, err := cli.ParseFlags(os.Args[1:])
	if err != nil {
		return err
	}

	if cmd.Help {
		cli.ShowHelp(os.Stdout)
		return nil
	}

	if cmd.Version {
		fmt.Println("devicewatch", version.GetFullVersion())
		return nil
	}

	ctx, stop := lifecycle.SignalContext(context.Background())
	defer stop()

	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}

	dwLogger, err := lifecycle.CreateComponentLogger("devicewatch", cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = dwLogger.Close() }()

	if cmd.Once {
		client, err := cli.NewAPIClient(cfg, dwLogger)
		if err != nil {
			return err
		}

		return cli.RunOnce(ctx, client, os.Stdout, cmd, time.Now())
	}

	return cli.RunInteractive(ctx, cfg, dwLogger)
}

// loadConfig reads the config file (or environment) and then lets flags
// override it. -api alone is enough to run without a config file.
func loadConfig(ctx context.Context, cmd *cli.CmdConfig) (*cli.Config, error) {
	cfg := &cli.Config{}

	if err := config.NewConfig(nil).Load(ctx, cmd.ConfigFile, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	cfg.ApplyFlags(cmd)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	return cfg, nil
}
