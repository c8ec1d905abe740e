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
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/devicewatch/pkg/config"
	"github.com/carverauto/devicewatch/pkg/lifecycle"
	"github.com/carverauto/devicewatch/pkg/logger"
	"github.com/carverauto/devicewatch/pkg/version"
)

const shutdownTimeout = 5 * time.Second

var errFailedToLoadConfig = errors.New("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to faker config file")
	flag.Parse()

	ctx, stop := lifecycle.SignalContext(context.Background())
	defer stop()

	var cfg Config

	if err := config.NewConfig(nil).LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	fakerLogger, err := lifecycle.CreateComponentLogger("faker", cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = fakerLogger.Close() }()

	inv := NewInventory(&cfg, time.Now, fakerLogger)

	srv := &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      newHandler(inv, cfg.CORS, fakerLogger),
		ReadTimeout:  cfg.ReadTimeout.Std(),
		WriteTimeout: cfg.WriteTimeout.Std(),
		IdleTimeout:  cfg.IdleTimeout.Std(),
	}

	fakerLogger.Info().
		Str("listen_address", cfg.ListenAddress).
		Int("devices", cfg.Simulation.Devices).
		Str("version", version.GetFullVersion()).
		Msg("Fake device inventory starting")

	return serve(ctx, srv, inv, cfg.Simulation.ChurnInterval.Std(), fakerLogger)
}

// serve runs the HTTP server and the job simulator until ctx is done or one
// of them fails.
func serve(ctx context.Context, srv *http.Server, inv *Inventory, churn time.Duration, log logger.Logger) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		simulate(ctx, inv, defaultTickInterval, churn)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		log.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func simulate(ctx context.Context, inv *Inventory, tick, churn time.Duration) {
	jobs := time.NewTicker(tick)
	defer jobs.Stop()

	devices := time.NewTicker(churn)
	defer devices.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-jobs.C:
			inv.CompleteDue()
		case <-devices.C:
			inv.Churn()
		}
	}
}
