// Copyright 2024-2025
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"runtime/trace"

	"github.com/go-co-op/gocron"
	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quarterly-sec/qs-api/common"
	"github.com/quarterly-sec/qs-api/handler"
	"github.com/quarterly-sec/qs-api/middleware"
	"github.com/quarterly-sec/qs-api/observability/opentelemetry"
	"github.com/quarterly-sec/qs-api/panel"
	"github.com/quarterly-sec/qs-api/router"
	"github.com/quarterly-sec/qs-api/sec"
)

func init() {
	viper.BindEnv("server.port", "PORT")
	serveCmd.Flags().IntP("port", "p", 3000, "Port to run application server on")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}

// rebuildPanel refreshes the in-memory panel served by the API. Filings land
// after market close, so the scheduler runs this every evening.
func rebuildPanel() {
	ctx := context.Background()

	rows, err := panel.New(panelConfig(), sec.NewClient()).Build(ctx)
	if err != nil {
		log.Error().Stack().Err(err).Msg("scheduled panel rebuild failed; keeping previous panel")
		return
	}

	handler.SetPanel(rows)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the qs-api server",
	Long:  `Run HTTP server that serves the quarterly fundamentals panel`,
	Run: func(cmd *cobra.Command, args []string) {
		if Profile {
			f, err := os.Create("profile.out")
			if err != nil {
				log.Fatal().Err(err).Msg("could not create profile output file")
			}
			pprof.StartCPUProfile(f)
			defer pprof.StopCPUProfile()
		}

		if Trace {
			f, err := os.Create("trace.out")
			if err != nil {
				log.Fatal().Err(err).Msg("failed to create trace output file")
			}
			defer func() {
				if err := f.Close(); err != nil {
					log.Fatal().Err(err).Msg("failed to close trace file")
				}
			}()

			if err := trace.Start(f); err != nil {
				log.Fatal().Err(err).Msg("failed to start trace")
			}
			defer trace.Stop()
		}

		common.SetupLogging()
		common.SetupCache()
		log.Info().Msg("initialized logging")

		if viper.GetString("otlp.endpoint") != "" {
			shutdown, err := opentelemetry.Setup()
			if err != nil {
				log.Error().Err(err).Msg("could not initialize tracing")
			} else {
				defer func() {
					if err := shutdown(context.Background()); err != nil {
						log.Error().Err(err).Msg("error shutting down tracer")
					}
				}()
			}
		}

		// Create new Fiber instance
		app := fiber.New(fiber.Config{
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		})

		// shutdown cleanly on interrupt
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		go func() {
			sig := <-c // block until signal is read
			fmt.Printf("Received signal: '%s'; shutting down...\n", sig.String())
			if err := app.Shutdown(); err != nil {
				log.Fatal().Err(err).Msg("error shutting down server")
			}
		}()

		// Configure CORS
		corsConfig := cors.Config{
			AllowOrigins: viper.GetString("server.allow_origins"),
			AllowHeaders: "*",
			AllowMethods: "GET,HEAD",
		}
		app.Use(cors.New(corsConfig))

		// Setup logging middleware
		app.Use(middleware.NewLogger())

		// Setup routes
		router.SetupRoutes(app)

		// build the initial panel and schedule the nightly refresh after
		// EDGAR's evening filing window
		go rebuildPanel()

		tz := common.GetTimezone()
		scheduler := gocron.NewScheduler(tz)
		scheduler.Every(1).Day().At("21:00").Do(rebuildPanel)
		scheduler.StartAsync()

		// Start server
		if err := app.Listen(":" + viper.GetString("server.port")); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	},
}
