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

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quarterly-sec/qs-api/common"
	"github.com/quarterly-sec/qs-api/panel"
	"github.com/quarterly-sec/qs-api/sec"
)

var (
	buildOutput string
	buildSaveDB bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "quarterly_panel.csv", "CSV file to write the panel to; blank to skip")
	buildCmd.Flags().BoolVar(&buildSaveDB, "save-db", false, "Upsert the panel into the quarterly_facts table")

	rootCmd.AddCommand(buildCmd)
}

func panelConfig() panel.Config {
	tickers := viper.GetStringSlice("panel.tickers")
	common.ArrToUpper(tickers)
	return panel.Config{
		Tickers:   tickers,
		StartYear: viper.GetInt("panel.start_year"),
		EndYear:   viper.GetInt("panel.end_year"),
		USDOnly:   viper.GetBool("panel.usd_only"),
	}
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Extract the quarterly fundamentals panel from SEC EDGAR",
	Long:  `Download XBRL company facts for the configured tickers, normalize them into discrete fiscal quarters, and derive the full ratio set.`,
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		common.SetupCache()
		log.Info().Msg("initialized logging")

		ctx := context.Background()

		config := panelConfig()
		if len(config.Tickers) == 0 {
			log.Fatal().Msg("no tickers configured; set --tickers or panel.tickers")
		}

		rows, err := panel.New(config, sec.NewClient()).Build(ctx)
		if err != nil {
			log.Fatal().Stack().Err(err).Msg("panel build failed")
		}

		if buildOutput != "" {
			if err := panel.SaveCSV(ctx, buildOutput, rows); err != nil {
				log.Fatal().Stack().Err(err).Msg("could not save panel to csv")
			}
		}

		if buildSaveDB {
			if err := panel.SaveDB(ctx, rows); err != nil {
				log.Fatal().Stack().Err(err).Msg("could not save panel to database")
			}
		}
	},
}
