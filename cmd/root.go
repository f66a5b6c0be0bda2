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
	"fmt"
	"os"

	"github.com/quarterly-sec/qs-api/common"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Profile bool
var Trace bool

func init() {
	// SEC EDGAR access
	viper.BindEnv("sec.user_agent", "SEC_USER_AGENT")
	rootCmd.PersistentFlags().String("sec-user-agent", "", "User-Agent header sent to EDGAR; SEC requires a contact address")
	viper.BindPFlag("sec.user_agent", rootCmd.PersistentFlags().Lookup("sec-user-agent"))

	viper.BindEnv("sec.rate_limit", "SEC_RATE_LIMIT")
	rootCmd.PersistentFlags().Float64("sec-rate-limit", 8, "Maximum requests per second against EDGAR")
	viper.BindPFlag("sec.rate_limit", rootCmd.PersistentFlags().Lookup("sec-rate-limit"))

	// Database
	viper.BindEnv("database.url", "DATABASE_URL")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string")
	viper.BindPFlag("database.url", rootCmd.PersistentFlags().Lookup("database-url"))

	// Cache
	viper.BindEnv("cache.redis_url", "REDIS_URL")
	rootCmd.PersistentFlags().String("cache-redis-url", "", "Redis connection string for the shared cache tier")
	viper.BindPFlag("cache.redis_url", rootCmd.PersistentFlags().Lookup("cache-redis-url"))

	rootCmd.PersistentFlags().Bool("cache-redis", false, "Mirror cached EDGAR responses in redis")
	viper.BindPFlag("cache.redis", rootCmd.PersistentFlags().Lookup("cache-redis"))

	rootCmd.PersistentFlags().Int("cache-ttl", 86400, "Redis cache entry lifetime in seconds")
	viper.BindPFlag("cache.ttl", rootCmd.PersistentFlags().Lookup("cache-ttl"))

	// Logging configuration
	viper.BindEnv("log.level", "QS_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.BindEnv("log.report_caller", "QS_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	viper.BindEnv("log.output", "QS_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stdout", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	rootCmd.PersistentFlags().Bool("log-pretty", false, "Print logs in a human friendly format")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))

	// Panel extraction window; shared by the build and serve commands
	viper.BindEnv("panel.tickers", "QS_TICKERS")
	rootCmd.PersistentFlags().StringSlice("tickers", []string{}, "Tickers to extract, e.g. --tickers AAPL,MSFT")
	viper.BindPFlag("panel.tickers", rootCmd.PersistentFlags().Lookup("tickers"))

	rootCmd.PersistentFlags().Int("start-year", 2014, "First fiscal year to extract (inclusive)")
	viper.BindPFlag("panel.start_year", rootCmd.PersistentFlags().Lookup("start-year"))

	rootCmd.PersistentFlags().Int("end-year", 2024, "Last fiscal year to extract (inclusive)")
	viper.BindPFlag("panel.end_year", rootCmd.PersistentFlags().Lookup("end-year"))

	rootCmd.PersistentFlags().Bool("usd-only", true, "Exclude entities that do not report in USD")
	viper.BindPFlag("panel.usd_only", rootCmd.PersistentFlags().Lookup("usd-only"))

	// Tracing
	viper.BindEnv("otlp.endpoint", "OTLP_ENDPOINT")
	rootCmd.PersistentFlags().String("otlp-endpoint", "", "OTLP trace collector endpoint")
	viper.BindPFlag("otlp.endpoint", rootCmd.PersistentFlags().Lookup("otlp-endpoint"))

	rootCmd.PersistentFlags().BoolVar(&Profile, "cpu-profile", false, "Run pprof and save in profile.out")
	rootCmd.PersistentFlags().BoolVar(&Trace, "trace", false, "Trace program execution and save in trace.out")
}

var rootCmd = &cobra.Command{
	Use:     "qsapi",
	Version: common.CurrentVersion.String(),
	Short:   "Quarterly fundamentals panel built from SEC EDGAR filings",
	Long:    `qsapi extracts quarterly financial data from SEC EDGAR XBRL filings and serves a normalized panel of raw metrics and derived ratios.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
