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

package panel

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// upsertSQL builds the insert statement from the column table so the
// database schema tracks the output schema exactly. Rows are keyed by
// (ticker, fy, fq); re-running a build updates quarters in place.
func upsertSQL() string {
	cols := []string{"ticker", "cik", "fy", "fq"}
	for _, col := range MetricColumns {
		cols = append(cols, col.Name)
	}

	placeholders := make([]string, len(cols))
	for ii := range cols {
		placeholders[ii] = fmt.Sprintf("$%d", ii+1)
	}

	updates := make([]string, 0, len(cols)-3)
	for _, name := range cols {
		if name == "ticker" || name == "fy" || name == "fq" {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", name, name))
	}

	return fmt.Sprintf(`INSERT INTO quarterly_facts (%s) VALUES (%s) ON CONFLICT (ticker, fy, fq) DO UPDATE SET %s`,
		strings.Join(cols, ", "), strings.Join(placeholders, ", "), strings.Join(updates, ", "))
}

// SaveDB persists the panel to the quarterly_facts table
func SaveDB(ctx context.Context, rows []*Row) error {
	subLog := log.With().Str("Source", "panel").Logger()

	pool, err := pgxpool.Connect(ctx, viper.GetString("database.url"))
	if err != nil {
		subLog.Error().Stack().Err(err).Msg("could not connect to database")
		return err
	}
	defer pool.Close()

	trx, err := pool.Begin(ctx)
	if err != nil {
		subLog.Error().Stack().Err(err).Msg("could not begin transaction")
		return err
	}

	sql := upsertSQL()

	for _, row := range rows {
		args := make([]interface{}, 0, len(MetricColumns)+4)
		args = append(args, row.Ticker, row.CIK, row.FiscalYear, string(row.FiscalQuarter))
		for _, col := range MetricColumns {
			args = append(args, col.Value(row))
		}

		if _, err := trx.Exec(ctx, sql, args...); err != nil {
			subLog.Error().Stack().Err(err).Str("Ticker", row.Ticker).Int("FiscalYear", row.FiscalYear).Msg("could not upsert row")
			if err := trx.Rollback(ctx); err != nil {
				subLog.Error().Stack().Err(err).Msg("could not rollback transaction")
			}
			return err
		}
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not commit transaction")
		return err
	}

	subLog.Info().Int("NumRows", len(rows)).Msg("saved panel to database")
	return nil
}
