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
	"io"
	"os"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/exports"
	"github.com/rs/zerolog/log"
)

// ToDataFrame converts a finished panel into a dataframe with one series per
// output column, identifiers first.
func ToDataFrame(rows []*Row) *dataframe.DataFrame {
	n := len(rows)

	tickerSeries := dataframe.NewSeriesString("ticker", &dataframe.SeriesInit{Size: n})
	cikSeries := dataframe.NewSeriesString("cik", &dataframe.SeriesInit{Size: n})
	fySeries := dataframe.NewSeriesInt64("fy", &dataframe.SeriesInit{Size: n})
	fqSeries := dataframe.NewSeriesString("fq", &dataframe.SeriesInit{Size: n})

	metricSeries := make([]*dataframe.SeriesFloat64, len(MetricColumns))
	for jj, col := range MetricColumns {
		metricSeries[jj] = dataframe.NewSeriesFloat64(col.Name, &dataframe.SeriesInit{Size: n})
	}

	for ii, row := range rows {
		tickerSeries.Update(ii, row.Ticker, dataframe.DontLock)
		cikSeries.Update(ii, row.CIK, dataframe.DontLock)
		fySeries.Update(ii, int64(row.FiscalYear), dataframe.DontLock)
		fqSeries.Update(ii, string(row.FiscalQuarter), dataframe.DontLock)
		for jj, col := range MetricColumns {
			metricSeries[jj].Update(ii, col.Value(row), dataframe.DontLock)
		}
	}

	series := make([]dataframe.Series, 0, len(MetricColumns)+4)
	series = append(series, tickerSeries, cikSeries, fySeries, fqSeries)
	for _, s := range metricSeries {
		series = append(series, s)
	}

	return dataframe.NewDataFrame(series...)
}

// WriteCSV streams the panel as CSV. An empty panel still emits the header
// row so downstream loaders see a stable schema.
func WriteCSV(ctx context.Context, w io.Writer, rows []*Row) error {
	return exports.ExportToCSV(ctx, w, ToDataFrame(rows))
}

// SaveCSV writes the panel to a file
func SaveCSV(ctx context.Context, fn string, rows []*Row) error {
	subLog := log.With().Str("Source", "panel").Str("FileName", fn).Logger()

	fh, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		subLog.Error().Stack().Err(err).Msg("could not create output file")
		return err
	}
	defer fh.Close()

	if err := WriteCSV(ctx, fh, rows); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not export panel to csv")
		return err
	}

	subLog.Info().Int("NumRows", len(rows)).Msg("saved panel")
	return nil
}
