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
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"

	"github.com/quarterly-sec/qs-api/facts"
	"github.com/quarterly-sec/qs-api/observability/opentelemetry"
	"github.com/quarterly-sec/qs-api/sec"
)

// Directory maps ticker symbols to zero-padded CIK strings
type Directory interface {
	TickerMap(ctx context.Context) (map[string]string, error)
}

// FactsFetcher retrieves an entity's complete XBRL fact history
type FactsFetcher interface {
	CompanyFacts(ctx context.Context, cik string) (*sec.CompanyFacts, error)
}

// Config controls which company-quarters are admitted to the panel
type Config struct {
	Tickers   []string
	StartYear int
	EndYear   int
	USDOnly   bool
}

// Builder assembles the quarterly panel. Entities that cannot be resolved or
// fetched are logged and skipped; one bad ticker never fails the run.
type Builder struct {
	config    Config
	directory Directory
	fetcher   FactsFetcher
}

// New constructs a Builder backed by the EDGAR client
func New(config Config, client *sec.Client) *Builder {
	return &Builder{
		config:    config,
		directory: client,
		fetcher:   client,
	}
}

// NewWithSources constructs a Builder with explicit data sources; used by
// tests and by callers that cache the ticker directory separately.
func NewWithSources(config Config, directory Directory, fetcher FactsFetcher) *Builder {
	return &Builder{
		config:    config,
		directory: directory,
		fetcher:   fetcher,
	}
}

// Build extracts, normalizes, and derives the full panel. Rows are sorted by
// (ticker, fiscal year, fiscal quarter); every metric except revenue is
// zero-filled in the result.
func (b *Builder) Build(ctx context.Context) ([]*Row, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "panel.Build")
	defer span.End()

	subLog := log.With().Str("Source", "panel").Logger()
	subLog.Info().Int("NumTickers", len(b.config.Tickers)).Int("StartYear", b.config.StartYear).Int("EndYear", b.config.EndYear).Msg("building quarterly panel")

	tickerMap, err := b.directory.TickerMap(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]*Row, 0, len(b.config.Tickers)*(b.config.EndYear-b.config.StartYear+1)*4)

	for _, ticker := range b.config.Tickers {
		ticker = strings.ToUpper(ticker)

		cik, ok := tickerMap[ticker]
		if !ok {
			subLog.Warn().Str("Ticker", ticker).Msg("ticker not in EDGAR directory; skipping")
			continue
		}

		cf, err := b.fetcher.CompanyFacts(ctx, cik)
		if err != nil {
			subLog.Error().Stack().Err(err).Str("Ticker", ticker).Str("CIK", cik).Msg("could not fetch company facts; skipping")
			continue
		}

		rows = append(rows, b.entityRows(ticker, cik, cf.GAAP())...)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Ticker != rows[j].Ticker {
			return rows[i].Ticker < rows[j].Ticker
		}
		if rows[i].FiscalYear != rows[j].FiscalYear {
			return rows[i].FiscalYear < rows[j].FiscalYear
		}
		return rows[i].FiscalQuarter < rows[j].FiscalQuarter
	})

	ComputeDerived(rows)
	rows = Finalize(rows)

	subLog.Info().Int("NumRows", len(rows)).Msg("panel build complete")
	return rows, nil
}

// entityRows extracts every admissible quarter for one entity
func (b *Builder) entityRows(ticker, cik string, gaap facts.FactSet) []*Row {
	if gaap == nil {
		log.Warn().Str("Ticker", ticker).Msg("entity has no us-gaap facts; skipping")
		return nil
	}

	// the dominant revenue tag's unit decides the entity's reporting
	// currency for the usd-only filter
	revUnit := ""
	if revTag, ok := gaap.ResolveTag(facts.DurationTags[facts.MetricRevenue]); ok {
		_, revUnit = gaap[revTag].UnitObservations(facts.DefaultUnit)
	}

	rows := make([]*Row, 0, (b.config.EndYear-b.config.StartYear+1)*4)

	for fy := b.config.StartYear; fy <= b.config.EndYear; fy++ {
		durations := make(map[facts.Metric]facts.QuarterValues, len(facts.DurationTags))
		for metric, tags := range facts.DurationTags {
			durations[metric] = gaap.QuarterIncrements(tags, fy)
		}

		for _, fq := range facts.Quarters {
			revenue := durations[facts.MetricRevenue].Value(fq)
			if math.IsNaN(revenue) || revenue == 0 {
				continue
			}
			if b.config.USDOnly && revUnit != facts.DefaultUnit {
				continue
			}

			instant := func(m facts.Metric) float64 {
				return gaap.QuarterInstant(facts.InstantTags[m], fy, fq)
			}

			rows = append(rows, &Row{
				Ticker:        ticker,
				CIK:           cik,
				FiscalYear:    fy,
				FiscalQuarter: fq,

				Revenue:     revenue,
				COGS:        durations[facts.MetricCOGS].Value(fq),
				EBIT:        durations[facts.MetricEBIT].Value(fq),
				NetIncome:   durations[facts.MetricNetIncome].Value(fq),
				EPSDiluted:  durations[facts.MetricEPSDiluted].Value(fq),
				DA:          durations[facts.MetricDA].Value(fq),
				TaxExpense:  durations[facts.MetricTaxExpense].Value(fq),
				CFO:         durations[facts.MetricCFO].Value(fq),
				CFI:         durations[facts.MetricCFI].Value(fq),
				CFF:         durations[facts.MetricCFF].Value(fq),
				CapEx:       durations[facts.MetricCapEx].Value(fq),
				InterestExp: durations[facts.MetricInterestExp].Value(fq),
				Dividends:   durations[facts.MetricDividends].Value(fq),
				RnD:         durations[facts.MetricRnD].Value(fq),
				SGA:         durations[facts.MetricSGA].Value(fq),

				Assets:             instant(facts.MetricAssets),
				AssetsCurrent:      instant(facts.MetricAssetsCurrent),
				LiabilitiesCurrent: instant(facts.MetricLiabilitiesCurrent),
				Equity:             instant(facts.MetricEquity),
				Cash:               instant(facts.MetricCash),
				STI:                instant(facts.MetricSTI),
				AR:                 instant(facts.MetricAR),
				AP:                 instant(facts.MetricAP),
				Inventory:          instant(facts.MetricInventory),
				PPE:                instant(facts.MetricPPE),
				Goodwill:           instant(facts.MetricGoodwill),
				Intangibles:        instant(facts.MetricIntangibles),
				Retained:           instant(facts.MetricRetained),
				DeferredRevenue:    instant(facts.MetricDeferredRevenue),
				TreasuryStock:      instant(facts.MetricTreasuryStock),
				Debt:               gaap.TotalDebt(fy, fq),
			})
		}
	}

	return rows
}

// Finalize applies the closing data quality pass: rows must carry positive
// revenue, and every other metric has its remaining NaNs replaced with zero.
func Finalize(rows []*Row) []*Row {
	out := make([]*Row, 0, len(rows))
	for _, row := range rows {
		if math.IsNaN(row.Revenue) || row.Revenue <= 0 {
			continue
		}

		for _, col := range MetricColumns {
			if col.Name == "revenue" {
				continue
			}
			if math.IsNaN(col.Value(row)) {
				col.Set(row, 0)
			}
		}

		out = append(out, row)
	}
	return out
}
