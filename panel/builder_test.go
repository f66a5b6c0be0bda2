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

package panel_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/quarterly-sec/qs-api/facts"
	"github.com/quarterly-sec/qs-api/panel"
	"github.com/quarterly-sec/qs-api/sec"
)

type fakeDirectory map[string]string

func (d fakeDirectory) TickerMap(_ context.Context) (map[string]string, error) {
	return d, nil
}

type fakeFetcher map[string]*sec.CompanyFacts

func (f fakeFetcher) CompanyFacts(_ context.Context, cik string) (*sec.CompanyFacts, error) {
	if cf, ok := f[cik]; ok {
		return cf, nil
	}
	return nil, sec.ErrNotFound
}

func usdFact(obs ...facts.Observation) facts.Fact {
	return facts.Fact{Units: map[string][]facts.Observation{"USD": obs}}
}

func obs(end string, val float64, fy int, fp facts.Period) facts.Observation {
	return facts.Observation{End: end, Value: val, FiscalYear: facts.FiscalYear(fy), FiscalPeriod: fp}
}

// acmeFacts is a single fiscal year of filings: revenue reported year-to-date
// as 100, 250, 420 with an annual total of 600, and net income year-to-date
// as 10, 22, 30 with an annual total of 50.
func acmeFacts() *sec.CompanyFacts {
	return &sec.CompanyFacts{
		CIK:        123,
		EntityName: "Acme Corp",
		Facts: map[string]facts.FactSet{
			"us-gaap": {
				"Revenues": usdFact(
					obs("2021-03-31", 100, 2021, facts.PeriodQ1),
					obs("2021-06-30", 250, 2021, facts.PeriodQ2),
					obs("2021-09-30", 420, 2021, facts.PeriodQ3),
					obs("2021-12-31", 600, 2021, facts.PeriodFY),
				),
				"NetIncomeLoss": usdFact(
					obs("2021-03-31", 10, 2021, facts.PeriodQ1),
					obs("2021-06-30", 22, 2021, facts.PeriodQ2),
					obs("2021-09-30", 30, 2021, facts.PeriodQ3),
					obs("2021-12-31", 50, 2021, facts.PeriodFY),
				),
				"Assets": usdFact(
					obs("2021-03-31", 1000, 2021, facts.PeriodQ1),
					obs("2021-06-30", 1100, 2021, facts.PeriodQ2),
					obs("2021-09-30", 1200, 2021, facts.PeriodQ3),
					obs("2021-12-31", 1300, 2021, facts.PeriodFY),
				),
				"LongTermDebtNoncurrent": usdFact(
					obs("2021-03-31", 400, 2021, facts.PeriodQ1),
				),
			},
		},
	}
}

var _ = Describe("Builder", func() {
	var (
		ctx       context.Context
		directory fakeDirectory
		fetcher   fakeFetcher
		config    panel.Config
	)

	BeforeEach(func() {
		ctx = context.Background()
		directory = fakeDirectory{"ACME": "0000000123"}
		fetcher = fakeFetcher{"0000000123": acmeFacts()}
		config = panel.Config{
			Tickers:   []string{"ACME"},
			StartYear: 2021,
			EndYear:   2021,
			USDOnly:   true,
		}
	})

	Describe("a full fiscal year", func() {
		var rows []*panel.Row

		BeforeEach(func() {
			var err error
			rows, err = panel.NewWithSources(config, directory, fetcher).Build(ctx)
			Expect(err).To(BeNil())
		})

		It("produces four quarters in order", func() {
			Expect(rows).To(HaveLen(4))
			Expect(rows[0].FiscalQuarter).To(Equal(facts.PeriodQ1))
			Expect(rows[3].FiscalQuarter).To(Equal(facts.PeriodQ4))
		})

		It("decomposes revenue into discrete quarters", func() {
			Expect(rows[0].Revenue).To(Equal(100.0))
			Expect(rows[1].Revenue).To(Equal(150.0))
			Expect(rows[2].Revenue).To(Equal(170.0))
			Expect(rows[3].Revenue).To(Equal(180.0))
		})

		It("decomposes net income into discrete quarters", func() {
			Expect(rows[0].NetIncome).To(Equal(10.0))
			Expect(rows[1].NetIncome).To(Equal(12.0))
			Expect(rows[2].NetIncome).To(Equal(8.0))
			Expect(rows[3].NetIncome).To(Equal(20.0))
		})

		It("derives net margin per quarter", func() {
			Expect(rows[0].NetMargin).To(BeNumerically("~", 0.10, 1e-12))
			Expect(rows[1].NetMargin).To(BeNumerically("~", 0.08, 1e-12))
			Expect(rows[2].NetMargin).To(BeNumerically("~", 8.0/170.0, 1e-12))
			Expect(rows[3].NetMargin).To(BeNumerically("~", 20.0/180.0, 1e-12))
		})

		It("calculates earnings growth from the quarterly series", func() {
			Expect(rows[0].EarningGrowth).To(Equal(0.0))
			Expect(rows[1].EarningGrowth).To(BeNumerically("~", 0.2, 1e-12))
			Expect(rows[2].EarningGrowth).To(BeNumerically("~", -1.0/3.0, 1e-12))
			Expect(rows[3].EarningGrowth).To(BeNumerically("~", 1.5, 1e-12))
		})

		It("calculates sales growth from the quarterly series", func() {
			Expect(rows[0].SalesGrowth).To(Equal(0.0))
			Expect(rows[1].SalesGrowth).To(BeNumerically("~", 0.5, 1e-12))
			Expect(rows[2].SalesGrowth).To(BeNumerically("~", 170.0/150.0-1.0, 1e-12))
			Expect(rows[3].SalesGrowth).To(BeNumerically("~", 180.0/170.0-1.0, 1e-12))
		})

		It("falls back to the annual balance for the Q4 snapshot", func() {
			Expect(rows[3].Assets).To(Equal(1300.0))
		})

		It("aggregates partial debt components", func() {
			Expect(rows[0].Debt).To(Equal(400.0))
			// no debt tags filed for Q2 onward; missing totals zero-fill
			Expect(rows[1].Debt).To(Equal(0.0))
		})

		It("records identifiers on every row", func() {
			for _, row := range rows {
				Expect(row.Ticker).To(Equal("ACME"))
				Expect(row.CIK).To(Equal("0000000123"))
				Expect(row.FiscalYear).To(Equal(2021))
			}
		})
	})

	Describe("admission filters", func() {
		It("skips quarters without revenue", func() {
			cf := acmeFacts()
			gaap := cf.GAAP()
			fact := gaap["Revenues"]
			fact.Units["USD"] = fact.Units["USD"][:2] // drop Q3 YTD and FY
			fetcher["0000000123"] = cf

			rows, err := panel.NewWithSources(config, directory, fetcher).Build(ctx)
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(2))
		})

		It("excludes entities that do not report in USD", func() {
			cf := acmeFacts()
			gaap := cf.GAAP()
			rev := gaap["Revenues"]
			rev.Units = map[string][]facts.Observation{"EUR": rev.Units["USD"]}
			gaap["Revenues"] = rev
			fetcher["0000000123"] = cf

			rows, err := panel.NewWithSources(config, directory, fetcher).Build(ctx)
			Expect(err).To(BeNil())
			Expect(rows).To(BeEmpty())
		})

		It("admits non-USD entities when the filter is off", func() {
			cf := acmeFacts()
			gaap := cf.GAAP()
			rev := gaap["Revenues"]
			rev.Units = map[string][]facts.Observation{"EUR": rev.Units["USD"]}
			gaap["Revenues"] = rev
			fetcher["0000000123"] = cf

			config.USDOnly = false
			rows, err := panel.NewWithSources(config, directory, fetcher).Build(ctx)
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(4))
		})

		It("skips tickers missing from the directory without failing the run", func() {
			config.Tickers = []string{"ACME", "NOPE"}

			rows, err := panel.NewWithSources(config, directory, fetcher).Build(ctx)
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(4))
		})

		It("skips entities whose facts cannot be fetched", func() {
			directory["GONE"] = "0000000999"
			config.Tickers = []string{"ACME", "GONE"}

			rows, err := panel.NewWithSources(config, directory, fetcher).Build(ctx)
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(4))
		})
	})

	Describe("directory failures", func() {
		It("propagates the error", func() {
			boom := errors.New("edgar unavailable")
			_, err := panel.NewWithSources(config, failingDirectory{err: boom}, fetcher).Build(ctx)
			Expect(errors.Is(err, boom)).To(BeTrue())
		})
	})
})

type failingDirectory struct{ err error }

func (d failingDirectory) TickerMap(_ context.Context) (map[string]string, error) {
	return nil, d.err
}
