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

package facts_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/quarterly-sec/qs-api/facts"
)

func instantFactSet(tag string, obs []facts.Observation) facts.FactSet {
	return facts.FactSet{
		tag: facts.Fact{
			Units: map[string][]facts.Observation{"USD": obs},
		},
	}
}

var _ = Describe("Balance sheet snapshots", func() {
	assetTags := facts.InstantTags[facts.MetricAssets]

	Context("for interim quarters", func() {
		It("picks the exact quarter observation", func() {
			fs := instantFactSet("Assets", []facts.Observation{
				{End: "2021-03-31", Value: 5000, FiscalYear: 2021, FiscalPeriod: facts.PeriodQ1},
			})
			Expect(fs.QuarterInstant(assetTags, 2021, facts.PeriodQ1)).To(Equal(5000.0))
		})

		It("does not borrow the annual label for Q1 through Q3", func() {
			fs := instantFactSet("Assets", []facts.Observation{
				{End: "2021-12-31", Value: 6000, FiscalYear: 2021, FiscalPeriod: facts.PeriodFY},
			})
			Expect(math.IsNaN(fs.QuarterInstant(assetTags, 2021, facts.PeriodQ2))).To(BeTrue())
		})
	})

	Context("for the final quarter", func() {
		It("falls back to the annual label when Q4 is not filed", func() {
			fs := instantFactSet("Assets", []facts.Observation{
				{End: "2021-12-31", Value: 6000, FiscalYear: 2021, FiscalPeriod: facts.PeriodFY},
			})
			Expect(fs.QuarterInstant(assetTags, 2021, facts.PeriodQ4)).To(Equal(6000.0))
		})

		It("prefers a directly filed Q4 observation", func() {
			fs := instantFactSet("Assets", []facts.Observation{
				{End: "2021-12-31", Value: 5900, FiscalYear: 2021, FiscalPeriod: facts.PeriodQ4},
				{End: "2021-12-31", Value: 6000, FiscalYear: 2021, FiscalPeriod: facts.PeriodFY},
			})
			Expect(fs.QuarterInstant(assetTags, 2021, facts.PeriodQ4)).To(Equal(5900.0))
		})
	})
})

var _ = Describe("Total debt aggregation", func() {
	q1Obs := func(v float64) []facts.Observation {
		return []facts.Observation{
			{End: "2021-03-31", Value: v, FiscalYear: 2021, FiscalPeriod: facts.PeriodQ1},
		}
	}

	Context("with some components missing", func() {
		It("treats absent components as zero", func() {
			fs := facts.FactSet{
				"LongTermDebtNoncurrent": facts.Fact{
					Units: map[string][]facts.Observation{"USD": q1Obs(1000)},
				},
				"ShortTermBorrowings": facts.Fact{
					Units: map[string][]facts.Observation{"USD": q1Obs(500)},
				},
			}
			Expect(fs.TotalDebt(2021, facts.PeriodQ1)).To(Equal(1500.0))
		})
	})

	Context("with every component present", func() {
		It("sums all three balances", func() {
			fs := facts.FactSet{
				"LongTermDebtNoncurrent": facts.Fact{
					Units: map[string][]facts.Observation{"USD": q1Obs(1000)},
				},
				"LongTermDebtCurrent": facts.Fact{
					Units: map[string][]facts.Observation{"USD": q1Obs(200)},
				},
				"ShortTermBorrowings": facts.Fact{
					Units: map[string][]facts.Observation{"USD": q1Obs(500)},
				},
			}
			Expect(fs.TotalDebt(2021, facts.PeriodQ1)).To(Equal(1700.0))
		})
	})

	Context("with every component absent", func() {
		It("reports the total missing rather than zero", func() {
			fs := facts.FactSet{}
			Expect(math.IsNaN(fs.TotalDebt(2021, facts.PeriodQ1))).To(BeTrue())
		})
	})
})
