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

var _ = Describe("Tag resolution", func() {
	var fs facts.FactSet

	BeforeEach(func() {
		fs = facts.FactSet{
			"SalesRevenueNet": facts.Fact{
				Units: map[string][]facts.Observation{
					"USD": {{End: "2021-03-31", Value: 100, FiscalYear: 2021, FiscalPeriod: facts.PeriodQ1}},
				},
			},
			"Revenues": facts.Fact{
				Units: map[string][]facts.Observation{
					"USD": {{End: "2021-03-31", Value: 999, FiscalYear: 2021, FiscalPeriod: facts.PeriodQ1}},
				},
			},
		}
	})

	Context("when multiple candidate tags are present", func() {
		It("prefers the earlier tag in the list", func() {
			tag, ok := fs.ResolveTag(facts.DurationTags[facts.MetricRevenue])
			Expect(ok).To(BeTrue())
			Expect(tag).To(Equal("SalesRevenueNet"))
		})
	})

	Context("when no candidate tag is present", func() {
		It("reports not found", func() {
			_, ok := fs.ResolveTag([]string{"InventoryNet", "Inventory"})
			Expect(ok).To(BeFalse())
		})
	})
})

var _ = Describe("Unit selection", func() {
	Context("when the preferred unit is reported", func() {
		It("selects it over other units", func() {
			fact := facts.Fact{
				Units: map[string][]facts.Observation{
					"EUR": {{End: "2021-03-31", Value: 80}},
					"USD": {{End: "2021-03-31", Value: 100}},
				},
			}
			obs, unit := fact.UnitObservations(facts.DefaultUnit)
			Expect(unit).To(Equal("USD"))
			Expect(obs).To(HaveLen(1))
			Expect(obs[0].Value).To(Equal(100.0))
		})
	})

	Context("when the preferred unit is absent", func() {
		It("falls back to an alternate unit", func() {
			fact := facts.Fact{
				Units: map[string][]facts.Observation{
					"EUR": {{End: "2021-03-31", Value: 80}},
				},
			}
			obs, unit := fact.UnitObservations(facts.DefaultUnit)
			Expect(unit).To(Equal("EUR"))
			Expect(obs).To(HaveLen(1))
		})
	})

	Context("when the unit grouping is empty", func() {
		It("returns nothing without error", func() {
			fact := facts.Fact{}
			obs, unit := fact.UnitObservations(facts.DefaultUnit)
			Expect(obs).To(BeNil())
			Expect(unit).To(Equal(""))
		})
	})
})

var _ = Describe("Observation picking", func() {
	Context("with amended filings for the same period", func() {
		It("takes the observation with the latest period end", func() {
			obs := []facts.Observation{
				{End: "2021-03-31", Value: 100, FiscalYear: 2021, FiscalPeriod: facts.PeriodQ1},
				{End: "2021-04-03", Value: 90, FiscalYear: 2021, FiscalPeriod: facts.PeriodQ1},
			}
			Expect(facts.PickValue(obs, 2021, facts.PeriodQ1)).To(Equal(90.0))
		})

		It("breaks period-end ties toward the larger value", func() {
			obs := []facts.Observation{
				{End: "2021-03-31", Value: 90, FiscalYear: 2021, FiscalPeriod: facts.PeriodQ1},
				{End: "2021-03-31", Value: 100, FiscalYear: 2021, FiscalPeriod: facts.PeriodQ1},
			}
			Expect(facts.PickValue(obs, 2021, facts.PeriodQ1)).To(Equal(100.0))
		})
	})

	Context("when nothing matches the requested period", func() {
		It("returns NaN", func() {
			obs := []facts.Observation{
				{End: "2021-03-31", Value: 100, FiscalYear: 2021, FiscalPeriod: facts.PeriodQ1},
			}
			Expect(math.IsNaN(facts.PickValue(obs, 2021, facts.PeriodQ2))).To(BeTrue())
			Expect(math.IsNaN(facts.PickValue(obs, 2020, facts.PeriodQ1))).To(BeTrue())
			Expect(math.IsNaN(facts.PickValue(nil, 2021, facts.PeriodQ1))).To(BeTrue())
		})
	})
})

var _ = Describe("Fiscal year decoding", func() {
	DescribeTable("normalizes the fy field",
		func(raw string, expected int) {
			var fy facts.FiscalYear
			Expect(fy.UnmarshalJSON([]byte(raw))).To(Succeed())
			Expect(int(fy)).To(Equal(expected))
		},
		Entry("json number", "2021", 2021),
		Entry("quoted string", `"2021"`, 2021),
		Entry("null", "null", 0),
	)
})
