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

package facts

import (
	"math"
)

// QuarterInstant picks a point-in-time balance for a fiscal quarter. Instant
// facts for the final quarter are usually filed under the FY label rather
// than Q4, so a missing Q4 observation falls back to FY before giving up.
func (fs FactSet) QuarterInstant(tags []string, fy int, fq Period) float64 {
	tag, ok := fs.ResolveTag(tags)
	if !ok {
		return math.NaN()
	}

	obs, _ := fs[tag].UnitObservations(DefaultUnit)

	v := PickValue(obs, fy, fq)
	if math.IsNaN(v) && fq == PeriodQ4 {
		v = PickValue(obs, fy, PeriodFY)
	}

	return v
}

// TotalDebt aggregates the long-term noncurrent, long-term current, and
// short-term borrowing balances into a single figure. Missing components
// contribute zero; only when every component is absent is the total itself
// reported missing, so a filer with no debt tags at all stays
// distinguishable from one reporting zero debt.
func (fs FactSet) TotalDebt(fy int, fq Period) float64 {
	components := []float64{
		fs.QuarterInstant(InstantTags[MetricDebtLTNoncurrent], fy, fq),
		fs.QuarterInstant(InstantTags[MetricDebtLTCurrent], fy, fq),
		fs.QuarterInstant(InstantTags[MetricDebtShortTerm], fy, fq),
	}

	total := 0.0
	found := false
	for _, c := range components {
		if !math.IsNaN(c) {
			total += c
			found = true
		}
	}

	if !found {
		return math.NaN()
	}

	return total
}
