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

// QuarterValues holds one metric's discrete quarterly values plus the
// full-year total for a single fiscal year. Any slot may be NaN.
type QuarterValues struct {
	Q1 float64
	Q2 float64
	Q3 float64
	Q4 float64
	FY float64
}

// Value returns the slot for a discrete quarter
func (qv QuarterValues) Value(fq Period) float64 {
	switch fq {
	case PeriodQ1:
		return qv.Q1
	case PeriodQ2:
		return qv.Q2
	case PeriodQ3:
		return qv.Q3
	case PeriodQ4:
		return qv.Q4
	case PeriodFY:
		return qv.FY
	}
	return math.NaN()
}

// QuarterIncrements converts the cumulative year-to-date duration values a
// filer reports into discrete quarterly increments for one fiscal year.
//
// Q1 is already a single quarter. Q2 and Q3 are reported year-to-date, so the
// discrete value is the YTD total minus the prior YTD total when both are
// present; when the prior total is missing the reported figure passes through
// as-is. Q4 is almost never filed directly, so it is reconstructed as
// FY - Q1 - Q2 - Q3 when all four are present, then from a directly reported
// Q4 observation, and finally by falling back to the annual total.
//
// When no tag from the preference list is present every slot is NaN.
func (fs FactSet) QuarterIncrements(tags []string, fy int) QuarterValues {
	tag, ok := fs.ResolveTag(tags)
	if !ok {
		nan := math.NaN()
		return QuarterValues{Q1: nan, Q2: nan, Q3: nan, Q4: nan, FY: nan}
	}

	obs, _ := fs[tag].UnitObservations(DefaultUnit)

	q1 := PickValue(obs, fy, PeriodQ1)
	q2ytd := PickValue(obs, fy, PeriodQ2)
	q3ytd := PickValue(obs, fy, PeriodQ3)
	annual := PickValue(obs, fy, PeriodFY)

	q2 := q2ytd
	if !math.IsNaN(q2ytd) && !math.IsNaN(q1) {
		q2 = q2ytd - q1
	}

	q3 := q3ytd
	if !math.IsNaN(q3ytd) && !math.IsNaN(q2ytd) {
		q3 = q3ytd - q2ytd
	}

	q4 := math.NaN()
	switch {
	case !math.IsNaN(annual) && !math.IsNaN(q1) && !math.IsNaN(q2) && !math.IsNaN(q3):
		q4 = annual - q1 - q2 - q3
	default:
		q4 = PickValue(obs, fy, PeriodQ4)
		if math.IsNaN(q4) {
			q4 = annual
		}
	}

	return QuarterValues{Q1: q1, Q2: q2, Q3: q3, Q4: q4, FY: annual}
}
