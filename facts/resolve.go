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
	"sort"
)

// ResolveTag returns the first tag from the ordered preference list that is
// present in the fact set. Order is significant: callers rely on the first
// acceptable filing convention winning over later synonyms.
func (fs FactSet) ResolveTag(tags []string) (string, bool) {
	for _, tag := range tags {
		if _, ok := fs[tag]; ok {
			return tag, true
		}
	}
	return "", false
}

// UnitObservations returns the fact's observation array and unit label,
// preferring the given unit when present. Among non-preferred units there is
// no preference; unit names are visited in sorted order so reruns agree (the
// source feed groups units in an unordered object). An empty or absent unit
// grouping returns a nil array and empty unit, never an error.
func (f Fact) UnitObservations(preferred string) ([]Observation, string) {
	if len(f.Units) == 0 {
		return nil, ""
	}

	if obs, ok := f.Units[preferred]; ok {
		return obs, preferred
	}

	names := make([]string, 0, len(f.Units))
	for name := range f.Units {
		names = append(names, name)
	}
	sort.Strings(names)

	return f.Units[names[0]], names[0]
}

// PickValue selects the single best observation for the requested fiscal year
// and period. Duplicate observations from amended filings are resolved by
// sorting ascending on (period end, value) and taking the last: latest period
// end wins, and among equal period ends the larger value wins. Returns NaN
// when no observation matches.
func PickValue(obs []Observation, fy int, fp Period) float64 {
	candidates := make([]Observation, 0, 4)
	for _, o := range obs {
		if int(o.FiscalYear) == fy && o.FiscalPeriod == fp {
			candidates = append(candidates, o)
		}
	}

	if len(candidates) == 0 {
		return math.NaN()
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].End != candidates[j].End {
			return candidates[i].End < candidates[j].End
		}
		return candidates[i].Value < candidates[j].Value
	})

	return candidates[len(candidates)-1].Value
}
