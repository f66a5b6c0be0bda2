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
	"strconv"
	"strings"
)

// Period is a fiscal reporting period label. Duration facts labelled Q2 and
// Q3 are cumulative year-to-date totals, not discrete quarters.
type Period string

const (
	PeriodQ1 Period = "Q1"
	PeriodQ2 Period = "Q2"
	PeriodQ3 Period = "Q3"
	PeriodQ4 Period = "Q4"
	PeriodFY Period = "FY"
)

// Quarters lists the four discrete fiscal quarters in panel order.
var Quarters = []Period{PeriodQ1, PeriodQ2, PeriodQ3, PeriodQ4}

// FiscalYear tolerates the companyfacts feed reporting fy as either a JSON
// number or a quoted string; both normalize to an int at the decode boundary.
type FiscalYear int

func (fy *FiscalYear) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*fy = 0
		return nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return err
		}
		v = int(f)
	}

	*fy = FiscalYear(v)
	return nil
}

// Observation is a single reported value from a filing. Observations for the
// same (fy, fp) may be duplicated across amended filings.
type Observation struct {
	Start        string     `json:"start,omitempty"`
	End          string     `json:"end"`
	Value        float64    `json:"val"`
	Accession    string     `json:"accn,omitempty"`
	FiscalYear   FiscalYear `json:"fy"`
	FiscalPeriod Period     `json:"fp"`
	Form         string     `json:"form,omitempty"`
	Filed        string     `json:"filed,omitempty"`
	Frame        string     `json:"frame,omitempty"`
}

// Fact groups a tag's observations by reporting unit
type Fact struct {
	Label       string                   `json:"label"`
	Description string                   `json:"description,omitempty"`
	Units       map[string][]Observation `json:"units"`
}

// FactSet is one entity's facts for a single taxonomy (us-gaap), keyed by
// XBRL tag. It is an immutable snapshot fetched once per entity per run.
type FactSet map[string]Fact
