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

package sec

import (
	"errors"

	"github.com/quarterly-sec/qs-api/facts"
)

var (
	// ErrNotFound indicates EDGAR has no record for the requested entity
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidStatus indicates EDGAR returned a non-retryable HTTP status
	ErrInvalidStatus = errors.New("invalid HTTP status")
)

// CompanyFacts is one entity's full XBRL submission history, grouped by
// taxonomy (us-gaap, dei, ...).
type CompanyFacts struct {
	CIK        int                      `json:"cik"`
	EntityName string                   `json:"entityName"`
	Facts      map[string]facts.FactSet `json:"facts"`
}

// GAAP returns the us-gaap taxonomy fact set; nil when the entity has never
// filed under us-gaap (foreign private issuers filing IFRS only).
func (cf *CompanyFacts) GAAP() facts.FactSet {
	return cf.Facts["us-gaap"]
}

// tickerEntry is one record of the company_tickers.json directory
type tickerEntry struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}
