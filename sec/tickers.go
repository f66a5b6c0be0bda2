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
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

var companyTickersURL = "https://www.sec.gov/files/company_tickers.json"

// FormatCIK zero-pads a CIK to the 10 digits the companyfacts endpoint expects
func FormatCIK(cik int) string {
	return fmt.Sprintf("%010d", cik)
}

// TickerMap downloads the EDGAR ticker directory and returns a map of
// upper-cased ticker to zero-padded CIK. The directory is keyed by arbitrary
// row indices; only the values matter.
func (c *Client) TickerMap(ctx context.Context) (map[string]string, error) {
	body, err := c.getJSON(ctx, companyTickersURL)
	if err != nil {
		return nil, err
	}

	var directory map[string]tickerEntry
	if err := json.Unmarshal(body, &directory); err != nil {
		return nil, err
	}

	tickers := make(map[string]string, len(directory))
	for _, entry := range directory {
		tickers[strings.ToUpper(entry.Ticker)] = FormatCIK(entry.CIK)
	}

	return tickers, nil
}
