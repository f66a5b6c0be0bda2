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

	json "github.com/goccy/go-json"
	"go.opentelemetry.io/otel"

	"github.com/quarterly-sec/qs-api/observability/opentelemetry"
)

var companyFactsURL = "https://data.sec.gov/api/xbrl/companyfacts/CIK%s.json"

// CompanyFacts downloads the complete XBRL fact history for a zero-padded CIK
func (c *Client) CompanyFacts(ctx context.Context, cik string) (*CompanyFacts, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "sec.CompanyFacts")
	defer span.End()

	body, err := c.getJSON(ctx, fmt.Sprintf(companyFactsURL, cik))
	if err != nil {
		return nil, err
	}

	cf := &CompanyFacts{}
	if err := json.Unmarshal(body, cf); err != nil {
		return nil, err
	}

	return cf, nil
}
