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
	"bytes"
	"context"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/quarterly-sec/qs-api/facts"
	"github.com/quarterly-sec/qs-api/panel"
)

var _ = Describe("Export", func() {
	Describe("the output schema", func() {
		It("starts with the identifier columns", func() {
			header := panel.Header()
			Expect(header[0:4]).To(Equal([]string{"ticker", "cik", "fy", "fq"}))
		})

		It("puts revenue first and the growth target last", func() {
			header := panel.Header()
			Expect(header[4]).To(Equal("revenue"))
			Expect(header[len(header)-1]).To(Equal("earning_growth"))
		})
	})

	Describe("csv output", func() {
		It("emits a header and one line per row", func() {
			rows := []*panel.Row{blankRow("ACME", 2021, facts.PeriodQ1)}
			rows[0].Revenue = 100
			rows = panel.Finalize(rows)

			var buf bytes.Buffer
			Expect(panel.WriteCSV(context.Background(), &buf, rows)).To(Succeed())

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			Expect(lines).To(HaveLen(2))
			Expect(lines[0]).To(HavePrefix("ticker,cik,fy,fq,revenue"))
			Expect(lines[1]).To(HavePrefix("ACME,0000000000,2021,Q1,100"))
		})

		It("still writes the header for an empty panel", func() {
			var buf bytes.Buffer
			Expect(panel.WriteCSV(context.Background(), &buf, nil)).To(Succeed())

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			Expect(lines).To(HaveLen(1))
			Expect(lines[0]).To(HavePrefix("ticker,cik,fy,fq"))
		})
	})

	Describe("calendar dates", func() {
		It("places each quarter at its final month", func() {
			tz, err := time.LoadLocation("America/New_York")
			Expect(err).To(BeNil())

			row := blankRow("ACME", 2021, facts.PeriodQ2)
			Expect(row.Date(tz).Month()).To(Equal(time.June))
			Expect(row.Date(tz).Year()).To(Equal(2021))

			row.FiscalQuarter = facts.PeriodQ4
			Expect(row.Date(tz).Month()).To(Equal(time.December))
		})
	})
})
