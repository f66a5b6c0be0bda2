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

package handler

import (
	"bytes"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/quarterly-sec/qs-api/common"
	"github.com/quarterly-sec/qs-api/panel"
)

// the serve command swaps in a fresh panel after each scheduled rebuild;
// handlers only ever read a consistent snapshot
var (
	panelMu      sync.RWMutex
	currentPanel []*panel.Row
	panelBuiltAt time.Time
)

// SetPanel atomically replaces the panel served by the API
func SetPanel(rows []*panel.Row) {
	panelMu.Lock()
	defer panelMu.Unlock()
	currentPanel = rows
	panelBuiltAt = time.Now()
}

func snapshot() ([]*panel.Row, time.Time) {
	panelMu.RLock()
	defer panelMu.RUnlock()
	return currentPanel, panelBuiltAt
}

// filterRows applies the optional ticker, fy, and fq query parameters
func filterRows(c *fiber.Ctx, rows []*panel.Row) ([]*panel.Row, error) {
	ticker := strings.ToUpper(c.Query("ticker"))
	fq := strings.ToUpper(c.Query("fq"))

	fy := 0
	if fyStr := c.Query("fy"); fyStr != "" {
		var err error
		fy, err = strconv.Atoi(fyStr)
		if err != nil {
			log.Warn().Str("FiscalYear", fyStr).Msg("panel request with invalid fy query parameter")
			return nil, fiber.ErrBadRequest
		}
	}

	out := make([]*panel.Row, 0, len(rows))
	for _, row := range rows {
		if ticker != "" && row.Ticker != ticker {
			continue
		}
		if fy != 0 && row.FiscalYear != fy {
			continue
		}
		if fq != "" && string(row.FiscalQuarter) != fq {
			continue
		}
		out = append(out, row)
	}

	return out, nil
}

// rowObject flattens a row into an ordered JSON object keyed by the output
// column names
func rowObject(row *panel.Row) fiber.Map {
	obj := fiber.Map{
		"ticker": row.Ticker,
		"cik":    row.CIK,
		"fy":     row.FiscalYear,
		"fq":     string(row.FiscalQuarter),
		"date":   row.Date(common.GetTimezone()).Format("2006-01-02"),
	}
	for _, col := range panel.MetricColumns {
		obj[col.Name] = col.Value(row)
	}
	return obj
}

// GetPanel serves the panel as JSON, optionally filtered by ticker, fiscal
// year, and fiscal quarter
func GetPanel(c *fiber.Ctx) error {
	rows, builtAt := snapshot()
	if rows == nil {
		return fiber.ErrServiceUnavailable
	}

	filtered, err := filterRows(c, rows)
	if err != nil {
		return err
	}

	objects := make([]fiber.Map, 0, len(filtered))
	for _, row := range filtered {
		objects = append(objects, rowObject(row))
	}

	return c.JSON(fiber.Map{
		"builtAt": builtAt.Format(time.RFC3339),
		"numRows": len(filtered),
		"rows":    objects,
	})
}

// GetPanelCSV serves the panel in the flat file format the research tooling
// consumes
func GetPanelCSV(c *fiber.Ctx) error {
	rows, _ := snapshot()
	if rows == nil {
		return fiber.ErrServiceUnavailable
	}

	filtered, err := filterRows(c, rows)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := panel.WriteCSV(c.Context(), &buf, filtered); err != nil {
		log.Error().Stack().Err(err).Msg("could not serialize panel to csv")
		return fiber.ErrInternalServerError
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="quarterly_panel.csv"`)
	return c.Send(buf.Bytes())
}

// ListTickers serves the distinct tickers present in the current panel
func ListTickers(c *fiber.Ctx) error {
	rows, _ := snapshot()
	if rows == nil {
		return fiber.ErrServiceUnavailable
	}

	seen := make(map[string]bool, 64)
	tickers := make([]string, 0, 64)
	for _, row := range rows {
		if !seen[row.Ticker] {
			seen[row.Ticker] = true
			tickers = append(tickers, row.Ticker)
		}
	}
	sort.Strings(tickers)

	return c.JSON(tickers)
}
