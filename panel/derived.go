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

package panel

import (
	"math"
)

// safeDiv is total: it returns 0 when the numerator is missing or when the
// denominator is missing or zero, so every ratio column is always a real
// number.
func safeDiv(a, b float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) || b == 0 {
		return 0
	}
	return a / b
}

// nz replaces a missing value with zero for additive combinations
func nz(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// avg is the two-period average used by the turnover ratios. A missing prior
// balance poisons the average, which in turn zeroes the dependent ratio
// through safeDiv; treating the first observed quarter as a full average
// would overstate turnover.
func avg(cur, prev float64) float64 {
	return (cur + prev) / 2
}

// growth is a period-over-period rate. The first observation of a series has
// no prior so its growth is 0, and a zero or missing prior collapses to 0
// rather than infinity.
func growth(cur, prev float64) float64 {
	if math.IsNaN(cur) || math.IsNaN(prev) || prev == 0 {
		return 0
	}
	return (cur - prev) / prev
}

// ComputeDerived fills every derived metric in place. Rows must already be
// sorted by (ticker, fiscal year, fiscal quarter): trailing averages and
// growth rates lag within each ticker's run of rows.
func ComputeDerived(rows []*Row) {
	nan := math.NaN()

	for i, r := range rows {
		// prior quarter balances for the same ticker
		prevAssets, prevInventory, prevAR, prevAP := nan, nan, nan, nan
		prevRevenue, prevNetIncome := nan, nan
		if i > 0 && rows[i-1].Ticker == r.Ticker {
			prev := rows[i-1]
			prevAssets = prev.Assets
			prevInventory = prev.Inventory
			prevAR = prev.AR
			prevAP = prev.AP
			prevRevenue = prev.Revenue
			prevNetIncome = prev.NetIncome
		}

		assetsAvg := avg(r.Assets, prevAssets)
		inventoryAvg := avg(r.Inventory, prevInventory)
		arAvg := avg(r.AR, prevAR)
		apAvg := avg(r.AP, prevAP)

		// profitability
		r.GrossProfit = nz(r.Revenue) - nz(r.COGS)
		r.GrossMargin = safeDiv(r.GrossProfit, r.Revenue)
		r.OpMargin = safeDiv(r.EBIT, r.Revenue)
		r.NetMargin = safeDiv(r.NetIncome, r.Revenue)
		r.EBITDA = nz(r.EBIT) + nz(r.DA)
		r.EBITDAMargin = safeDiv(r.EBITDA, r.Revenue)
		r.EffTaxRate = safeDiv(r.TaxExpense, r.EBIT)
		r.ROE = safeDiv(r.NetIncome, r.Equity)
		r.SGAMargin = safeDiv(r.SGA, r.Revenue)
		r.RnDMargin = safeDiv(r.RnD, r.Revenue)

		// liquidity
		r.CurrentRatio = safeDiv(r.AssetsCurrent, r.LiabilitiesCurrent)
		// each quick asset contributes independently; a filer without
		// marketable securities still has a quick ratio
		r.QuickRatio = safeDiv(nz(r.Cash)+nz(r.STI)+nz(r.AR), r.LiabilitiesCurrent)
		r.CashRatio = safeDiv(r.Cash, r.LiabilitiesCurrent)
		r.WorkingCapital = nz(r.AssetsCurrent) - nz(r.LiabilitiesCurrent)

		// leverage
		r.DebtToEquity = safeDiv(r.Debt, r.Equity)
		r.EquityMultiplier = safeDiv(r.Assets, r.Equity)

		// efficiency
		r.AssetTurnover = safeDiv(r.Revenue, assetsAvg)
		r.InventoryTurnover = safeDiv(r.COGS, inventoryAvg)
		r.ReceivablesTurnover = safeDiv(r.Revenue, arAvg)
		r.PayablesTurnover = safeDiv(r.COGS, apAvg)

		// working capital cycle, approximating one quarter as 90 days
		r.DIO = safeDiv(90.0, r.InventoryTurnover)
		r.DSO = safeDiv(90.0, r.ReceivablesTurnover)
		r.DPO = safeDiv(90.0, r.PayablesTurnover)
		r.CCC = r.DIO + r.DSO - r.DPO

		// cash flow
		r.FCF = nz(r.CFO) - nz(r.CapEx)
		r.CFOMargin = safeDiv(r.CFO, r.Revenue)
		r.FCFMargin = safeDiv(r.FCF, r.Revenue)
		r.OCFRatio = safeDiv(r.CFO, r.Revenue)
		r.CFToNI = safeDiv(r.CFO, r.NetIncome)

		// balance sheet composition
		r.PPEToAssets = safeDiv(r.PPE, r.Assets)
		r.GoodwillToAssets = safeDiv(r.Goodwill, r.Assets)
		r.IntangToAssets = safeDiv(r.Intangibles, r.Assets)
		r.CashToAssets = safeDiv(r.Cash, r.Assets)
		r.CurrAssetsToAssets = safeDiv(r.AssetsCurrent, r.Assets)
		r.RetainedToAssets = safeDiv(r.Retained, r.Assets)
		r.TangibleBook = nz(r.Equity) - nz(r.Goodwill) - nz(r.Intangibles)
		r.TangibleBookToAssets = safeDiv(r.TangibleBook, r.Assets)

		// growth
		r.SalesGrowth = growth(r.Revenue, prevRevenue)
		r.EarningGrowth = growth(r.NetIncome, prevNetIncome)
	}
}
