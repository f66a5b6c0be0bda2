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
	"time"

	"github.com/quarterly-sec/qs-api/facts"
)

// Row is one company-quarter of the panel: identifiers, raw financial
// metrics, and the ratios derived from them. Metric fields hold NaN while
// the panel is under construction; a finished panel holds no NaNs outside
// of revenue, which is validated instead.
type Row struct {
	Ticker        string
	CIK           string
	FiscalYear    int
	FiscalQuarter facts.Period

	// raw duration metrics
	Revenue     float64
	COGS        float64
	EBIT        float64
	NetIncome   float64
	EPSDiluted  float64
	DA          float64
	TaxExpense  float64
	CFO         float64
	CFI         float64
	CFF         float64
	CapEx       float64
	InterestExp float64
	Dividends   float64
	RnD         float64
	SGA         float64

	// raw instant metrics
	PPE                float64
	Goodwill           float64
	Intangibles        float64
	Assets             float64
	AssetsCurrent      float64
	LiabilitiesCurrent float64
	Equity             float64
	Cash               float64
	STI                float64
	AR                 float64
	AP                 float64
	Inventory          float64
	Debt               float64
	Retained           float64
	DeferredRevenue    float64
	TreasuryStock      float64

	// derived metrics
	GrossProfit          float64
	GrossMargin          float64
	OpMargin             float64
	NetMargin            float64
	EBITDA               float64
	EBITDAMargin         float64
	EffTaxRate           float64
	CurrentRatio         float64
	QuickRatio           float64
	CashRatio            float64
	DebtToEquity         float64
	AssetTurnover        float64
	InventoryTurnover    float64
	ReceivablesTurnover  float64
	PayablesTurnover     float64
	DIO                  float64
	DSO                  float64
	DPO                  float64
	CCC                  float64
	FCF                  float64
	FCFMargin            float64
	CFOMargin            float64
	PPEToAssets          float64
	GoodwillToAssets     float64
	IntangToAssets       float64
	CashToAssets         float64
	CurrAssetsToAssets   float64
	RetainedToAssets     float64
	EquityMultiplier     float64
	TangibleBook         float64
	TangibleBookToAssets float64
	SalesGrowth          float64
	WorkingCapital       float64
	SGAMargin            float64
	RnDMargin            float64
	ROE                  float64
	OCFRatio             float64
	CFToNI               float64

	// target variable
	EarningGrowth float64
}

// Date synthesizes a calendar timestamp for plotting: the first day of the
// quarter's final month within the fiscal year.
func (r *Row) Date(tz *time.Location) time.Time {
	var month time.Month
	switch r.FiscalQuarter {
	case facts.PeriodQ1:
		month = time.March
	case facts.PeriodQ2:
		month = time.June
	case facts.PeriodQ3:
		month = time.September
	default:
		month = time.December
	}
	return time.Date(r.FiscalYear, month, 1, 0, 0, 0, 0, tz)
}

// Column binds an output column name to its field on Row. The table drives
// CSV export, dataframe construction, database persistence, and the final
// zero-fill in one place so the schema cannot drift between them.
type Column struct {
	Name  string
	Value func(r *Row) float64
	Set   func(r *Row, v float64)
}

// MetricColumns lists every float column in canonical output order: raw
// metrics first, then derived ratios, then the growth target.
var MetricColumns = []Column{
	{"revenue", func(r *Row) float64 { return r.Revenue }, func(r *Row, v float64) { r.Revenue = v }},
	{"cogs", func(r *Row) float64 { return r.COGS }, func(r *Row, v float64) { r.COGS = v }},
	{"ebit", func(r *Row) float64 { return r.EBIT }, func(r *Row, v float64) { r.EBIT = v }},
	{"net_income", func(r *Row) float64 { return r.NetIncome }, func(r *Row, v float64) { r.NetIncome = v }},
	{"eps_diluted", func(r *Row) float64 { return r.EPSDiluted }, func(r *Row, v float64) { r.EPSDiluted = v }},
	{"da", func(r *Row) float64 { return r.DA }, func(r *Row, v float64) { r.DA = v }},
	{"tax_expense", func(r *Row) float64 { return r.TaxExpense }, func(r *Row, v float64) { r.TaxExpense = v }},
	{"cfo", func(r *Row) float64 { return r.CFO }, func(r *Row, v float64) { r.CFO = v }},
	{"cfi", func(r *Row) float64 { return r.CFI }, func(r *Row, v float64) { r.CFI = v }},
	{"cff", func(r *Row) float64 { return r.CFF }, func(r *Row, v float64) { r.CFF = v }},
	{"capex", func(r *Row) float64 { return r.CapEx }, func(r *Row, v float64) { r.CapEx = v }},
	{"interest_exp", func(r *Row) float64 { return r.InterestExp }, func(r *Row, v float64) { r.InterestExp = v }},
	{"dividends", func(r *Row) float64 { return r.Dividends }, func(r *Row, v float64) { r.Dividends = v }},
	{"rnd", func(r *Row) float64 { return r.RnD }, func(r *Row, v float64) { r.RnD = v }},
	{"sga", func(r *Row) float64 { return r.SGA }, func(r *Row, v float64) { r.SGA = v }},
	{"ppe", func(r *Row) float64 { return r.PPE }, func(r *Row, v float64) { r.PPE = v }},
	{"goodwill", func(r *Row) float64 { return r.Goodwill }, func(r *Row, v float64) { r.Goodwill = v }},
	{"intangibles", func(r *Row) float64 { return r.Intangibles }, func(r *Row, v float64) { r.Intangibles = v }},
	{"assets", func(r *Row) float64 { return r.Assets }, func(r *Row, v float64) { r.Assets = v }},
	{"assets_current", func(r *Row) float64 { return r.AssetsCurrent }, func(r *Row, v float64) { r.AssetsCurrent = v }},
	{"liabilities_current", func(r *Row) float64 { return r.LiabilitiesCurrent }, func(r *Row, v float64) { r.LiabilitiesCurrent = v }},
	{"equity", func(r *Row) float64 { return r.Equity }, func(r *Row, v float64) { r.Equity = v }},
	{"cash", func(r *Row) float64 { return r.Cash }, func(r *Row, v float64) { r.Cash = v }},
	{"sti", func(r *Row) float64 { return r.STI }, func(r *Row, v float64) { r.STI = v }},
	{"ar", func(r *Row) float64 { return r.AR }, func(r *Row, v float64) { r.AR = v }},
	{"ap", func(r *Row) float64 { return r.AP }, func(r *Row, v float64) { r.AP = v }},
	{"inventory", func(r *Row) float64 { return r.Inventory }, func(r *Row, v float64) { r.Inventory = v }},
	{"debt", func(r *Row) float64 { return r.Debt }, func(r *Row, v float64) { r.Debt = v }},
	{"retained", func(r *Row) float64 { return r.Retained }, func(r *Row, v float64) { r.Retained = v }},
	{"deferred_revenue", func(r *Row) float64 { return r.DeferredRevenue }, func(r *Row, v float64) { r.DeferredRevenue = v }},
	{"treasury_stock", func(r *Row) float64 { return r.TreasuryStock }, func(r *Row, v float64) { r.TreasuryStock = v }},

	{"gross_profit", func(r *Row) float64 { return r.GrossProfit }, func(r *Row, v float64) { r.GrossProfit = v }},
	{"gross_margin", func(r *Row) float64 { return r.GrossMargin }, func(r *Row, v float64) { r.GrossMargin = v }},
	{"op_margin", func(r *Row) float64 { return r.OpMargin }, func(r *Row, v float64) { r.OpMargin = v }},
	{"net_margin", func(r *Row) float64 { return r.NetMargin }, func(r *Row, v float64) { r.NetMargin = v }},
	{"ebitda", func(r *Row) float64 { return r.EBITDA }, func(r *Row, v float64) { r.EBITDA = v }},
	{"ebitda_margin", func(r *Row) float64 { return r.EBITDAMargin }, func(r *Row, v float64) { r.EBITDAMargin = v }},
	{"eff_tax_rate", func(r *Row) float64 { return r.EffTaxRate }, func(r *Row, v float64) { r.EffTaxRate = v }},
	{"current_ratio", func(r *Row) float64 { return r.CurrentRatio }, func(r *Row, v float64) { r.CurrentRatio = v }},
	{"quick_ratio", func(r *Row) float64 { return r.QuickRatio }, func(r *Row, v float64) { r.QuickRatio = v }},
	{"cash_ratio", func(r *Row) float64 { return r.CashRatio }, func(r *Row, v float64) { r.CashRatio = v }},
	{"debt_to_equity", func(r *Row) float64 { return r.DebtToEquity }, func(r *Row, v float64) { r.DebtToEquity = v }},
	{"asset_turnover", func(r *Row) float64 { return r.AssetTurnover }, func(r *Row, v float64) { r.AssetTurnover = v }},
	{"inventory_turnover", func(r *Row) float64 { return r.InventoryTurnover }, func(r *Row, v float64) { r.InventoryTurnover = v }},
	{"receivables_turnover", func(r *Row) float64 { return r.ReceivablesTurnover }, func(r *Row, v float64) { r.ReceivablesTurnover = v }},
	{"payables_turnover", func(r *Row) float64 { return r.PayablesTurnover }, func(r *Row, v float64) { r.PayablesTurnover = v }},
	{"dio", func(r *Row) float64 { return r.DIO }, func(r *Row, v float64) { r.DIO = v }},
	{"dso", func(r *Row) float64 { return r.DSO }, func(r *Row, v float64) { r.DSO = v }},
	{"dpo", func(r *Row) float64 { return r.DPO }, func(r *Row, v float64) { r.DPO = v }},
	{"ccc", func(r *Row) float64 { return r.CCC }, func(r *Row, v float64) { r.CCC = v }},
	{"fcf", func(r *Row) float64 { return r.FCF }, func(r *Row, v float64) { r.FCF = v }},
	{"fcf_margin", func(r *Row) float64 { return r.FCFMargin }, func(r *Row, v float64) { r.FCFMargin = v }},
	{"cfo_margin", func(r *Row) float64 { return r.CFOMargin }, func(r *Row, v float64) { r.CFOMargin = v }},
	{"ppe_to_assets", func(r *Row) float64 { return r.PPEToAssets }, func(r *Row, v float64) { r.PPEToAssets = v }},
	{"goodwill_to_assets", func(r *Row) float64 { return r.GoodwillToAssets }, func(r *Row, v float64) { r.GoodwillToAssets = v }},
	{"intang_to_assets", func(r *Row) float64 { return r.IntangToAssets }, func(r *Row, v float64) { r.IntangToAssets = v }},
	{"cash_to_assets", func(r *Row) float64 { return r.CashToAssets }, func(r *Row, v float64) { r.CashToAssets = v }},
	{"curr_assets_to_assets", func(r *Row) float64 { return r.CurrAssetsToAssets }, func(r *Row, v float64) { r.CurrAssetsToAssets = v }},
	{"retained_to_assets", func(r *Row) float64 { return r.RetainedToAssets }, func(r *Row, v float64) { r.RetainedToAssets = v }},
	{"equity_multiplier", func(r *Row) float64 { return r.EquityMultiplier }, func(r *Row, v float64) { r.EquityMultiplier = v }},
	{"tangible_book", func(r *Row) float64 { return r.TangibleBook }, func(r *Row, v float64) { r.TangibleBook = v }},
	{"tangible_book_to_assets", func(r *Row) float64 { return r.TangibleBookToAssets }, func(r *Row, v float64) { r.TangibleBookToAssets = v }},
	{"sales_growth", func(r *Row) float64 { return r.SalesGrowth }, func(r *Row, v float64) { r.SalesGrowth = v }},
	{"working_capital", func(r *Row) float64 { return r.WorkingCapital }, func(r *Row, v float64) { r.WorkingCapital = v }},
	{"sga_margin", func(r *Row) float64 { return r.SGAMargin }, func(r *Row, v float64) { r.SGAMargin = v }},
	{"rnd_margin", func(r *Row) float64 { return r.RnDMargin }, func(r *Row, v float64) { r.RnDMargin = v }},
	{"roe", func(r *Row) float64 { return r.ROE }, func(r *Row, v float64) { r.ROE = v }},
	{"ocf_ratio", func(r *Row) float64 { return r.OCFRatio }, func(r *Row, v float64) { r.OCFRatio = v }},
	{"cf_to_ni", func(r *Row) float64 { return r.CFToNI }, func(r *Row, v float64) { r.CFToNI = v }},

	{"earning_growth", func(r *Row) float64 { return r.EarningGrowth }, func(r *Row, v float64) { r.EarningGrowth = v }},
}

// Header returns the full output column list including identifiers
func Header() []string {
	header := []string{"ticker", "cik", "fy", "fq"}
	for _, col := range MetricColumns {
		header = append(header, col.Name)
	}
	return header
}
