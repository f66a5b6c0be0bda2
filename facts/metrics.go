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

// DefaultUnit is the preferred reporting currency
const DefaultUnit = "USD"

// Metric names a canonical financial concept independent of which XBRL tag a
// filer used for it.
type Metric string

const (
	// duration metrics (income statement & cash flow)
	MetricRevenue     Metric = "revenue"
	MetricCOGS        Metric = "cogs"
	MetricEBIT        Metric = "ebit"
	MetricNetIncome   Metric = "net_income"
	MetricEPSDiluted  Metric = "eps_diluted"
	MetricDA          Metric = "da"
	MetricTaxExpense  Metric = "tax_expense"
	MetricCFO         Metric = "cfo"
	MetricCFI         Metric = "cfi"
	MetricCFF         Metric = "cff"
	MetricCapEx       Metric = "capex"
	MetricInterestExp Metric = "interest_exp"
	MetricDividends   Metric = "dividends"
	MetricRnD         Metric = "rnd"
	MetricSGA         Metric = "sga"

	// instant metrics (balance sheet)
	MetricAssets             Metric = "assets"
	MetricAssetsCurrent      Metric = "assets_current"
	MetricLiabilitiesCurrent Metric = "liabilities_current"
	MetricEquity             Metric = "equity"
	MetricCash               Metric = "cash"
	MetricSTI                Metric = "sti"
	MetricAR                 Metric = "ar"
	MetricAP                 Metric = "ap"
	MetricInventory          Metric = "inventory"
	MetricDebtLTNoncurrent   Metric = "debt_lt_nc"
	MetricDebtLTCurrent      Metric = "debt_lt_cur"
	MetricDebtShortTerm      Metric = "debt_st"
	MetricPPE                Metric = "ppe"
	MetricGoodwill           Metric = "goodwill"
	MetricIntangibles        Metric = "intangibles"
	MetricRetained           Metric = "retained"
	MetricDeferredRevenue    Metric = "deferred_revenue"
	MetricTreasuryStock      Metric = "treasury_stock"
)

// DurationTags maps each duration metric to its acceptable source tags in
// preference order: the first tag present in an entity's fact set wins, so a
// contract-based revenue tag beats the generic net-sales synonyms.
var DurationTags = map[Metric][]string{
	MetricRevenue:     {"RevenueFromContractWithCustomerExcludingAssessedTax", "SalesRevenueNet", "Revenues"},
	MetricCOGS:        {"CostOfGoodsAndServicesSold", "CostOfRevenue"},
	MetricEBIT:        {"OperatingIncomeLoss", "IncomeLossFromContinuingOperationsBeforeIncomeTaxes"},
	MetricNetIncome:   {"NetIncomeLoss", "ProfitLoss"},
	MetricEPSDiluted:  {"EarningsPerShareDiluted", "EarningsPerShareBasicAndDiluted"},
	MetricDA:          {"DepreciationDepletionAndAmortization", "DepreciationAndAmortization"},
	MetricTaxExpense:  {"IncomeTaxExpenseBenefit"},
	MetricCFO:         {"NetCashProvidedByUsedInOperatingActivities"},
	MetricCFI:         {"NetCashProvidedByUsedInInvestingActivities"},
	MetricCFF:         {"NetCashProvidedByUsedInFinancingActivities"},
	MetricCapEx:       {"PaymentsToAcquirePropertyPlantAndEquipment", "CapitalExpendituresIncurredButNotYetPaid"},
	MetricInterestExp: {"InterestExpense", "InterestAndDebtExpense"},
	MetricDividends:   {"PaymentsOfDividendsCommonStock", "PaymentsOfDividends"},
	MetricRnD:         {"ResearchAndDevelopmentExpense"},
	MetricSGA:         {"SellingGeneralAndAdministrativeExpense"},
}

// InstantTags maps each instant (point-in-time) metric to its acceptable
// source tags in preference order.
var InstantTags = map[Metric][]string{
	MetricAssets:             {"Assets"},
	MetricAssetsCurrent:      {"AssetsCurrent"},
	MetricLiabilitiesCurrent: {"LiabilitiesCurrent"},
	MetricEquity:             {"StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest", "StockholdersEquity"},
	MetricCash:               {"CashAndCashEquivalentsAtCarryingValue", "Cash"},
	MetricSTI:                {"MarketableSecuritiesCurrent", "AvailableForSaleSecuritiesCurrent"},
	MetricAR:                 {"AccountsReceivableNetCurrent", "AccountsReceivableNet"},
	MetricAP:                 {"AccountsPayableCurrent", "AccountsPayable"},
	MetricInventory:          {"InventoryNet", "Inventory"},
	MetricDebtLTNoncurrent:   {"LongTermDebtNoncurrent"},
	MetricDebtLTCurrent:      {"LongTermDebtCurrent"},
	MetricDebtShortTerm:      {"ShortTermBorrowings"},
	MetricPPE:                {"PropertyPlantAndEquipmentNet"},
	MetricGoodwill:           {"Goodwill"},
	MetricIntangibles:        {"FiniteLivedIntangibleAssetsNet", "IntangibleAssetsNetExcludingGoodwill"},
	MetricRetained:           {"RetainedEarningsAccumulatedDeficit"},
	MetricDeferredRevenue:    {"ContractWithCustomerLiabilityCurrent", "DeferredRevenue"},
	MetricTreasuryStock:      {"TreasuryStockValue"},
}
