package ratio

import (
	"fmt"
	"math"

	"investilearn/pkg/models"
)

// Result maps every ratio name in the fixed set to a computed value.
// A nil entry means the ratio could not be determined from the inputs.
// Every name in Names is always present, even when unavailable.
type Result map[string]*float64

// Names is the fixed, closed set of ratios the engine produces.
var Names = []string{
	"ROE",
	"ROA",
	"Net Profit Margin",
	"Gross Profit Margin",
	"Current Ratio",
	"Quick Ratio",
	"Debt to Equity",
	"P/E Ratio",
	"P/B Ratio",
	"PEG Ratio",
	"Price to Sales",
	"Interest Coverage",
	"Debt Ratio",
}

// Alias order matters: the first label present in the period wins.
var (
	ebitAliases            = []string{"EBIT", "Operating Income"}
	interestExpenseAliases = []string{"Interest Expense"}
	totalDebtAliases       = []string{"Total Debt"}
	totalAssetsAliases     = []string{"Total Assets"}
)

// ComputeRatios derives the fixed ratio set from quote metadata and,
// when provided, the most recent income statement and balance sheet
// periods. It never returns an error: a ratio that cannot be computed is
// left nil, and a failure computing one ratio does not block the others.
//
// A reported value of exactly 0 for a percentage-style source field is a
// meaningful result (0.0%), distinct from the field being absent.
func ComputeRatios(metrics *models.CompanyMetrics, incomeStmt, balanceSheet *models.FinancialStatementTable) Result {
	res := make(Result, len(Names))
	for _, name := range Names {
		res[name] = nil
	}

	percent := func(name, field string) {
		if v, ok := metrics.Field(field); ok {
			res[name] = ptr(v * 100)
		}
	}
	passthrough := func(name, field string) {
		if v, ok := metrics.Field(field); ok {
			res[name] = ptr(v)
		}
	}

	// Profitability
	percent("ROE", "returnOnEquity")
	percent("ROA", "returnOnAssets")
	percent("Net Profit Margin", "profitMargins")
	percent("Gross Profit Margin", "grossMargins")

	// Liquidity
	passthrough("Current Ratio", "currentRatio")
	passthrough("Quick Ratio", "quickRatio")

	// Leverage
	passthrough("Debt to Equity", "debtToEquity")

	// Valuation
	passthrough("P/E Ratio", "trailingPE")
	passthrough("P/B Ratio", "priceToBook")
	passthrough("PEG Ratio", "pegRatio")
	passthrough("Price to Sales", "priceToSalesTrailing12Months")

	// Statement-derived ratios. Each is isolated so an internal failure
	// leaves the ratio unavailable without affecting the rest.
	compute(res, "Interest Coverage", func() (float64, bool) {
		period, ok := incomeStmt.MostRecent()
		if !ok {
			return 0, false
		}
		ebit, okEBIT := findItem(period, ebitAliases)
		interest, okInt := findItem(period, interestExpenseAliases)
		if !okEBIT || !okInt || interest == 0 {
			return 0, false
		}
		// Vendors report interest expense with either sign.
		return ebit / math.Abs(interest), true
	})

	compute(res, "Debt Ratio", func() (float64, bool) {
		period, ok := balanceSheet.MostRecent()
		if !ok {
			return 0, false
		}
		debt, okDebt := findItem(period, totalDebtAliases)
		assets, okAssets := findItem(period, totalAssetsAliases)
		if !okDebt || !okAssets || assets == 0 {
			return 0, false
		}
		return debt / assets, true
	})

	return res
}

// compute runs fn for a single ratio, converting any panic into an
// unavailable value so one bad input cannot take down the whole set.
func compute(res Result, name string, fn func() (float64, bool)) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[RATIO] %s computation failed: %v\n", name, r)
			res[name] = nil
		}
	}()
	if v, ok := fn(); ok {
		res[name] = ptr(v)
	}
}

// findItem tries each alias label in order and returns the first present.
func findItem(period *models.StatementPeriod, aliases []string) (float64, bool) {
	if period == nil || period.Items == nil {
		return 0, false
	}
	for _, label := range aliases {
		if v, ok := period.Items[label]; ok {
			return v, true
		}
	}
	return 0, false
}

func ptr(v float64) *float64 { return &v }
