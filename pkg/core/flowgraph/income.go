package flowgraph

import "math"

// Income statement concept aliases; the vendor's labeling drifts across
// companies and periods, so each concept is tried in order.
var (
	revenueAliases         = []string{"Total Revenue", "Revenue", "Total Operating Revenue"}
	costOfRevenueAliases   = []string{"Cost Of Revenue", "Cost of Revenue", "COGS"}
	grossProfitAliases     = []string{"Gross Profit"}
	operatingIncomeAliases = []string{"Operating Income", "EBIT"}
	interestAliases        = []string{"Interest Expense"}
	taxAliases             = []string{"Tax Provision", "Income Tax Expense"}
	netIncomeAliases       = []string{"Net Income", "Net Income Common Stockholders"}
	otherIncomeAliases     = []string{
		"Other Income Expense",
		"Other Non Operating Income Expenses",
		"Net Non Operating Interest Income Expense",
	}
)

// Operating expense line items drawn between gross profit and operating
// income, with shortened display labels where the vendor's are unwieldy.
var opexPatterns = []struct {
	label string
	short string
}{
	{"Selling General And Administration", "SG&A"},
	{"Research And Development", "R&D"},
	{"Operating Expense", "Operating Expense"},
	{"Depreciation And Amortization", "DDA"},
	{"Depreciation", "Depreciation"},
	{"Amortization", "Amortization"},
	{"Reconciled Depreciation", "Reconciled Depreciation"},
}

// Materiality thresholds, as fractions of revenue.
const (
	incomeOpexThreshold  = 0.005
	incomeOtherThreshold = 0.001
)

// buildIncome wires Revenue -> {Cost of Revenue, Gross Profit} ->
// operating expenses -> Operating Income -> {Other, Interest, Tax} ->
// Net Income. Profit-side concepts must be strictly positive; expense
// concepts use magnitudes since vendors record them with either sign.
func buildIncome(items map[string]float64) FlowGraph {
	b := newBuilder()

	revenueKey, revenue, ok := find(items, revenueAliases)
	if !ok || revenue <= 0 {
		return Empty()
	}

	cogsKey, cogs, hasCogs := find(items, costOfRevenueAliases)
	gpKey, grossProfit, hasGP := find(items, grossProfitAliases)
	opKey, operatingIncome, hasOp := find(items, operatingIncomeAliases)
	niKey, netIncome, hasNI := find(items, netIncomeAliases)
	b.reserve(revenueKey, cogsKey, gpKey, opKey, niKey)

	revIdx := b.node(revenueKey, revenueKey, CategoryRevenue)

	if hasCogs && cogs != 0 {
		b.flow(revIdx, b.node(cogsKey, cogsKey, CategoryExpense), math.Abs(cogs))
	}

	gpIdx := -1
	if hasGP && grossProfit > 0 {
		gpIdx = b.node(gpKey, gpKey, CategoryProfit)
		b.flow(revIdx, gpIdx, grossProfit)
	}

	// Operating expenses fan out from gross profit when present, else
	// straight from revenue.
	opexSource := revIdx
	if gpIdx >= 0 {
		opexSource = gpIdx
	}
	for _, p := range opexPatterns {
		v, present := items[p.label]
		if !present || b.consumed(p.label) {
			continue
		}
		mag := math.Abs(v)
		if mag/revenue > incomeOpexThreshold {
			b.flow(opexSource, b.node(p.label, p.short, CategoryOperating), mag)
		}
	}

	opIdx := -1
	if hasOp && operatingIncome > 0 {
		opIdx = b.node(opKey, opKey, CategoryProfit)
		b.flow(opexSource, opIdx, operatingIncome)
	}

	if opIdx >= 0 {
		if key, other, found := find(items, otherIncomeAliases); found && math.Abs(other)/revenue > incomeOtherThreshold {
			cat := CategoryProfit
			if other < 0 {
				cat = CategoryExpense
			}
			b.flow(opIdx, b.node(key, "Other Income (Expense)", cat), math.Abs(other))
		}
		if _, interest, found := find(items, interestAliases); found && math.Abs(interest)/revenue > incomeOpexThreshold {
			b.flow(opIdx, b.node("Interest Expense", "Interest Expense", CategoryExpense), math.Abs(interest))
		}
		if _, tax, found := find(items, taxAliases); found && math.Abs(tax)/revenue > incomeOpexThreshold {
			b.flow(opIdx, b.node("Tax", "Tax", CategoryTax), math.Abs(tax))
		}
	}

	// Net income anchors to the deepest available profit node so a
	// statement with only top-line and bottom-line items still draws.
	if hasNI && netIncome > 0 {
		anchor := revIdx
		if gpIdx >= 0 {
			anchor = gpIdx
		}
		if opIdx >= 0 {
			anchor = opIdx
		}
		b.flow(anchor, b.node(niKey, niKey, CategoryFinal), netIncome)
	}

	return b.graph("Income Statement Flow")
}
