package flowgraph

import "math"

var (
	totalAssetsAliases      = []string{"Total Assets"}
	currentAssetsAliases    = []string{"Current Assets", "Total Current Assets"}
	nonCurrentAssetsAliases = []string{
		"Total Non Current Assets",
		"Non Current Assets",
		"Net Non Current Assets",
	}
	totalLiabilitiesAliases = []string{"Total Liabilities Net Minority Interest", "Total Liabilities"}
	currentLiabAliases      = []string{"Current Liabilities", "Total Current Liabilities"}
	nonCurrentLiabAliases   = []string{
		"Total Non Current Liabilities Net Minority Interest",
		"Long Term Debt",
		"Total Debt",
	}
	equityAliases = []string{
		"Stockholders Equity",
		"Total Equity Gross Minority Interest",
		"Common Stock Equity",
	}
)

// Asset subcomponents, matched in order against the period's labels.
var currentAssetPatterns = []struct {
	label string
	cat   Category
}{
	{"Cash And Cash Equivalents", CategoryCash},
	{"Cash", CategoryCash},
	{"Cash Equivalents", CategoryCash},
	{"Accounts Receivable", CategoryReceivables},
	{"Receivables", CategoryReceivables},
	{"Net Receivables", CategoryReceivables},
	{"Inventory", CategoryInventory},
	{"Gross Inventory", CategoryInventory},
	{"Marketable Securities", CategoryCash},
	{"Short Term Investments", CategoryCash},
}

var nonCurrentAssetPatterns = []struct {
	label string
	cat   Category
}{
	{"Net PPE", CategoryPPE},
	{"Gross PPE", CategoryPPE},
	{"Properties", CategoryPPE},
	{"Plant", CategoryPPE},
	{"Equipment", CategoryPPE},
	{"Goodwill And Other Intangible Assets", CategoryIntangibles},
	{"Goodwill", CategoryIntangibles},
	{"Intangible Assets", CategoryIntangibles},
	{"Other Intangible Assets", CategoryIntangibles},
	{"Long Term Investments", CategoryOtherAsset},
	{"Investment In Financial Assets", CategoryOtherAsset},
}

// Materiality thresholds.
const (
	balanceComponentThreshold = 0.03 // fraction of total assets
	equitySplitThreshold      = 0.15 // fraction of total equity
)

// buildBalance fans Total Assets out to the current/non-current asset
// sides, and separately to Total Liabilities and Total Equity — both
// direct children of Total Assets, reflecting Assets = Liabilities +
// Equity. Magnitudes are used throughout.
func buildBalance(items map[string]float64) FlowGraph {
	b := newBuilder()

	taKey, totalAssetsRaw, ok := find(items, totalAssetsAliases)
	totalAssets := math.Abs(totalAssetsRaw)
	if !ok || totalAssets == 0 {
		return Empty()
	}

	caKey, currentAssets, hasCA := find(items, currentAssetsAliases)
	ncaKey, nonCurrentAssets, hasNCA := find(items, nonCurrentAssetsAliases)
	b.reserve(taKey, caKey, ncaKey)

	taIdx := b.node(taKey, taKey, CategoryTotalAssets)

	if hasCA && math.Abs(currentAssets) > 0 {
		caIdx := b.node(caKey, caKey, CategoryCurrentAssets)
		b.flow(taIdx, caIdx, math.Abs(currentAssets))

		for _, p := range currentAssetPatterns {
			v, present := items[p.label]
			if !present || b.consumed(p.label) {
				continue
			}
			mag := math.Abs(v)
			if mag/totalAssets > balanceComponentThreshold {
				b.flow(caIdx, b.node(p.label, p.label, p.cat), mag)
			}
		}
	}

	if hasNCA && math.Abs(nonCurrentAssets) > 0 {
		ncaIdx := b.node(ncaKey, ncaKey, CategoryNonCurrentAssets)
		b.flow(taIdx, ncaIdx, math.Abs(nonCurrentAssets))

		for _, p := range nonCurrentAssetPatterns {
			v, present := items[p.label]
			if !present || b.consumed(p.label) {
				continue
			}
			mag := math.Abs(v)
			if mag/totalAssets > balanceComponentThreshold {
				b.flow(ncaIdx, b.node(p.label, p.label, p.cat), mag)
			}
		}
	}

	// Liabilities: prefer the vendor's own total, else consolidate from
	// the current and long-term parts.
	clKey, currentLiabs, hasCL := find(items, currentLiabAliases)
	nclKey, nonCurrentLiabs, hasNCL := find(items, nonCurrentLiabAliases)
	b.reserve(clKey, nclKey)

	totalLiabs := 0.0
	if tlKey, v, found := find(items, totalLiabilitiesAliases); found {
		totalLiabs = math.Abs(v)
		b.reserve(tlKey)
	} else {
		if hasCL {
			totalLiabs += math.Abs(currentLiabs)
		}
		if hasNCL {
			totalLiabs += math.Abs(nonCurrentLiabs)
		}
	}

	if totalLiabs > 0 {
		tlIdx := b.node("Total Liabilities", "Total Liabilities", CategoryCurrentLiabs)
		b.flow(taIdx, tlIdx, totalLiabs)

		if hasCL && math.Abs(currentLiabs) > 0 {
			b.flow(tlIdx, b.node("Current Liabilities", "Current Liabilities", CategoryCurrentLiabs), math.Abs(currentLiabs))
		}
		if hasNCL && math.Abs(nonCurrentLiabs) > 0 {
			b.flow(tlIdx, b.node("Long-Term Debt", "Long-Term Debt", CategoryNonCurrentLiabs), math.Abs(nonCurrentLiabs))
		}
	}

	// Equity: the stockholders' total when reported, else the sum of
	// its components.
	eqKey, stockholdersEquity, hasEq := find(items, equityAliases)
	b.reserve(eqKey)

	retained := math.Abs(items["Retained Earnings"])
	commonStock := math.Abs(items["Common Stock"])
	b.reserve("Retained Earnings", "Common Stock")

	totalEquity := 0.0
	if hasEq && math.Abs(stockholdersEquity) > 0 {
		totalEquity = math.Abs(stockholdersEquity)
	} else {
		totalEquity = retained + commonStock
	}

	if totalEquity > 0 {
		eqIdx := b.node("Total Equity", "Total Equity", CategoryEquity)
		b.flow(taIdx, eqIdx, totalEquity)

		if retained > 0 && retained/totalEquity > equitySplitThreshold {
			b.flow(eqIdx, b.node("Retained Earnings", "Retained Earnings", CategoryEquity), retained)
		}
		if commonStock > 0 && commonStock/totalEquity > equitySplitThreshold {
			b.flow(eqIdx, b.node("Common Stock", "Common Stock", CategoryEquity), commonStock)
		}
	}

	return b.graph("Balance Sheet Structure")
}
