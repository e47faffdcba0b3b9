package flowgraph

import "math"

var (
	cfNetIncomeAliases = []string{
		"Net Income From Continuing Operations",
		"Net Income",
		"Net Income Common Stockholders",
	}
	operatingCFAliases = []string{"Operating Cash Flow", "Cash Flow From Operating Activities"}
	freeCFAliases      = []string{"Free Cash Flow"}
	investingCFAliases = []string{"Investing Cash Flow", "Cash Flow From Investing Activities"}
	financingCFAliases = []string{"Financing Cash Flow", "Cash Flow From Financing Activities"}
)

// Materiality thresholds for bucket subcomponents, as fractions of the
// owning bucket's magnitude (not the grand total).
const (
	cfOperatingSubThreshold = 0.01
	cfWorkingCapThreshold   = 0.02
	cfNetInvestThreshold    = 0.10
	cfInvestingSubThreshold = 0.05
	cfFinancingSubThreshold = 0.05
)

// buildCashFlow wires the three top-level buckets (Operating, Investing,
// Financing), each fanning out into its own subcomponents, and a
// terminal Net Change in Cash summing the buckets' signed contributions.
// Items keep their signs here: direction and coloring depend on them.
func buildCashFlow(items map[string]float64) FlowGraph {
	b := newBuilder()

	niKey, netIncome, hasNI := find(items, cfNetIncomeAliases)
	opKey, operatingCF, _ := find(items, operatingCFAliases)
	_, freeCF, _ := find(items, freeCFAliases)
	invKey, investingCF, hasInv := find(items, investingCFAliases)
	finKey, financingCF, hasFin := find(items, financingCFAliases)
	b.reserve(niKey, opKey, invKey, finKey)

	capex := math.Abs(items["Capital Expenditure"])
	if freeCF == 0 && operatingCF != 0 {
		freeCF = operatingCF - capex
	}

	if operatingCF == 0 && netIncome == 0 {
		return Empty()
	}

	startIdx := -1
	if hasNI && netIncome != 0 {
		cat := CategoryInflow
		if netIncome < 0 {
			cat = CategoryOutflow
		}
		startIdx = b.node("NI", "NI from Cont. Operations", cat)
	}

	opBucketIdx := -1
	if operatingCF > 0 {
		opBucketIdx = b.node("Operating Inflow", "Operating Inflow", CategoryOperating)
		if startIdx >= 0 {
			b.flow(startIdx, opBucketIdx, math.Abs(netIncome))
		}

		subflow := func(label, short string, threshold float64) {
			v := math.Abs(items[label])
			if v > 0 && v/math.Abs(operatingCF) > threshold {
				b.flow(opBucketIdx, b.node(label, short, CategoryNeutral), v)
			}
		}
		subflow("Depreciation And Amortization", "DDA", cfOperatingSubThreshold)
		subflow("Stock Based Compensation", "Stock Compensation", cfOperatingSubThreshold)
		subflow("Change In Working Capital", "Change in WC", cfWorkingCapThreshold)
	} else if operatingCF < 0 {
		opBucketIdx = b.node("Operating Outflow", "Operating Outflow", CategoryOutflow)
		if startIdx >= 0 {
			b.flow(startIdx, opBucketIdx, math.Abs(operatingCF))
		}
	}

	cfoIdx := -1
	if operatingCF != 0 {
		cat := CategoryInflow
		if operatingCF < 0 {
			cat = CategoryOutflow
		}
		cfoIdx = b.node("CF from Operations", "CF from Operations", cat)
		if opBucketIdx >= 0 {
			b.flow(opBucketIdx, cfoIdx, math.Abs(operatingCF))
		}
	}

	fcfIdx := -1
	if freeCF != 0 && capex > 0 && cfoIdx >= 0 {
		b.flow(cfoIdx, b.node("CapEx", "CapEx", CategoryOutflow), capex)

		cat := CategoryInflow
		if freeCF < 0 {
			cat = CategoryOutflow
		}
		fcfIdx = b.node("Free Cash Flow", "Free Cash Flow", cat)
		b.flow(cfoIdx, fcfIdx, math.Abs(freeCF))
	}

	// Investing bucket: a source node fanning out into its known
	// subcomponents, gated against the bucket's own magnitude.
	if hasInv && investingCF != 0 {
		var invIdx int
		if investingCF > 0 {
			invIdx = b.node("Investing Inflow", "Investing Inflow", CategoryInflow)
		} else {
			invIdx = b.node("Investing Outflow", "Investing Outflow", CategoryInvesting)
		}

		if v := math.Abs(items["Net Investment Purchase And Sale"]); v > 0 && v/math.Abs(investingCF) > cfNetInvestThreshold {
			b.flow(invIdx, b.node("Net Investment Purchase And Sale", "Net Investment P&S", CategoryNeutral), v)
		}
		if v := math.Abs(items["Other Investing Activities"]); v > 0 && v/math.Abs(investingCF) > cfInvestingSubThreshold {
			b.flow(invIdx, b.node("Other Investing Activities", "Other Investing Activities", CategoryNeutral), v)
		}
	}

	if hasFin && financingCF != 0 {
		var finIdx int
		if financingCF > 0 {
			finIdx = b.node("Financing Inflow", "Financing Inflow", CategoryInflow)
		} else {
			finIdx = b.node("Financing Outflow", "Financing Outflow", CategoryFinancing)
		}

		signedSub := func(label, short string) {
			v := items[label]
			if v == 0 || math.Abs(v)/math.Abs(financingCF) <= cfFinancingSubThreshold {
				return
			}
			cat := CategoryInflow
			if v < 0 {
				cat = CategoryOutflow
			}
			b.flow(finIdx, b.node(label, short, cat), math.Abs(v))
		}
		signedSub("Net Issuance Of Stock", "Net Issuance of Stock")
		signedSub("Net Issuance Of Debt", "Net Issuance of Debt")

		if v := math.Abs(items["Cash Dividends Paid"]); v > 0 && v/math.Abs(financingCF) > cfFinancingSubThreshold {
			b.flow(finIdx, b.node("Cash Dividends Paid", "Dividends", CategoryOutflow), v)
		}
		if v := math.Abs(items["Other Financing Activities"]); v > 0 && v/math.Abs(financingCF) > cfFinancingSubThreshold {
			b.flow(finIdx, b.node("Other Financing Activities", "Other Financing Activities", CategoryNeutral), v)
		}
	}

	// Terminal node sums the buckets' signed contributions and connects
	// from Free Cash Flow when computed, else from CF from Operations.
	netChange := operatingCF + investingCF + financingCF
	if netChange != 0 {
		cat := CategoryInflow
		if netChange < 0 {
			cat = CategoryOutflow
		}
		ncIdx := b.node("Net Change in Cash", "Net Change in Cash", cat)
		if fcfIdx >= 0 {
			b.flow(fcfIdx, ncIdx, math.Abs(netChange))
		} else if cfoIdx >= 0 {
			b.flow(cfoIdx, ncIdx, math.Abs(netChange))
		}
	}

	return b.graph("Cash Flow Movement")
}
