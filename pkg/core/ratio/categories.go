package ratio

// Metric pairs a ratio name from the fixed set with its display label.
type Metric struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// CategoryInfo describes one ratio category for presentation.
type CategoryInfo struct {
	Description string   `json:"description"`
	Metrics     []Metric `json:"metrics"`
}

// Categories lists the category names in display order.
var Categories = []string{"Profitability", "Liquidity", "Efficiency", "Leverage", "Valuation"}

var categoryTable = map[string]CategoryInfo{
	"Profitability": {
		Description: "Profitability ratios measure how efficiently a company generates profit",
		Metrics: []Metric{
			{"ROE", "ROE (Return on Equity)"},
			{"ROA", "ROA (Return on Assets)"},
			{"Net Profit Margin", "Net Profit Margin"},
			{"Gross Profit Margin", "Gross Profit Margin"},
		},
	},
	"Liquidity": {
		Description: "Liquidity ratios assess ability to meet short-term obligations",
		Metrics: []Metric{
			{"Current Ratio", "Current Ratio"},
			{"Quick Ratio", "Quick Ratio"},
		},
	},
	"Efficiency": {
		// These metrics are listed for the category view but their
		// calculations are pending; they render as N/A.
		Description: "Efficiency ratios show how well assets are being used (calculations pending)",
		Metrics: []Metric{
			{"Asset Turnover", "Asset Turnover"},
			{"Inventory Turnover", "Inventory Turnover"},
			{"Days Sales Outstanding", "Days Sales Outstanding"},
		},
	},
	"Leverage": {
		Description: "Leverage ratios indicate financial risk from debt",
		Metrics: []Metric{
			{"Debt to Equity", "Debt-to-Equity"},
			{"Interest Coverage", "Interest Coverage"},
			{"Debt Ratio", "Debt Ratio"},
		},
	},
	"Valuation": {
		Description: "Valuation ratios help determine if stock is fairly priced",
		Metrics: []Metric{
			{"P/E Ratio", "P/E Ratio"},
			{"P/B Ratio", "P/B Ratio"},
			{"PEG Ratio", "PEG Ratio"},
			{"Price to Sales", "Price-to-Sales"},
		},
	},
}

// CategoryMetrics returns the description and ordered metric list for a
// ratio category. An unrecognized category falls back to Profitability.
func CategoryMetrics(category string) CategoryInfo {
	if info, ok := categoryTable[category]; ok {
		return info
	}
	return categoryTable["Profitability"]
}
