package flowgraph

import (
	"reflect"
	"testing"

	"investilearn/pkg/models"
)

func singlePeriod(items map[string]float64) *models.FinancialStatementTable {
	return &models.FinancialStatementTable{
		Periods: []models.StatementPeriod{{Items: items}},
	}
}

func nodeLabels(g FlowGraph) map[string]bool {
	labels := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		labels[n.Label] = true
	}
	return labels
}

func TestBuildNilStatement(t *testing.T) {
	g := Build(nil, Income)
	if !g.IsEmpty() {
		t.Error("nil statement should yield the empty graph")
	}
	if g.Annotation != InsufficientDataAnnotation {
		t.Errorf("expected fallback annotation, got %q", g.Annotation)
	}
}

func TestBuildEmptyStatement(t *testing.T) {
	g := Build(&models.FinancialStatementTable{}, Balance)
	if !g.IsEmpty() {
		t.Error("statement with no periods should yield the empty graph")
	}
}

func TestBuildGarbageItems(t *testing.T) {
	// Unrecognized labels never panic, they just yield the fallback.
	g := Build(singlePeriod(map[string]float64{
		"Completely Unknown Line": 123.0,
		"Another Mystery":         -9.0,
	}), Income)
	if !g.IsEmpty() {
		t.Error("unrecognized items should yield the empty graph")
	}
	if g.Annotation != InsufficientDataAnnotation {
		t.Errorf("expected fallback annotation, got %q", g.Annotation)
	}
}

func TestBuildIncomeMinimalStatement(t *testing.T) {
	g := Build(singlePeriod(map[string]float64{
		"Total Revenue":     1000.0,
		"Cost Of Revenue":   600.0,
		"Operating Expense": 200.0,
		"Net Income":        150.0,
	}), Income)

	if g.IsEmpty() {
		t.Fatal("minimal income statement should produce a graph")
	}
	if len(g.Edges) < 2 {
		t.Errorf("expected at least 2 edges, got %d", len(g.Edges))
	}

	labels := nodeLabels(g)
	if !labels["Total Revenue"] {
		t.Error("missing Total Revenue node")
	}
	if !labels["Net Income"] {
		t.Error("missing Net Income node")
	}

	// Every flow magnitude is bounded by revenue here.
	for _, e := range g.Edges {
		if e.Value < 0 {
			t.Errorf("edge value must be non-negative, got %v", e.Value)
		}
		if e.Value > 1000.0 {
			t.Errorf("edge value %v exceeds revenue", e.Value)
		}
		if e.Source < 0 || e.Source >= len(g.Nodes) || e.Target < 0 || e.Target >= len(g.Nodes) {
			t.Errorf("edge references node out of range: %+v", e)
		}
	}
}

func TestBuildIncomeFullStatement(t *testing.T) {
	g := Build(singlePeriod(map[string]float64{
		"Total Revenue":                       394328.0,
		"Cost Of Revenue":                     223546.0,
		"Gross Profit":                        170782.0,
		"Selling General And Administration":  25094.0,
		"Research And Development":            26251.0,
		"Operating Income":                    119437.0,
		"Interest Expense":                    2931.0,
		"Tax Provision":                       19300.0,
		"Net Income":                          99803.0,
		"Other Non Operating Income Expenses": -334.0,
	}), Income)

	if g.IsEmpty() {
		t.Fatal("full income statement should produce a graph")
	}
	labels := nodeLabels(g)
	for _, want := range []string{"Total Revenue", "Gross Profit", "SG&A", "R&D", "Operating Income", "Tax", "Net Income"} {
		if !labels[want] {
			t.Errorf("missing node %q", want)
		}
	}
}

func TestBuildIncomeZeroRevenue(t *testing.T) {
	g := Build(singlePeriod(map[string]float64{
		"Total Revenue": 0.0,
		"Net Income":    50.0,
	}), Income)
	if !g.IsEmpty() {
		t.Error("zero revenue should yield the empty graph")
	}
}

func TestBuildIncomeNegativeRevenue(t *testing.T) {
	g := Build(singlePeriod(map[string]float64{
		"Total Revenue": -100.0,
		"Net Income":    50.0,
	}), Income)
	if !g.IsEmpty() {
		t.Error("negative revenue should yield the empty graph")
	}
}

func TestBuildDeterministic(t *testing.T) {
	items := map[string]float64{
		"Total Revenue":                      5000.0,
		"Cost Of Revenue":                    3000.0,
		"Gross Profit":                       2000.0,
		"Selling General And Administration": 400.0,
		"Research And Development":           300.0,
		"Operating Income":                   1300.0,
		"Net Income":                         1000.0,
	}
	first := Build(singlePeriod(items), Income)
	second := Build(singlePeriod(items), Income)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical input must produce identical graphs")
	}
}

func TestBuildCashFlow(t *testing.T) {
	g := Build(singlePeriod(map[string]float64{
		"Net Income From Continuing Operations": 99803.0,
		"Depreciation And Amortization":         11104.0,
		"Stock Based Compensation":              9038.0,
		"Change In Working Capital":             1200.0,
		"Operating Cash Flow":                   122151.0,
		"Capital Expenditure":                   -10708.0,
		"Free Cash Flow":                        111443.0,
		"Investing Cash Flow":                   -22354.0,
		"Financing Cash Flow":                   -110749.0,
		"Cash Dividends Paid":                   -14841.0,
		"Net Issuance Of Stock":                 -89402.0,
	}), CashFlow)

	if g.IsEmpty() {
		t.Fatal("cash flow statement should produce a graph")
	}
	labels := nodeLabels(g)
	for _, want := range []string{"NI from Cont. Operations", "Operating Inflow", "CF from Operations", "CapEx", "Free Cash Flow", "Financing Outflow", "Dividends", "Net Change in Cash"} {
		if !labels[want] {
			t.Errorf("missing node %q", want)
		}
	}
	for _, e := range g.Edges {
		if e.Value < 0 {
			t.Errorf("edge value must be non-negative, got %v", e.Value)
		}
	}
}

func TestBuildCashFlowNoActivity(t *testing.T) {
	g := Build(singlePeriod(map[string]float64{
		"Operating Cash Flow": 0.0,
		"Net Income":          0.0,
	}), CashFlow)
	if !g.IsEmpty() {
		t.Error("no operating activity and no net income should yield the empty graph")
	}
}

func TestBuildBalanceWithVendorTotalLiabilities(t *testing.T) {
	g := Build(singlePeriod(map[string]float64{
		"Total Assets":              352755.0,
		"Current Assets":            135405.0,
		"Cash And Cash Equivalents": 23646.0,
		"Accounts Receivable":       28184.0,
		"Inventory":                 4946.0,
		"Total Non Current Assets":  217350.0,
		"Net PPE":                   42117.0,
		"Total Liabilities Net Minority Interest": 302083.0,
		"Current Liabilities":                     153982.0,
		"Long Term Debt":                          98959.0,
		"Stockholders Equity":                     50672.0,
		"Retained Earnings":                       -3068.0,
		"Common Stock":                            64849.0,
	}), Balance)

	if g.IsEmpty() {
		t.Fatal("balance sheet should produce a graph")
	}
	labels := nodeLabels(g)
	for _, want := range []string{"Total Assets", "Current Assets", "Total Liabilities", "Current Liabilities", "Total Equity"} {
		if !labels[want] {
			t.Errorf("missing node %q", want)
		}
	}

	// The vendor's reported total should be used, not a re-summed one.
	var tlValue float64
	for _, e := range g.Edges {
		if g.Nodes[e.Target].Label == "Total Liabilities" {
			tlValue = e.Value
		}
	}
	if tlValue != 302083.0 {
		t.Errorf("expected vendor total liabilities 302083, got %v", tlValue)
	}
}

func TestBuildBalanceZeroAssets(t *testing.T) {
	g := Build(singlePeriod(map[string]float64{
		"Total Assets": 0.0,
	}), Balance)
	if !g.IsEmpty() {
		t.Error("zero total assets should yield the empty graph")
	}
}

func TestHexToRGBA(t *testing.T) {
	testCases := []struct {
		hex      string
		alpha    float64
		expected string
	}{
		{"#3498db", 0.4, "rgba(52,152,219,0.4)"},
		{"2E86AB", 0.4, "rgba(46,134,171,0.4)"},
		{"#FFFFFF", 1, "rgba(255,255,255,1)"},
		{"bogus", 0.5, "rgba(153,153,153,0.5)"},
	}
	for _, tc := range testCases {
		got := HexToRGBA(tc.hex, tc.alpha)
		if got != tc.expected {
			t.Errorf("HexToRGBA(%q, %v): expected %q, got %q", tc.hex, tc.alpha, tc.expected, got)
		}
	}
}

func TestLinkColorsFollowSourceNode(t *testing.T) {
	g := Build(singlePeriod(map[string]float64{
		"Total Revenue":   1000.0,
		"Cost Of Revenue": 600.0,
		"Gross Profit":    400.0,
	}), Income)
	if g.IsEmpty() {
		t.Fatal("expected a non-empty graph")
	}

	nodeColors := g.NodeColors()
	linkColors := g.LinkColors()
	if len(nodeColors) != len(g.Nodes) || len(linkColors) != len(g.Edges) {
		t.Fatal("color slices must align with nodes and edges")
	}
	for i, e := range g.Edges {
		want := HexToRGBA(nodeColors[e.Source], 0.4)
		if linkColors[i] != want {
			t.Errorf("edge %d: expected %q, got %q", i, want, linkColors[i])
		}
	}
}
