// Package flowgraph builds directed weighted flow graphs (Sankey
// diagrams) from a single financial statement period.
package flowgraph

import (
	"fmt"
	"strconv"
	"strings"
)

// StatementKind selects which statement-specific builder runs.
type StatementKind string

const (
	Income   StatementKind = "income"
	CashFlow StatementKind = "cashflow"
	Balance  StatementKind = "balance"
)

// Category tags a node for presentation coloring. Categories carry no
// computational meaning.
type Category string

const (
	// Income statement
	CategoryRevenue   Category = "revenue"
	CategoryExpense   Category = "expense"
	CategoryProfit    Category = "profit"
	CategoryOperating Category = "operating"
	CategoryTax       Category = "tax"
	CategoryFinal     Category = "final"

	// Cash flow
	CategoryInflow    Category = "inflow"
	CategoryOutflow   Category = "outflow"
	CategoryInvesting Category = "investing"
	CategoryFinancing Category = "financing"
	CategoryNeutral   Category = "neutral"

	// Balance sheet
	CategoryTotalAssets       Category = "total_assets"
	CategoryCurrentAssets     Category = "current_assets"
	CategoryNonCurrentAssets  Category = "non_current_assets"
	CategoryCurrentLiabs      Category = "current_liabilities"
	CategoryNonCurrentLiabs   Category = "non_current_liabilities"
	CategoryEquity            Category = "equity"
	CategoryCash              Category = "cash"
	CategoryReceivables       Category = "receivables"
	CategoryInventory         Category = "inventory"
	CategoryPPE               Category = "ppe"
	CategoryIntangibles       Category = "intangibles"
	CategoryOtherAsset        Category = "other"
)

// Colorblind-friendly palette carried over from the dashboard.
var palette = map[Category]string{
	CategoryRevenue:   "#2E86AB",
	CategoryExpense:   "#A23B72",
	CategoryProfit:    "#06A77D",
	CategoryOperating: "#F18F01",
	CategoryTax:       "#8B5A3C",
	CategoryFinal:     "#2D6A4F",

	CategoryInflow:    "#06A77D",
	CategoryOutflow:   "#BC4B51",
	CategoryInvesting: "#F18F01",
	CategoryFinancing: "#9B59B6",
	CategoryNeutral:   "#2D6A4F",

	CategoryTotalAssets:      "#2E86AB",
	CategoryCurrentAssets:    "#06A77D",
	CategoryNonCurrentAssets: "#023E8A",
	CategoryCurrentLiabs:     "#F18F01",
	CategoryNonCurrentLiabs:  "#C73E1D",
	CategoryEquity:           "#2D6A4F",
	CategoryCash:             "#90E0EF",
	CategoryReceivables:      "#00B4D8",
	CategoryInventory:        "#0077B6",
	CategoryPPE:              "#03045E",
	CategoryIntangibles:      "#5A189A",
	CategoryOtherAsset:       "#7209B7",
}

// Color returns the hex color assigned to a category.
func Color(c Category) string {
	if hex, ok := palette[c]; ok {
		return hex
	}
	return "#999999"
}

// Node is a labeled vertex in the flow graph.
type Node struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

// Edge is a directed flow between two nodes, referenced by index into
// the node sequence. Value is always >= 0; direction carries the sign.
type Edge struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Value  float64 `json:"value"`
}

// InsufficientDataAnnotation marks the canonical empty graph.
const InsufficientDataAnnotation = "Insufficient data for visualization"

// FlowGraph is an ordered node sequence plus an ordered edge sequence.
// A graph with zero edges is the canonical "insufficient data" result;
// it carries the fallback annotation and is still structurally valid.
type FlowGraph struct {
	Nodes      []Node `json:"nodes"`
	Edges      []Edge `json:"edges"`
	Title      string `json:"title,omitempty"`
	Annotation string `json:"annotation,omitempty"`
}

// Empty returns the canonical empty flow graph.
func Empty() FlowGraph {
	return FlowGraph{Annotation: InsufficientDataAnnotation}
}

// IsEmpty reports whether the graph is the insufficient-data fallback.
func (g FlowGraph) IsEmpty() bool {
	return len(g.Edges) == 0
}

// NodeColors returns the hex color of each node, in node order.
func (g FlowGraph) NodeColors() []string {
	colors := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		colors[i] = Color(n.Category)
	}
	return colors
}

// LinkColors returns a translucent color per edge derived from the
// source node's category.
func (g FlowGraph) LinkColors() []string {
	colors := make([]string, len(g.Edges))
	for i, e := range g.Edges {
		base := "#999999"
		if e.Source >= 0 && e.Source < len(g.Nodes) {
			base = Color(g.Nodes[e.Source].Category)
		}
		colors[i] = HexToRGBA(base, 0.4)
	}
	return colors
}

// HexToRGBA converts a hex color to an rgba() string with the given
// alpha, e.g. HexToRGBA("#3498db", 0.4) == "rgba(52,152,219,0.4)".
func HexToRGBA(hexColor string, alpha float64) string {
	h := strings.TrimPrefix(hexColor, "#")
	if len(h) != 6 {
		return fmt.Sprintf("rgba(153,153,153,%s)", formatAlpha(alpha))
	}
	r, errR := strconv.ParseUint(h[0:2], 16, 8)
	g, errG := strconv.ParseUint(h[2:4], 16, 8)
	b, errB := strconv.ParseUint(h[4:6], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		return fmt.Sprintf("rgba(153,153,153,%s)", formatAlpha(alpha))
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, formatAlpha(alpha))
}

func formatAlpha(alpha float64) string {
	return strconv.FormatFloat(alpha, 'g', -1, 64)
}
