package flowgraph

import (
	"fmt"
	"math"

	"investilearn/pkg/models"
)

// Build constructs a flow graph from the most recent period of the given
// statement. It never panics: insufficient or malformed input yields the
// canonical empty graph.
func Build(statement *models.FinancialStatementTable, kind StatementKind) (g FlowGraph) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[FLOWGRAPH] %s graph construction failed: %v\n", kind, r)
			g = Empty()
		}
	}()

	period, ok := statement.MostRecent()
	if !ok {
		return Empty()
	}
	items := usableItems(period)
	if len(items) == 0 {
		return Empty()
	}

	switch kind {
	case Income:
		return buildIncome(items)
	case CashFlow:
		return buildCashFlow(items)
	case Balance:
		return buildBalance(items)
	default:
		return Empty()
	}
}

// usableItems copies the period's line items, dropping zero and
// non-finite values. A zero-valued line item carries no flow.
func usableItems(period *models.StatementPeriod) map[string]float64 {
	items := make(map[string]float64, len(period.Items))
	for label, v := range period.Items {
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		items[label] = v
	}
	return items
}

// find tries each alias label in order against the items and returns the
// first one present. Alias lists are ordered slices so resolution order
// is deterministic.
func find(items map[string]float64, aliases []string) (string, float64, bool) {
	for _, label := range aliases {
		if v, ok := items[label]; ok {
			return label, v, true
		}
	}
	return "", 0, false
}

// builder accumulates nodes and edges for one graph. Each concept key
// maps to at most one node; keys resolved to a node (or reserved up
// front) are consumed so a line item is never attributed twice.
type builder struct {
	nodes []Node
	edges []Edge
	index map[string]int
	taken map[string]bool
}

func newBuilder() *builder {
	return &builder{
		index: make(map[string]int),
		taken: make(map[string]bool),
	}
}

// node returns the index of the node for key, creating it when needed.
func (b *builder) node(key, label string, cat Category) int {
	if i, ok := b.index[key]; ok {
		return i
	}
	b.nodes = append(b.nodes, Node{Label: label, Category: cat})
	i := len(b.nodes) - 1
	b.index[key] = i
	b.taken[key] = true
	return i
}

// flow appends a directed edge; magnitudes are clamped non-negative.
func (b *builder) flow(source, target int, value float64) {
	b.edges = append(b.edges, Edge{Source: source, Target: target, Value: math.Abs(value)})
}

// reserve marks concept keys as consumed before any fan-out loop runs,
// so generic pattern matching cannot re-emit a resolved total.
func (b *builder) reserve(keys ...string) {
	for _, k := range keys {
		if k != "" {
			b.taken[k] = true
		}
	}
}

func (b *builder) consumed(key string) bool {
	return b.taken[key]
}

// graph finalizes the accumulated graph. A root node with no edges is
// not a meaningful diagram, so the canonical empty graph is returned
// when nothing was wired.
func (b *builder) graph(title string) FlowGraph {
	if len(b.edges) == 0 {
		return Empty()
	}
	return FlowGraph{Nodes: b.nodes, Edges: b.edges, Title: title}
}
