package research

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"investilearn/pkg/core/fetch"
	"investilearn/pkg/core/flowgraph"
	"investilearn/pkg/core/ratio"
	"investilearn/pkg/models"
)

var fetcher fetch.Fetcher
var newsMax = 5

// InitHandler wires the data source used by the report endpoint.
func InitHandler(f fetch.Fetcher, maxNews int) {
	fetcher = f
	if maxNews > 0 {
		newsMax = maxNews
	}
}

type ReportRequest struct {
	Ticker string `json:"ticker"`
}

type CompanyHeader struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	Price         float64 `json:"price"`
	ChangePercent string  `json:"change_percent"`
	MarketCap     float64 `json:"market_cap"`
}

type RatioEntry struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type CategoryBlock struct {
	Category    string       `json:"category"`
	Description string       `json:"description"`
	Ratios      []RatioEntry `json:"ratios"`
}

type GraphView struct {
	flowgraph.FlowGraph
	NodeColors []string `json:"node_colors"`
	LinkColors []string `json:"link_colors"`
}

type ReportResponse struct {
	Company    CompanyHeader     `json:"company"`
	Categories []CategoryBlock   `json:"categories"`
	Income     GraphView         `json:"income_graph"`
	CashFlow   GraphView         `json:"cashflow_graph"`
	Balance    GraphView         `json:"balance_graph"`
	News       []models.NewsItem `json:"news"`
}

// HandleReport assembles the full research report for one ticker:
// header, ratio categories, the three flow graphs and recent news.
func HandleReport(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		http.Error(w, "ticker is required", http.StatusBadRequest)
		return
	}
	fmt.Printf("[RESEARCH] Request: %s\n", ticker)

	metrics, err := fetcher.CompanyInfo(r.Context(), ticker)
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			http.Error(w, fmt.Sprintf("Ticker not found: %s", ticker), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	statements := fetcher.Statements(r.Context(), ticker)
	ratios := ratio.ComputeRatios(metrics, statements.Income, statements.Balance)

	resp := ReportResponse{
		Company:    buildHeader(metrics),
		Categories: buildCategories(ratios),
		Income:     graphView(statements.Income, flowgraph.Income),
		CashFlow:   graphView(statements.CashFlow, flowgraph.CashFlow),
		Balance:    graphView(statements.Balance, flowgraph.Balance),
		News:       fetcher.News(r.Context(), ticker, newsMax),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func buildHeader(m *models.CompanyMetrics) CompanyHeader {
	h := CompanyHeader{
		Ticker:    m.Ticker,
		Name:      m.Name,
		Sector:    m.Sector,
		Price:     m.Price,
		MarketCap: m.MarketCap,
	}
	h.ChangePercent = "N/A"
	if m.PreviousClose != 0 {
		change := (m.Price - m.PreviousClose) / m.PreviousClose * 100
		h.ChangePercent = fmt.Sprintf("%.2f%%", change)
	}
	return h
}

func buildCategories(ratios ratio.Result) []CategoryBlock {
	blocks := make([]CategoryBlock, 0, len(ratio.Categories))
	for _, cat := range ratio.Categories {
		info := ratio.CategoryMetrics(cat)
		block := CategoryBlock{Category: cat, Description: info.Description}
		for _, m := range info.Metrics {
			block.Ratios = append(block.Ratios, RatioEntry{
				Name:  m.Name,
				Label: m.Label,
				Value: ratio.FormatRatio(ratios[m.Name], m.Name),
			})
		}
		blocks = append(blocks, block)
	}
	return blocks
}

func graphView(table *models.FinancialStatementTable, kind flowgraph.StatementKind) GraphView {
	g := flowgraph.Build(table, kind)
	return GraphView{
		FlowGraph:  g,
		NodeColors: g.NodeColors(),
		LinkColors: g.LinkColors(),
	}
}
