package fetch

import (
	"encoding/json"
	"time"

	"investilearn/pkg/models"
)

// Wire shapes for the market-data gateway (yfinance provider). Numeric
// fields are pointers so a vendor null decodes to nil and can be dropped
// rather than conflated with zero.

type envelope struct {
	Results json.RawMessage `json:"results"`
}

type profileResult struct {
	Symbol        string              `json:"symbol"`
	LongName      string              `json:"long_name"`
	Sector        string              `json:"sector"`
	LastPrice     *float64            `json:"last_price"`
	PreviousClose *float64            `json:"previous_close"`
	MarketCap     *float64            `json:"market_cap"`
	Metrics       map[string]*float64 `json:"metrics"`
}

type statementPeriodResult struct {
	PeriodEnding string              `json:"period_ending"`
	LineItems    map[string]*float64 `json:"line_items"`
}

type newsResult struct {
	Title       string `json:"title"`
	Publisher   string `json:"publisher"`
	Link        string `json:"link"`
	PublishedAt string `json:"published_at"`
}

type priceResult struct {
	Date   string   `json:"date"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume *float64 `json:"volume"`
}

func (p profileResult) toMetrics(ticker string) *models.CompanyMetrics {
	m := &models.CompanyMetrics{
		Ticker: ticker,
		Name:   p.LongName,
		Sector: p.Sector,
		Fields: make(map[string]float64, len(p.Metrics)),
	}
	if p.LastPrice != nil {
		m.Price = *p.LastPrice
	}
	if p.PreviousClose != nil {
		m.PreviousClose = *p.PreviousClose
	}
	if p.MarketCap != nil {
		m.MarketCap = *p.MarketCap
	}
	for name, v := range p.Metrics {
		if v == nil {
			continue
		}
		m.Fields[name] = *v
	}
	return m
}

// toTable converts gateway periods into a statement table, dropping
// null line items. Periods are assumed most-recent first, matching the
// vendor's ordering.
func toTable(periods []statementPeriodResult) *models.FinancialStatementTable {
	if len(periods) == 0 {
		return nil
	}
	table := &models.FinancialStatementTable{}
	for _, p := range periods {
		period := models.StatementPeriod{Items: make(map[string]float64, len(p.LineItems))}
		if t, err := time.Parse("2006-01-02", p.PeriodEnding); err == nil {
			period.EndDate = t
		}
		for label, v := range p.LineItems {
			if v == nil {
				continue
			}
			period.Items[label] = *v
		}
		table.Periods = append(table.Periods, period)
	}
	return table
}
