package models

import (
	"time"
)

// CompanyMetrics holds quote-level metadata for a single company.
//
// Fields carries the vendor's named numeric metrics (returnOnEquity,
// currentRatio, trailingPE, ...). A key that is absent means the vendor
// did not report the metric, which is NOT the same thing as a reported
// value of zero: zero is a meaningful result.
type CompanyMetrics struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close"`
	MarketCap     float64 `json:"market_cap"`

	Fields map[string]float64 `json:"fields"`
}

// Field returns a named vendor metric and whether it was reported.
func (m *CompanyMetrics) Field(name string) (float64, bool) {
	if m == nil || m.Fields == nil {
		return 0, false
	}
	v, ok := m.Fields[name]
	return v, ok
}

// StatementPeriod is one reporting period of a financial statement.
// Items maps the vendor's free-text line-item labels to amounts; absent
// labels were not reported for the period.
type StatementPeriod struct {
	EndDate time.Time          `json:"end_date"`
	Items   map[string]float64 `json:"items"`
}

// FinancialStatementTable is an ordered collection of reporting periods,
// most recent first.
type FinancialStatementTable struct {
	Periods []StatementPeriod `json:"periods"`
}

// MostRecent returns the latest reporting period, or false when the
// table is nil or has no periods.
func (t *FinancialStatementTable) MostRecent() (*StatementPeriod, bool) {
	if t == nil || len(t.Periods) == 0 {
		return nil, false
	}
	return &t.Periods[0], true
}

// NewsItem is a single headline returned by the news feed.
type NewsItem struct {
	Title       string    `json:"title"`
	Publisher   string    `json:"publisher"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"published_at"`
}

// PricePoint is one bar of historical price data.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}
