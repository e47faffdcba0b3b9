package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"investilearn/pkg/models"
)

// ErrNotFound is returned when the vendor has no data for a ticker.
// Every upstream failure (timeout, bad payload, 4xx/5xx) collapses to
// it: the caller treats all of them as "no data available".
var ErrNotFound = errors.New("ticker not found")

// StatementSet carries the three annual statements for one ticker. Any
// member may be nil when the vendor did not return that statement.
type StatementSet struct {
	Income   *models.FinancialStatementTable
	Balance  *models.FinancialStatementTable
	CashFlow *models.FinancialStatementTable
}

// Fetcher is the data-source collaborator consumed by the API layer.
// Statements and News fail closed (zero set / empty slice) rather than
// returning errors.
type Fetcher interface {
	CompanyInfo(ctx context.Context, ticker string) (*models.CompanyMetrics, error)
	Statements(ctx context.Context, ticker string) StatementSet
	News(ctx context.Context, ticker string, maxItems int) []models.NewsItem
	HistoricalPrices(ctx context.Context, ticker string, period string) []models.PricePoint
}

// Client retrieves company data from the market-data gateway.
type Client struct {
	baseURL string
	reader  HTTPReader
}

// NewClient builds a client against the gateway base URL. A nil reader
// gets the default transport (10s timeout, 4 req/s).
func NewClient(baseURL string, reader HTTPReader) *Client {
	if reader == nil {
		reader = NewHTTPReader(10*time.Second, 4)
	}
	return &Client{baseURL: baseURL, reader: reader}
}

var _ Fetcher = (*Client)(nil)

// CompanyInfo fetches quote metadata for a ticker. Any upstream error
// collapses to ErrNotFound; the cause is logged, not propagated.
func (c *Client) CompanyInfo(ctx context.Context, ticker string) (*models.CompanyMetrics, error) {
	body, err := c.reader.Read(ctx, c.baseURL+"/api/v1/equity/profile", map[string]string{
		"provider": "yfinance",
		"symbol":   ticker,
	})
	if err != nil {
		fmt.Printf("[FETCH] profile fetch failed for %s: %v\n", ticker, err)
		return nil, ErrNotFound
	}

	var env envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		fmt.Printf("[FETCH] profile decode failed for %s: %v\n", ticker, err)
		return nil, ErrNotFound
	}
	var profile profileResult
	if err := json.Unmarshal(env.Results, &profile); err != nil {
		fmt.Printf("[FETCH] profile decode failed for %s: %v\n", ticker, err)
		return nil, ErrNotFound
	}
	if profile.Symbol == "" {
		return nil, ErrNotFound
	}
	return profile.toMetrics(profile.Symbol), nil
}

// Statements fetches the three annual statements. Each statement is
// fetched independently; a failure leaves that member nil and the rest
// intact.
func (c *Client) Statements(ctx context.Context, ticker string) StatementSet {
	return StatementSet{
		Income:   c.statement(ctx, ticker, "income"),
		Balance:  c.statement(ctx, ticker, "balance"),
		CashFlow: c.statement(ctx, ticker, "cash"),
	}
}

func (c *Client) statement(ctx context.Context, ticker, kind string) *models.FinancialStatementTable {
	body, err := c.reader.Read(ctx, c.baseURL+"/api/v1/equity/fundamental/"+kind, map[string]string{
		"provider": "yfinance",
		"symbol":   ticker,
		"period":   "annual",
	})
	if err != nil {
		fmt.Printf("[FETCH] %s statement fetch failed for %s: %v\n", kind, ticker, err)
		return nil
	}

	var env envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		fmt.Printf("[FETCH] %s statement decode failed for %s: %v\n", kind, ticker, err)
		return nil
	}
	var periods []statementPeriodResult
	if err := json.Unmarshal(env.Results, &periods); err != nil {
		fmt.Printf("[FETCH] %s statement decode failed for %s: %v\n", kind, ticker, err)
		return nil
	}
	return toTable(periods)
}

// News fetches recent headlines, newest first, capped at maxItems. When
// the JSON feed fails, the vendor's news page is scraped as a fallback;
// both paths failing yields an empty slice.
func (c *Client) News(ctx context.Context, ticker string, maxItems int) []models.NewsItem {
	body, err := c.reader.Read(ctx, c.baseURL+"/api/v1/news/company", map[string]string{
		"provider": "yfinance",
		"symbol":   ticker,
		"limit":    fmt.Sprintf("%d", maxItems),
	})
	if err != nil {
		fmt.Printf("[FETCH] news feed failed for %s, trying page scrape: %v\n", ticker, err)
		return c.newsFromPage(ctx, ticker, maxItems)
	}

	var env envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		fmt.Printf("[FETCH] news decode failed for %s: %v\n", ticker, err)
		return nil
	}
	var results []newsResult
	if err := json.Unmarshal(env.Results, &results); err != nil {
		fmt.Printf("[FETCH] news decode failed for %s: %v\n", ticker, err)
		return nil
	}

	items := make([]models.NewsItem, 0, len(results))
	for _, r := range results {
		if len(items) >= maxItems {
			break
		}
		item := models.NewsItem{
			Title:     r.Title,
			Publisher: r.Publisher,
			Link:      r.Link,
		}
		if t, err := time.Parse(time.RFC3339, r.PublishedAt); err == nil {
			item.PublishedAt = t
		}
		items = append(items, item)
	}
	return items
}

// HistoricalPrices fetches daily bars for the given period (1mo, 1y,
// 5y, ...). Returns nil on any failure.
func (c *Client) HistoricalPrices(ctx context.Context, ticker string, period string) []models.PricePoint {
	body, err := c.reader.Read(ctx, c.baseURL+"/api/v1/equity/price/historical", map[string]string{
		"provider": "yfinance",
		"symbol":   ticker,
		"interval": "1d",
		"range":    period,
	})
	if err != nil {
		fmt.Printf("[FETCH] historical fetch failed for %s: %v\n", ticker, err)
		return nil
	}

	var env envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		fmt.Printf("[FETCH] historical decode failed for %s: %v\n", ticker, err)
		return nil
	}
	var results []priceResult
	if err := json.Unmarshal(env.Results, &results); err != nil {
		fmt.Printf("[FETCH] historical decode failed for %s: %v\n", ticker, err)
		return nil
	}

	points := make([]models.PricePoint, 0, len(results))
	for _, r := range results {
		if r.Close == nil {
			continue
		}
		p := models.PricePoint{Close: *r.Close}
		if t, err := time.Parse("2006-01-02", r.Date); err == nil {
			p.Date = t
		}
		if r.Open != nil {
			p.Open = *r.Open
		}
		if r.High != nil {
			p.High = *r.High
		}
		if r.Low != nil {
			p.Low = *r.Low
		}
		if r.Volume != nil {
			p.Volume = *r.Volume
		}
		points = append(points, p)
	}
	return points
}
