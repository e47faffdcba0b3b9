package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(handler http.Handler) (*Client, func()) {
	srv := httptest.NewServer(handler)
	client := NewClient(srv.URL, NewHTTPReader(2*time.Second, 100))
	return client, srv.Close
}

func TestCompanyInfoNullMetricIsAbsent(t *testing.T) {
	client, closeFn := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/equity/profile" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"results": {
			"symbol": "AAPL",
			"long_name": "Apple Inc.",
			"sector": "Technology",
			"last_price": 189.5,
			"previous_close": 188.0,
			"market_cap": 2900000000000,
			"metrics": {
				"returnOnEquity": 1.479,
				"profitMargins": 0.0,
				"pegRatio": null
			}
		}}`))
	}))
	defer closeFn()

	m, err := client.CompanyInfo(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Ticker != "AAPL" || m.Name != "Apple Inc." {
		t.Errorf("unexpected identity: %+v", m)
	}
	if v, ok := m.Field("returnOnEquity"); !ok || v != 1.479 {
		t.Errorf("returnOnEquity: got %v, %v", v, ok)
	}
	// Reported zero stays present.
	if v, ok := m.Field("profitMargins"); !ok || v != 0.0 {
		t.Errorf("profitMargins should be present zero, got %v, %v", v, ok)
	}
	// Vendor null is dropped entirely.
	if _, ok := m.Field("pegRatio"); ok {
		t.Error("null metric should be absent")
	}
}

func TestCompanyInfoNotFound(t *testing.T) {
	client, closeFn := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such symbol", http.StatusNotFound)
	}))
	defer closeFn()

	_, err := client.CompanyInfo(context.Background(), "NOPE")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCompanyInfoBadPayloadCollapsesToNotFound(t *testing.T) {
	client, closeFn := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>definitely not json</html>`))
	}))
	defer closeFn()

	_, err := client.CompanyInfo(context.Background(), "AAPL")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStatementsPartialFailure(t *testing.T) {
	client, closeFn := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/equity/fundamental/income":
			w.Write([]byte(`{"results": [
				{"period_ending": "2024-09-28", "line_items": {"Total Revenue": 391035, "Net Income": 93736, "Bad Item": null}},
				{"period_ending": "2023-09-30", "line_items": {"Total Revenue": 383285}}
			]}`))
		default:
			http.Error(w, "unavailable", http.StatusInternalServerError)
		}
	}))
	defer closeFn()

	set := client.Statements(context.Background(), "AAPL")
	if set.Income == nil {
		t.Fatal("income statement should be present")
	}
	if set.Balance != nil || set.CashFlow != nil {
		t.Error("failed statements should be nil")
	}

	period, ok := set.Income.MostRecent()
	if !ok {
		t.Fatal("expected a most recent period")
	}
	if v := period.Items["Total Revenue"]; v != 391035 {
		t.Errorf("most recent period should be first, got revenue %v", v)
	}
	if _, ok := period.Items["Bad Item"]; ok {
		t.Error("null line item should be dropped")
	}
	if len(set.Income.Periods) != 2 {
		t.Errorf("expected 2 periods, got %d", len(set.Income.Periods))
	}
}

func TestNewsJSONFeed(t *testing.T) {
	client, closeFn := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [
			{"title": "Apple launches new chip", "publisher": "Reuters", "link": "https://example.com/1", "published_at": "2026-08-28T10:00:00Z"},
			{"title": "Analysts weigh in", "publisher": "Bloomberg", "link": "https://example.com/2", "published_at": "2026-08-27T09:00:00Z"},
			{"title": "Third story", "publisher": "WSJ", "link": "https://example.com/3", "published_at": "2026-08-26T08:00:00Z"}
		]}`))
	}))
	defer closeFn()

	items := client.News(context.Background(), "AAPL", 2)
	if len(items) != 2 {
		t.Fatalf("expected 2 items (capped), got %d", len(items))
	}
	if items[0].Title != "Apple launches new chip" || items[0].Publisher != "Reuters" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[0].PublishedAt.IsZero() {
		t.Error("published_at should be parsed")
	}
}

func TestNewsHTMLFallback(t *testing.T) {
	client, closeFn := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/news/company" {
			http.Error(w, "feed down", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`<html><body>
			<article><a href="https://example.com/a"><h3>Headline A</h3></a><span>Reuters</span></article>
			<article><a href="https://example.com/b"><h3>Headline B</h3></a><span>Bloomberg</span></article>
			<article><div>no headline here</div></article>
		</body></html>`))
	}))
	defer closeFn()

	items := client.News(context.Background(), "AAPL", 5)
	if len(items) != 2 {
		t.Fatalf("expected 2 scraped items, got %d", len(items))
	}
	if items[0].Title != "Headline A" || items[0].Link != "https://example.com/a" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].Publisher != "Bloomberg" {
		t.Errorf("unexpected publisher: %q", items[1].Publisher)
	}
}

func TestNewsBothPathsFail(t *testing.T) {
	client, closeFn := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer closeFn()

	items := client.News(context.Background(), "AAPL", 5)
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestHistoricalPrices(t *testing.T) {
	client, closeFn := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [
			{"date": "2026-08-27", "open": 188.1, "high": 190.2, "low": 187.5, "close": 189.5, "volume": 51234000},
			{"date": "2026-08-26", "close": null}
		]}`))
	}))
	defer closeFn()

	points := client.HistoricalPrices(context.Background(), "AAPL", "1mo")
	if len(points) != 1 {
		t.Fatalf("expected 1 point (null close dropped), got %d", len(points))
	}
	if points[0].Close != 189.5 || points[0].Volume != 51234000 {
		t.Errorf("unexpected point: %+v", points[0])
	}
}
