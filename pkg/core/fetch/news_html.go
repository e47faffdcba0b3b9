package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"investilearn/pkg/models"
)

// newsFromPage scrapes the vendor's HTML news page when the JSON feed
// is unavailable. Best effort: any failure yields an empty slice.
func (c *Client) newsFromPage(ctx context.Context, ticker string, maxItems int) []models.NewsItem {
	body, err := c.reader.Read(ctx, c.baseURL+"/news/"+ticker, nil)
	if err != nil {
		fmt.Printf("[FETCH] news page fetch failed for %s: %v\n", ticker, err)
		return nil
	}
	items, err := parseNewsPage(body, maxItems)
	if err != nil {
		fmt.Printf("[FETCH] news page parse failed for %s: %v\n", ticker, err)
		return nil
	}
	return items
}

// parseNewsPage pulls headlines out of the page's article elements. The
// layout is h3 for the title, the first anchor for the link and a span
// for the publisher.
func parseNewsPage(html string, maxItems int) ([]models.NewsItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var items []models.NewsItem
	doc.Find("article").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Find("h3").First().Text())
		if title == "" {
			return true
		}
		item := models.NewsItem{Title: title}
		if href, ok := s.Find("a").First().Attr("href"); ok {
			item.Link = href
		}
		item.Publisher = strings.TrimSpace(s.Find("span").First().Text())
		items = append(items, item)
		return len(items) < maxItems
	})
	return items, nil
}
