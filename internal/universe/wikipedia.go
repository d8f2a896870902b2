package universe

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const sp500URL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

// FromWikipedia scrapes the S&P 500 constituents table and returns the
// filtered, deduplicated, sorted ticker set.
func FromWikipedia(ctx context.Context, client *http.Client) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sp500URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch constituents page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch constituents page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse constituents page: %w", err)
	}

	// The first wikitable lists current constituents; ticker is the first
	// column of each row.
	var raw []string
	doc.Find("table.wikitable").First().Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cell := row.Find("td").First()
		if sym := strings.TrimSpace(cell.Text()); sym != "" {
			raw = append(raw, sym)
		}
	})
	if len(raw) == 0 {
		return nil, fmt.Errorf("no constituents table found at %s", sp500URL)
	}
	return Filter(raw), nil
}
