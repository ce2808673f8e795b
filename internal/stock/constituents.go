package stock

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const constituentsURL = "https://en.wikipedia.org/wiki/Nasdaq-100"

// FetchNasdaq100Tickers scrapes the constituents table. The ticker column
// is located by header name so column reshuffles on the page don't break
// the parse.
func FetchNasdaq100Tickers() ([]string, error) {
	resp, err := http.Get(constituentsURL)
	if err != nil {
		return nil, fmt.Errorf("fetch constituents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("constituents page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse constituents page: %w", err)
	}

	table := doc.Find("table#constituents").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("constituents table not found")
	}

	tickerCol := -1
	table.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
		header := strings.TrimSpace(th.Text())
		if header == "Ticker" || header == "Symbol" {
			tickerCol = i
		}
	})
	if tickerCol < 0 {
		return nil, fmt.Errorf("ticker column not found")
	}

	var tickers []string
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}
		cell := tr.Find("td").Eq(tickerCol)
		if ticker := strings.TrimSpace(cell.Text()); ticker != "" {
			tickers = append(tickers, ticker)
		}
	})
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers parsed from constituents table")
	}
	return tickers, nil
}
