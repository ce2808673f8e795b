package stock

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Performance is a ticker's price move over the requested range.
type Performance struct {
	Ticker  string
	Initial float64
	Current float64
	GainPct float64
}

// GetPerformance fetches the daily close history for a ticker over a range
// like "1y" or "ytd" and computes the percent gain between the first and
// last available closes.
func GetPerformance(ticker, rng string) (Performance, error) {
	url := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v8/finance/chart/%s?range=%s&interval=1d",
		ticker, rng,
	)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return Performance{}, fmt.Errorf("failed to create request: %w", err)
	}
	// The quote API rejects requests without a browser-ish UA.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return Performance{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Performance{}, fmt.Errorf("quote API returned status %d", resp.StatusCode)
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return Performance{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if chart.Chart.Error != nil {
		return Performance{}, fmt.Errorf("quote API: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return Performance{}, fmt.Errorf("no quote data for %s", ticker)
	}

	closes := chart.Chart.Result[0].Indicators.Quote[0].Close
	var first, last *float64
	for _, c := range closes {
		if c == nil {
			continue
		}
		if first == nil {
			first = c
		}
		last = c
	}
	if first == nil || last == nil || *first == 0 {
		return Performance{}, fmt.Errorf("no usable closes for %s", ticker)
	}

	return Performance{
		Ticker:  ticker,
		Initial: *first,
		Current: *last,
		GainPct: (*last - *first) / *first * 100,
	}, nil
}
