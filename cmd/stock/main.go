package main

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"finadvisor/internal/stock"
)

// Year-to-date top performers across the Nasdaq-100, as a rough market
// backdrop for advisory conversations.
const (
	historyRange = "ytd"
	numWorkers   = 8
	topN         = 10
)

func main() {
	log.Println("[Stock] fetching Nasdaq-100 constituents...")
	tickers, err := stock.FetchNasdaq100Tickers()
	if err != nil {
		log.Fatalf("fetch constituents: %v", err)
	}
	log.Printf("[Stock] %d tickers, fetching %s history...", len(tickers), historyRange)

	jobs := make(chan string, len(tickers))
	var mu sync.Mutex
	var results []stock.Performance
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ticker := range jobs {
				// Small delay to stay polite with the quote API.
				time.Sleep(100 * time.Millisecond)

				perf, err := stock.GetPerformance(ticker, historyRange)
				if err != nil {
					log.Printf("[Stock] %s: %v", ticker, err)
					continue
				}
				mu.Lock()
				results = append(results, perf)
				mu.Unlock()
			}
		}()
	}

	for _, t := range tickers {
		jobs <- t
	}
	close(jobs)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].GainPct > results[j].GainPct
	})
	if len(results) > topN {
		results = results[:topN]
	}

	fmt.Printf("%-8s %12s %12s %10s\n", "Ticker", "Initial", "Current", "Gain (%)")
	for _, p := range results {
		fmt.Printf("%-8s %12.2f %12.2f %10.2f\n", p.Ticker, p.Initial, p.Current, p.GainPct)
	}
}
