package chat

import (
	"sort"

	"finadvisor/internal/model"
)

const (
	// Filter tolerances: a product may yield 20% less than asked and lock
	// funds 50% longer than asked before it is rejected.
	returnTolerance = 0.8
	lockupTolerance = 1.5

	maxCandidates = 2

	returnWeight  = 40.0
	horizonWeight = 30.0
	amountWeight  = 30.0
)

// FindMatches filters and scores the catalog against fully resolved slots
// and returns at most two candidates, best first. Products in exclude are
// never returned. Scores are recomputed from scratch on every call.
func FindMatches(products []model.Product, slots model.InvestmentSlots, exclude map[string]bool) []model.MatchCandidate {
	if !slots.Complete() {
		return nil
	}
	amount := *slots.Amount
	expected := *slots.Return
	days := float64(*slots.HorizonDays)

	var candidates []model.MatchCandidate
	for _, p := range products {
		if exclude[p.Name] {
			continue
		}
		if amount < p.MinAmount {
			continue
		}
		if p.AnnualReturn < expected*returnTolerance {
			continue
		}
		if float64(p.LockupDays) > days*lockupTolerance {
			continue
		}
		candidates = append(candidates, model.MatchCandidate{
			Product: p,
			Score:   score(p, amount, expected, days),
		})
	}

	// Stable sort keeps catalog order on equal scores, so ties are
	// deterministic: first seen wins.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}

func score(p model.Product, amount, expected, days float64) float64 {
	returnFit := 1 - abs(p.AnnualReturn-expected)/expected
	horizonFit := 1 - abs(float64(p.LockupDays)-days)/days

	ratio := p.MinAmount / amount
	if amount < p.MinAmount {
		ratio = amount / p.MinAmount
	}
	amountFit := 1 - ratio

	// Each component floors at zero so the total stays within [0,100] even
	// when a product overshoots the expectation by more than 2x.
	return clamp01(returnFit)*returnWeight +
		clamp01(horizonFit)*horizonWeight +
		clamp01(amountFit)*amountWeight
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
