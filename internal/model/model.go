package model

import "time"

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Product is one immutable catalog record. Lockup and MinInvestment keep the
// original display text (e.g. "12月", "100000元"); LockupDays and MinAmount
// are the normalized values the matcher works with.
type Product struct {
	Name          string
	Strategy      string
	RiskLevel     string
	Lockup        string
	LockupDays    int
	AnnualReturn  float64
	MinInvestment string
	MinAmount     float64
	RedemptionFee string
	Advantage     string
}

// InvestmentSlots holds the three per-session slots, already normalized:
// amount in yuan, expected return as a fraction, horizon in days. A nil
// field means the slot has not been extracted yet.
type InvestmentSlots struct {
	Amount      *float64
	Return      *float64
	HorizonDays *int
}

func (s InvestmentSlots) Complete() bool {
	return s.Amount != nil && s.Return != nil && s.HorizonDays != nil
}

func (s InvestmentSlots) Empty() bool {
	return s.Amount == nil && s.Return == nil && s.HorizonDays == nil
}

// Merge overwrites each slot with the newer value when one was extracted.
// Whole values only; slots are never partially merged or cleared.
func (s *InvestmentSlots) Merge(newer InvestmentSlots) {
	if newer.Amount != nil {
		s.Amount = newer.Amount
	}
	if newer.Return != nil {
		s.Return = newer.Return
	}
	if newer.HorizonDays != nil {
		s.HorizonDays = newer.HorizonDays
	}
}

// MatchCandidate pairs a product with its match score (0-100). Candidates
// are recomputed on every matching attempt, never cached.
type MatchCandidate struct {
	Product Product
	Score   float64
}

// Recommendation is what a session remembers about its last matching run.
type Recommendation struct {
	Candidates []MatchCandidate
	Slots      InvestmentSlots
	At         time.Time
}
