package catalog

import (
	"fmt"
	"sort"
	"strings"

	"finadvisor/internal/model"
)

const unavailableMessage = "抱歉，无法获取产品信息。"

// Store holds the product table in memory. It is read-only after
// construction and safe to share across sessions. A Store built with
// Unavailable answers every query with its degraded sentinel instead of
// failing per call.
type Store struct {
	products []model.Product
}

func New(products []model.Product) *Store {
	return &Store{products: products}
}

// Unavailable returns the degraded store used when the catalog source could
// not be loaded.
func Unavailable() *Store {
	return &Store{}
}

func (s *Store) Available() bool {
	return len(s.products) > 0
}

// Products returns a copy of the catalog; callers may not mutate the store.
func (s *Store) Products() []model.Product {
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

// LookupBySubstring returns the first product whose name appears inside the
// given text, in catalog order.
func (s *Store) LookupBySubstring(text string) (model.Product, bool) {
	for _, p := range s.products {
		if strings.Contains(text, p.Name) {
			return p, true
		}
	}
	return model.Product{}, false
}

func (s *Store) LookupExact(name string) (model.Product, bool) {
	for _, p := range s.products {
		if p.Name == name {
			return p, true
		}
	}
	return model.Product{}, false
}

// Summary renders aggregate stats grouped by strategy: product count, risk
// level set and the historical return range.
func (s *Store) Summary() string {
	if !s.Available() {
		return unavailableMessage
	}

	type group struct {
		count     int
		risks     []string
		riskSeen  map[string]bool
		minReturn float64
		maxReturn float64
	}

	groups := make(map[string]*group)
	var order []string
	for _, p := range s.products {
		g, ok := groups[p.Strategy]
		if !ok {
			g = &group{riskSeen: make(map[string]bool), minReturn: p.AnnualReturn, maxReturn: p.AnnualReturn}
			groups[p.Strategy] = g
			order = append(order, p.Strategy)
		}
		g.count++
		if !g.riskSeen[p.RiskLevel] {
			g.riskSeen[p.RiskLevel] = true
			g.risks = append(g.risks, p.RiskLevel)
		}
		if p.AnnualReturn < g.minReturn {
			g.minReturn = p.AnnualReturn
		}
		if p.AnnualReturn > g.maxReturn {
			g.maxReturn = p.AnnualReturn
		}
	}

	var b strings.Builder
	b.WriteString("我们有以下类型的金融产品：\n")
	for _, strategy := range order {
		g := groups[strategy]
		sort.Strings(g.risks)
		b.WriteString(fmt.Sprintf("- %s类产品 %d个，", strategy, g.count))
		b.WriteString(fmt.Sprintf("风险等级%s，", strings.Join(g.risks, ",")))
		b.WriteString(fmt.Sprintf("历史年化收益率范围%.2f%%-%.2f%%\n", g.minReturn*100, g.maxReturn*100))
	}
	return b.String()
}
