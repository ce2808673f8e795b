package chat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finadvisor/internal/model"
)

func product(name string, annualReturn float64, minAmount float64, lockupDays int) model.Product {
	return model.Product{
		Name:         name,
		Strategy:     "固收增强",
		RiskLevel:    "R2",
		AnnualReturn: annualReturn,
		MinAmount:    minAmount,
		LockupDays:   lockupDays,
	}
}

func slotsOf(amount, ret float64, days int) model.InvestmentSlots {
	return model.InvestmentSlots{Amount: &amount, Return: &ret, HorizonDays: &days}
}

func names(candidates []model.MatchCandidate) []string {
	var out []string
	for _, c := range candidates {
		out = append(out, c.Product.Name)
	}
	return out
}

func TestMinInvestmentAlwaysExcludes(t *testing.T) {
	// Perfect return and horizon fit cannot save a product the user cannot
	// afford to enter.
	products := []model.Product{product("高门槛", 0.06, 1000000, 360)}

	got := FindMatches(products, slotsOf(500000, 0.06, 360), nil)
	assert.Empty(t, got)
}

func TestExcludedProductNeverReturns(t *testing.T) {
	products := []model.Product{
		product("稳健精选一号", 0.06, 100000, 360),
		product("稳健精选二号", 0.045, 50000, 180),
	}
	exclude := map[string]bool{"稳健精选一号": true}

	got := FindMatches(products, slotsOf(500000, 0.055, 360), exclude)
	require.NotEmpty(t, got)
	assert.NotContains(t, names(got), "稳健精选一号")
}

func TestReturnAndLockupTolerances(t *testing.T) {
	slots := slotsOf(500000, 0.06, 360)
	products := []model.Product{
		product("收益太低", 0.047, 100000, 360), // below 0.8 * 6%
		product("收益够用", 0.05, 100000, 360),  // inside the 20% tolerance
		product("期限太长", 0.06, 100000, 541),  // beyond 1.5 * 360 days
		product("期限贴线", 0.06, 100000, 540),
	}

	got := names(FindMatches(products, slots, nil))
	assert.NotContains(t, got, "收益太低")
	assert.Contains(t, got, "收益够用")
	assert.NotContains(t, got, "期限太长")
	assert.Contains(t, got, "期限贴线")
}

func TestReturnsTopTwoByScore(t *testing.T) {
	slots := slotsOf(500000, 0.06, 360)
	// 次配 wins on the amount-fit term (low entry bar, small penalty);
	// 精配 matches return and horizon exactly but its entry bar equals the
	// whole amount; 远配 trails on every term and drops out of the top 2.
	products := []model.Product{
		product("远配", 0.09, 10000, 180),
		product("精配", 0.06, 500000, 360),
		product("次配", 0.058, 300000, 360),
	}

	got := FindMatches(products, slots, nil)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"次配", "精配"}, names(got))
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestEqualScoresKeepCatalogOrder(t *testing.T) {
	slots := slotsOf(500000, 0.06, 360)
	// Identical parameters, identical scores.
	products := []model.Product{
		product("先入甲", 0.06, 100000, 360),
		product("后入乙", 0.06, 100000, 360),
	}

	for i := 0; i < 10; i++ {
		got := FindMatches(products, slots, nil)
		require.Len(t, got, 2)
		assert.Equal(t, "先入甲", got[0].Product.Name)
		assert.Equal(t, got[0].Score, got[1].Score)
	}
}

func TestIncompleteSlotsMatchNothing(t *testing.T) {
	products := []model.Product{product("甲", 0.06, 100000, 360)}
	amount := float64(500000)

	got := FindMatches(products, model.InvestmentSlots{Amount: &amount}, nil)
	assert.Empty(t, got)
}

func TestScoreStaysWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		var products []model.Product
		for j := 0; j < 8; j++ {
			products = append(products, product(
				"产品",
				0.01+rng.Float64()*0.2,
				float64(10000+rng.Intn(1000000)),
				30+rng.Intn(1100),
			))
		}
		slots := slotsOf(
			float64(10000+rng.Intn(10000000)),
			0.01+rng.Float64()*0.14,
			30+rng.Intn(1100),
		)

		for _, c := range FindMatches(products, slots, nil) {
			assert.GreaterOrEqual(t, c.Score, 0.0)
			assert.LessOrEqual(t, c.Score, 100.0)
		}
	}
}
