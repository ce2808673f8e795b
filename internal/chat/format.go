package chat

import (
	"fmt"
	"strings"

	"finadvisor/internal/model"
)

const noMatchReply = `抱歉，根据您的需求，暂时没有找到完全匹配的产品。建议您适当调整投资条件。

您可以考虑：
1. 适当降低预期收益率
2. 调整投资期限
3. 增加投资金额

或者告诉我您可以调整的范围，我会重新为您推荐。`

const riskDisclaimer = "\n⚠️ 风险提示：历史收益不代表未来收益，投资需谨慎。建议您仔细阅读产品说明书，充分了解产品特点和风险。"

func redemptionRule(p model.Product) string {
	if p.RedemptionFee == "" {
		return "无"
	}
	return p.RedemptionFee
}

// FormatRecommendation renders the numbered candidate list, the comparison
// table when there are at least two candidates, and the risk disclaimer.
// An empty candidate list renders the fixed adjustment suggestions.
func FormatRecommendation(candidates []model.MatchCandidate) string {
	if len(candidates) == 0 {
		return noMatchReply
	}

	var b strings.Builder
	b.WriteString("根据您的需求，我为您推荐以下产品：\n\n")
	for i, c := range candidates {
		p := c.Product
		b.WriteString(fmt.Sprintf("推荐%d：%s\n", i+1, p.Name))
		b.WriteString(fmt.Sprintf("- 产品策略：%s\n", p.Strategy))
		b.WriteString(fmt.Sprintf("- 风险等级：%s\n", p.RiskLevel))
		b.WriteString(fmt.Sprintf("- 历史年化收益：%.2f%%\n", p.AnnualReturn*100))
		b.WriteString(fmt.Sprintf("- 起投金额：%s\n", p.MinInvestment))
		b.WriteString(fmt.Sprintf("- 封闭期：%s\n", p.Lockup))
		b.WriteString(fmt.Sprintf("- 赎回规则：%s\n", redemptionRule(p)))
		b.WriteString(fmt.Sprintf("- 产品优势：%s\n", p.Advantage))
		b.WriteString(fmt.Sprintf("- 匹配度：%.0f分\n\n", c.Score))
	}

	if len(candidates) >= 2 {
		b.WriteString(compareCandidates(candidates))
	}

	b.WriteString(riskDisclaimer)
	return b.String()
}

// compareCandidates builds the two-column comparison table plus the
// advantage block and the primary/secondary advice line. Higher score leads;
// the stable sort already put it first on ties.
func compareCandidates(candidates []model.MatchCandidate) string {
	if len(candidates) < 2 {
		return ""
	}
	first, second := candidates[0], candidates[1]
	p1, p2 := first.Product, second.Product

	var b strings.Builder
	b.WriteString("\n📊 产品对比分析：\n\n")
	b.WriteString(fmt.Sprintf("| 对比项目 | %s | %s |\n", p1.Name, p2.Name))
	b.WriteString("|---------|------------|------------|\n")
	b.WriteString(fmt.Sprintf("| 历史年化收益 | %.2f%% | %.2f%% |\n", p1.AnnualReturn*100, p2.AnnualReturn*100))
	b.WriteString(fmt.Sprintf("| 风险等级 | %s | %s |\n", p1.RiskLevel, p2.RiskLevel))
	b.WriteString(fmt.Sprintf("| 起投金额 | %s | %s |\n", p1.MinInvestment, p2.MinInvestment))
	b.WriteString(fmt.Sprintf("| 封闭期 | %s | %s |\n", p1.Lockup, p2.Lockup))
	b.WriteString(fmt.Sprintf("| 赎回规则 | %s | %s |\n", redemptionRule(p1), redemptionRule(p2)))
	b.WriteString(fmt.Sprintf("| 匹配度 | %.0f分 | %.0f分 |\n", first.Score, second.Score))

	b.WriteString("\n🌟 产品优势对比：\n")
	b.WriteString(fmt.Sprintf("- %s：%s\n", p1.Name, p1.Advantage))
	b.WriteString(fmt.Sprintf("- %s：%s\n", p2.Name, p2.Advantage))

	b.WriteString("\n💡 投资建议：\n")
	b.WriteString(fmt.Sprintf("- 主推建议：%s（匹配度：%.0f分）\n", p1.Name, first.Score))
	b.WriteString(fmt.Sprintf("- 备选建议：%s（匹配度：%.0f分）\n", p2.Name, second.Score))
	return b.String()
}

// FormatProductDetails renders the full detail sheet handed to the
// collaborator when the user asks about a specific product.
func FormatProductDetails(p model.Product) string {
	var b strings.Builder
	b.WriteString("产品详情：\n")
	b.WriteString(fmt.Sprintf("- 产品名称：%s\n", p.Name))
	b.WriteString(fmt.Sprintf("- 产品策略：%s\n", p.Strategy))
	b.WriteString(fmt.Sprintf("- 风险级别：%s\n", p.RiskLevel))
	b.WriteString(fmt.Sprintf("- 封闭期：%s\n", p.Lockup))
	b.WriteString(fmt.Sprintf("- 历史年化收益：%.2f%%\n", p.AnnualReturn*100))
	b.WriteString(fmt.Sprintf("- 起投金额：%s\n", p.MinInvestment))
	b.WriteString(fmt.Sprintf("- 赎回费：%s\n", redemptionRule(p)))
	b.WriteString(fmt.Sprintf("- 产品优势：%s", p.Advantage))
	return b.String()
}

// Suggested share of the planned amount, by how well the top candidate fit.
func closingRatio(score float64) float64 {
	switch {
	case score >= 85:
		return 0.7
	case score >= 75:
		return 0.5
	default:
		return 0.3
	}
}

// GenerateClosing renders the persuasive follow-up pitch for the top
// candidate, suggesting a trial amount derived from the match score. It
// returns "" when there is nothing to pitch.
func GenerateClosing(candidates []model.MatchCandidate, slots model.InvestmentSlots) string {
	if len(candidates) == 0 || slots.Amount == nil {
		return ""
	}
	top := candidates[0]
	ratio := closingRatio(top.Score)
	amountWan := *slots.Amount / 10000
	recommendWan := amountWan * ratio

	return fmt.Sprintf(
		"根据您的投资需求，我强烈建议您考虑%s。该产品%s，完全符合您的收益预期。建议您先投入%.1f万元试水，约占您计划投资额的%.0f%%。抓住当前市场机会，建议您尽快完成投资布局。",
		top.Product.Name, top.Product.Advantage, recommendWan, ratio*100,
	)
}
