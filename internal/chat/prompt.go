package chat

import "fmt"

// DissatisfactionPrompt steers the collaborator to probe which of the five
// dimensions the user is unhappy with before we re-match.
func DissatisfactionPrompt() string {
	return `你是一个专业的金融产品顾问。用户对推荐的产品表示不满意。
请详细询问用户具体不满意的地方，可以从以下几个方面引导用户表达：
1. 是收益率不够高？
2. 是投资期限太长或太短？
3. 是风险等级不合适？
4. 是起投金额太高？
5. 是产品策略不符合预期？

请根据用户的具体反馈，帮助我们找到更合适的产品。`
}

// ProductDetailPrompt embeds one product's detail sheet and instructs the
// collaborator to answer from it only.
func ProductDetailPrompt(details string) string {
	return fmt.Sprintf(`你是一个专业的金融产品顾问。用户询问的产品具体信息如下：

%s

请根据这些信息回答用户的问题，解释产品特点和风险。请注意：
1. 重点解释产品的优势和特点
2. 说明风险等级和适合的投资者类型
3. 解释封闭期和赎回规则
4. 分析历史收益情况
5. 提供专业的投资建议
`, details)
}
