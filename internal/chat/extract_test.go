package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finadvisor/internal/model"
)

func userMsgs(contents ...string) []model.ChatMessage {
	var msgs []model.ChatMessage
	for _, c := range contents {
		msgs = append(msgs, model.ChatMessage{Role: "user", Content: c})
	}
	return msgs
}

func TestExtractSlotsFullRequest(t *testing.T) {
	slots := ExtractSlots(userMsgs("我想投资50万，预期收益6%以上，投资期限一年"))

	require.True(t, slots.Complete())
	assert.Equal(t, float64(500000), *slots.Amount)
	assert.InDelta(t, 0.06, *slots.Return, 1e-9)
	assert.Equal(t, 12*model.DaysPerMonth, *slots.HorizonDays)
}

func TestExtractSlotsIsIdempotent(t *testing.T) {
	msgs := userMsgs("我有100万资金", "希望收益稳健一点", "投资两年左右")

	first := ExtractSlots(msgs)
	second := ExtractSlots(msgs)
	assert.Equal(t, first, second)
}

func TestExtractAmountUnitRules(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"我打算投3.5万", 35000},
		{"准备投入200000元", 200000},
		{"大概5000块吧", 5000},
		// Bare number with an amount trigger defaults to yuan.
		{"金额是80000", 80000},
	}
	for _, c := range cases {
		slots := ExtractSlots(userMsgs(c.text))
		require.NotNil(t, slots.Amount, c.text)
		assert.Equal(t, c.want, *slots.Amount, c.text)
	}

	// No trigger word means no extraction even when digits are present.
	slots := ExtractSlots(userMsgs("我今年35岁"))
	assert.Nil(t, slots.Amount)
}

func TestExtractReturnPriorityOrder(t *testing.T) {
	// "N%以上" outranks a bare percentage, which outranks keywords.
	slots := ExtractSlots(userMsgs("收益要8%以上，不求高收益"))
	require.NotNil(t, slots.Return)
	assert.InDelta(t, 0.08, *slots.Return, 1e-9)

	slots = ExtractSlots(userMsgs("收益5%左右就行"))
	require.NotNil(t, slots.Return)
	assert.InDelta(t, 0.05, *slots.Return, 1e-9)

	slots = ExtractSlots(userMsgs("我风格偏保守"))
	require.NotNil(t, slots.Return)
	assert.InDelta(t, 0.03, *slots.Return, 1e-9)
}

func TestExtractHorizonRules(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"投资期限3年", 3 * model.DaysPerYear},
		{"期限6月", 6 * model.DaysPerMonth},
		{"期限90天", 90},
		{"打算放半年", 6 * model.DaysPerMonth},
		{"就做个短期", 3 * model.DaysPerMonth},
	}
	for _, c := range cases {
		slots := ExtractSlots(userMsgs(c.text))
		require.NotNil(t, slots.HorizonDays, c.text)
		assert.Equal(t, c.want, *slots.HorizonDays, c.text)
	}
}

func TestLaterMessagesOverwriteEarlierValues(t *testing.T) {
	slots := ExtractSlots(userMsgs(
		"我想投资50万，预期收益6%",
		"改一下，金额30万吧",
	))

	assert.Equal(t, float64(300000), *slots.Amount)
	// Untouched slots keep their earlier value.
	assert.InDelta(t, 0.06, *slots.Return, 1e-9)
}

func TestQualitativeKeywordOverwritesNumericValue(t *testing.T) {
	// A new non-null extraction always replaces the old value, keyword or
	// not. Known behavior carried over from the original rules.
	slots := ExtractSlots(userMsgs("预期收益6%", "还是保守一点好"))

	require.NotNil(t, slots.Return)
	assert.InDelta(t, 0.03, *slots.Return, 1e-9)
}

func TestNoExtractableContentLeavesSlotsNil(t *testing.T) {
	slots := ExtractSlots(userMsgs("你好，在吗"))
	assert.True(t, slots.Empty())
}
