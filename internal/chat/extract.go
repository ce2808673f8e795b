package chat

import (
	"regexp"
	"strconv"
	"strings"

	"finadvisor/internal/model"
)

// Extraction rules are declarative tables so they can be tested apart from
// the dispatcher. Each slot has a trigger keyword set, explicit patterns in
// priority order and a qualitative keyword fallback. Slices keep the
// fallback lookup order deterministic.

var amountTriggers = []string{"金额", "万", "元", "块", "资金"}

var (
	amountPattern     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([万元块])`)
	bareNumberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

var returnTriggers = []string{"收益", "%", "回报", "收益率", "以上"}

// Qualitative risk appetite words mapped to an expected annual return.
var returnKeywords = []struct {
	Word string
	Rate float64
}{
	{"稳健", 0.05},
	{"保守", 0.03},
	{"激进", 0.10},
	{"高收益", 0.08},
	{"中等", 0.06},
}

var (
	rateAbovePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%\s*以上`)
	ratePattern      = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
)

var horizonTriggers = []string{"时间", "期限", "年", "月", "天"}

var horizonKeywords = []struct {
	Word   string
	Months int
}{
	{"半年", 6},
	{"一年", 12},
	{"两年", 24},
	{"三年", 36},
	{"一个月", 1},
	{"三个月", 3},
	{"短期", 3},
	{"中期", 12},
	{"长期", 24},
}

var horizonPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([年月天])`)

// ExtractSlots scans the given messages in order and returns the normalized
// slots. Each slot keeps the most recent non-null extraction, so later
// messages win; fields never reaching a rule stay nil.
func ExtractSlots(msgs []model.ChatMessage) model.InvestmentSlots {
	var slots model.InvestmentSlots
	for _, msg := range msgs {
		if v, ok := extractAmount(msg.Content); ok {
			slots.Amount = &v
		}
		if v, ok := extractReturn(msg.Content); ok {
			slots.Return = &v
		}
		if v, ok := extractHorizon(msg.Content); ok {
			slots.HorizonDays = &v
		}
	}
	return slots
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func extractAmount(text string) (float64, bool) {
	if !containsAny(text, amountTriggers) {
		return 0, false
	}
	if m := amountPattern.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		if m[2] == "万" {
			v *= 10000
		}
		return v, true
	}
	// No unit-tagged number; a bare number defaults to yuan.
	if m := bareNumberPattern.FindString(text); m != "" {
		v, _ := strconv.ParseFloat(m, 64)
		return v, true
	}
	return 0, false
}

func extractReturn(text string) (float64, bool) {
	triggered := containsAny(text, returnTriggers)
	if !triggered {
		for _, kw := range returnKeywords {
			if strings.Contains(text, kw.Word) {
				triggered = true
				break
			}
		}
	}
	if !triggered {
		return 0, false
	}
	if m := rateAbovePattern.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v / 100, true
	}
	if m := ratePattern.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v / 100, true
	}
	for _, kw := range returnKeywords {
		if strings.Contains(text, kw.Word) {
			return kw.Rate, true
		}
	}
	return 0, false
}

func extractHorizon(text string) (int, bool) {
	triggered := containsAny(text, horizonTriggers)
	if !triggered {
		for _, kw := range horizonKeywords {
			if strings.Contains(text, kw.Word) {
				triggered = true
				break
			}
		}
	}
	if !triggered {
		return 0, false
	}
	if m := horizonPattern.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		switch m[2] {
		case "年":
			return int(v * model.DaysPerYear), true
		case "月":
			return int(v * model.DaysPerMonth), true
		default:
			return int(v), true
		}
	}
	for _, kw := range horizonKeywords {
		if strings.Contains(text, kw.Word) {
			return kw.Months * model.DaysPerMonth, true
		}
	}
	return 0, false
}
