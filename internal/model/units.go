package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Day counts used to normalize period text. Year is calendar-ish on purpose;
// the matcher tolerances absorb the drift.
const (
	DaysPerYear  = 365
	DaysPerMonth = 30
)

var (
	amountUnitPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([万元块])`)
	periodPattern     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([年月天])`)
)

// ParseAmountYuan normalizes amount text like "50万", "100000元" or a bare
// number (assumed yuan) into yuan.
func ParseAmountYuan(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if m := amountUnitPattern.FindStringSubmatch(text); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", text, err)
		}
		if m[2] == "万" {
			return v * 10000, nil
		}
		return v, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(text, "元"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", text, err)
	}
	return v, nil
}

// ParseReturnRate normalizes "6%", "0.06" or "6" (percent when >= 1) into a
// fraction.
func ParseReturnRate(text string) (float64, error) {
	text = strings.TrimSpace(text)
	pct := strings.Contains(text, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(text, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid return rate %q: %w", text, err)
	}
	if pct || v >= 1 {
		return v / 100, nil
	}
	return v, nil
}

// ParsePeriodDays normalizes period text like "1年", "12月", "90天" or a bare
// day count into days.
func ParsePeriodDays(text string) (int, error) {
	text = strings.TrimSpace(text)
	if m := periodPattern.FindStringSubmatch(text); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid period %q: %w", text, err)
		}
		switch m[2] {
		case "年":
			return int(v * DaysPerYear), nil
		case "月":
			return int(v * DaysPerMonth), nil
		default:
			return int(v), nil
		}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid period %q: %w", text, err)
	}
	return int(v), nil
}
