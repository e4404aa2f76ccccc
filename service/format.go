package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"getloanoffer/domain"
)

// Grouping selects how integer digits are separated.
type Grouping int

const (
	// GroupingIndian groups the last three digits, then pairs: 12,34,567.
	GroupingIndian Grouping = iota
	// GroupingWestern groups by thousands: 1,234,567.
	GroupingWestern
)

// ParseGrouping maps a config value to a Grouping, defaulting to Indian.
func ParseGrouping(s string) Grouping {
	if strings.EqualFold(strings.TrimSpace(s), "western") {
		return GroupingWestern
	}
	return GroupingIndian
}

// Formatter renders amounts for the calculator displays.
type Formatter struct {
	Symbol   string
	Grouping Grouping
}

func DefaultFormatter() Formatter {
	return Formatter{Symbol: "₹", Grouping: GroupingIndian}
}

// Format rounds to the nearest whole unit and prefixes the currency symbol.
// NaN and infinities render as a dash.
func (f Formatter) Format(amount float64) string {
	if !finite(amount) {
		return f.Symbol + "-"
	}
	digits := decimal.NewFromFloat(amount).Round(0).String()

	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	return sign + f.Symbol + group(digits, f.Grouping)
}

func (f Formatter) Display(result domain.LoanResult) domain.LoanDisplay {
	return domain.LoanDisplay{
		MonthlyInstallment: f.Format(result.MonthlyInstallment),
		TotalInterest:      f.Format(result.TotalInterest),
		TotalAmount:        f.Format(result.TotalAmount),
	}
}

func group(digits string, g Grouping) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	size := 3
	if g == GroupingIndian {
		size = 2
	}

	var parts []string
	for len(head) > size {
		parts = append([]string{head[len(head)-size:]}, parts...)
		head = head[:len(head)-size]
	}
	parts = append([]string{head}, parts...)
	parts = append(parts, tail)
	return strings.Join(parts, ",")
}

// Round2 rounds half away from zero to two decimal places.
// Non-finite values are returned unchanged.
func Round2(value float64) float64 {
	if !finite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// RoundResult rounds every field of a result to two decimal places.
func RoundResult(r domain.LoanResult) domain.LoanResult {
	return domain.LoanResult{
		MonthlyInstallment: Round2(r.MonthlyInstallment),
		TotalInterest:      Round2(r.TotalInterest),
		TotalAmount:        Round2(r.TotalAmount),
	}
}
