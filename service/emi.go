package service

import (
	"math"
	"strconv"
	"strings"

	"getloanoffer/domain"
)

// CalculateEMI amortizes the principal over the tenure at the monthly rate
// annualRatePercent/100/12. A zero rate divides the principal evenly, and so
// does a rate too small to move the result in float64.
// Callers must pass principal > 0 and tenure >= 1.
func CalculateEMI(in domain.LoanInputs) domain.LoanResult {
	n := float64(in.TenureMonths)
	even := domain.LoanResult{MonthlyInstallment: in.Principal / n, TotalAmount: in.Principal}

	if in.AnnualRatePercent == 0 {
		return even
	}

	// P*r / (1 - (1+r)^-n), written with Log1p/Expm1 so neither a tiny rate
	// nor a long tenure loses the denominator.
	r := in.AnnualRatePercent / 100 / 12
	discount := -math.Expm1(-n * math.Log1p(r))
	if !(discount > 0) {
		return even
	}
	installment := in.Principal * r / discount
	total := installment * n
	// Rounding can leave a negligible rate just below the even split.
	if !finite(installment) || !finite(total) || total < in.Principal {
		return even
	}

	return domain.LoanResult{
		MonthlyInstallment: installment,
		TotalInterest:      total - in.Principal,
		TotalAmount:        total,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ParseLoanInputs reads raw control values. Each field that is empty,
// malformed or outside its domain takes its default instead; values above the
// service maximums are capped.
func ParseLoanInputs(principal, rate, tenure string) domain.LoanInputs {
	return domain.LoanInputs{
		Principal:         ParsePrincipal(principal),
		AnnualRatePercent: ParseRate(rate),
		TenureMonths:      ParseTenure(tenure),
	}
}

func ParsePrincipal(raw string) float64 {
	v, ok := parseNumber(raw)
	if !ok || v <= 0 {
		return domain.DefaultPrincipal
	}
	return math.Min(v, MaxLoanAmount)
}

func ParseRate(raw string) float64 {
	v, ok := parseNumber(raw)
	if !ok || v < 0 {
		return domain.DefaultAnnualRate
	}
	return math.Min(v, MaxInterestRate)
}

// ParseTenure truncates fractional months.
func ParseTenure(raw string) int {
	v, ok := parseNumber(raw)
	if !ok || v < 1 {
		return domain.DefaultTenureMonths
	}
	return int(math.Min(v, MaxTermMonths))
}

func parseNumber(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
