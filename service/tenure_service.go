package service

import (
	"sort"

	"getloanoffer/domain"
)

const (
	PreferenceMinimizeInterest = "minimize_interest"
	PreferenceMinimizePayment  = "minimize_payment"
	PreferenceBalanced         = "balanced"
)

var preferenceReasons = map[string]string{
	PreferenceMinimizeInterest: "Shortest affordable tenure, keeping total interest low",
	PreferenceMinimizePayment:  "Longest tenure in range, keeping the monthly installment low",
	PreferenceBalanced:         "Balance between monthly installment and total interest",
}

type TenureService struct{}

func NewTenureService() *TenureService {
	return &TenureService{}
}

// Options evaluates every tenure in the requested range, keeps those whose
// installment fits the cap and ranks them by the chosen preference.
func (s *TenureService) Options(
	input domain.TenureOptionsInput,
) (domain.TenureOptionsResult, error) {
	if err := validateTenureInput(input); err != nil {
		return domain.TenureOptionsResult{}, err
	}

	options := []domain.TenureOption{}
	for tenure := input.MinTenureMonths; tenure <= input.MaxTenureMonths; tenure++ {
		result := RoundResult(CalculateEMI(domain.LoanInputs{
			Principal:         input.Amount,
			AnnualRatePercent: input.InterestRate,
			TenureMonths:      tenure,
		}))
		if result.MonthlyInstallment > input.MaxInstallment {
			continue
		}

		options = append(options, domain.TenureOption{
			TenureMonths:       tenure,
			MonthlyInstallment: result.MonthlyInstallment,
			TotalInterest:      result.TotalInterest,
			Score:              score(result, input, tenure),
			Reason:             preferenceReasons[input.Preference],
		})
	}

	if len(options) == 0 {
		return domain.TenureOptionsResult{}, ErrNoAffordableTenure
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Score > options[j].Score
	})

	return domain.TenureOptionsResult{
		RecommendedTenure: options[0].TenureMonths,
		Options:           options,
	}, nil
}

func validateTenureInput(input domain.TenureOptionsInput) error {
	if err := ValidateLoanInputs(domain.LoanInputs{
		Principal:         input.Amount,
		AnnualRatePercent: input.InterestRate,
		TenureMonths:      input.MaxTenureMonths,
	}); err != nil {
		return err
	}
	if input.MinTenureMonths < MinTermMonths {
		return invalid("min_tenure", "must be at least %d month", MinTermMonths)
	}
	if input.MinTenureMonths > input.MaxTenureMonths {
		return invalid("min_tenure", "must not exceed max_tenure")
	}
	if input.MaxTenureMonths-input.MinTenureMonths > MaxTermRangeMonths {
		return invalid("max_tenure", "range exceeds %d months", MaxTermRangeMonths)
	}
	if !(input.MaxInstallment > 0) {
		return invalid("max_emi", "must be greater than zero")
	}
	if _, ok := preferenceReasons[input.Preference]; !ok {
		return invalid("preference", "must be one of minimize_interest, minimize_payment, balanced")
	}
	return nil
}

// score rates an option from 0 to 10 against the extremes of the range.
func score(result domain.LoanResult, input domain.TenureOptionsInput, tenure int) float64 {
	shortest := CalculateEMI(domain.LoanInputs{Principal: input.Amount, AnnualRatePercent: input.InterestRate, TenureMonths: input.MinTenureMonths})
	longest := CalculateEMI(domain.LoanInputs{Principal: input.Amount, AnnualRatePercent: input.InterestRate, TenureMonths: input.MaxTenureMonths})

	interestScore := normalize(result.TotalInterest, shortest.TotalInterest, longest.TotalInterest)
	paymentScore := normalize(result.MonthlyInstallment, longest.MonthlyInstallment, shortest.MonthlyInstallment)

	termScore := 10.0
	if span := input.MaxTenureMonths - input.MinTenureMonths; span > 0 {
		termScore = 10.0 * (1.0 - float64(tenure-input.MinTenureMonths)/float64(span))
	}

	var s float64
	switch input.Preference {
	case PreferenceMinimizeInterest:
		s = 0.8*interestScore + 0.1*paymentScore + 0.1*termScore
	case PreferenceMinimizePayment:
		s = 0.1*interestScore + 0.8*paymentScore + 0.1*termScore
	default:
		s = 0.4*interestScore + 0.4*paymentScore + 0.2*termScore
	}
	return Round2(s)
}

// normalize maps value to 10 at best and 0 at worst.
func normalize(value, best, worst float64) float64 {
	if worst == best {
		return 10.0
	}
	return 10.0 * (1.0 - (value-best)/(worst-best))
}
