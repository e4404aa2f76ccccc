package domain

import "time"

// Values used when a control holds nothing usable.
const (
	DefaultPrincipal    = 500000.0
	DefaultAnnualRate   = 10.5
	DefaultTenureMonths = 36
)

// LoanInputs is the state of the three calculator controls at one instant.
type LoanInputs struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"rate"`
	TenureMonths      int     `json:"tenure"`
}

// DefaultLoanInputs returns the inputs the calculator starts from.
func DefaultLoanInputs() LoanInputs {
	return LoanInputs{
		Principal:         DefaultPrincipal,
		AnnualRatePercent: DefaultAnnualRate,
		TenureMonths:      DefaultTenureMonths,
	}
}

type LoanResult struct {
	MonthlyInstallment float64 `json:"emi"`
	TotalInterest      float64 `json:"total_interest"`
	TotalAmount        float64 `json:"total_amount"`
}

// LoanDisplay holds the currency strings shown next to the calculator.
type LoanDisplay struct {
	MonthlyInstallment string `json:"emi"`
	TotalInterest      string `json:"total_interest"`
	TotalAmount        string `json:"total_amount"`
}

type CalculationRecord struct {
	Inputs       LoanInputs `json:"inputs"`
	Result       LoanResult `json:"result"`
	CalculatedAt time.Time  `json:"calculated_at"`
}
