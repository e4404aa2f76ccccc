package domain

type TenureOptionsInput struct {
	Amount          float64 `json:"amount"`
	InterestRate    float64 `json:"rate"`
	MinTenureMonths int     `json:"min_tenure"`
	MaxTenureMonths int     `json:"max_tenure"`
	MaxInstallment  float64 `json:"max_emi"`
	Preference      string  `json:"preference"` // "minimize_interest", "minimize_payment", "balanced"
}

type TenureOption struct {
	TenureMonths       int     `json:"tenure"`
	MonthlyInstallment float64 `json:"emi"`
	TotalInterest      float64 `json:"total_interest"`
	Score              float64 `json:"score"`
	Reason             string  `json:"reason"`
}

type TenureOptionsResult struct {
	RecommendedTenure int            `json:"recommended_tenure"`
	Options           []TenureOption `json:"options"`
}
