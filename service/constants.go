package service

const (
	MaxLoanAmount   = 1_000_000_000.0
	MaxInterestRate = 1000.0 // percent per year
	MaxTermMonths   = 600    // 50 years
	MinTermMonths   = 1

	// Widest tenure span evaluated by a single tenure options request.
	MaxTermRangeMonths = 120
)
