package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"getloanoffer/domain"
	"getloanoffer/logger"
	"getloanoffer/repository"
)

type LoanService struct {
	repo     repository.LoanRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
	now      func() time.Time
}

// NewLoanService creates a LoanService backed by the given history and cache.
func NewLoanService(repo repository.LoanRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
) *LoanService {
	return &LoanService{repo: repo, cache: cache, cacheTTL: cacheTTL, now: time.Now}
}

// ValidateLoanInputs applies the limits of the strict calculation API.
func ValidateLoanInputs(in domain.LoanInputs) error {
	if !(in.Principal > 0) {
		return invalid("principal", "must be greater than zero")
	}
	if in.Principal > MaxLoanAmount {
		return invalid("principal", "exceeds the maximum of %.2f", MaxLoanAmount)
	}
	if !(in.AnnualRatePercent >= 0) {
		return invalid("rate", "must not be negative")
	}
	if in.AnnualRatePercent > MaxInterestRate {
		return invalid("rate", "exceeds the maximum of %.2f%%", MaxInterestRate)
	}
	if in.TenureMonths < MinTermMonths {
		return invalid("tenure", "must be at least %d month", MinTermMonths)
	}
	if in.TenureMonths > MaxTermMonths {
		return invalid("tenure", "exceeds the maximum of %d months", MaxTermMonths)
	}
	return nil
}

// CalculateLoan validates the inputs and returns the EMI figures rounded to
// two decimals. Results are cached per input and recorded in the history.
func (s *LoanService) CalculateLoan(
	ctx context.Context,
	input domain.LoanInputs,
) (domain.LoanResult, error) {
	if err := ValidateLoanInputs(input); err != nil {
		return domain.LoanResult{}, err
	}

	key := cacheKey(input)
	result, hit := s.cached(ctx, key)
	if !hit {
		result = RoundResult(CalculateEMI(input))
		s.store(ctx, key, result)
	}

	// History is informational; a failed save does not fail the calculation.
	record := domain.CalculationRecord{Inputs: input, Result: result, CalculatedAt: s.now()}
	if err := s.repo.Save(ctx, record); err != nil {
		logger.Warn("failed to save loan calculation", "error", err)
	}

	return result, nil
}

// History returns the most recent calculations, newest first.
func (s *LoanService) History(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	return s.repo.Recent(ctx, limit)
}

func cacheKey(in domain.LoanInputs) string {
	return fmt.Sprintf("emi:%g:%g:%d", in.Principal, in.AnnualRatePercent, in.TenureMonths)
}

func (s *LoanService) cached(ctx context.Context, key string) (domain.LoanResult, bool) {
	if s.cache == nil {
		return domain.LoanResult{}, false
	}
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.LoanResult{}, false
	}
	var result domain.LoanResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		logger.Warn("discarding unreadable cached result", "key", key, "error", err)
		return domain.LoanResult{}, false
	}
	return result, true
}

func (s *LoanService) store(ctx context.Context, key string, result domain.LoanResult) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
		logger.Warn("failed to cache loan calculation", "key", key, "error", err)
	}
}
