package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"getloanoffer/domain"
	"getloanoffer/repository"
)

type MockLoanRepository struct {
	Saved      []domain.CalculationRecord
	ForceError bool
}

func (m *MockLoanRepository) Save(_ context.Context, record domain.CalculationRecord) error {
	if m.ForceError {
		return errors.New("save error")
	}
	m.Saved = append(m.Saved, record)
	return nil
}

func (m *MockLoanRepository) Recent(_ context.Context, limit int) ([]domain.CalculationRecord, error) {
	return m.Saved, nil
}

type countingCache struct {
	*repository.MemoryCache
	gets, sets int
}

func (c *countingCache) Get(ctx context.Context, key string) (string, bool) {
	c.gets++
	return c.MemoryCache.Get(ctx, key)
}

func (c *countingCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.sets++
	return c.MemoryCache.Set(ctx, key, value, ttl)
}

func TestCalculateLoan_WithInterest(t *testing.T) {
	mockRepo := &MockLoanRepository{}
	service := NewLoanService(mockRepo, repository.NewMemoryCache(), time.Minute)

	result, err := service.CalculateLoan(context.Background(), domain.LoanInputs{
		Principal:         10000,
		AnnualRatePercent: 12,
		TenureMonths:      24,
	})

	require.NoError(t, err)
	assert.Equal(t, 470.73, result.MonthlyInstallment)
	assert.Equal(t, 11297.63, result.TotalAmount)
	assert.Equal(t, 1297.63, result.TotalInterest)
	require.Len(t, mockRepo.Saved, 1)
	assert.Equal(t, 24, mockRepo.Saved[0].Inputs.TenureMonths)
}

func TestCalculateLoan_ZeroInterest(t *testing.T) {
	service := NewLoanService(&MockLoanRepository{}, nil, 0)

	result, err := service.CalculateLoan(context.Background(), domain.LoanInputs{
		Principal:         120000,
		AnnualRatePercent: 0,
		TenureMonths:      12,
	})

	require.NoError(t, err)
	assert.Equal(t, 10000.0, result.MonthlyInstallment)
	assert.Equal(t, 0.0, result.TotalInterest)
}

func TestCalculateLoan_InvalidInputs(t *testing.T) {
	tests := []struct {
		name  string
		input domain.LoanInputs
		field string
	}{
		{"zero amount", domain.LoanInputs{Principal: 0, AnnualRatePercent: 10, TenureMonths: 12}, "principal"},
		{"amount too large", domain.LoanInputs{Principal: MaxLoanAmount + 1, AnnualRatePercent: 10, TenureMonths: 12}, "principal"},
		{"negative rate", domain.LoanInputs{Principal: 1000, AnnualRatePercent: -1, TenureMonths: 12}, "rate"},
		{"rate too large", domain.LoanInputs{Principal: 1000, AnnualRatePercent: MaxInterestRate + 1, TenureMonths: 12}, "rate"},
		{"zero term", domain.LoanInputs{Principal: 1000, AnnualRatePercent: 10, TenureMonths: 0}, "tenure"},
		{"term too long", domain.LoanInputs{Principal: 1000, AnnualRatePercent: 10, TenureMonths: MaxTermMonths + 1}, "tenure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockLoanRepository{}
			service := NewLoanService(mockRepo, nil, 0)

			_, err := service.CalculateLoan(context.Background(), tt.input)

			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Empty(t, mockRepo.Saved, "repository Save should NOT be called")
		})
	}
}

func TestCalculateLoan_UsesCache(t *testing.T) {
	cache := &countingCache{MemoryCache: repository.NewMemoryCache()}
	service := NewLoanService(&MockLoanRepository{}, cache, time.Minute)
	input := domain.LoanInputs{Principal: 500000, AnnualRatePercent: 10.5, TenureMonths: 36}

	first, err := service.CalculateLoan(context.Background(), input)
	require.NoError(t, err)
	second, err := service.CalculateLoan(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 16251.22, second.MonthlyInstallment)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1, cache.sets)
}

func TestCalculateLoan_IgnoresCorruptCacheEntry(t *testing.T) {
	cache := repository.NewMemoryCache()
	input := domain.LoanInputs{Principal: 10000, AnnualRatePercent: 12, TenureMonths: 24}
	require.NoError(t, cache.Set(context.Background(), cacheKey(input), "{broken", 0))
	service := NewLoanService(&MockLoanRepository{}, cache, 0)

	result, err := service.CalculateLoan(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, 470.73, result.MonthlyInstallment)
}

func TestCalculateLoan_SaveFailureIsNotFatal(t *testing.T) {
	service := NewLoanService(&MockLoanRepository{ForceError: true}, nil, 0)

	result, err := service.CalculateLoan(context.Background(), domain.LoanInputs{
		Principal:         1000,
		AnnualRatePercent: 10,
		TenureMonths:      12,
	})

	require.NoError(t, err)
	assert.Greater(t, result.MonthlyInstallment, 0.0)
}

func TestHistory(t *testing.T) {
	service := NewLoanService(repository.NewLoanRepositoryMemory(10), nil, 0)
	ctx := context.Background()

	for _, tenure := range []int{12, 24} {
		_, err := service.CalculateLoan(ctx, domain.LoanInputs{Principal: 1000, AnnualRatePercent: 10, TenureMonths: tenure})
		require.NoError(t, err)
	}

	history, err := service.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 24, history[0].Inputs.TenureMonths)
}
