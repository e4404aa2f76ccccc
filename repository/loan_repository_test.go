package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"getloanoffer/domain"
)

func record(principal float64) domain.CalculationRecord {
	return domain.CalculationRecord{
		Inputs: domain.LoanInputs{Principal: principal, AnnualRatePercent: 10, TenureMonths: 12},
	}
}

func TestLoanRepositoryMemory_RecentNewestFirst(t *testing.T) {
	repo := NewLoanRepositoryMemory(10)
	ctx := context.Background()

	for _, p := range []float64{100, 200, 300} {
		require.NoError(t, repo.Save(ctx, record(p)))
	}

	got, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 300.0, got[0].Inputs.Principal)
	assert.Equal(t, 200.0, got[1].Inputs.Principal)

	all, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLoanRepositoryMemory_DropsOldest(t *testing.T) {
	repo := NewLoanRepositoryMemory(2)
	ctx := context.Background()

	for _, p := range []float64{1, 2, 3} {
		require.NoError(t, repo.Save(ctx, record(p)))
	}

	got, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3.0, got[0].Inputs.Principal)
	assert.Equal(t, 2.0, got[1].Inputs.Principal)
}
