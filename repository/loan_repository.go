package repository

import (
	"context"
	"sync"

	"getloanoffer/domain"
)

type LoanRepository interface {
	Save(ctx context.Context, record domain.CalculationRecord) error
	Recent(ctx context.Context, limit int) ([]domain.CalculationRecord, error)
}

// DefaultHistorySize bounds the in-memory calculation history.
const DefaultHistorySize = 1000

// LoanRepositoryMemory keeps the most recent calculations in memory.
type LoanRepositoryMemory struct {
	mu       sync.Mutex
	capacity int
	data     []domain.CalculationRecord
}

// NewLoanRepositoryMemory creates a history that keeps at most capacity records.
func NewLoanRepositoryMemory(capacity int) *LoanRepositoryMemory {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &LoanRepositoryMemory{capacity: capacity}
}

// Save appends the record, dropping the oldest one once full.
func (r *LoanRepositoryMemory) Save(_ context.Context, record domain.CalculationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.data) == r.capacity {
		copy(r.data, r.data[1:])
		r.data = r.data[:len(r.data)-1]
	}
	r.data = append(r.data, record)
	return nil
}

// Recent returns up to limit records, newest first.
func (r *LoanRepositoryMemory) Recent(_ context.Context, limit int) ([]domain.CalculationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.data) {
		limit = len(r.data)
	}
	out := make([]domain.CalculationRecord, 0, limit)
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}
