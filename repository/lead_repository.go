package repository

import (
	"context"
	"sync"

	"getloanoffer/domain"
)

type LeadRepository interface {
	Save(ctx context.Context, lead domain.Lead) error
	List(ctx context.Context) ([]domain.Lead, error)
}

// LeadSink receives each stored lead for delivery to an external system.
type LeadSink interface {
	Forward(ctx context.Context, lead domain.Lead) error
}

type LeadRepositoryMemory struct {
	mu    sync.RWMutex
	leads []domain.Lead
}

func NewLeadRepositoryMemory() *LeadRepositoryMemory {
	return &LeadRepositoryMemory{}
}

func (r *LeadRepositoryMemory) Save(_ context.Context, lead domain.Lead) error {
	r.mu.Lock()
	r.leads = append(r.leads, lead)
	r.mu.Unlock()
	return nil
}

func (r *LeadRepositoryMemory) List(_ context.Context) ([]domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Lead, len(r.leads))
	copy(out, r.leads)
	return out, nil
}
