package repository

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"getloanoffer/domain"
	"getloanoffer/logger"
)

var leadCSVHeader = []string{
	"id", "name", "email", "phone", "loan_type", "amount",
	"employment", "income", "city", "message", "source", "submitted_at",
}

// LeadRepositoryFile keeps every lead in a JSON array file and appends it to a CSV export.
type LeadRepositoryFile struct {
	mu       sync.Mutex
	jsonPath string
	csvPath  string
}

func NewLeadRepositoryFile(jsonPath, csvPath string) *LeadRepositoryFile {
	return &LeadRepositoryFile{jsonPath: jsonPath, csvPath: csvPath}
}

func (r *LeadRepositoryFile) Save(_ context.Context, lead domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	leads, err := r.readJSON()
	if err != nil {
		return err
	}
	leads = append(leads, lead)

	data, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return fmt.Errorf("encode leads: %w", err)
	}
	if err := os.WriteFile(r.jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", r.jsonPath, err)
	}

	return r.appendCSV(lead)
}

func (r *LeadRepositoryFile) List(_ context.Context) ([]domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readJSON()
}

// readJSON treats a missing or unreadable array as empty.
func (r *LeadRepositoryFile) readJSON() ([]domain.Lead, error) {
	data, err := os.ReadFile(r.jsonPath)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Lead{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.jsonPath, err)
	}

	var leads []domain.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		logger.Warn("lead file is not a JSON array, starting over", "path", r.jsonPath, "error", err)
		return []domain.Lead{}, nil
	}
	return leads, nil
}

func (r *LeadRepositoryFile) appendCSV(lead domain.Lead) error {
	_, statErr := os.Stat(r.csvPath)
	writeHeader := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(r.csvPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.csvPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(leadCSVHeader); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}
	if err := w.Write(leadCSVRow(lead)); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	w.Flush()
	return w.Error()
}

func leadCSVRow(lead domain.Lead) []string {
	return []string{
		lead.ID.String(), lead.Name, lead.Email, lead.Phone, lead.LoanType, lead.Amount,
		lead.Employment, lead.Income, lead.City, lead.Message, lead.Source,
		lead.SubmittedAt.Format(time.RFC3339),
	}
}
