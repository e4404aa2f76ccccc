package repository

import (
	"context"
	"database/sql"
	"fmt"

	"getloanoffer/domain"
)

// LeadRepositorySQL stores leads in the "leads" table. Statements use $n
// placeholders, which both lib/pq and go-sqlite3 accept.
type LeadRepositorySQL struct {
	db *sql.DB
}

func NewLeadRepositorySQL(db *sql.DB) *LeadRepositorySQL {
	return &LeadRepositorySQL{db: db}
}

func (r *LeadRepositorySQL) Save(ctx context.Context, lead domain.Lead) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO leads (id, name, email, phone, loan_type, amount, employment, income, city, message, source, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, lead.ID, lead.Name, lead.Email, lead.Phone, lead.LoanType, lead.Amount,
		lead.Employment, lead.Income, lead.City, lead.Message, lead.Source, lead.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

func (r *LeadRepositorySQL) List(ctx context.Context) ([]domain.Lead, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, phone, loan_type, amount, employment, income, city, message, source, submitted_at
		FROM leads
		ORDER BY submitted_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	leads := []domain.Lead{}
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.LoanType, &lead.Amount,
			&lead.Employment, &lead.Income, &lead.City, &lead.Message, &lead.Source, &lead.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}
	return leads, nil
}
