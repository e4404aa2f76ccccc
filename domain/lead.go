package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a loan enquiry captured from the hero or contact form.
type Lead struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	LoanType    string    `json:"loan_type"`
	Amount      string    `json:"amount"`
	Employment  string    `json:"employment"`
	Income      string    `json:"income"`
	City        string    `json:"city"`
	Message     string    `json:"message"`
	Source      string    `json:"source"`
	SubmittedAt time.Time `json:"submitted_at"`
}
