package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"getloanoffer/domain"
	"getloanoffer/logger"
	"getloanoffer/repository"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// LeadService validates, stores and forwards loan enquiries.
type LeadService struct {
	repo  repository.LeadRepository
	sink  repository.LeadSink
	now   func() time.Time
	newID func() uuid.UUID
}

// NewLeadService creates a LeadService. sink may be nil when no webhook is configured.
func NewLeadService(repo repository.LeadRepository, sink repository.LeadSink) *LeadService {
	return &LeadService{
		repo:  repo,
		sink:  sink,
		now:   time.Now,
		newID: uuid.New,
	}
}

// Submit stores a validated lead and forwards it to the sink. Forwarding is
// best effort: a failure is logged and the stored lead is still returned.
func (s *LeadService) Submit(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	lead = normalizeLead(lead)
	if err := ValidateLead(lead); err != nil {
		return domain.Lead{}, err
	}

	lead.ID = s.newID()
	lead.SubmittedAt = s.now().UTC()

	if err := s.repo.Save(ctx, lead); err != nil {
		return domain.Lead{}, fmt.Errorf("save lead: %w", err)
	}
	logger.Info("lead captured", "lead_id", lead.ID.String(), "loan_type", lead.LoanType, "source", lead.Source)

	if s.sink != nil {
		if err := s.sink.Forward(ctx, lead); err != nil {
			logger.Warn("failed to forward lead", "lead_id", lead.ID.String(), "error", err)
		}
	}
	return lead, nil
}

func (s *LeadService) List(ctx context.Context) ([]domain.Lead, error) {
	return s.repo.List(ctx)
}

// ValidateLead checks required fields in form order, then the email and phone formats.
func ValidateLead(lead domain.Lead) error {
	required := []struct {
		field string
		value string
	}{
		{"name", lead.Name},
		{"email", lead.Email},
		{"phone", lead.Phone},
		{"loan_type", lead.LoanType},
		{"amount", lead.Amount},
	}
	for _, r := range required {
		if r.value == "" {
			return invalid(r.field, "is required")
		}
	}

	if !emailPattern.MatchString(lead.Email) {
		return invalid("email", "is not a valid address")
	}
	if !phonePattern.MatchString(lead.Phone) {
		return invalid("phone", "must be a 10 digit mobile number")
	}
	return nil
}

func normalizeLead(lead domain.Lead) domain.Lead {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.TrimSpace(lead.Email)
	lead.Phone = normalizePhone(lead.Phone)
	lead.LoanType = strings.TrimSpace(lead.LoanType)
	lead.Amount = strings.TrimSpace(lead.Amount)
	lead.Employment = strings.TrimSpace(lead.Employment)
	lead.Income = strings.TrimSpace(lead.Income)
	lead.City = strings.TrimSpace(lead.City)
	lead.Message = strings.TrimSpace(lead.Message)
	return lead
}

// normalizePhone drops separators and a +91 country prefix.
func normalizePhone(phone string) string {
	phone = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
	if strings.HasPrefix(phone, "+91") && len(phone) == 13 {
		phone = phone[3:]
	}
	return phone
}
