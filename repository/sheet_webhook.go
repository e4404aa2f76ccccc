package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"getloanoffer/domain"
	"getloanoffer/logger"
)

// sheetRow is the payload the spreadsheet script expects.
type sheetRow struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	LoanType   string `json:"loan_type"`
	Amount     string `json:"amount"`
	Employment string `json:"employment"`
	Income     string `json:"income"`
	City       string `json:"city"`
	Message    string `json:"message"`
}

// SheetWebhook posts leads to a spreadsheet web app endpoint.
// Server errors and transport failures are retried with exponential backoff;
// 4xx responses are not.
type SheetWebhook struct {
	url        string
	httpClient *http.Client
	maxRetries uint64
	backoff    func() backoff.BackOff
}

func NewSheetWebhook(url string, timeout time.Duration) *SheetWebhook {
	return &SheetWebhook{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: 3,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxElapsedTime = 15 * time.Second
			return b
		},
	}
}

func (s *SheetWebhook) Forward(ctx context.Context, lead domain.Lead) error {
	body, err := json.Marshal(sheetRow{
		Name:       lead.Name,
		Email:      lead.Email,
		Phone:      lead.Phone,
		LoanType:   lead.LoanType,
		Amount:     lead.Amount,
		Employment: lead.Employment,
		Income:     lead.Income,
		City:       lead.City,
		Message:    lead.Message,
	})
	if err != nil {
		return fmt.Errorf("encode sheet row: %w", err)
	}

	attempt := 0
	op := func() error {
		attempt++
		err := s.post(ctx, body)
		if err != nil {
			logger.Debug("sheet webhook attempt failed", "attempt", attempt, "error", err)
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(s.backoff(), s.maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return fmt.Errorf("forward lead %s: %w", lead.ID, err)
	}
	return nil
}

func (s *SheetWebhook) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		// Apps Script answers a successful POST with a redirect to the result page.
		return nil
	}
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("webhook error (status %d): %s", resp.StatusCode, bytes.TrimSpace(msg))
		if resp.StatusCode < 500 {
			return backoff.Permanent(err)
		}
		return err
	}
	return nil
}
