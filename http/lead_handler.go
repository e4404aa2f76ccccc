package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"getloanoffer/domain"
	"getloanoffer/service"
)

const (
	thankYouPage        = "/thankyou.html"
	submitFailedMessage = "An error occurred processing your request"
	maxFormBytes        = 64 << 10
)

type leadRequest struct {
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

func (l leadRequest) lead(source string) domain.Lead {
	return domain.Lead{
		Name:       l.Name,
		Email:      l.Email,
		Phone:      l.Phone,
		LoanType:   l.LoanType,
		Amount:     l.Amount,
		Employment: l.Employment,
		Income:     l.Income,
		City:       l.City,
		Message:    l.Message,
		Source:     source,
	}
}

type LeadHandler struct {
	service *service.LeadService
}

func NewLeadHandler(svc *service.LeadService) *LeadHandler {
	return &LeadHandler{service: svc}
}

// SubmitForm accepts the hero and contact forms and redirects to the thank-you page.
func (h *LeadHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data", err)
		return
	}

	source := r.Referer()
	if source == "" {
		source = "direct"
	}
	req := leadRequest{
		Name:       r.PostForm.Get("name"),
		Email:      r.PostForm.Get("email"),
		Phone:      r.PostForm.Get("phone"),
		LoanType:   r.PostForm.Get("loan_type"),
		Amount:     r.PostForm.Get("amount"),
		Employment: r.PostForm.Get("employment"),
		Income:     r.PostForm.Get("income"),
		City:       r.PostForm.Get("city"),
		Message:    r.PostForm.Get("message"),
	}

	if _, err := h.service.Submit(r.Context(), req.lead(source)); err != nil {
		respondServiceError(w, r, err, submitFailedMessage)
		return
	}
	http.Redirect(w, r, thankYouPage, http.StatusSeeOther)
}

// SubmitJSON is the AJAX variant of SubmitForm.
func (h *LeadHandler) SubmitJSON(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&req)
	if errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "No data provided", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if _, err := h.service.Submit(r.Context(), req.lead("api")); err != nil {
		respondServiceError(w, r, err, submitFailedMessage)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Application submitted successfully!",
	})
}

// List returns every stored lead.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, r, err, "failed to list leads")
		return
	}
	respondJSON(w, http.StatusOK, leads)
}
