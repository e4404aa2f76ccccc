package http

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"getloanoffer/chart"
	"getloanoffer/domain"
	"getloanoffer/service"
)

// flexNumber accepts a JSON number or a numeric string, as form-driven
// clients send either.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
		if s == "" {
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", string(data))
	}
	*n = flexNumber(v)
	return nil
}

type calculateRequest struct {
	Principal flexNumber `json:"principal"`
	Rate      flexNumber `json:"rate"`
	Tenure    flexNumber `json:"tenure"`
}

type calculateResponse struct {
	EMI           float64            `json:"emi"`
	TotalAmount   float64            `json:"total_amount"`
	TotalInterest float64            `json:"total_interest"`
	Principal     float64            `json:"principal"`
	Display       domain.LoanDisplay `json:"display"`
	Chart         domain.ChartData   `json:"chart"`
}

type viewResponse struct {
	Inputs  domain.LoanInputs  `json:"inputs"`
	Result  domain.LoanResult  `json:"result"`
	Display domain.LoanDisplay `json:"display"`
	Chart   domain.ChartData   `json:"chart"`
}

// textSlot collects what the calculator writes to one display target.
type textSlot struct {
	text string
}

func (s *textSlot) SetText(text string) {
	s.text = text
}

type EMIHandler struct {
	loans     *service.LoanService
	tenures   *service.TenureService
	formatter service.Formatter
	renderer  chart.SVGRenderer
}

func NewEMIHandler(
	loans *service.LoanService,
	tenures *service.TenureService,
	formatter service.Formatter,
	renderer chart.SVGRenderer,
) *EMIHandler {
	return &EMIHandler{loans: loans, tenures: tenures, formatter: formatter, renderer: renderer}
}

// Calculate is the strict JSON calculation endpoint.
func (h *EMIHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	tenure := float64(req.Tenure)
	if tenure != math.Trunc(tenure) || math.Abs(tenure) > math.MaxInt32 {
		respondError(w, http.StatusBadRequest, "tenure must be a whole number of months", nil)
		return
	}

	input := domain.LoanInputs{
		Principal:         float64(req.Principal),
		AnnualRatePercent: float64(req.Rate),
		TenureMonths:      int(tenure),
	}

	result, err := h.loans.CalculateLoan(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, err, "An error occurred calculating EMI")
		return
	}

	respondJSON(w, http.StatusOK, calculateResponse{
		EMI:           result.MonthlyInstallment,
		TotalAmount:   result.TotalAmount,
		TotalInterest: result.TotalInterest,
		Principal:     input.Principal,
		Display:       h.formatter.Display(result),
		Chart:         domain.NewChartData(input.Principal, result.TotalInterest),
	})
}

// View runs a calculator session driven by the query string. Missing or
// malformed values fall back to the calculator defaults.
func (h *EMIHandler) View(w http.ResponseWriter, r *http.Request) {
	var emi, interest, total textSlot
	calc := h.session(r, service.Display{Installment: &emi, TotalInterest: &interest, TotalAmount: &total}, nil)
	defer calc.Close()

	in, result := calc.Inputs(), calc.Result()
	respondJSON(w, http.StatusOK, viewResponse{
		Inputs:  in,
		Result:  service.RoundResult(result),
		Display: domain.LoanDisplay{MonthlyInstallment: emi.text, TotalInterest: interest.text, TotalAmount: total.text},
		Chart:   domain.NewChartData(in.Principal, service.Round2(result.TotalInterest)),
	})
}

// ChartSVG renders the principal vs. interest doughnut for the query inputs.
func (h *EMIHandler) ChartSVG(w http.ResponseWriter, r *http.Request) {
	calc := h.session(r, service.Display{}, h.renderer)
	defer calc.Close()

	svg, ok := calc.Chart().(*chart.SVGChart)
	if !ok || svg == nil {
		respondError(w, http.StatusInternalServerError, "chart could not be rendered", nil)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg.Bytes())
}

func (h *EMIHandler) session(r *http.Request, display service.Display, renderer service.ChartRenderer) *service.Calculator {
	controls := service.NewLoanControls(domain.DefaultLoanInputs())
	query := r.URL.Query()
	for _, ctrl := range service.Controls() {
		// The first alias present wins, so ?principal=1&amount=2 always reads 1.
		for _, name := range ctrl.Names() {
			if values := query[name]; len(values) > 0 {
				controls.Set(ctrl, service.SourceField, values[0])
				break
			}
		}
	}
	return service.NewCalculator(controls, h.formatter, display, renderer)
}

// Tenures lists affordable tenures for a loan, best first.
func (h *EMIHandler) Tenures(w http.ResponseWriter, r *http.Request) {
	var input domain.TenureOptionsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := h.tenures.Options(input)
	if err != nil {
		respondServiceError(w, r, err, "An error occurred evaluating tenures")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// History lists recent strict calculations.
func (h *EMIHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		limit = n
	}

	records, err := h.loans.History(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, err, "failed to list calculations")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"calculations": records,
		"count":        len(records),
	})
}
