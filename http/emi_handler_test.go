package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"getloanoffer/domain"
)

func TestCalculateEMIHandler_OK(t *testing.T) {
	app := newTestApp(t, 5)

	w := app.do(http.MethodPost, "/api/calculate-emi", "application/json",
		`{"principal": 500000, "rate": 10.5, "tenure": 36}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp calculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 16251.22, resp.EMI)
	assert.Equal(t, 585043.98, resp.TotalAmount)
	assert.Equal(t, 85043.98, resp.TotalInterest)
	assert.Equal(t, 500000.0, resp.Principal)
	assert.Equal(t, "₹16,251", resp.Display.MonthlyInstallment)
	assert.Equal(t, "₹5,85,044", resp.Display.TotalAmount)
	assert.Equal(t, "₹85,044", resp.Display.TotalInterest)
	assert.Equal(t, [2]string{domain.ChartLabelPrincipal, domain.ChartLabelInterest}, resp.Chart.Labels)
	assert.Equal(t, [2]float64{500000, 85043.98}, resp.Chart.Values)
}

func TestCalculateEMIHandler_AcceptsNumericStrings(t *testing.T) {
	app := newTestApp(t, 5)

	w := app.do(http.MethodPost, "/api/calculate-emi", "application/json",
		`{"principal": "10000", "rate": "12", "tenure": "24"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp calculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 470.73, resp.EMI)
	assert.Equal(t, 11297.63, resp.TotalAmount)
	assert.Equal(t, 1297.63, resp.TotalInterest)
}

func TestCalculateEMIHandler_ZeroRate(t *testing.T) {
	app := newTestApp(t, 5)

	w := app.do(http.MethodPost, "/api/calculate-emi", "application/json",
		`{"principal": 120000, "rate": 0, "tenure": 12}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp calculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10000.0, resp.EMI)
	assert.Equal(t, 0.0, resp.TotalInterest)
}

func TestCalculateEMIHandler_BadRequest(t *testing.T) {
	app := newTestApp(t, 5)

	cases := map[string]string{
		"invalid json":      `{invalid-json}`,
		"zero principal":    `{"principal": 0, "rate": 10, "tenure": 12}`,
		"negative rate":     `{"principal": 1000, "rate": -1, "tenure": 12}`,
		"zero tenure":       `{"principal": 1000, "rate": 10, "tenure": 0}`,
		"fractional tenure": `{"principal": 1000, "rate": 10, "tenure": 12.5}`,
		"huge principal":    `{"principal": 1e12, "rate": 10, "tenure": 12}`,
		"text principal":    `{"principal": "lots", "rate": 10, "tenure": 12}`,
		"missing fields":    `{}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := app.do(http.MethodPost, "/api/calculate-emi", "application/json", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestCalculateEMIHandler_RecordsHistory(t *testing.T) {
	app := newTestApp(t, 5)

	for _, body := range []string{
		`{"principal": 500000, "rate": 10.5, "tenure": 36}`,
		`{"principal": 10000, "rate": 12, "tenure": 24}`,
	} {
		require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/calculate-emi", "application/json", body).Code)
	}

	w := app.do(http.MethodGet, "/admin/calculations?limit=1", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Calculations []domain.CalculationRecord `json:"calculations"`
		Count        int                        `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, 10000.0, resp.Calculations[0].Inputs.Principal)
	assert.Equal(t, 2, app.cache.Len())

	w = app.do(http.MethodGet, "/admin/calculations?limit=zero", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEMIView_FallsBackToDefaults(t *testing.T) {
	app := newTestApp(t, 5)

	w := app.do(http.MethodGet, "/api/emi?principal=abc&rate=&tenure=-3", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp viewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.DefaultLoanInputs(), resp.Inputs)
	assert.Equal(t, 16251.22, resp.Result.MonthlyInstallment)
	assert.Equal(t, "₹16,251", resp.Display.MonthlyInstallment)
	assert.Equal(t, "₹85,044", resp.Display.TotalInterest)
	assert.Equal(t, "₹5,85,044", resp.Display.TotalAmount)
}

func TestEMIView_QueryAliases(t *testing.T) {
	app := newTestApp(t, 5)

	w := app.do(http.MethodGet, "/api/emi?amount=1,000,000&interest-rate=10.5&loan-tenure=36", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp viewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1000000.0, resp.Inputs.Principal)
	assert.Equal(t, "₹11,70,088", resp.Display.TotalAmount)
	assert.Equal(t, [2]float64{1000000, resp.Result.TotalInterest}, resp.Chart.Values)
}

func TestEMIChartSVG(t *testing.T) {
	app := newTestApp(t, 5)

	w := app.do(http.MethodGet, "/api/emi/chart.svg?principal=500000&rate=10.5&tenure=36", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "<svg"))
	assert.Contains(t, body, "Principal")
	assert.Contains(t, body, "Interest")
}

func TestTenuresHandler(t *testing.T) {
	app := newTestApp(t, 5)

	w := app.do(http.MethodPost, "/api/emi/tenures", "application/json", `{
		"amount": 100000,
		"rate": 12,
		"min_tenure": 12,
		"max_tenure": 24,
		"max_emi": 7000,
		"preference": "minimize_payment"
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.TenureOptionsResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 24, resp.RecommendedTenure)
	require.Len(t, resp.Options, 9)
	assert.Equal(t, 24, resp.Options[0].TenureMonths)
}

func TestTenuresHandler_BadRequest(t *testing.T) {
	app := newTestApp(t, 5)

	w := app.do(http.MethodPost, "/api/emi/tenures", "application/json",
		`{"amount": 100000, "rate": 12, "min_tenure": 24, "max_tenure": 12, "max_emi": 7000}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodPost, "/api/emi/tenures", "application/json", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateEMIHandler_TinyRate(t *testing.T) {
	app := newTestApp(t, 5)

	w := app.do(http.MethodPost, "/api/calculate-emi", "application/json",
		`{"principal": 120000, "rate": 1e-15, "tenure": 12}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp calculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10000.0, resp.EMI)
	assert.Equal(t, 120000.0, resp.TotalAmount)
	assert.Equal(t, 0.0, resp.TotalInterest)
	assert.Equal(t, "₹10,000", resp.Display.MonthlyInstallment)
}

func TestEMIView_ExtremeQueryValues(t *testing.T) {
	app := newTestApp(t, 5)

	cases := map[string]struct {
		query string
		want  domain.LoanInputs
	}{
		"tiny rate":      {"?rate=1e-16", domain.LoanInputs{Principal: 500000, AnnualRatePercent: 1e-16, TenureMonths: 36}},
		"huge tenure":    {"?tenure=2147483647", domain.LoanInputs{Principal: 500000, AnnualRatePercent: 10.5, TenureMonths: 600}},
		"huge principal": {"?principal=1e308&tenure=600", domain.LoanInputs{Principal: 1e9, AnnualRatePercent: 10.5, TenureMonths: 600}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := app.do(http.MethodGet, "/api/emi"+tc.query, "", "")
			require.Equal(t, http.StatusOK, w.Code)

			var resp viewResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.want, resp.Inputs)
			assert.NotEmpty(t, resp.Display.MonthlyInstallment)
		})
	}

	w := app.do(http.MethodGet, "/api/emi/chart.svg?rate=1e-16&tenure=2147483647", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEMIView_CanonicalNameWinsOverAlias(t *testing.T) {
	app := newTestApp(t, 5)

	for i := 0; i < 20; i++ {
		w := app.do(http.MethodGet, "/api/emi?amount=900000&principal=100000&loan-amount=5&interest-rate=3&rate=12", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp viewResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 100000.0, resp.Inputs.Principal)
		assert.Equal(t, 12.0, resp.Inputs.AnnualRatePercent)
	}
}
