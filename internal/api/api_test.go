package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagebooks-dev/stagebooks/internal/budget"
	"github.com/stagebooks-dev/stagebooks/internal/export"
	"github.com/stagebooks-dev/stagebooks/internal/payroll"
	"github.com/stagebooks-dev/stagebooks/internal/workspace"
)

var fixed = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
		Fields  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"fields"`
	} `json:"error"`
}

type testServer struct {
	handler http.Handler
	dir     string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	clock := func() time.Time { return fixed }

	exporter := export.NewExporter(dir, export.PDFEncoder{}, logger)
	exporter.Now = clock
	h := &Handler{
		Workspace:     workspace.New(workspace.WithClock(clock), workspace.WithLogger(logger)),
		Calculator:    payroll.NewCalculator(),
		Categories:    budget.NewCategories(budget.DefaultCategories()),
		Exporter:      exporter,
		ExportedBy:    "anna@example.com",
		SmallBusiness: true,
		Now:           clock,
		Logger:        logger,
	}
	return &testServer{handler: NewRouter(h, []string{"http://localhost:3000"}, logger), dir: dir}
}

func (s *testServer) do(t *testing.T, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec.Code, env
}

func dataField(t *testing.T, env envelope) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &m))
	return m
}

func TestHeartbeat(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValuationRoutes(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/api/v1/valuations/dcf",
		`{"cashFlows":[100,100,100],"discountRate":0.10,"terminalGrowthRate":0.03,"outstandingShares":1000}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, "1.354", dataField(t, env)["sharePrice"].(string)[:5])

	code, env = s.do(t, http.MethodPost, "/api/v1/valuations/cca",
		`{"revenue":"1000000","ebitda":"200000","eps":"3.5","outstandingShares":"10000","industryPE":"10","industryEvEbitda":"4","industryEvRevenue":"0.6"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, dataField(t, env), "average")

	code, env = s.do(t, http.MethodPost, "/api/v1/valuations/asset",
		`{"totalAssets":800000,"totalLiabilities":300000,"outstandingShares":10000}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "50", dataField(t, env)["sharePrice"])

	code, env = s.do(t, http.MethodPost, "/api/v1/valuations/ddm",
		`{"currentDividend":2,"dividendGrowthRate":0.04,"requiredRate":0.09}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "41.6", dataField(t, env)["sharePrice"])

	code, env = s.do(t, http.MethodPost, "/api/v1/valuations/weighted",
		`{"items":[{"method":"dcf","value":10,"weight":1},{"method":"cca","value":20,"weight":1}]}`)
	require.Equal(t, http.StatusOK, code)
	d := dataField(t, env)
	assert.Equal(t, "15", d["weightedAverage"])
	assert.Equal(t, "2025-09-01T12:00:00Z", d["calculatedOn"])
}

func TestValuation_ValidationError(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(t, http.MethodPost, "/api/v1/valuations/dcf",
		`{"cashFlows":[],"discountRate":0.03,"terminalGrowthRate":0.03,"outstandingShares":0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "cashFlows")
	assert.Contains(t, env.Error.Details, "outstandingShares")
	assert.Contains(t, env.Error.Details, "discountRate")

	code, env = s.do(t, http.MethodPost, "/api/v1/valuations/dcf", `{not json`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestBudgetSummary(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(t, http.MethodPost, "/api/v1/budget/summary", `{
		"costs": [{"id":"c1","category":"venue","event":"gala","planned":"1000","actual":"1200"}],
		"revenues": [{"id":"r1","category":"tickets","event":"gala","planned":"0","actual":"0"}]
	}`)
	require.Equal(t, http.StatusOK, code)
	summary := dataField(t, env)["summary"].(map[string]any)
	assert.Equal(t, "0.00", summary["profitMarginActual"])
	assert.Equal(t, "200", summary["totalCostVariance"])

	code, env = s.do(t, http.MethodPost, "/api/v1/budget/summary", `{
		"costs": [{"id":"c1","category":"fireworks","planned":"1","actual":"1"}]
	}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Error.Details["c1"], "unknown category")
	require.Len(t, env.Error.Fields, 1)
	assert.Equal(t, "c1", env.Error.Fields[0].Field)
}

func TestWorkspaceBudget(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(t, http.MethodPost, "/api/v1/budget/costs",
		`{"category":"venue","event":"gala","planned":"1000","actual":"900"}`)
	require.Equal(t, http.StatusCreated, code)
	line := dataField(t, env)
	assert.NotEmpty(t, line["id"])
	assert.Equal(t, "-100", line["variance"])

	code, _ = s.do(t, http.MethodPost, "/api/v1/budget/revenues",
		`{"category":"venue","event":"gala","planned":"1","actual":"1"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code, "venue is a cost category")

	s.do(t, http.MethodPost, "/api/v1/budget/revenues",
		`{"category":"tickets","event":"gala","planned":"2000","actual":"1800"}`)

	code, env = s.do(t, http.MethodGet, "/api/v1/budget/summary?event=gala", "")
	require.Equal(t, http.StatusOK, code)
	summary := dataField(t, env)["summary"].(map[string]any)
	assert.Equal(t, "900", summary["actualProfit"])
	assert.Equal(t, "50.00", summary["profitMarginActual"])
}

func TestPayrollAndTax(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(t, http.MethodPost, "/api/v1/payroll/calculate",
		`{"staff":[{"id":"1","name":"Ola","payrollType":"UoP","rateAmount":"10000"}]}`)
	require.Equal(t, http.StatusOK, code)
	d := dataField(t, env)
	records := d["records"].([]any)
	require.Len(t, records, 1)
	assert.Equal(t, "7116.91", records[0].(map[string]any)["netSalary"])
	assert.Equal(t, "2048", d["totals"].(map[string]any)["totalEmployerZus"])

	code, env = s.do(t, http.MethodPost, "/api/v1/tax/summary", `{
		"invoices":[{"direction":"receivable","net":"1000","vatPercent":"23"},{"direction":"payable","net":"500","vatPercent":"23"}],
		"totalProfit":"10000"
	}`)
	require.Equal(t, http.StatusOK, code)
	d = dataField(t, env)
	assert.Equal(t, "115", d["vatDue"])
	assert.Equal(t, "900", d["cit"], "configured small-business rate")

	_, env = s.do(t, http.MethodPost, "/api/v1/tax/summary", `{"totalProfit":"10000","smallBusiness":false}`)
	assert.Equal(t, "1900", dataField(t, env)["cit"])
}

func TestLoanRoutes(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(t, http.MethodPost, "/api/v1/loans", `{
		"lender":"PKO","amount":"1000","startDate":"2025-01-01T00:00:00Z","repaymentSchedule":"monthly"
	}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "1", dataField(t, env)["id"])

	code, env = s.do(t, http.MethodPost, "/api/v1/loans/1/repayments", `{"amount":"400"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "600", dataField(t, env)["outstandingAmount"])

	code, env = s.do(t, http.MethodPost, "/api/v1/loans/1/repayments", `{"amount":"700"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Error.Message, "exceeds")

	code, _ = s.do(t, http.MethodGet, "/api/v1/loans/1", "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodDelete, "/api/v1/loans/1", "")
	require.Equal(t, http.StatusOK, code)

	_, env = s.do(t, http.MethodGet, "/api/v1/loans", "")
	assert.Equal(t, "[]", string(env.Data))
	_, env = s.do(t, http.MethodGet, "/api/v1/loans?deleted=true", "")
	var deleted []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &deleted))
	assert.Len(t, deleted, 1)

	code, env = s.do(t, http.MethodPost, "/api/v1/loans/1/restore", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, dataField(t, env)["isDeleted"])

	code, env = s.do(t, http.MethodPost, "/api/v1/loans/1/default", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "defaulted", dataField(t, env)["status"])

	code, env = s.do(t, http.MethodGet, "/api/v1/loans/portfolio", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), dataField(t, env)["count"])

	code, env = s.do(t, http.MethodGet, "/api/v1/loans/99", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	code, _ = s.do(t, http.MethodPost, "/api/v1/loans", `{"lender":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestExportRoute(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(t, http.MethodPost, "/api/v1/exports?format=xlsx&event=Gala",
		`{"module":"budget","submodule":"costs","data":[{"category":"venue","actual":"10"}]}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "budget-costs-gala-2025-09-01.xlsx", dataField(t, env)["file"])

	_, err := os.Stat(filepath.Join(s.dir, "budget-costs-gala-2025-09-01.xlsx"))
	assert.NoError(t, err)
	entries, err := export.ReadManifest(s.dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "anna@example.com", entries[0].ExportedBy)

	code, _ = s.do(t, http.MethodPost, "/api/v1/exports?format=docx", `{"module":"budget"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodPost, "/api/v1/exports?format=json", `{"data":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}
