package payrollhandler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"staffpay/internal/domain/audit"
	"staffpay/internal/domain/payroll"
	"staffpay/internal/platform/jobs"
	"staffpay/internal/platform/metrics"
	"staffpay/internal/requestctx"
	"staffpay/internal/transport/http/api"
	"staffpay/internal/transport/http/middleware"
	"staffpay/internal/transport/http/shared"
)

type Handler struct {
	Payroll *payroll.Service
	Jobs    *jobs.Service
	Metrics *metrics.Collector
	Audit   *audit.Service
}

func NewHandler(svc *payroll.Service, jobsSvc *jobs.Service, collector *metrics.Collector, auditSvc *audit.Service) *Handler {
	return &Handler{Payroll: svc, Jobs: jobsSvc, Metrics: collector, Audit: auditSvc}
}

type reportRequest struct {
	EmployeeID string `json:"employeeId"`
	Month      string `json:"month"`
	Year       int    `json:"year"`
}

type runRequest struct {
	Department string `json:"department"`
	Month      string `json:"month"`
	Year       int    `json:"year"`
}

type allowancesRequest struct {
	Salary     *float64 `json:"salary"`
	Allowances *float64 `json:"allowances"`
}

type deductionsRequest struct {
	Salary     *float64 `json:"salary"`
	Deductions *float64 `json:"deductions"`
}

type amountResponse struct {
	Result float64 `json:"result"`
}

type salaryResponse struct {
	EmployeeID string  `json:"employeeId"`
	Salary     float64 `json:"salary"`
}

type monthResponse struct {
	Summary  payroll.PeriodSummary `json:"summary"`
	Payrolls []payroll.Payroll     `json:"payrolls"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAuth).Get("/employees/{employeeID}/salary", h.handleSalary)
	r.With(middleware.RequireAuth).Get("/employees/{employeeID}/payroll", h.handleEmployeePayroll)
	r.With(middleware.RequireAuth).Get("/payroll", h.handleMonth)
	r.With(middleware.RequireAuth).Get("/payroll/export", h.handleExport)
	r.With(middleware.RequireAuth).Get("/payroll/{payrollID}", h.handleGet)
	r.With(middleware.RequireAuth).Get("/payroll/{payrollID}/payslip", h.handlePayslip)
	r.With(middleware.RequireWriter).Post("/payroll/reports", h.handleGenerate)
	r.With(middleware.RequireWriter).Post("/payroll/allowances", h.handleAllowances)
	r.With(middleware.RequireWriter).Post("/payroll/deductions", h.handleDeductions)
	r.With(middleware.RequireWriter).Post("/payroll/runs", h.handleEnqueueRun)
	r.With(middleware.RequireAuth).Get("/payroll/runs/{runID}", h.handleGetRun)
}

func (h *Handler) handleSalary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	salary, err := h.Payroll.CalculateSalary(r.Context(), employeeID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, salaryResponse{EmployeeID: employeeID, Salary: salary}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var payload reportRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailBadBody(w, r, err)
		return
	}
	generated, err := h.Payroll.GeneratePayrollReport(r.Context(), payload.EmployeeID, payload.Month, payload.Year)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Metrics.PayrollsGenerated(1)
	h.Audit.Record(r.Context(), "payroll.generate", "payroll", generated.ID, generated)
	api.Created(w, generated, requestctx.GetRequestID(r.Context()))
}

// handleMonth lists the period's snapshots; summary=true adds the totals.
func (h *Handler) handleMonth(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parsePeriod(w, r)
	if !ok {
		return
	}
	var summary payroll.PeriodSummary
	withSummary := r.URL.Query().Get("summary") == "true"
	if withSummary {
		var err error
		if summary, err = h.Payroll.MonthSummary(r.Context(), month, year); err != nil {
			shared.WriteError(w, r, err)
			return
		}
	}
	payrolls, err := h.Payroll.GetPayrollByMonth(r.Context(), month, year)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	if !withSummary {
		api.Success(w, payrolls, requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, monthResponse{Summary: summary, Payrolls: payrolls}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parsePeriod(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.Payroll.ExportMonthCSV(r.Context(), &buf, month, year); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payroll-%s-%d.csv", strings.ToLower(strings.TrimSpace(month)), year))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.Payroll.GetPayroll(r.Context(), chi.URLParam(r, "payrollID"))
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, p, requestctx.GetRequestID(r.Context()))
}

// handleEmployeePayroll returns the full history, or the latest snapshot of a
// period when month and year are given.
func (h *Handler) handleEmployeePayroll(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	query := r.URL.Query()
	if query.Get("month") == "" && query.Get("year") == "" {
		history, err := h.Payroll.GetEmployeePayrollHistory(r.Context(), employeeID)
		if err != nil {
			shared.WriteError(w, r, err)
			return
		}
		api.Success(w, history, requestctx.GetRequestID(r.Context()))
		return
	}

	month, year, ok := parsePeriod(w, r)
	if !ok {
		return
	}
	p, err := h.Payroll.GetEmployeePayrollForMonth(r.Context(), employeeID, month, year)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, p, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollID")
	data, err := h.Payroll.GeneratePayslipPDF(r.Context(), payrollID)
	if errors.Is(err, payroll.ErrPayslipsUnavailable) {
		api.Fail(w, http.StatusServiceUnavailable, "payslips_unavailable", err.Error(), requestctx.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%s.pdf", payrollID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handleAllowances(w http.ResponseWriter, r *http.Request) {
	var payload allowancesRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailBadBody(w, r, err)
		return
	}
	result, err := h.Payroll.HandleAllowances(payload.Salary, payload.Allowances)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, amountResponse{Result: result}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleDeductions(w http.ResponseWriter, r *http.Request) {
	var payload deductionsRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailBadBody(w, r, err)
		return
	}
	result, err := h.Payroll.HandleDeductions(payload.Salary, payload.Deductions)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, amountResponse{Result: result}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleEnqueueRun(w http.ResponseWriter, r *http.Request) {
	var payload runRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailBadBody(w, r, err)
		return
	}
	run, err := h.Jobs.Enqueue(payload.Department, payload.Month, payload.Year)
	if errors.Is(err, jobs.ErrQueueFull) {
		api.Fail(w, http.StatusServiceUnavailable, "queue_full", "payroll run queue is full, retry later", requestctx.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Audit.Record(r.Context(), "payroll.run_enqueue", "payroll_run", run.ID, run)
	api.Accepted(w, run, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.Jobs.Get(chi.URLParam(r, "runID"))
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, run, requestctx.GetRequestID(r.Context()))
}

// parsePeriod reads month and year query values. The domain validates blank
// months and non-positive years; only malformed years are rejected here.
func parsePeriod(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	query := r.URL.Query()
	v := shared.NewValidator()
	year := v.Int("year", query.Get("year"))
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return "", 0, false
	}
	return query.Get("month"), year, true
}
