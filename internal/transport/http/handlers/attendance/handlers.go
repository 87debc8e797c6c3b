package attendancehandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"staffpay/internal/domain/attendance"
	"staffpay/internal/domain/audit"
	"staffpay/internal/platform/metrics"
	"staffpay/internal/requestctx"
	"staffpay/internal/transport/http/api"
	"staffpay/internal/transport/http/middleware"
	"staffpay/internal/transport/http/shared"
)

type Handler struct {
	Attendance *attendance.Service
	Metrics    *metrics.Collector
	Audit      *audit.Service
}

func NewHandler(svc *attendance.Service, collector *metrics.Collector, auditSvc *audit.Service) *Handler {
	return &Handler{Attendance: svc, Metrics: collector, Audit: auditSvc}
}

type checkInRequest struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireWriter).Post("/attendance", h.handleCheckIn)
	r.With(middleware.RequireWriter).Post("/attendance/{attendanceID}/checkout", h.handleCheckOut)
	r.With(middleware.RequireAuth).Get("/attendance", h.handleByDate)
	r.With(middleware.RequireAuth).Get("/employees/{employeeID}/attendance", h.handleEmployeeLogs)
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	var payload checkInRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.FailBadBody(w, r, err)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "is required")
	date := v.Date("date", payload.Date)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = attendance.StatusPresent
	}
	record, err := h.Attendance.TrackAttendance(r.Context(), payload.EmployeeID, date, status)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Metrics.CheckIn()
	h.Audit.Record(r.Context(), "attendance.check_in", "attendance", record.ID, record)
	api.Created(w, record, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	record, err := h.Attendance.MarkCheckOut(r.Context(), chi.URLParam(r, "attendanceID"))
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Metrics.CheckOut()
	h.Audit.Record(r.Context(), "attendance.check_out", "attendance", record.ID, record)
	api.Success(w, record, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleByDate(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	raw := r.URL.Query().Get("date")
	v.Required("date", raw, "is required")
	date := v.Date("date", raw)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	records, err := h.Attendance.GetAttendanceByDate(r.Context(), date)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, records, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleEmployeeLogs(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	v := shared.NewValidator()
	date := v.Date("date", r.URL.Query().Get("date"))
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	var (
		records []attendance.Attendance
		err     error
	)
	if date.IsZero() {
		records, err = h.Attendance.GetEmployeeAttendanceLogs(r.Context(), employeeID)
	} else {
		records, err = h.Attendance.GetEmployeeAttendanceOnDate(r.Context(), employeeID, date)
	}
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, records, requestctx.GetRequestID(r.Context()))
}
