package employeehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffpay/internal/domain/audit"
	"staffpay/internal/domain/employee"
	"staffpay/internal/requestctx"
	"staffpay/internal/transport/http/api"
	"staffpay/internal/transport/http/middleware"
	"staffpay/internal/transport/http/shared"
)

const (
	defaultPageSize = 100
	maxPageSize     = 500
)

type Handler struct {
	Employees *employee.Service
	Audit     *audit.Service
}

func NewHandler(employees *employee.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Employees: employees, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAuth).Get("/employees", h.handleList)
	r.With(middleware.RequireWriter).Post("/employees", h.handleCreate)
	r.With(middleware.RequireAuth).Get("/employees/{employeeID}", h.handleGet)
	r.With(middleware.RequireWriter).Put("/employees/{employeeID}", h.handleUpdate)
	r.With(middleware.RequireWriter).Delete("/employees/{employeeID}", h.handleDelete)
	r.With(middleware.RequireAuth).Get("/departments/{department}/employees", h.handleByDepartment)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.Employees.ViewAllEmployees(r.Context())
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	page := shared.ParsePagination(r, defaultPageSize, maxPageSize)
	api.Success(w, shared.Page(all, page), requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	e, ok := decodeEmployee(w, r)
	if !ok {
		return
	}
	created, err := h.Employees.AddEmployee(r.Context(), e)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Audit.Record(r.Context(), "employee.create", "employee", created.ID, created)
	api.Created(w, created, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	e, err := h.Employees.ViewEmployeeDetails(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, e, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	e, ok := decodeEmployee(w, r)
	if !ok {
		return
	}
	updated, err := h.Employees.UpdateEmployee(r.Context(), chi.URLParam(r, "employeeID"), e)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Audit.Record(r.Context(), "employee.update", "employee", updated.ID, updated)
	api.Success(w, updated, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Employees.DeleteEmployee(r.Context(), employeeID); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Audit.Record(r.Context(), "employee.delete", "employee", employeeID, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleByDepartment(w http.ResponseWriter, r *http.Request) {
	members, err := h.Employees.FindByDepartment(r.Context(), chi.URLParam(r, "department"))
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, members, requestctx.GetRequestID(r.Context()))
}

// decodeEmployee reads the flat record form and rebuilds the tagged employee.
// It writes the failure response itself.
func decodeEmployee(w http.ResponseWriter, r *http.Request) (employee.Employee, bool) {
	var rec employee.Record
	if err := shared.DecodeJSON(r, &rec); err != nil {
		shared.FailBadBody(w, r, err)
		return employee.Employee{}, false
	}

	v := shared.NewValidator()
	v.Required("name", rec.Name, "is required")
	if _, ok := employee.ParseKind(rec.EmployeeType); !ok {
		v.Add("employeeType", "must be one of EMPLOYEE, FULL_TIME, PART_TIME, CONTRACT, DEVELOPER, TESTER, HR")
	}
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return employee.Employee{}, false
	}

	e, err := rec.Employee()
	if err != nil {
		shared.WriteError(w, r, err)
		return employee.Employee{}, false
	}
	return e, true
}
