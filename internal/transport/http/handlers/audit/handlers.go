package audithandler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gocarina/gocsv"

	"staffpay/internal/domain/audit"
	"staffpay/internal/requestctx"
	"staffpay/internal/transport/http/api"
	"staffpay/internal/transport/http/middleware"
	"staffpay/internal/transport/http/shared"
)

type Handler struct {
	Service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireWriter).Get("/audit/events", h.handleListEvents)
	r.With(middleware.RequireWriter).Get("/audit/events/export", h.handleExportEvents)
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 100, 500)
	query := r.URL.Query()
	filter := audit.Filter{
		Action:     query.Get("action"),
		EntityType: query.Get("entityType"),
		ActorUser:  query.Get("actorUserId"),
	}
	includeDetails := query.Get("includeDetails") == "true"

	events := h.Service.List(filter, includeDetails, page.Limit, page.Offset)
	w.Header().Set("X-Total-Count", strconv.Itoa(h.Service.Count(filter)))
	api.Success(w, events, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleExportEvents(w http.ResponseWriter, r *http.Request) {
	events := h.Service.List(audit.Filter{}, false, 0, 0)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=audit-events.csv")
	if err := gocsv.Marshal(events, w); err != nil {
		slog.Warn("audit export failed", "err", err)
	}
}
