package employees

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/apiempleados/api-empleados/internal/auth"
	"github.com/apiempleados/api-empleados/internal/platform/httpx"
	"github.com/apiempleados/api-empleados/internal/shared"
)

// Handler exposes the employees resource. Reads need any authenticated
// caller; writes need ROLE_ADMIN.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	responder httpx.Responder
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service, responder httpx.Responder) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, responder: responder}
}

// MountRoutes registers employee routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(h.responder, auth.RoleAdmin))
		r.Post("/", h.create)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context(), ListFilter{Department: r.URL.Query().Get("department")})
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		h.responder.Error(w, r, shared.ErrNotFound)
		return
	}
	emp, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, emp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}
	emp, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.logger.Info("employee created",
		slog.Int64("employee_id", emp.ID),
		slog.String("by", principalSubject(r)),
	)
	w.Header().Set("Location", "/employees/"+strconv.FormatInt(emp.ID, 10))
	httpx.JSON(w, http.StatusCreated, emp)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		h.responder.Error(w, r, shared.ErrNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.logger.Info("employee deleted",
		slog.Int64("employee_id", id),
		slog.String("by", principalSubject(r)),
	)
	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func principalSubject(r *http.Request) string {
	if p := auth.PrincipalFromContext(r.Context()); p != nil {
		return p.Subject
	}
	return ""
}
