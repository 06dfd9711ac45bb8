package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apiempleados/api-empleados/internal/platform/httpx"
	"github.com/apiempleados/api-empleados/internal/shared"
)

// MsgRegistered is the body message of a successful registration.
const MsgRegistered = "Usuario registrado correctamente"

// Recorder receives auth outcomes for metrics.
type Recorder interface {
	RecordAuth(event, outcome string)
}

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	responder httpx.Responder
	recorder  Recorder
	validator *shared.Validator
}

// NewHandler constructs a Handler instance. recorder may be nil.
func NewHandler(logger *slog.Logger, service *Service, responder httpx.Responder, recorder Recorder) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		service:   service,
		responder: responder,
		recorder:  recorder,
		validator: shared.NewValidator(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/register", h.handleRegister)
}

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.record("login", outcome(err))
		h.responder.Error(w, r, err)
		return
	}
	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.record("login", outcome(err))
		if errors.Is(err, shared.ErrInvalidCredentials) {
			h.logger.Info("login rejected", slog.String("path", r.URL.Path))
		}
		h.responder.Error(w, r, err)
		return
	}
	h.record("login", "success")
	httpx.JSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.responder.Error(w, r, err)
		return
	}
	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.record("register", outcome(err))
		h.responder.Error(w, r, err)
		return
	}
	h.record("register", "success")
	h.logger.Info("user registered", slog.String("user_id", user.ID.String()))
	httpx.JSON(w, http.StatusCreated, messageResponse{Message: MsgRegistered})
}

// Me returns the authenticated principal.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())
	if principal == nil {
		h.responder.Error(w, r, shared.ErrUnauthorized)
		return
	}
	httpx.JSON(w, http.StatusOK, principal)
}

func (h *Handler) record(event, result string) {
	if h.recorder != nil {
		h.recorder.RecordAuth(event, result)
	}
}

func outcome(err error) string {
	var validationErr *shared.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return "invalid"
	case errors.Is(err, shared.ErrInvalidCredentials):
		return "rejected"
	case errors.Is(err, shared.ErrDuplicateEmail), errors.Is(err, shared.ErrPasswordMismatch):
		return "rejected"
	default:
		return "error"
	}
}
