package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/apiempleados/api-empleados/internal/shared"
)

// Client-facing messages.
const (
	MsgInvalidCredentials = "Credenciales incorrectas"
	MsgUnauthorized       = "No autorizado"
	MsgForbidden          = "Acceso denegado"
	MsgDuplicateEmail     = "El email ya está registrado"
	MsgPasswordMismatch   = "Las dos contraseñas no coinciden"
	MsgMalformedBody      = "Cuerpo de la petición inválido"
	MsgNotFound           = "Recurso no encontrado"
	MsgInternal           = "Error en el servidor"
)

// ErrorBody is the JSON shape of every non-validation error response.
type ErrorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Responder maps domain errors to HTTP responses. Unexpected errors are
// logged; their text reaches the client only when ExposeDetail is set.
type Responder struct {
	Logger       *slog.Logger
	ExposeDetail bool
}

// NewResponder constructs a Responder.
func NewResponder(logger *slog.Logger, exposeDetail bool) Responder {
	return Responder{Logger: logger, ExposeDetail: exposeDetail}
}

// Error writes the response for err.
func (rs Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *shared.ValidationError
	switch {
	case errors.As(err, &validationErr):
		JSON(w, http.StatusBadRequest, validationErr.Fields)
	case errors.Is(err, shared.ErrInvalidCredentials):
		JSON(w, http.StatusUnauthorized, ErrorBody{Error: MsgInvalidCredentials})
	case errors.Is(err, shared.ErrInvalidToken):
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
		JSON(w, http.StatusUnauthorized, ErrorBody{Error: MsgUnauthorized})
	case errors.Is(err, shared.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		JSON(w, http.StatusUnauthorized, ErrorBody{Error: MsgUnauthorized})
	case errors.Is(err, shared.ErrForbidden):
		JSON(w, http.StatusForbidden, ErrorBody{Error: MsgForbidden})
	case errors.Is(err, shared.ErrDuplicateEmail):
		JSON(w, http.StatusBadRequest, ErrorBody{Error: MsgDuplicateEmail})
	case errors.Is(err, shared.ErrPasswordMismatch):
		JSON(w, http.StatusBadRequest, ErrorBody{Error: MsgPasswordMismatch})
	case errors.Is(err, shared.ErrMalformedBody):
		JSON(w, http.StatusBadRequest, ErrorBody{Error: MsgMalformedBody})
	case errors.Is(err, shared.ErrNotFound):
		JSON(w, http.StatusNotFound, ErrorBody{Error: MsgNotFound})
	default:
		rs.internal(w, r, err)
	}
}

func (rs Responder) internal(w http.ResponseWriter, r *http.Request, err error) {
	if rs.Logger != nil {
		attrs := []any{slog.Any("error", err)}
		if r != nil {
			attrs = append(attrs,
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		}
		rs.Logger.Error("unhandled request error", attrs...)
	}
	body := ErrorBody{Error: MsgInternal}
	if rs.ExposeDetail && err != nil {
		body.Detail = err.Error()
	}
	JSON(w, http.StatusInternalServerError, body)
}

// NotFound is a chi NotFound handler that answers in JSON.
func (rs Responder) NotFound(w http.ResponseWriter, r *http.Request) {
	rs.Error(w, r, shared.ErrNotFound)
}

// MethodNotAllowed is a chi MethodNotAllowed handler that answers in JSON.
func (rs Responder) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusMethodNotAllowed, ErrorBody{Error: http.StatusText(http.StatusMethodNotAllowed)})
}
