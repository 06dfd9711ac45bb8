package employees_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiempleados/api-empleados/internal/auth"
	"github.com/apiempleados/api-empleados/internal/employees"
	"github.com/apiempleados/api-empleados/internal/platform/httpx"
)

// asPrincipal stands in for the auth gate.
func asPrincipal(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := &auth.Principal{Subject: "caller@empresa.es", Roles: auth.NewRoleSet(roles...)}
			next.ServeHTTP(w, r.WithContext(auth.ContextWithPrincipal(r.Context(), p)))
		})
	}
}

func newRouter(repo *stubRepo, roles ...auth.Role) http.Handler {
	responder := httpx.NewResponder(nil, false)
	h := employees.NewHandler(nil, employees.NewService(repo), responder)
	r := chi.NewRouter()
	r.Use(asPrincipal(roles...))
	r.Route("/employees", h.MountRoutes)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

const anaJSON = `{"first_name":"Ana","last_name":"García","email":"ana@empresa.es","department":"IT","hired_at":"2023-04-01"}`

func TestAdminCreatesAndDeletes(t *testing.T) {
	repo := newStubRepo()
	h := newRouter(repo, auth.RoleUser, auth.RoleAdmin)

	rr := do(h, http.MethodPost, "/employees", anaJSON)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/employees/1", rr.Header().Get("Location"))

	var created employees.Employee
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "IT", created.Department)

	rr = do(h, http.MethodGet, "/employees/1", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(h, http.MethodDelete, "/employees/1", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Zero(t, repo.count())

	rr = do(h, http.MethodDelete, "/employees/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUserCanReadButNotWrite(t *testing.T) {
	repo := newStubRepo()
	admin := newRouter(repo, auth.RoleAdmin)
	require.Equal(t, http.StatusCreated, do(admin, http.MethodPost, "/employees", anaJSON).Code)

	h := newRouter(repo, auth.RoleUser)

	rr := do(h, http.MethodGet, "/employees", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var items []employees.Employee
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	assert.Len(t, items, 1)

	rr = do(h, http.MethodPost, "/employees", anaJSON)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"error":"Acceso denegado"}`, rr.Body.String())

	rr = do(h, http.MethodDelete, "/employees/1", "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, 1, repo.count())
}

func TestEmployeeErrorsOverHTTP(t *testing.T) {
	repo := newStubRepo()
	h := newRouter(repo, auth.RoleAdmin)

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/employees/abc", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/employees/99", "").Code)

	rr := do(h, http.MethodPost, "/employees", `{"first_name":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Cuerpo de la petición inválido"}`, rr.Body.String())

	require.Equal(t, http.StatusCreated, do(h, http.MethodPost, "/employees", anaJSON).Code)
	rr = do(h, http.MethodPost, "/employees", anaJSON)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"El email ya está registrado"}`, rr.Body.String())

	repo.listErr = errors.New("connection reset")
	rr = do(h, http.MethodGet, "/employees", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Error en el servidor"}`, rr.Body.String())
}
