package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/apiempleados/api-empleados/internal/platform/httpx"
	"github.com/apiempleados/api-empleados/internal/shared"
)

type principalContextKey struct{}

// ContextWithPrincipal stores the principal in context.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal from context.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey{}).(*Principal)
	return p
}

// TokenDecoder validates bearer tokens.
type TokenDecoder interface {
	Decode(token string) (*Claims, error)
}

// Gate authenticates every request outside the public prefixes from its
// bearer token. No server-side session is kept.
type Gate struct {
	tokens         TokenDecoder
	responder      httpx.Responder
	publicPrefixes []string
}

// NewGate constructs a Gate.
func NewGate(tokens TokenDecoder, responder httpx.Responder, publicPrefixes ...string) *Gate {
	prefixes := make([]string, 0, len(publicPrefixes))
	for _, p := range publicPrefixes {
		if p = strings.TrimSpace(p); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return &Gate{tokens: tokens, responder: responder, publicPrefixes: prefixes}
}

// Middleware rejects unauthenticated requests with 401 and attaches the
// principal otherwise.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		raw, ok := bearerToken(r)
		if !ok {
			g.responder.Error(w, r, shared.ErrUnauthorized)
			return
		}
		claims, err := g.tokens.Decode(raw)
		if err != nil {
			g.responder.Error(w, r, err)
			return
		}
		principal := &Principal{Subject: claims.Subject, Roles: claims.Roles}
		next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
	})
}

func (g *Gate) isPublic(path string) bool {
	for _, prefix := range g.publicPrefixes {
		base := strings.TrimSuffix(prefix, "/")
		if path == base || strings.HasPrefix(path, base+"/") {
			return true
		}
	}
	return false
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireRole ensures the current principal has at least one of roles.
func RequireRole(responder httpx.Responder, roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r.Context())
			if principal == nil {
				responder.Error(w, r, shared.ErrUnauthorized)
				return
			}
			if len(roles) > 0 && !principal.Roles.HasAny(roles...) {
				responder.Error(w, r, shared.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
