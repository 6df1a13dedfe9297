package auth

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// FromContext returns the authenticated identity, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// WithIdentity returns ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// Middleware builds request decorators from a token verifier and the
// account repository.
type Middleware struct {
	Tokens *Tokens
	Users  *Users
}

// Optional decorates requests with an identity if a valid token is present.
// It never 401s; used for routes where guests are allowed.
func (m Middleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := m.verify(r); ok {
			r = r.WithContext(WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// Require enforces a valid token for an account that still exists.
func (m Middleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := m.verify(r)
		if !ok {
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func (m Middleware) verify(r *http.Request) (Identity, bool) {
	tok := m.Tokens.FromRequest(r)
	if tok == "" {
		return Identity{}, false
	}
	id, err := m.Tokens.Parse(tok)
	if err != nil {
		return Identity{}, false
	}
	// Ensure user still exists
	if _, err := m.Users.FindByID(r.Context(), id.ID); err != nil {
		return Identity{}, false
	}
	return id, true
}
