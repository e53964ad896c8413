package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"practicehub/internal/models"
	"practicehub/internal/token"
)

// newTestIdentity creates a token.Identity with the given role.
func newTestIdentity(role models.Role) *token.Identity {
	return &token.Identity{
		UserID:      uuid.New(),
		Email:       "test@practicehub.local",
		DisplayName: "Test User",
		Role:        role,
	}
}

// ctxWithIdentity returns a context carrying the identity under the same
// key the middleware uses, simulating the state after LoadIdentity has run
// without needing a real Valkey store.
func ctxWithIdentity(ctx context.Context, id *token.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// okHandler is a simple handler that records whether it was invoked.
func okHandler() (http.Handler, *bool) {
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

func TestIdentityFromCtx(t *testing.T) {
	t.Run("returns identity when present", func(t *testing.T) {
		id := newTestIdentity(models.RoleReviewer)
		ctx := ctxWithIdentity(context.Background(), id)

		got := IdentityFromCtx(ctx)
		if got == nil {
			t.Fatal("expected non-nil identity, got nil")
		}
		if got.Email != id.Email {
			t.Errorf("Email: got %q, want %q", got.Email, id.Email)
		}
		if got.Role != id.Role {
			t.Errorf("Role: got %q, want %q", got.Role, id.Role)
		}
	})

	t.Run("returns nil when not present", func(t *testing.T) {
		if got := IdentityFromCtx(context.Background()); got != nil {
			t.Errorf("expected nil identity, got %+v", got)
		}
	})

	t.Run("returns nil for wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), IdentityKey, "not-an-identity")
		if got := IdentityFromCtx(ctx); got != nil {
			t.Errorf("expected nil for wrong type, got %+v", got)
		}
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", ""},
		{"bearer token", "Bearer abc123", "abc123"},
		{"bearer with padding", "Bearer   abc123  ", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"lowercase scheme", "bearer abc123", ""},
		{"scheme only", "Bearer ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/best-practices", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := BearerToken(req); got != tt.want {
				t.Errorf("BearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	t.Run("401 when no identity", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireAuth(inner)

		req := httptest.NewRequest(http.MethodPost, "/best-practices", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if *called {
			t.Error("next handler should NOT have been called")
		}
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want %d", rr.Code, http.StatusUnauthorized)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type: got %q, want application/json", ct)
		}
	})

	t.Run("passes through when identity exists", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireAuth(inner)

		req := httptest.NewRequest(http.MethodPost, "/best-practices", nil)
		req = req.WithContext(ctxWithIdentity(req.Context(), newTestIdentity(models.RoleMember)))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if !*called {
			t.Error("next handler should have been called")
		}
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})
}

func TestRequireReviewer(t *testing.T) {
	tests := []struct {
		name     string
		identity *token.Identity
		wantCode int
		wantCall bool
	}{
		{"no identity", nil, http.StatusForbidden, false},
		{"member", newTestIdentity(models.RoleMember), http.StatusForbidden, false},
		{"reviewer", newTestIdentity(models.RoleReviewer), http.StatusOK, true},
		{"admin", newTestIdentity(models.RoleAdmin), http.StatusOK, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, called := okHandler()
			handler := RequireReviewer(inner)

			req := httptest.NewRequest(http.MethodPost, "/best-practices/x/publish", nil)
			if tt.identity != nil {
				req = req.WithContext(ctxWithIdentity(req.Context(), tt.identity))
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rr.Code, tt.wantCode)
			}
			if *called != tt.wantCall {
				t.Errorf("handler called: got %v, want %v", *called, tt.wantCall)
			}
		})
	}
}
