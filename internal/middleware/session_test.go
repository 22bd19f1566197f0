package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"stockroom/internal/session"
)

// fakeSessions returns a fixed session or error for every request.
type fakeSessions struct {
	data *session.Data
	err  error
}

func (f fakeSessions) Get(context.Context, *http.Request) (*session.Data, error) {
	return f.data, f.err
}

func TestSessionFromCtx(t *testing.T) {
	t.Run("returns session when present", func(t *testing.T) {
		sess := &session.Data{AdminMode: true}
		got := SessionFromCtx(WithSession(context.Background(), sess))
		if got != sess {
			t.Fatalf("SessionFromCtx = %+v, want %+v", got, sess)
		}
	})

	t.Run("returns nil when not present", func(t *testing.T) {
		if got := SessionFromCtx(context.Background()); got != nil {
			t.Errorf("expected nil session, got %+v", got)
		}
	})

	t.Run("returns nil for wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), SessionKey, "not-a-session")
		if got := SessionFromCtx(ctx); got != nil {
			t.Errorf("expected nil for wrong type, got %+v", got)
		}
	})
}

func TestLoadSessionAdminMode(t *testing.T) {
	tests := []struct {
		name  string
		store fakeSessions
		want  bool
	}{
		{name: "no session", store: fakeSessions{}, want: false},
		{name: "admin mode off", store: fakeSessions{data: &session.Data{AdminMode: false}}, want: false},
		{name: "admin mode on", store: fakeSessions{data: &session.Data{AdminMode: true}}, want: true},
		{name: "store error", store: fakeSessions{err: errors.New("valkey down")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got bool
			called := false
			h := LoadSession(tt.store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got = AdminModeFromCtx(r.Context())
			}))

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			if !called {
				t.Fatal("next handler was not called")
			}
			if got != tt.want {
				t.Errorf("AdminModeFromCtx = %v, want %v", got, tt.want)
			}
		})
	}
}
