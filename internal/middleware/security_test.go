package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecureHeaders(t *testing.T) {
	handler := SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/items/abc", nil))

	tests := []struct {
		header string
		want   string
	}{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "SAMEORIGIN"},
		{"Referrer-Policy", "same-origin"},
		{"Permissions-Policy", "camera=(self), microphone=(), geolocation=(), payment=()"},
		{"Content-Security-Policy", contentSecurityPolicy},
	}
	for _, tt := range tests {
		if got := rr.Header().Get(tt.header); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestContentSecurityPolicy(t *testing.T) {
	for _, directive := range []string{
		"script-src 'self' https://unpkg.com",
		"media-src 'self' blob:",
		"connect-src 'self'",
		"object-src 'none'",
	} {
		if !strings.Contains(contentSecurityPolicy, directive) {
			t.Errorf("policy missing %q", directive)
		}
	}
	if strings.Contains(contentSecurityPolicy, "'unsafe-eval'") {
		t.Error("policy must not allow eval")
	}
}

func TestSecureHeadersNoStoreOnAPI(t *testing.T) {
	handler := SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for path, want := range map[string]string{
		"/api/staff/uids": "no-store",
		"/api/pdfs/list":  "no-store",
		"/pdfs":           "",
	} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if got := rr.Header().Get("Cache-Control"); got != want {
			t.Errorf("%s Cache-Control: got %q, want %q", path, got, want)
		}
	}
}
