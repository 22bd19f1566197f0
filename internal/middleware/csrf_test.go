// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// csrfHandler wraps a handler that records the context token it saw.
func csrfHandler(secure bool, seen *string) http.Handler {
	return NewCSRF(secure)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = CSRFTokenFromCtx(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	}))
}

// issueCookie performs a page load and returns the CSRF cookie it set.
func issueCookie(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/items/abc", nil))
	for _, c := range rr.Result().Cookies() {
		if c.Name == CSRFCookieName {
			return c
		}
	}
	t.Fatal("CSRF cookie not set")
	return nil
}

func TestCSRFCookieAttributes(t *testing.T) {
	for _, secure := range []bool{true, false} {
		c := issueCookie(t, csrfHandler(secure, nil))

		if c.Secure != secure {
			t.Errorf("Secure: got %v, want %v", c.Secure, secure)
		}
		if c.SameSite != http.SameSiteStrictMode {
			t.Errorf("SameSite: got %v, want Strict", c.SameSite)
		}
		if c.HttpOnly {
			t.Error("cookie must stay readable for hx-headers")
		}
		if len(c.Value) != 2*csrfTokenLength {
			t.Errorf("token length: got %d, want %d", len(c.Value), 2*csrfTokenLength)
		}
	}
}

func TestCSRFSubmissions(t *testing.T) {
	h := csrfHandler(false, nil)
	cookie := issueCookie(t, h)

	form := func(token string) *http.Request {
		body := url.Values{"new_stock": {"3"}, CSRFFormField: {token}}.Encode()
		req := httptest.NewRequest(http.MethodPost, "/modals/update-stock", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req
	}
	htmx := func(method, token string) *http.Request {
		req := httptest.NewRequest(method, "/modals/delete-item", nil)
		if token != "" {
			req.Header.Set(CSRFHeaderName, token)
		}
		return req
	}

	tests := []struct {
		name   string
		req    *http.Request
		cookie bool
		want   int
	}{
		{"htmx header", htmx(http.MethodPost, cookie.Value), true, http.StatusOK},
		{"form field", form(cookie.Value), true, http.StatusOK},
		{"no token", htmx(http.MethodPost, ""), true, http.StatusForbidden},
		{"wrong token", htmx(http.MethodPost, "deadbeef"), true, http.StatusForbidden},
		{"wrong form field", form("deadbeef"), true, http.StatusForbidden},
		{"token without cookie", htmx(http.MethodPost, cookie.Value), false, http.StatusForbidden},
		{"put", htmx(http.MethodPut, ""), true, http.StatusForbidden},
		{"delete", htmx(http.MethodDelete, ""), true, http.StatusForbidden},
		{"get", htmx(http.MethodGet, ""), false, http.StatusOK},
		{"head", htmx(http.MethodHead, ""), false, http.StatusOK},
		{"options", htmx(http.MethodOptions, ""), false, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cookie {
				tt.req.AddCookie(cookie)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, tt.req)

			if rr.Code != tt.want {
				t.Errorf("got %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestCSRFTokenFromCtx(t *testing.T) {
	var seen string
	h := csrfHandler(false, &seen)

	cookie := issueCookie(t, h)
	if seen != cookie.Value {
		t.Errorf("first load: context %q, cookie %q", seen, cookie.Value)
	}

	// A returning browser keeps its token and gets no new cookie.
	req := httptest.NewRequest(http.MethodGet, "/pdfs", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if seen != cookie.Value {
		t.Errorf("returning load: context %q, want %q", seen, cookie.Value)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Error("existing token should not be replaced")
	}

	if got := CSRFTokenFromCtx(httptest.NewRequest(http.MethodGet, "/", nil).Context()); got != "" {
		t.Errorf("outside the middleware: got %q, want empty", got)
	}
}
