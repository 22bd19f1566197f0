package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"stockroom/internal/session"
)

// captureLog routes the default logger into a buffer for the test and
// returns a function decoding the single record written.
func captureLog(t *testing.T) func() map[string]any {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	return func() map[string]any {
		t.Helper()
		var rec map[string]any
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatalf("decode log record %q: %v", buf.String(), err)
		}
		return rec
	}
}

func TestLoggerLevelByStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{"page load", http.StatusOK, "INFO"},
		{"redirect", http.StatusSeeOther, "INFO"},
		{"unknown category", http.StatusNotFound, "WARN"},
		{"wrong owner pin", http.StatusUnauthorized, "WARN"},
		{"backend down", http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := captureLog(t)
			handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/category/abc", nil))

			if rr.Code != tt.status {
				t.Errorf("status: got %d, want %d", rr.Code, tt.status)
			}
			rec := record()
			if rec["level"] != tt.level {
				t.Errorf("level: got %v, want %s", rec["level"], tt.level)
			}
			if rec["status"] != float64(tt.status) {
				t.Errorf("status field: got %v, want %d", rec["status"], tt.status)
			}
			if rec["path"] != "/category/abc" {
				t.Errorf("path field: got %v", rec["path"])
			}
		})
	}
}

func TestLoggerTagsModalTraffic(t *testing.T) {
	record := captureLog(t)
	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<div class=\"modal\"></div>"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/modals/update-stock", nil)
	req.Header.Set("HX-Request", "true")
	req = req.WithContext(WithSession(req.Context(), &session.Data{AdminMode: true}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	rec := record()
	if rec["method"] != http.MethodPost {
		t.Errorf("method: got %v", rec["method"])
	}
	if rec["htmx"] != true {
		t.Errorf("htmx: got %v, want true", rec["htmx"])
	}
	if rec["admin_mode"] != true {
		t.Errorf("admin_mode: got %v, want true", rec["admin_mode"])
	}
	if rec["status"] != float64(http.StatusOK) {
		t.Errorf("status: got %v, want 200 for an implicit write", rec["status"])
	}
}

func TestLoggerWithoutSession(t *testing.T) {
	record := captureLog(t)
	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pdfs", nil))

	rec := record()
	if rec["admin_mode"] != false {
		t.Errorf("admin_mode: got %v, want false", rec["admin_mode"])
	}
	if rec["htmx"] != false {
		t.Errorf("htmx: got %v, want false", rec["htmx"])
	}
}

func TestResponseWriterKeepsFirstStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rr, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusNoContent)
	rw.WriteHeader(http.StatusInternalServerError)
	rw.Write(nil)

	if rw.statusCode != http.StatusNoContent {
		t.Errorf("statusCode: got %d, want 204", rw.statusCode)
	}
}
