package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
)

// isAPI reports whether the request targets the JSON routes.
func isAPI(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// fail writes msg with status, shaped as {"error": msg} for JSON routes
// and as plain text everywhere else.
func fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if !isAPI(r) {
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
