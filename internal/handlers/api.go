// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stockroom/internal/models"
	"stockroom/internal/pin"
	"stockroom/internal/slug"
)

// maxUploadSize limits PDF uploads to 25 MB.
const maxUploadSize = 25 << 20

// now is replaced in tests.
var now = time.Now

// API serves the JSON routes: the PDF library and the owner's staff UID
// listing. Both mutating PDF routes and the UID listing are gated by the
// owner PIN.
type API struct {
	pdfs    PdfRepository
	objects ObjectStore
	owner   PINVerifier
	staff   StaffFinder
}

// NewAPI creates the API handler group. objects may be nil when object
// storage is not configured; uploads are then refused.
func NewAPI(pdfs PdfRepository, objects ObjectStore, owner PINVerifier, staff StaffFinder) *API {
	return &API{pdfs: pdfs, objects: objects, owner: owner, staff: staff}
}

// pinRequest is the JSON body of the owner-PIN routes. Both key spellings
// are accepted.
type pinRequest struct {
	ID            any    `json:"id"`
	OwnerPin      string `json:"ownerPin"`
	OwnerPinSnake string `json:"owner_pin"`
}

func (p pinRequest) pin() string {
	if s := strings.TrimSpace(p.OwnerPin); s != "" {
		return s
	}
	return strings.TrimSpace(p.OwnerPinSnake)
}

// PdfList returns the active documents, newest first.
func (a *API) PdfList(w http.ResponseWriter, r *http.Request) {
	docs, err := a.pdfs.ListActive()
	if err != nil {
		slog.Error("list pdfs failed", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": docs})
}

// PdfUpload stores an uploaded PDF under pdfs/<unix-ms>-<name> and records
// it in the library.
func (a *API) PdfUpload(w http.ResponseWriter, r *http.Request) {
	if a.objects == nil {
		writeError(w, http.StatusServiceUnavailable, "Object storage is not configured.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Missing file or owner PIN")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		title = "Untitled"
	}
	ownerPin := strings.TrimSpace(r.FormValue("ownerPin"))
	if ownerPin == "" {
		ownerPin = strings.TrimSpace(r.FormValue("owner_pin"))
	}

	file, header, err := r.FormFile("file")
	if err != nil || ownerPin == "" {
		writeError(w, http.StatusBadRequest, "Missing file or owner PIN")
		return
	}
	defer file.Close()

	if header.Header.Get("Content-Type") != "application/pdf" {
		writeError(w, http.StatusBadRequest, "Only PDF files allowed")
		return
	}

	if err := a.owner.Verify(ownerPin); err != nil {
		status, msg := pinFailure(err)
		writeError(w, status, msg)
		return
	}

	key := slug.PDFKey(header.Filename, now())
	if err := a.objects.Upload(r.Context(), key, "application/pdf", file, header.Size); err != nil {
		slog.Error("pdf upload failed", "error", err, "key", key)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	url := a.objects.FileURL(key)
	doc, err := a.pdfs.Create(title, key, url)
	if err != nil {
		slog.Error("pdf insert failed", "error", err, "key", key)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	slog.Info("pdf uploaded", "id", doc.ID, "key", key, "size", header.Size)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "url": url})
}

// PdfDelete soft-deletes a document and then removes its file. A failed
// file removal is logged and does not undo the soft delete.
func (a *API) PdfDelete(w http.ResponseWriter, r *http.Request) {
	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing id or owner PIN")
		return
	}
	id, ok := documentID(req.ID)
	ownerPin := req.pin()
	if !ok || ownerPin == "" {
		writeError(w, http.StatusBadRequest, "Missing id or owner PIN")
		return
	}

	if err := a.owner.Verify(ownerPin); err != nil {
		status, msg := pinFailure(err)
		writeError(w, status, msg)
		return
	}

	doc, err := a.pdfs.FindByID(id)
	if err != nil {
		slog.Error("find pdf failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, "PDF not found")
		return
	}

	if err := a.pdfs.Deactivate(id); err != nil {
		slog.Error("deactivate pdf failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.removeObject(r, doc)

	slog.Info("pdf deleted", "id", id)
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// removeObject deletes the document's file, best effort.
func (a *API) removeObject(r *http.Request, doc *models.PdfDocument) {
	if a.objects == nil {
		return
	}
	key := doc.ObjectPath()
	if key == "" {
		key, _ = a.objects.KeyFromURL(doc.PublicURL)
	}
	if key == "" {
		return
	}
	if err := a.objects.Delete(r.Context(), key); err != nil {
		slog.Warn("pdf object removal failed", "error", err, "id", doc.ID, "key", key)
	}
}

// StaffUIDs lists every active staff name with its UID for the owner.
func (a *API) StaffUIDs(w http.ResponseWriter, r *http.Request) {
	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad request")
		return
	}

	rows, status, msg := staffUIDs(a.owner, a.staff, req.pin())
	if msg != "" {
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": rows})
}

// staffUIDs verifies the owner PIN and loads the UID table. On failure it
// returns the status and message to report.
func staffUIDs(owner PINVerifier, staff StaffFinder, ownerPin string) ([]models.StaffUIDRow, int, string) {
	if ownerPin == "" {
		return nil, http.StatusBadRequest, "Owner PIN is required"
	}
	if err := owner.Verify(ownerPin); err != nil {
		status, msg := pinFailure(err)
		return nil, status, msg
	}

	rows, err := staff.UIDs()
	if err != nil {
		slog.Error("list staff uids failed", "error", err)
		return nil, http.StatusInternalServerError, err.Error()
	}
	return rows, http.StatusOK, ""
}

// pinFailure maps a Verify error to its response.
func pinFailure(err error) (int, string) {
	switch {
	case errors.Is(err, pin.ErrInvalid):
		return http.StatusUnauthorized, "Invalid owner PIN"
	case errors.Is(err, pin.ErrNotConfigured):
		return http.StatusInternalServerError, "Owner PIN settings not found"
	default:
		slog.Error("owner pin check failed", "error", err)
		return http.StatusInternalServerError, err.Error()
	}
}

// documentID accepts the id as a JSON number or a numeric string.
func documentID(v any) (int64, bool) {
	switch id := v.(type) {
	case float64:
		if id <= 0 || id != float64(int64(id)) {
			return 0, false
		}
		return int64(id), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil || n <= 0 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes the {"error": msg} shape every JSON route fails with.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
