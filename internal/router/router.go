// Package router sets up all HTTP routes and middleware chains for
// Stockroom. HTML pages and modals share a CSRF-protected group; the JSON
// routes under /api are rate limited per client IP instead.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stockroom/internal/handlers"
	"stockroom/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. static is served under /static/.
func New(sessions middleware.SessionGetter, pages *handlers.Pages, modals *handlers.Modals, api *handlers.API, limiter *middleware.RateLimiter, static fs.FS, secureCookies bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request. The session is loaded
	// before logging so the log line carries the admin-mode flag.
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessions))
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// JSON routes: owner PIN in the body, no CSRF cookie.
	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Middleware)

		r.Get("/pdfs/list", api.PdfList)
		r.Post("/pdfs/upload", api.PdfUpload)
		r.Post("/pdfs/delete", api.PdfDelete)
		r.Post("/pdfs/remove", api.PdfDelete)
		r.Post("/staff/uids", api.StaffUIDs)
	})

	// HTML pages and modal fragments.
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewCSRF(secureCookies))

		r.Get("/", pages.Home)
		r.Get("/category/{id}", pages.Category)
		r.Get("/items/{id}", pages.Items)
		r.Post("/items/{id}/barcode", pages.Barcode)
		r.Get("/pdfs", pages.PDFs)
		r.Post("/admin-mode", pages.AdminMode)

		r.Route("/modals", func(r chi.Router) {
			r.Get("/close", modals.Close)

			r.Get("/update-stock", modals.UpdateStockForm)
			r.Post("/update-stock", modals.UpdateStock)
			r.Get("/consume-stock", modals.ConsumeStockForm)
			r.Post("/consume-stock", modals.ConsumeStock)
			r.Get("/history", modals.History)

			r.Get("/add-item", modals.AddItemForm)
			r.Post("/add-item", modals.AddItem)
			r.Get("/delete-item", modals.DeleteItemForm)
			r.Post("/delete-item", modals.DeleteItem)

			r.Get("/change-pin", modals.ChangePINForm)
			r.Post("/change-pin", modals.ChangePIN)
			r.Get("/staff-names", modals.StaffNamesForm)
			r.Post("/staff-names", modals.StaffNames)
			r.Get("/staff-uids", modals.StaffUIDsForm)
			r.Post("/staff-uids", modals.StaffUIDs)

			r.Get("/subcategories", modals.SubcategoriesForm)
			r.Post("/subcategories", modals.Subcategories)

			r.Get("/link-barcode", modals.LinkBarcodeForm)
			r.Post("/link-barcode", modals.LinkBarcode)
			r.Get("/unlink-barcode", modals.UnlinkBarcodeForm)
			r.Post("/unlink-barcode", modals.UnlinkBarcode)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
