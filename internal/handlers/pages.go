// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"stockroom/internal/barcode"
	"stockroom/internal/middleware"
	"stockroom/internal/models"
	"stockroom/internal/render"
)

// Pages groups the read views, the barcode lookup and the admin-mode toggle.
type Pages struct {
	renderer   *render.Renderer
	categories CategoryLister
	finder     CategoryFinder
	items      ItemFinder
	resolver   *barcode.Resolver
	sessions   AdminModeStore
	pdfs       PdfRepository
	storageOn  bool
}

// NewPages creates the Pages handler group. storageOn reports whether the
// PDF library can accept uploads.
func NewPages(renderer *render.Renderer, categories CategoryLister, finder CategoryFinder, items ItemFinder, resolver *barcode.Resolver, sessions AdminModeStore, pdfs PdfRepository, storageOn bool) *Pages {
	return &Pages{
		renderer:   renderer,
		categories: categories,
		finder:     finder,
		items:      items,
		resolver:   resolver,
		sessions:   sessions,
		pdfs:       pdfs,
		storageOn:  storageOn,
	}
}

// Home lists the active top-level categories.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Error": ""}

	cats, err := p.categories.TopLevel(r.Context())
	if err != nil {
		slog.Error("list categories failed", "error", err)
		data["Error"] = "Could not load categories."
	}
	data["Categories"] = cats

	p.renderer.Page(w, r, "home", &render.PageData{
		Title:   "Categories",
		Section: "home",
		Data:    data,
	})
}

// Category lists the active sub-categories of a top-level category.
func (p *Pages) Category(w http.ResponseWriter, r *http.Request) {
	cat, ok := p.loadCategory(w, r)
	if !ok {
		return
	}
	if !cat.IsTopLevel() {
		http.Redirect(w, r, "/items/"+cat.ID.String(), http.StatusSeeOther)
		return
	}

	data := map[string]any{"Category": cat, "Error": ""}
	subs, err := p.categories.Children(r.Context(), cat.ID)
	if err != nil {
		slog.Error("list sub-categories failed", "error", err, "category_id", cat.ID)
		data["Error"] = "Could not load sub-categories."
	}
	data["Subcategories"] = subs

	p.renderer.Page(w, r, "category", &render.PageData{
		Title:   cat.Name,
		Section: "home",
		Data:    data,
	})
}

// Items lists the items of a sub-category, filtered by the q search.
func (p *Pages) Items(w http.ResponseWriter, r *http.Request) {
	sub, ok := p.loadCategory(w, r)
	if !ok {
		return
	}
	items, err := p.items.ListBySubcategory(sub.ID)
	p.renderItems(w, r, sub, items, err, strings.TrimSpace(r.URL.Query().Get("q")), nil)
}

// Barcode resolves a typed or scanned code against the sub-category's
// items and re-renders the list with the outcome.
func (p *Pages) Barcode(w http.ResponseWriter, r *http.Request) {
	sub, ok := p.loadCategory(w, r)
	if !ok {
		return
	}

	loaded, err := p.items.ListBySubcategory(sub.ID)
	var res barcode.Result
	if err != nil {
		// Without the loaded set a match cannot be classified.
		code := barcode.Normalize(r.FormValue("code"))
		res = barcode.Result{State: barcode.StateIdle}
		if code != "" {
			res = barcode.Result{State: barcode.StateError, Code: code, Message: err.Error()}
		}
	} else {
		res = p.resolver.Resolve(r.Context(), r.FormValue("code"), loaded, middleware.AdminModeFromCtx(r.Context()))
	}
	slog.Info("barcode resolved", "code", res.Code, "state", res.State)

	var shown *barcode.Result
	if res.State != barcode.StateIdle {
		shown = &res
	}
	p.renderItems(w, r, sub, loaded, err, res.SearchText, shown)
}

func (p *Pages) renderItems(w http.ResponseWriter, r *http.Request, sub *models.Category, items []models.Item, err error, query string, res *barcode.Result) {
	data := map[string]any{
		"Subcategory": sub,
		"Query":       query,
		"Barcode":     res,
		"Error":       "",
	}

	if err != nil {
		slog.Error("list items failed", "error", err, "subcategory_id", sub.ID)
		data["Error"] = "Could not load items."
	}
	data["Items"] = models.FilterItems(items, query)

	p.renderer.Page(w, r, "items", &render.PageData{
		Title:   sub.Name,
		Section: "home",
		Data:    data,
	})
}

// PDFs renders the document library page.
func (p *Pages) PDFs(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"StorageEnabled": p.storageOn, "Error": ""}

	docs, err := p.pdfs.ListActive()
	if err != nil {
		slog.Error("list pdfs failed", "error", err)
		data["Error"] = "Could not load documents."
	}
	data["Documents"] = docs

	p.renderer.Page(w, r, "pdfs", &render.PageData{
		Title:   "Documents",
		Section: "pdfs",
		Data:    data,
	})
}

// AdminMode switches the browser's admin-mode flag and sends the user
// back to the page they came from.
func (p *Pages) AdminMode(w http.ResponseWriter, r *http.Request) {
	on := r.FormValue("on") == "true"
	if err := p.sessions.SetAdminMode(r.Context(), w, r, on); err != nil {
		slog.Error("set admin mode failed", "error", err)
		http.Error(w, "Could not change admin mode", http.StatusInternalServerError)
		return
	}
	slog.Info("admin mode changed", "on", on)

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// loadCategory resolves the {id} URL parameter to an active category,
// answering 404 when it is malformed or unknown.
func (p *Pages) loadCategory(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	cat, err := p.finder.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err, "category_id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if cat == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return cat, true
}

// backTo returns the same-origin path of the Referer, or "/".
func backTo(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return "/"
	}
	if ref.Host != "" && ref.Host != r.Host {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
