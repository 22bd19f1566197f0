// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for Stockroom. Handlers are
// grouped by concern (pages, modals, api) and receive their dependencies
// through the handler struct as small interfaces, so tests can swap in
// fakes for the stores and the procedure client.
package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"stockroom/internal/models"
	"stockroom/internal/procedures"
)

// RefreshEvent is the HX-Trigger event pages listen for to reload their
// content after a modal mutation succeeds.
const RefreshEvent = "stockroom:refresh"

// CategoryLister serves the cached category lists. *cache.CategoryCache
// satisfies it.
type CategoryLister interface {
	TopLevel(ctx context.Context) ([]models.Category, error)
	Children(ctx context.Context, parentID uuid.UUID) ([]models.Category, error)
	InvalidateParent(ctx context.Context, parentID uuid.UUID)
}

// CategoryFinder loads one active category.
type CategoryFinder interface {
	FindByID(id uuid.UUID) (*models.Category, error)
}

// ItemFinder reads items.
type ItemFinder interface {
	ListBySubcategory(subcategoryID uuid.UUID) ([]models.Item, error)
	FindByID(id uuid.UUID) (*models.Item, error)
}

// HistoryFinder reads an item's recent stock log.
type HistoryFinder interface {
	RecentForItem(itemID uuid.UUID) ([]models.StockLog, error)
}

// StaffFinder reads operator names and, for the owner, their UIDs.
type StaffFinder interface {
	ActiveNames(role models.StaffRole) ([]models.StaffName, error)
	UIDs() ([]models.StaffUIDRow, error)
}

// Procedures is the set of backend procedures the modals call.
// *procedures.Client satisfies it.
type Procedures interface {
	UpdateStock(ctx context.Context, p procedures.UpdateStock) error
	AddItem(ctx context.Context, p procedures.NewItem) error
	AddItemWithBarcode(ctx context.Context, p procedures.NewItem) error
	DeleteItem(ctx context.Context, itemID uuid.UUID, pin string) error
	ChangeAdminPIN(ctx context.Context, p procedures.ChangeAdminPIN) error
	AddStaffName(ctx context.Context, name, pin string) error
	DeleteStaffName(ctx context.Context, name, pin string) error
	AddSubcategory(ctx context.Context, parentID uuid.UUID, name, ownerPIN string) error
	DeactivateSubcategory(ctx context.Context, subcategoryID uuid.UUID, ownerPIN string) error
	LinkBarcode(ctx context.Context, p procedures.BarcodeLink) error
	UnlinkBarcode(ctx context.Context, p procedures.BarcodeLink) error
	ConsumeStock(ctx context.Context, p procedures.ConsumeStock) error
	LookupBarcode(ctx context.Context, code string) ([]byte, error)
}

// AdminModeStore persists the per-browser admin-mode flag.
// *session.Store satisfies it.
type AdminModeStore interface {
	SetAdminMode(ctx context.Context, w http.ResponseWriter, r *http.Request, on bool) error
}

// PINVerifier checks an owner PIN. *pin.Verifier satisfies it.
type PINVerifier interface {
	Verify(candidate string) error
}

// PdfRepository persists library documents. *store.PdfStore satisfies it.
type PdfRepository interface {
	ListActive() ([]models.PdfDocument, error)
	Create(title, storagePath, publicURL string) (*models.PdfDocument, error)
	FindByID(id int64) (*models.PdfDocument, error)
	Deactivate(id int64) error
}

// ObjectStore holds the uploaded files. *storage.Client satisfies it.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	FileURL(key string) string
	KeyFromURL(rawURL string) (string, bool)
}
