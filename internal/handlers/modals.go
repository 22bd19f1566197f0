// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"stockroom/internal/barcode"
	"stockroom/internal/forms"
	"stockroom/internal/models"
	"stockroom/internal/render"
)

// Modals serves the mutation dialogs. GET renders a freshly opened modal;
// POST validates the submitted form and makes its one procedure call.
type Modals struct {
	renderer   *render.Renderer
	procs      Procedures
	staff      StaffFinder
	items      ItemFinder
	categories CategoryLister
	history    HistoryFinder
	owner      PINVerifier
}

// NewModals creates the Modals handler group.
func NewModals(renderer *render.Renderer, procs Procedures, staff StaffFinder, items ItemFinder, categories CategoryLister, history HistoryFinder, owner PINVerifier) *Modals {
	return &Modals{
		renderer:   renderer,
		procs:      procs,
		staff:      staff,
		items:      items,
		categories: categories,
		history:    history,
		owner:      owner,
	}
}

// reresolve tells the closed modal to run the barcode lookup again.
type reresolve struct {
	SubcategoryID string
	Code          string
}

// show opens a modal on f and renders it.
func show[F forms.Form](rn *render.Renderer, w http.ResponseWriter, r *http.Request, block string, f F, data map[string]any) {
	m := &forms.Modal[F]{}
	m.Show(f)
	data["Modal"] = m
	rn.Fragment(w, r, block, &render.PageData{Data: data})
}

// submit runs m.Submit. A rejected or failed submission re-renders the
// modal with its message and the extras; a successful one renders the
// closed modal, re-resolving a barcode when again is set.
func submit[F forms.Form](rn *render.Renderer, w http.ResponseWriter, r *http.Request, block string, m *forms.Modal[F], extras func() map[string]any, again *reresolve) {
	m.Open = true
	if m.Refresh == nil && again == nil {
		m.Refresh = triggerRefresh(w)
	}

	if err := m.Submit(r.Context()); err != nil {
		if !errors.Is(err, forms.ErrRejected) {
			slog.Warn("modal submission failed", "modal", block, "error", err)
		}
		data := extras()
		data["Modal"] = m
		rn.Fragment(w, r, block, &render.PageData{Data: data})
		return
	}

	slog.Info("modal submitted", "modal", block)
	data := map[string]any{}
	if again != nil {
		data["Reresolve"] = again
	}
	rn.Fragment(w, r, "modal_closed", &render.PageData{Data: data})
}

// triggerRefresh returns a Refresh hook that asks the page to reload.
func triggerRefresh(w http.ResponseWriter) func(context.Context) error {
	return func(context.Context) error {
		w.Header().Set("HX-Trigger", RefreshEvent)
		return nil
	}
}

// Close empties the modal slot.
func (h *Modals) Close(w http.ResponseWriter, r *http.Request) {
	h.renderer.Fragment(w, r, "modal_closed", &render.PageData{})
}

// staffNames lists active names for the operator dropdown, optionally
// restricted to role. A failure leaves the dropdown empty.
func (h *Modals) staffNames(role models.StaffRole) []models.StaffName {
	names, err := h.staff.ActiveNames(role)
	if err != nil {
		slog.Error("list staff names failed", "error", err)
	}
	return names
}

// findItem loads the item named by the "item" query parameter, answering
// 404 when it is missing.
func (h *Modals) findItem(w http.ResponseWriter, r *http.Request) (*models.Item, bool) {
	id, err := uuid.Parse(r.URL.Query().Get("item"))
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	item, err := h.items.FindByID(id)
	if err != nil {
		slog.Error("find item failed", "error", err, "item_id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if item == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return item, true
}

// --- Stock ---

// UpdateStockForm opens the update-stock modal for ?item=, remembering
// ?code= when it was opened from a scan.
func (h *Modals) UpdateStockForm(w http.ResponseWriter, r *http.Request) {
	item, ok := h.findItem(w, r)
	if !ok {
		return
	}
	show(h.renderer, w, r, "modal_update_stock", &forms.UpdateStock{
		ItemID:   item.ID.String(),
		ItemName: item.Name,
		NewStock: strconv.Itoa(item.StockCount),
		Date:     forms.Today(),
		Barcode:  barcode.Normalize(r.URL.Query().Get("code")),
	}, map[string]any{
		"Staff":         h.staffNames(""),
		"SubcategoryID": item.SubcategoryID.String(),
	})
}

// UpdateStock submits the update-stock modal.
func (h *Modals) UpdateStock(w http.ResponseWriter, r *http.Request) {
	f := &forms.UpdateStock{
		ItemID:   r.FormValue("item_id"),
		ItemName: r.FormValue("item_name"),
		NewStock: r.FormValue("new_stock"),
		Name:     r.FormValue("name"),
		Date:     r.FormValue("date"),
		PIN:      r.FormValue("pin"),
		Note:     r.FormValue("note"),
		Barcode:  r.FormValue("barcode"),
	}
	m := &forms.Modal[*forms.UpdateStock]{
		Form: f,
		Action: func(ctx context.Context, f *forms.UpdateStock) error {
			return h.procs.UpdateStock(ctx, f.Params())
		},
	}
	submit(h.renderer, w, r, "modal_update_stock", m, func() map[string]any {
		return map[string]any{"Staff": h.staffNames(""), "SubcategoryID": r.FormValue("sub")}
	}, nil)
}

// ConsumeStockForm opens the public subtract-stock modal.
func (h *Modals) ConsumeStockForm(w http.ResponseWriter, r *http.Request) {
	item, ok := h.findItem(w, r)
	if !ok {
		return
	}
	show(h.renderer, w, r, "modal_consume_stock", &forms.ConsumeStock{
		ItemID:   item.ID.String(),
		ItemName: item.Name,
	}, map[string]any{"Staff": h.staffNames("")})
}

// ConsumeStock submits the subtract-stock modal.
func (h *Modals) ConsumeStock(w http.ResponseWriter, r *http.Request) {
	m := &forms.Modal[*forms.ConsumeStock]{
		Form: &forms.ConsumeStock{
			ItemID:   r.FormValue("item_id"),
			ItemName: r.FormValue("item_name"),
			Name:     r.FormValue("name"),
			UID:      r.FormValue("uid"),
			Quantity: r.FormValue("quantity"),
		},
		Action: func(ctx context.Context, f *forms.ConsumeStock) error {
			return h.procs.ConsumeStock(ctx, f.Params())
		},
	}
	submit(h.renderer, w, r, "modal_consume_stock", m, func() map[string]any {
		return map[string]any{"Staff": h.staffNames("")}
	}, nil)
}

// History shows the item's latest stock log entries.
func (h *Modals) History(w http.ResponseWriter, r *http.Request) {
	item, ok := h.findItem(w, r)
	if !ok {
		return
	}

	data := map[string]any{"Item": item, "Error": ""}
	logs, err := h.history.RecentForItem(item.ID)
	if err != nil {
		slog.Error("load stock history failed", "error", err, "item_id", item.ID)
		data["Error"] = "Could not load history."
	}
	data["Logs"] = logs

	h.renderer.Fragment(w, r, "modal_history", &render.PageData{Data: data})
}

// --- Items ---

// AddItemForm opens the add-item modal for ?sub=. A ?code= pre-fills the
// barcode so the new item is linked on creation.
func (h *Modals) AddItemForm(w http.ResponseWriter, r *http.Request) {
	code := barcode.Normalize(r.URL.Query().Get("code"))
	show(h.renderer, w, r, "modal_add_item", &forms.AddItem{
		SubcategoryID: r.URL.Query().Get("sub"),
		Stock:         "0",
		Date:          forms.Today(),
		Barcode:       code,
		FromBarcode:   code != "",
	}, map[string]any{"Staff": h.staffNames(models.RoleFulltimer)})
}

// AddItem submits the add-item modal.
func (h *Modals) AddItem(w http.ResponseWriter, r *http.Request) {
	f := &forms.AddItem{
		SubcategoryID: r.FormValue("subcategory_id"),
		Name:          r.FormValue("item_name"),
		Tags:          r.FormValue("tags"),
		Stock:         r.FormValue("stock"),
		ChangedBy:     r.FormValue("name"),
		Date:          r.FormValue("date"),
		PIN:           r.FormValue("pin"),
		Barcode:       r.FormValue("barcode"),
		FromBarcode:   r.FormValue("from_barcode") == "true",
	}

	var again *reresolve
	if f.UsesBarcode() {
		again = &reresolve{SubcategoryID: strings.TrimSpace(f.SubcategoryID), Code: barcode.Normalize(f.Barcode)}
	}

	m := &forms.Modal[*forms.AddItem]{
		Form: f,
		Action: func(ctx context.Context, f *forms.AddItem) error {
			if f.UsesBarcode() {
				return h.procs.AddItemWithBarcode(ctx, f.Params())
			}
			return h.procs.AddItem(ctx, f.Params())
		},
	}
	submit(h.renderer, w, r, "modal_add_item", m, func() map[string]any {
		return map[string]any{"Staff": h.staffNames(models.RoleFulltimer)}
	}, again)
}

// DeleteItemForm opens the delete-item modal.
func (h *Modals) DeleteItemForm(w http.ResponseWriter, r *http.Request) {
	item, ok := h.findItem(w, r)
	if !ok {
		return
	}
	show(h.renderer, w, r, "modal_delete_item", &forms.DeleteItem{
		ItemID:   item.ID.String(),
		ItemName: item.Name,
	}, map[string]any{})
}

// DeleteItem submits the delete-item modal.
func (h *Modals) DeleteItem(w http.ResponseWriter, r *http.Request) {
	m := &forms.Modal[*forms.DeleteItem]{
		Form: &forms.DeleteItem{
			ItemID:   r.FormValue("item_id"),
			ItemName: r.FormValue("item_name"),
			Confirm:  strings.TrimSpace(r.FormValue("confirm")),
			PIN:      r.FormValue("pin"),
		},
		Action: func(ctx context.Context, f *forms.DeleteItem) error {
			return h.procs.DeleteItem(ctx, f.Target(), f.PIN)
		},
	}
	submit(h.renderer, w, r, "modal_delete_item", m, func() map[string]any {
		return map[string]any{}
	}, nil)
}

// --- Staff ---

// ChangePINForm opens the change-admin-PIN modal.
func (h *Modals) ChangePINForm(w http.ResponseWriter, r *http.Request) {
	show(h.renderer, w, r, "modal_change_pin", &forms.ChangePIN{Date: forms.Today()},
		map[string]any{"Staff": h.staffNames("")})
}

// ChangePIN submits the change-admin-PIN modal.
func (h *Modals) ChangePIN(w http.ResponseWriter, r *http.Request) {
	m := &forms.Modal[*forms.ChangePIN]{
		Form: &forms.ChangePIN{
			CurrentPIN: r.FormValue("current_pin"),
			NewPIN:     r.FormValue("new_pin"),
			Name:       r.FormValue("name"),
			Date:       r.FormValue("date"),
		},
		Action: func(ctx context.Context, f *forms.ChangePIN) error {
			return h.procs.ChangeAdminPIN(ctx, f.Params())
		},
	}
	submit(h.renderer, w, r, "modal_change_pin", m, func() map[string]any {
		return map[string]any{"Staff": h.staffNames("")}
	}, nil)
}

// StaffNamesForm opens the manage-names modal.
func (h *Modals) StaffNamesForm(w http.ResponseWriter, r *http.Request) {
	show(h.renderer, w, r, "modal_staff_names", &forms.StaffName{},
		map[string]any{"Staff": h.staffNames("")})
}

// StaffNames adds or removes a name, chosen by the submit button.
func (h *Modals) StaffNames(w http.ResponseWriter, r *http.Request) {
	f := &forms.StaffName{PIN: r.FormValue("pin"), Remove: r.FormValue("action") == "remove"}
	if f.Remove {
		f.Name = r.FormValue("remove_name")
	} else {
		f.Name = r.FormValue("new_name")
	}

	m := &forms.Modal[*forms.StaffName]{
		Form: f,
		Action: func(ctx context.Context, f *forms.StaffName) error {
			name, pin := strings.TrimSpace(f.Name), strings.TrimSpace(f.PIN)
			if f.Remove {
				return h.procs.DeleteStaffName(ctx, name, pin)
			}
			return h.procs.AddStaffName(ctx, name, pin)
		},
	}
	submit(h.renderer, w, r, "modal_staff_names", m, func() map[string]any {
		return map[string]any{"Staff": h.staffNames("")}
	}, nil)
}

// StaffUIDsForm opens the owner-only UID view. The PIN is asked for on
// every open.
func (h *Modals) StaffUIDsForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Fragment(w, r, "modal_staff_uids", &render.PageData{
		Data: map[string]any{"Rows": nil, "Error": ""},
	})
}

// StaffUIDs checks the owner PIN and shows the UID table.
func (h *Modals) StaffUIDs(w http.ResponseWriter, r *http.Request) {
	rows, _, msg := staffUIDs(h.owner, h.staff, strings.TrimSpace(r.FormValue("pin")))
	if msg == "" && len(rows) == 0 {
		msg = "No staff names found."
	}
	if msg != "" {
		h.renderer.Fragment(w, r, "modal_staff_uids", &render.PageData{
			Data: map[string]any{"Rows": nil, "Error": msg},
		})
		return
	}
	h.renderer.Fragment(w, r, "modal_staff_uids", &render.PageData{
		Data: map[string]any{"Rows": rows, "Error": ""},
	})
}

// --- Sub-categories ---

// SubcategoriesForm opens the manage-sub-categories modal for ?parent=.
func (h *Modals) SubcategoriesForm(w http.ResponseWriter, r *http.Request) {
	parent := r.URL.Query().Get("parent")
	show(h.renderer, w, r, "modal_subcategories", &forms.Subcategory{ParentID: parent},
		map[string]any{"Subcategories": h.children(r.Context(), parent)})
}

// Subcategories adds or deactivates a sub-category, chosen by the submit
// button, and drops the cached lists it affects.
func (h *Modals) Subcategories(w http.ResponseWriter, r *http.Request) {
	f := &forms.Subcategory{
		ParentID:      r.FormValue("parent_id"),
		Name:          r.FormValue("sub_name"),
		SubcategoryID: r.FormValue("subcategory_id"),
		PIN:           r.FormValue("pin"),
		Remove:        r.FormValue("action") == "remove",
	}
	parent := f.ParentID

	m := &forms.Modal[*forms.Subcategory]{
		Form: f,
		Action: func(ctx context.Context, f *forms.Subcategory) error {
			pin := strings.TrimSpace(f.PIN)
			if f.Remove {
				return h.procs.DeactivateSubcategory(ctx, f.Target(), pin)
			}
			return h.procs.AddSubcategory(ctx, f.Parent(), strings.TrimSpace(f.Name), pin)
		},
		Refresh: func(ctx context.Context) error {
			if id, err := uuid.Parse(strings.TrimSpace(parent)); err == nil {
				h.categories.InvalidateParent(ctx, id)
			}
			w.Header().Set("HX-Trigger", RefreshEvent)
			return nil
		},
	}
	submit(h.renderer, w, r, "modal_subcategories", m, func() map[string]any {
		return map[string]any{"Subcategories": h.children(r.Context(), parent)}
	}, nil)
}

func (h *Modals) children(ctx context.Context, parent string) []models.Category {
	id, err := uuid.Parse(strings.TrimSpace(parent))
	if err != nil {
		return nil
	}
	subs, err := h.categories.Children(ctx, id)
	if err != nil {
		slog.Error("list sub-categories failed", "error", err, "category_id", id)
	}
	return subs
}

// --- Barcodes ---

// LinkBarcodeForm opens the link modal for ?code= with the items of ?sub=
// to choose from.
func (h *Modals) LinkBarcodeForm(w http.ResponseWriter, r *http.Request) {
	sub := r.URL.Query().Get("sub")
	show(h.renderer, w, r, "modal_link_barcode", &forms.LinkBarcode{
		Barcode: barcode.Normalize(r.URL.Query().Get("code")),
		Date:    forms.Today(),
	}, h.linkExtras(sub))
}

// LinkBarcode submits the link modal and re-resolves the code.
func (h *Modals) LinkBarcode(w http.ResponseWriter, r *http.Request) {
	sub := r.FormValue("sub")
	f := &forms.LinkBarcode{
		Barcode: r.FormValue("barcode"),
		ItemID:  r.FormValue("item_id"),
		Name:    r.FormValue("name"),
		Date:    r.FormValue("date"),
		PIN:     r.FormValue("pin"),
	}

	var again *reresolve
	if _, err := uuid.Parse(sub); err == nil {
		again = &reresolve{SubcategoryID: sub, Code: barcode.Normalize(f.Barcode)}
	}

	m := &forms.Modal[*forms.LinkBarcode]{
		Form: f,
		Action: func(ctx context.Context, f *forms.LinkBarcode) error {
			return h.procs.LinkBarcode(ctx, f.Params())
		},
	}
	submit(h.renderer, w, r, "modal_link_barcode", m, func() map[string]any {
		return h.linkExtras(sub)
	}, again)
}

func (h *Modals) linkExtras(sub string) map[string]any {
	data := map[string]any{"Staff": h.staffNames(""), "SubcategoryID": sub, "Items": []models.Item(nil)}
	id, err := uuid.Parse(sub)
	if err != nil {
		return data
	}
	items, err := h.items.ListBySubcategory(id)
	if err != nil {
		slog.Error("list items failed", "error", err, "subcategory_id", id)
	}
	data["Items"] = items
	return data
}

// UnlinkBarcodeForm opens the unlink modal, pre-filled with ?code=.
func (h *Modals) UnlinkBarcodeForm(w http.ResponseWriter, r *http.Request) {
	show(h.renderer, w, r, "modal_unlink_barcode", &forms.UnlinkBarcode{
		Barcode: barcode.Normalize(r.URL.Query().Get("code")),
		Date:    forms.Today(),
	}, map[string]any{"Staff": h.staffNames(""), "SubcategoryID": r.URL.Query().Get("sub")})
}

// UnlinkBarcode submits the unlink modal.
func (h *Modals) UnlinkBarcode(w http.ResponseWriter, r *http.Request) {
	sub := r.FormValue("sub")
	m := &forms.Modal[*forms.UnlinkBarcode]{
		Form: &forms.UnlinkBarcode{
			Barcode: r.FormValue("barcode"),
			Name:    r.FormValue("name"),
			Date:    r.FormValue("date"),
			PIN:     r.FormValue("pin"),
		},
		Action: func(ctx context.Context, f *forms.UnlinkBarcode) error {
			return h.procs.UnlinkBarcode(ctx, f.Params())
		},
	}
	submit(h.renderer, w, r, "modal_unlink_barcode", m, func() map[string]any {
		return map[string]any{"Staff": h.staffNames(""), "SubcategoryID": sub}
	}, nil)
}
