package forms

import (
	"strings"

	"github.com/google/uuid"

	"stockroom/internal/barcode"
	"stockroom/internal/pin"
	"stockroom/internal/procedures"
)

// AddItem creates an item in a sub-category. When the modal was opened
// from a barcode miss, Barcode carries the scanned code and the item is
// linked to it in the same call.
type AddItem struct {
	SubcategoryID string
	Name          string
	Tags          string
	Stock         string
	ChangedBy     string
	Date          string
	PIN           string

	Barcode     string
	FromBarcode bool
}

func (f *AddItem) ClearPIN() { f.PIN = "" }

func (f *AddItem) Validate() string {
	if !validID(f.SubcategoryID) {
		return "No sub-category selected."
	}
	if blank(f.Name) {
		return "Item name is required."
	}
	if tooLong(f.Name, maxItemNameLen) {
		return "Item name is too long (max 200 characters)."
	}
	if blank(f.Tags) {
		return "Tags are required."
	}
	if tooLong(f.Tags, maxTagsLen) {
		return "Tags are too long (max 1,000 characters)."
	}
	if blank(f.ChangedBy) {
		return "Your name is required."
	}
	if !pin.ValidOwner(strings.TrimSpace(f.PIN)) {
		return "Owner's PIN must be 4 to 8 digits."
	}
	switch _, p := parseCount(f.Stock); p {
	case numberEmpty, numberNotNumeric:
		return "Initial stock is required."
	case numberNotFinite, numberNegative, numberFraction:
		return "Initial stock must be a whole number of 0 or more."
	case numberTooLarge:
		return "Initial stock is too large."
	}
	if blank(f.Date) {
		return "Date is required."
	}
	if !validDate(f.Date) {
		return "Date must be in YYYY-MM-DD format."
	}
	return ""
}

// UsesBarcode reports whether the submission should also link the code.
func (f *AddItem) UsesBarcode() bool {
	return f.FromBarcode && barcode.Normalize(f.Barcode) != ""
}

// Params converts a validated form into the procedure arguments.
func (f *AddItem) Params() procedures.NewItem {
	n, _ := parseCount(f.Stock)
	p := procedures.NewItem{
		Name:          strings.TrimSpace(f.Name),
		StockCount:    n,
		SubcategoryID: mustID(f.SubcategoryID),
		SearchText:    strings.TrimSpace(f.Tags),
		ChangedByName: strings.TrimSpace(f.ChangedBy),
		ChangedByDate: strings.TrimSpace(f.Date),
		PIN:           strings.TrimSpace(f.PIN),
	}
	if f.UsesBarcode() {
		p.Barcode = barcode.Normalize(f.Barcode)
	}
	return p
}

// DeleteItem soft-deletes an item after the operator types DELETE.
type DeleteItem struct {
	ItemID   string
	ItemName string
	Confirm  string
	PIN      string
}

func (f *DeleteItem) ClearPIN() {
	f.PIN = ""
	f.Confirm = ""
}

func (f *DeleteItem) Validate() string {
	if !validID(f.ItemID) {
		return "No item selected."
	}
	if f.Confirm != "DELETE" {
		return "Type DELETE to confirm."
	}
	if !pin.ValidAdmin(f.PIN) {
		return "PIN must be 4 digits."
	}
	return ""
}

// Target returns the item to delete. Only meaningful after Validate passes.
func (f *DeleteItem) Target() uuid.UUID { return mustID(f.ItemID) }
