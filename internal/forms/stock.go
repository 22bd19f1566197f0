package forms

import (
	"strings"

	"stockroom/internal/barcode"
	"stockroom/internal/pin"
	"stockroom/internal/procedures"
)

// UpdateStock sets an item's stock to a new absolute count.
type UpdateStock struct {
	ItemID   string
	ItemName string
	NewStock string
	Name     string
	Date     string
	PIN      string
	Note     string

	// Barcode is set when the modal was opened from a scan; the modal then
	// offers to unlink it.
	Barcode string
}

// ViaBarcode reports whether the modal was opened from a barcode scan.
func (f *UpdateStock) ViaBarcode() bool {
	return barcode.Normalize(f.Barcode) != ""
}

func (f *UpdateStock) ClearPIN() { f.PIN = "" }

func (f *UpdateStock) Validate() string {
	if !validID(f.ItemID) {
		return "No item selected."
	}
	switch _, p := parseCount(f.NewStock); p {
	case numberEmpty:
		return "New stock is required."
	case numberNotNumeric:
		return "New stock must be a number."
	case numberNotFinite:
		return "New stock must be a finite number."
	case numberNegative:
		return "New stock cannot be negative."
	case numberFraction:
		return "New stock must be a whole number."
	case numberTooLarge:
		return "New stock is too large."
	}
	if tooShort(f.Name, minOperatorName) {
		return "Your name is required."
	}
	if blank(f.Date) {
		return "Date is required."
	}
	if !validDate(f.Date) {
		return "Date must be in YYYY-MM-DD format."
	}
	if tooLong(f.Note, maxNoteLen) {
		return "Note is too long (max 500 characters)."
	}
	if !pin.ValidAdmin(f.PIN) {
		return "PIN must be 4 digits."
	}
	return ""
}

// Params converts a validated form into the procedure arguments.
func (f *UpdateStock) Params() procedures.UpdateStock {
	n, _ := parseCount(f.NewStock)
	return procedures.UpdateStock{
		ItemID:        mustID(f.ItemID),
		NewStock:      n,
		ChangedByName: strings.TrimSpace(f.Name),
		ChangedByDate: strings.TrimSpace(f.Date),
		PIN:           f.PIN,
		Note:          optional(f.Note),
	}
}

// ConsumeStock is the public "used some" form shown when admin mode is off.
// The staff UID stands in for a PIN.
type ConsumeStock struct {
	ItemID   string
	ItemName string
	Name     string
	UID      string
	Quantity string
}

func (f *ConsumeStock) ClearPIN() { f.UID = "" }

func (f *ConsumeStock) Validate() string {
	if !validID(f.ItemID) {
		return "No item selected."
	}
	if blank(f.Name) {
		return "Name is required."
	}
	if blank(f.UID) {
		return "UID is required."
	}
	q, p := parseCount(f.Quantity)
	if p == numberFraction {
		return "Quantity must be a whole number."
	}
	if p != numberOK || q <= 0 {
		return "Quantity must be more than 0."
	}
	return ""
}

// Params converts a validated form into the procedure arguments. The date
// is always today.
func (f *ConsumeStock) Params() procedures.ConsumeStock {
	q, _ := parseCount(f.Quantity)
	return procedures.ConsumeStock{
		ItemID:        mustID(f.ItemID),
		Quantity:      q,
		ChangedByName: strings.TrimSpace(f.Name),
		StaffUID:      strings.TrimSpace(f.UID),
		ChangedByDate: Today(),
	}
}
