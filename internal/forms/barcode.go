package forms

import (
	"strings"

	"stockroom/internal/barcode"
	"stockroom/internal/pin"
	"stockroom/internal/procedures"
)

// LinkBarcode attaches a code to an existing item.
type LinkBarcode struct {
	Barcode string
	ItemID  string
	Name    string
	Date    string
	PIN     string
}

func (f *LinkBarcode) ClearPIN() { f.PIN = "" }

func (f *LinkBarcode) Validate() string {
	if barcode.Normalize(f.Barcode) == "" {
		return "Barcode is required."
	}
	if !validID(f.ItemID) {
		return "Select an item to link."
	}
	return operatorRules(f.Name, f.Date, f.PIN)
}

// Params converts a validated form into the procedure arguments.
func (f *LinkBarcode) Params() procedures.BarcodeLink {
	return procedures.BarcodeLink{
		Barcode:       barcode.Normalize(f.Barcode),
		ItemID:        mustID(f.ItemID),
		ChangedByName: strings.TrimSpace(f.Name),
		ChangedByDate: strings.TrimSpace(f.Date),
		PIN:           f.PIN,
	}
}

// UnlinkBarcode detaches a code from whatever item it is linked to.
type UnlinkBarcode struct {
	Barcode string
	Name    string
	Date    string
	PIN     string
}

func (f *UnlinkBarcode) ClearPIN() { f.PIN = "" }

func (f *UnlinkBarcode) Validate() string {
	if barcode.Normalize(f.Barcode) == "" {
		return "Barcode is required."
	}
	return operatorRules(f.Name, f.Date, f.PIN)
}

// Params converts a validated form into the procedure arguments.
func (f *UnlinkBarcode) Params() procedures.BarcodeLink {
	return procedures.BarcodeLink{
		Barcode:       barcode.Normalize(f.Barcode),
		ChangedByName: strings.TrimSpace(f.Name),
		ChangedByDate: strings.TrimSpace(f.Date),
		PIN:           f.PIN,
	}
}

// operatorRules checks the name/date/admin PIN trio shared by the barcode
// forms.
func operatorRules(name, date, p string) string {
	if tooShort(name, minOperatorName) {
		return "Your name is required."
	}
	if blank(date) {
		return "Date is required."
	}
	if !validDate(date) {
		return "Date must be in YYYY-MM-DD format."
	}
	if !pin.ValidAdmin(p) {
		return "PIN must be 4 digits."
	}
	return ""
}
