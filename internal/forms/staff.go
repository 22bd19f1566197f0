package forms

import (
	"strings"

	"stockroom/internal/pin"
	"stockroom/internal/procedures"
)

// StaffName adds or removes an operator name. Remove selects between the
// two procedures.
type StaffName struct {
	Name   string
	PIN    string
	Remove bool
}

func (f *StaffName) ClearPIN() { f.PIN = "" }

func (f *StaffName) Validate() string {
	if !pin.ValidAdmin(strings.TrimSpace(f.PIN)) {
		return "PIN must be 4 digits."
	}
	if blank(f.Name) {
		if f.Remove {
			return "Select a name to delete."
		}
		return "Enter a name."
	}
	return ""
}

// ChangePIN replaces the admin PIN.
type ChangePIN struct {
	CurrentPIN string
	NewPIN     string
	Name       string
	Date       string
}

func (f *ChangePIN) ClearPIN() {
	f.CurrentPIN = ""
	f.NewPIN = ""
}

func (f *ChangePIN) Validate() string {
	if !pin.ValidAdmin(f.CurrentPIN) {
		return "Current PIN must be 4 digits."
	}
	if !pin.ValidAdmin(f.NewPIN) {
		return "New PIN must be 4 digits."
	}
	if blank(f.Name) {
		return "Your name is required."
	}
	if blank(f.Date) {
		return "Date is required."
	}
	if !validDate(f.Date) {
		return "Date must be in YYYY-MM-DD format."
	}
	return ""
}

// Params converts a validated form into the procedure arguments.
func (f *ChangePIN) Params() procedures.ChangeAdminPIN {
	return procedures.ChangeAdminPIN{
		CurrentPIN:    f.CurrentPIN,
		NewPIN:        f.NewPIN,
		ChangedByName: strings.TrimSpace(f.Name),
		ChangedByDate: strings.TrimSpace(f.Date),
	}
}
