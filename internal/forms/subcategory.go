package forms

import (
	"strings"

	"github.com/google/uuid"

	"stockroom/internal/pin"
)

// Subcategory adds a sub-category under ParentID, or with Remove set,
// deactivates SubcategoryID.
type Subcategory struct {
	ParentID      string
	Name          string
	SubcategoryID string
	PIN           string
	Remove        bool
}

func (f *Subcategory) ClearPIN() { f.PIN = "" }

func (f *Subcategory) Validate() string {
	if !validID(f.ParentID) {
		return "No category selected."
	}
	if !pin.ValidOwner(strings.TrimSpace(f.PIN)) {
		return "Owner PIN must be 4 to 8 digits."
	}
	if f.Remove {
		if !validID(f.SubcategoryID) {
			return "Select a subcategory to remove."
		}
		return ""
	}
	if blank(f.Name) {
		return "Enter a subcategory name."
	}
	return ""
}

// Parent returns the parsed parent id of a validated form.
func (f *Subcategory) Parent() uuid.UUID { return mustID(f.ParentID) }

// Target returns the parsed sub-category id of a validated remove form.
func (f *Subcategory) Target() uuid.UUID { return mustID(f.SubcategoryID) }
