package barcode

import (
	"context"

	"stockroom/internal/models"
)

// State is a step of the resolve flow.
type State string

const (
	StateIdle             State = "idle"
	StateChecking         State = "checking"
	StateFoundInList      State = "found_in_list"
	StateFoundAdminPrompt State = "found_admin_prompt"
	StateNotFound         State = "not_found"
	StateLinkedElsewhere  State = "linked_elsewhere"
	StateError            State = "error"
)

// Action is an operator affordance offered for a result.
type Action string

const (
	ActionAddItem Action = "add_item"
	ActionLink    Action = "link_existing"
)

// Lookuper queries the backend for the item a barcode is linked to and
// returns the raw JSON result.
type Lookuper interface {
	LookupBarcode(ctx context.Context, code string) ([]byte, error)
}

// Result is the outcome of resolving one code. Only the fields relevant
// to State are set.
type Result struct {
	State State
	Code  string

	// Item is the matched row from the loaded set for found states.
	Item *models.Item

	// SearchText is what the item list's search box should show.
	SearchText string

	// ViaBarcode marks that the update-stock modal was opened by a scan
	// and should offer to unlink the code.
	ViaBarcode bool

	Actions []Action
	Message string
}

// Offers reports whether a is among the result's actions.
func (r Result) Offers(a Action) bool {
	for _, x := range r.Actions {
		if x == a {
			return true
		}
	}
	return false
}

// Resolver runs the resolve flow against a Lookuper.
type Resolver struct {
	lookup Lookuper
}

// NewResolver returns a Resolver backed by l.
func NewResolver(l Lookuper) *Resolver {
	return &Resolver{lookup: l}
}

// Resolve looks up raw against the backend and classifies the result
// against the items currently loaded. Each call starts from idle, so
// resolving the same code twice with nothing changed gives equal results.
func (r *Resolver) Resolve(ctx context.Context, raw string, loaded []models.Item, adminMode bool) Result {
	code := Normalize(raw)
	if code == "" {
		return Result{State: StateIdle}
	}

	// checking
	body, err := r.lookup.LookupBarcode(ctx, code)
	if err != nil {
		return Result{State: StateError, Code: code, Message: err.Error()}
	}
	match, err := Decode(body)
	if err != nil {
		return Result{State: StateError, Code: code, Message: err.Error()}
	}

	if !match.Found() {
		res := Result{
			State:   StateNotFound,
			Code:    code,
			Message: "No item is linked to barcode " + code + ".",
		}
		if adminMode {
			res.Actions = []Action{ActionAddItem, ActionLink}
		}
		return res
	}

	item := models.FindItem(loaded, match.Item.ID)
	if item == nil {
		name := match.Item.Name
		if name == "" {
			name = "another item"
		}
		return Result{
			State:   StateLinkedElsewhere,
			Code:    code,
			Message: "Barcode " + code + " is linked to " + name + " in a different sub-category.",
		}
	}

	res := Result{
		State:      StateFoundInList,
		Code:       code,
		Item:       item,
		SearchText: item.Name,
	}
	if adminMode {
		res.State = StateFoundAdminPrompt
		res.ViaBarcode = true
	}
	return res
}
