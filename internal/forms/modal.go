// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package forms validates the mutation modals and drives their
// open/submit/close cycle. Every form is checked locally first; only a
// form that passes is handed to its procedure call, exactly once.
package forms

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrRejected is returned by Submit when local validation fails and no
// procedure call was made.
var ErrRejected = errors.New("form rejected before submission")

// Form is implemented by every modal form.
type Form interface {
	// Validate returns the message for the first rule the form breaks, or ""
	// when the form may be submitted.
	Validate() string

	// ClearPIN blanks the secret fields. Called whenever the modal opens.
	ClearPIN()
}

// Modal holds the state of one mutation dialog.
type Modal[F Form] struct {
	Open  bool
	Form  F
	Error string

	// Action performs the single procedure call for a valid form.
	Action func(ctx context.Context, f F) error

	// Refresh reloads whatever the caller shows behind the modal. Runs after
	// a successful Action only.
	Refresh func(ctx context.Context) error
}

// Show opens the modal with f. Any previous error is dropped and the PIN
// fields are cleared.
func (m *Modal[F]) Show(f F) {
	f.ClearPIN()
	m.Form = f
	m.Error = ""
	m.Open = true
}

// Close hides the modal without submitting.
func (m *Modal[F]) Close() {
	m.Open = false
	m.Error = ""
}

// Submit validates the form and, if it passes, runs Action once.
//
// On a validation failure Error holds the rule's message and ErrRejected
// is returned. On an Action failure the modal stays open with the form
// untouched and Error set to the backend message. On success the modal
// closes, the form is reset and Refresh runs.
func (m *Modal[F]) Submit(ctx context.Context) error {
	if msg := m.Form.Validate(); msg != "" {
		m.Error = msg
		return ErrRejected
	}

	if err := m.Action(ctx, m.Form); err != nil {
		m.Error = err.Error()
		return err
	}

	var zero F
	m.Form = zero
	m.Error = ""
	m.Open = false

	if m.Refresh != nil {
		if err := m.Refresh(ctx); err != nil {
			slog.Warn("refresh after submit failed", "error", err)
		}
	}
	return nil
}

// now is replaced in tests.
var now = time.Now

// Today returns the current local date as YYYY-MM-DD, the default for
// every date field.
func Today() string {
	return now().Format(dateLayout)
}
