package forms

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockroom/internal/procedures"
)

func validAddItem() *AddItem {
	return &AddItem{
		SubcategoryID: "11111111-1111-1111-1111-111111111111",
		Name:          "GU10 bulb",
		Tags:          "led warm",
		Stock:         "5",
		ChangedBy:     "Alice",
		Date:          "2026-10-15",
		PIN:           "123456",
	}
}

func TestModalShowClearsPINAndError(t *testing.T) {
	m := &Modal[*AddItem]{Error: "previous failure"}
	f := validAddItem()

	m.Show(f)

	if !m.Open {
		t.Error("modal should be open")
	}
	if m.Error != "" {
		t.Errorf("Error = %q, want cleared", m.Error)
	}
	if m.Form.PIN != "" {
		t.Errorf("PIN = %q, want cleared on open", m.Form.PIN)
	}
	if m.Form.Name != "GU10 bulb" {
		t.Error("Show should keep the other fields")
	}
}

func TestModalValidationFailureSkipsCall(t *testing.T) {
	calls := 0
	m := &Modal[*AddItem]{
		Action: func(context.Context, *AddItem) error { calls++; return nil },
	}
	m.Show(validAddItem())
	m.Form.PIN = "12" // too short

	err := m.Submit(context.Background())
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("Submit() = %v, want ErrRejected", err)
	}
	if calls != 0 {
		t.Errorf("procedure called %d times, want 0", calls)
	}
	if m.Error != "Owner's PIN must be 4 to 8 digits." {
		t.Errorf("Error = %q", m.Error)
	}
	if !m.Open {
		t.Error("modal should stay open")
	}
}

func TestModalRemoteFailureKeepsValues(t *testing.T) {
	calls := 0
	refreshed := false
	m := &Modal[*AddItem]{
		Action: func(context.Context, *AddItem) error {
			calls++
			return &procedures.Error{Message: "Invalid PIN"}
		},
		Refresh: func(context.Context) error { refreshed = true; return nil },
	}
	m.Show(validAddItem())
	m.Form.PIN = "999999"

	err := m.Submit(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("procedure called %d times, want exactly 1", calls)
	}
	if m.Error != "Invalid PIN" {
		t.Errorf("Error = %q, want the backend message verbatim", m.Error)
	}
	if !m.Open {
		t.Error("modal should stay open after a failed call")
	}
	if refreshed {
		t.Error("refresh must not run after a failure")
	}

	want := validAddItem()
	got := m.Form
	if got.Name != want.Name || got.Tags != want.Tags || got.Stock != want.Stock ||
		got.ChangedBy != want.ChangedBy || got.Date != want.Date || got.SubcategoryID != want.SubcategoryID {
		t.Errorf("form values changed after failure: %+v", got)
	}

	// Re-opening clears the PIN again.
	m.Show(m.Form)
	if m.Form.PIN != "" {
		t.Error("PIN should be cleared when the modal is reopened")
	}
}

func TestModalSuccessClosesAndRefreshes(t *testing.T) {
	var got *AddItem
	refreshed := 0
	m := &Modal[*AddItem]{
		Action:  func(_ context.Context, f *AddItem) error { got = f; return nil },
		Refresh: func(context.Context) error { refreshed++; return nil },
	}
	m.Show(validAddItem())
	m.Form.PIN = "123456"

	if err := m.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got == nil || got.Name != "GU10 bulb" {
		t.Fatalf("Action received %+v", got)
	}
	if m.Open {
		t.Error("modal should close on success")
	}
	if m.Form != nil {
		t.Error("form should be cleared on success")
	}
	if refreshed != 1 {
		t.Errorf("refresh ran %d times, want 1", refreshed)
	}
}

func TestModalRefreshFailureStillSucceeds(t *testing.T) {
	m := &Modal[*StaffName]{
		Action:  func(context.Context, *StaffName) error { return nil },
		Refresh: func(context.Context) error { return errors.New("db down") },
	}
	m.Show(&StaffName{Name: "Dana"})
	m.Form.PIN = "1234"

	if err := m.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if m.Open {
		t.Error("modal should close even if refresh fails")
	}
}

func TestToday(t *testing.T) {
	orig := now
	t.Cleanup(func() { now = orig })
	now = func() time.Time { return time.Date(2026, 3, 7, 23, 59, 0, 0, time.Local) }

	if got := Today(); got != "2026-03-07" {
		t.Errorf("Today() = %q, want %q", got, "2026-03-07")
	}
}
