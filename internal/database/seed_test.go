package database

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestSeedIdempotent(t *testing.T) {
	db := testDB(t)

	// Seed only writes into empty tables, so calling it twice must not
	// duplicate rows. The database is not cleared first because other test
	// packages may be running concurrently against it.
	if err := Seed(db, "1234"); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db, "1234"); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var pinRows int
	if err := db.QueryRow("SELECT COUNT(*) FROM owner_pin_settings").Scan(&pinRows); err != nil {
		t.Fatalf("count owner pin rows: %v", err)
	}
	if pinRows != 1 {
		t.Errorf("owner_pin_settings rows: got %d, want 1", pinRows)
	}

	var staffCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM staff_names").Scan(&staffCount); err != nil {
		t.Fatalf("count staff: %v", err)
	}
	if staffCount < 1 {
		t.Errorf("expected at least 1 staff name, got %d", staffCount)
	}

	var catCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&catCount); err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if catCount < 1 {
		t.Errorf("expected at least 1 category, got %d", catCount)
	}
}

func TestSeedOwnerPINIsHashed(t *testing.T) {
	db := testDB(t)
	if err := Seed(db, "1234"); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	var hash string
	if err := db.QueryRow("SELECT owner_pin_hash FROM owner_pin_settings WHERE id").Scan(&hash); err != nil {
		t.Fatalf("select pin hash: %v", err)
	}
	if hash == "1234" {
		t.Fatal("owner pin stored in plaintext")
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		t.Errorf("pin_hash is not a bcrypt hash: %v", err)
	}
}
