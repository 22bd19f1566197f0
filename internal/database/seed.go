package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// sampleStaff is inserted on first run so the operator dropdowns are usable
// before anyone has been added through the manage-names modal.
var sampleStaff = []struct {
	Name string
	UID  string
	Role string
}{
	{"Alice", "S-0001", "fulltimer"},
	{"Bob", "S-0002", "parttimer"},
	{"Chloe", "S-0003", "intern"},
}

// Seed populates the database with initial development data: the owner PIN
// hash, a few staff names and one category tree with a sample item. Each
// part is skipped when its table already holds rows.
func Seed(db *sql.DB, ownerPIN string) error {
	if err := seedOwnerPIN(db, ownerPIN); err != nil {
		return err
	}
	if err := seedStaff(db); err != nil {
		return err
	}
	return seedCatalog(db)
}

func seedOwnerPIN(db *sql.DB, ownerPIN string) error {
	var exists bool
	if err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM owner_pin_settings)").Scan(&exists); err != nil {
		return fmt.Errorf("seed check owner pin: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(ownerPIN), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	if _, err := db.Exec(
		"INSERT INTO owner_pin_settings (id, owner_pin_hash) VALUES (TRUE, $1)", string(hash),
	); err != nil {
		return fmt.Errorf("seed insert owner pin: %w", err)
	}

	slog.Info("database seeded with owner pin", "pin", ownerPIN)
	return nil
}

func seedStaff(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM staff_names").Scan(&count); err != nil {
		return fmt.Errorf("seed check staff: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, s := range sampleStaff {
		if _, err := db.Exec(
			"INSERT INTO staff_names (name, staff_uid, staff_role) VALUES ($1, $2, $3)",
			s.Name, s.UID, s.Role,
		); err != nil {
			return fmt.Errorf("seed insert staff %s: %w", s.Name, err)
		}
	}

	slog.Info("database seeded with staff names", "count", len(sampleStaff))
	return nil
}

func seedCatalog(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	var parentID, subID string
	if err := tx.QueryRow(
		"INSERT INTO categories (name) VALUES ($1) RETURNING id", "Lighting",
	).Scan(&parentID); err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}
	if err := tx.QueryRow(
		"INSERT INTO categories (name, parent_id) VALUES ($1, $2) RETURNING id", "Bulbs", parentID,
	).Scan(&subID); err != nil {
		return fmt.Errorf("seed insert subcategory: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO items (name, stock_count, search_text, subcategory_id) VALUES ($1, $2, $3, $4)",
		"GU10 bulb", 5, "gu10 led warm white", subID,
	); err != nil {
		return fmt.Errorf("seed insert item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with sample catalog")
	return nil
}
