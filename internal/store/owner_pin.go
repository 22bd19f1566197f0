// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
)

// OwnerPINStore reads the singleton owner PIN hash.
type OwnerPINStore struct {
	db *sql.DB
}

// NewOwnerPINStore returns a new OwnerPINStore.
func NewOwnerPINStore(db *sql.DB) *OwnerPINStore {
	return &OwnerPINStore{db: db}
}

// Hash returns the stored bcrypt hash of the owner PIN. Returns "" with a
// nil error when the settings row is missing or empty.
func (s *OwnerPINStore) Hash() (string, error) {
	var hash sql.NullString
	err := s.db.QueryRow(`SELECT owner_pin_hash FROM owner_pin_settings WHERE id = TRUE`).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get owner pin hash: %w", err)
	}
	return hash.String, nil
}
