// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"stockroom/internal/models"
)

// StaffStore reads operator names.
type StaffStore struct {
	db *sql.DB
}

// NewStaffStore returns a new StaffStore.
func NewStaffStore(db *sql.DB) *StaffStore {
	return &StaffStore{db: db}
}

// ActiveNames returns active staff ordered by name. A non-empty role
// restricts the result to that role and must be one of the known roles.
func (s *StaffStore) ActiveNames(role models.StaffRole) ([]models.StaffName, error) {
	if role != "" && !role.Valid() {
		return nil, fmt.Errorf("list staff names: unknown role %q", role)
	}
	rows, err := s.db.Query(`
		SELECT name, staff_uid, staff_role, is_active
		FROM staff_names
		WHERE is_active AND ($1 = '' OR staff_role = $1)
		ORDER BY name
	`, string(role))
	if err != nil {
		return nil, fmt.Errorf("list staff names: %w", err)
	}
	defer rows.Close()

	var names []models.StaffName
	for rows.Next() {
		var n models.StaffName
		if err := rows.Scan(&n.Name, &n.StaffUID, &n.StaffRole, &n.IsActive); err != nil {
			return nil, fmt.Errorf("scan staff name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// UIDs returns name, UID and role of every active staff member ordered by
// name. Callers must have verified the owner PIN.
func (s *StaffStore) UIDs() ([]models.StaffUIDRow, error) {
	rows, err := s.db.Query(`
		SELECT name, staff_uid, staff_role
		FROM staff_names
		WHERE is_active
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list staff uids: %w", err)
	}
	defer rows.Close()

	out := []models.StaffUIDRow{}
	for rows.Next() {
		var r models.StaffUIDRow
		if err := rows.Scan(&r.Name, &r.StaffUID, &r.StaffRole); err != nil {
			return nil, fmt.Errorf("scan staff uid: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
