// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides read access to the inventory tables. Mutations go
// through the backend's stored procedures (see package procedures); the
// only writes issued here are the PDF library rows.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"stockroom/internal/models"
)

// CategoryStore reads the two-level category tree.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, parent_id, is_active`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	if err := scanner.Scan(&c.ID, &c.Name, &c.ParentID, &c.IsActive); err != nil {
		return nil, err
	}
	return &c, nil
}

// TopLevel returns the active categories without a parent, ordered by name.
func (s *CategoryStore) TopLevel() ([]models.Category, error) {
	return s.list(`
		SELECT `+categoryColumns+`
		FROM categories
		WHERE parent_id IS NULL AND is_active
		ORDER BY name
	`)
}

// Children returns the active sub-categories of parentID, ordered by name.
func (s *CategoryStore) Children(parentID uuid.UUID) ([]models.Category, error) {
	return s.list(`
		SELECT `+categoryColumns+`
		FROM categories
		WHERE parent_id = $1 AND is_active
		ORDER BY name
	`, parentID)
}

// FindByID retrieves an active category. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND is_active`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

func (s *CategoryStore) list(query string, args ...any) ([]models.Category, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, *c)
	}
	return cats, rows.Err()
}
