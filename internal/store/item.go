// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"stockroom/internal/models"
)

// ItemListLimit caps how many items a sub-category page loads. Search runs
// over this loaded set.
const ItemListLimit = 200

// ItemStore reads items.
type ItemStore struct {
	db *sql.DB
}

// NewItemStore returns a new ItemStore.
func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

const itemColumns = `id, name, stock_count, search_text, subcategory_id, is_active`

func scanItem(scanner interface{ Scan(...any) error }) (*models.Item, error) {
	var it models.Item
	err := scanner.Scan(&it.ID, &it.Name, &it.StockCount, &it.SearchText, &it.SubcategoryID, &it.IsActive)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ListBySubcategory returns up to ItemListLimit active items of a
// sub-category, ordered by name.
func (s *ItemStore) ListBySubcategory(subcategoryID uuid.UUID) ([]models.Item, error) {
	rows, err := s.db.Query(`
		SELECT `+itemColumns+`
		FROM items
		WHERE subcategory_id = $1 AND is_active
		ORDER BY name
		LIMIT $2
	`, subcategoryID, ItemListLimit)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// FindByID retrieves an active item. Returns nil if not found.
func (s *ItemStore) FindByID(id uuid.UUID) (*models.Item, error) {
	row := s.db.QueryRow(`SELECT `+itemColumns+` FROM items WHERE id = $1 AND is_active`, id)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find item by id: %w", err)
	}
	return it, nil
}
