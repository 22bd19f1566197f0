// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"

	"github.com/google/uuid"
)

// Item is a stock-keeping unit inside a sub-category.
type Item struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	StockCount    int       `json:"stock_count"`
	SearchText    string    `json:"search_text"`
	SubcategoryID uuid.UUID `json:"subcategory_id"`
	IsActive      bool      `json:"is_active"`
}

// Haystack is the lowercased text an item search runs against.
func (i *Item) Haystack() string {
	return strings.ToLower(i.Name + " " + i.SearchText)
}

// Matches reports whether every whitespace-separated token of query occurs
// in the item's name or search text, case-insensitively. An empty query
// matches everything.
func (i *Item) Matches(query string) bool {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return true
	}
	hay := i.Haystack()
	for _, tok := range tokens {
		if !strings.Contains(hay, tok) {
			return false
		}
	}
	return true
}

// FilterItems returns the items matching query, preserving order.
func FilterItems(items []Item, query string) []Item {
	if strings.TrimSpace(query) == "" {
		return items
	}
	out := make([]Item, 0, len(items))
	for i := range items {
		if items[i].Matches(query) {
			out = append(out, items[i])
		}
	}
	return out
}

// FindItem returns the item with the given id from a loaded set, or nil.
func FindItem(items []Item, id uuid.UUID) *Item {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}
