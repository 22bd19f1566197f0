// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and the small amount of pure logic that belongs to them.
package models

import "github.com/google/uuid"

// Category is a node of the two-level catalog tree. A nil ParentID marks a
// top-level category; its children are the sub-categories items live in.
type Category struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id"`
	IsActive bool       `json:"is_active"`
}

// IsTopLevel reports whether the category has no parent.
func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil
}
