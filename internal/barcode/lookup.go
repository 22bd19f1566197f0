// Package barcode resolves scanned or typed barcodes against the item list
// currently on screen. The backend lookup answers with null, a single row
// or an array of rows; Decode normalizes that into a Match before any
// branching happens.
package barcode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Normalize strips every whitespace rune from a raw code, so "123 456" and
// "123456" resolve identically.
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// LinkedItem is the item a barcode is linked to, as reported by the lookup.
type LinkedItem struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	StockCount    int       `json:"stock_count"`
	SubcategoryID uuid.UUID `json:"subcategory_id"`
}

// Match is the normalized lookup result. Item is nil for no match.
type Match struct {
	Item *LinkedItem
}

// Found reports whether the lookup matched an item.
func (m Match) Found() bool {
	return m.Item != nil
}

// lookupRow accepts both "id" and "item_id" for the item key.
type lookupRow struct {
	ID            *uuid.UUID `json:"id"`
	ItemID        *uuid.UUID `json:"item_id"`
	Name          string     `json:"name"`
	ItemName      string     `json:"item_name"`
	StockCount    int        `json:"stock_count"`
	SubcategoryID uuid.UUID  `json:"subcategory_id"`
}

func (r lookupRow) item() *LinkedItem {
	id := r.ItemID
	if id == nil {
		id = r.ID
	}
	if id == nil {
		return nil
	}
	name := r.Name
	if name == "" {
		name = r.ItemName
	}
	return &LinkedItem{ID: *id, Name: name, StockCount: r.StockCount, SubcategoryID: r.SubcategoryID}
}

// Decode normalizes the raw lookup JSON. null, an empty array and an object
// without an item id are no match; an array yields its first row.
func Decode(raw []byte) (Match, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Match{}, nil
	}

	switch raw[0] {
	case '[':
		var rows []lookupRow
		if err := json.Unmarshal(raw, &rows); err != nil {
			return Match{}, fmt.Errorf("decode barcode lookup: %w", err)
		}
		if len(rows) == 0 {
			return Match{}, nil
		}
		return Match{Item: rows[0].item()}, nil
	case '{':
		var row lookupRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return Match{}, fmt.Errorf("decode barcode lookup: %w", err)
		}
		return Match{Item: row.item()}, nil
	default:
		return Match{}, fmt.Errorf("decode barcode lookup: unexpected %q", raw)
	}
}
