// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package procedures

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// Procedure names as defined on the backend.
const (
	ProcUpdateStock         = "update_stock_with_pin"
	ProcAddItem             = "add_item_with_pin"
	ProcAddItemWithBarcode  = "add_item_and_link_barcode_with_pin"
	ProcDeleteItem          = "delete_item_with_pin"
	ProcChangeAdminPIN      = "change_admin_pin"
	ProcAddStaffName        = "add_staff_name_with_pin"
	ProcDeleteStaffName     = "delete_staff_name_with_pin"
	ProcAddSubcategory      = "add_subcategory_with_owner_pin"
	ProcDeactivateSubcat    = "deactivate_subcategory_with_owner_pin"
	ProcLinkBarcode         = "link_barcode_to_item_with_pin"
	ProcUnlinkBarcode       = "unlink_barcode_from_item_with_pin"
	ProcLookupBarcode       = "lookup_item_by_barcode"
	ProcConsumeStockWithUID = "consume_stock_with_uid"
)

// UpdateStock sets an item's stock count.
type UpdateStock struct {
	ItemID        uuid.UUID
	NewStock      int
	ChangedByName string
	ChangedByDate string
	PIN           string
	Note          *string
}

// NewItem describes an item to create. Barcode is only sent by
// AddItemWithBarcode.
type NewItem struct {
	Name          string
	StockCount    int
	SubcategoryID uuid.UUID
	SearchText    string
	Attributes    map[string]string
	ChangedByName string
	ChangedByDate string
	PIN           string
	Barcode       string
}

// ChangeAdminPIN replaces the admin PIN.
type ChangeAdminPIN struct {
	CurrentPIN    string
	NewPIN        string
	ChangedByName string
	ChangedByDate string
}

// BarcodeLink ties a barcode to an item. ItemID is ignored on unlink.
type BarcodeLink struct {
	Barcode       string
	ItemID        uuid.UUID
	ChangedByName string
	ChangedByDate string
	PIN           string
}

// ConsumeStock subtracts a quantity on behalf of a staff member identified
// by UID instead of a PIN.
type ConsumeStock struct {
	ItemID        uuid.UUID
	Quantity      int
	ChangedByName string
	StaffUID      string
	ChangedByDate string
}

func (c *Client) UpdateStock(ctx context.Context, p UpdateStock) error {
	return c.Call(ctx, ProcUpdateStock,
		Arg{"p_item_id", p.ItemID},
		Arg{"p_new_stock", p.NewStock},
		Arg{"p_changed_by_name", p.ChangedByName},
		Arg{"p_changed_by_date", p.ChangedByDate},
		Arg{"p_pin", p.PIN},
		Arg{"p_note", p.Note},
	)
}

func (c *Client) itemArgs(p NewItem) ([]Arg, error) {
	attrs := p.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return nil, err
	}
	return []Arg{
		{"p_name", p.Name},
		{"p_stock_count", p.StockCount},
		{"p_subcategory_id", p.SubcategoryID},
		{"p_search_text", p.SearchText},
		{"p_attributes", string(raw)},
		{"p_changed_by_name", p.ChangedByName},
		{"p_changed_by_date", p.ChangedByDate},
		{"p_pin", p.PIN},
	}, nil
}

func (c *Client) AddItem(ctx context.Context, p NewItem) error {
	args, err := c.itemArgs(p)
	if err != nil {
		return err
	}
	return c.Call(ctx, ProcAddItem, args...)
}

// AddItemWithBarcode creates the item and links p.Barcode to it in one call.
func (c *Client) AddItemWithBarcode(ctx context.Context, p NewItem) error {
	args, err := c.itemArgs(p)
	if err != nil {
		return err
	}
	args = append(args, Arg{"p_barcode_text", p.Barcode})
	return c.Call(ctx, ProcAddItemWithBarcode, args...)
}

func (c *Client) DeleteItem(ctx context.Context, itemID uuid.UUID, pin string) error {
	return c.Call(ctx, ProcDeleteItem,
		Arg{"p_item_id", itemID},
		Arg{"p_pin", pin},
	)
}

func (c *Client) ChangeAdminPIN(ctx context.Context, p ChangeAdminPIN) error {
	return c.Call(ctx, ProcChangeAdminPIN,
		Arg{"p_current_pin", p.CurrentPIN},
		Arg{"p_new_pin", p.NewPIN},
		Arg{"p_changed_by_name", p.ChangedByName},
		Arg{"p_changed_by_date", p.ChangedByDate},
	)
}

func (c *Client) AddStaffName(ctx context.Context, name, pin string) error {
	return c.Call(ctx, ProcAddStaffName, Arg{"p_name", name}, Arg{"p_pin", pin})
}

func (c *Client) DeleteStaffName(ctx context.Context, name, pin string) error {
	return c.Call(ctx, ProcDeleteStaffName, Arg{"p_name", name}, Arg{"p_pin", pin})
}

func (c *Client) AddSubcategory(ctx context.Context, parentID uuid.UUID, name, ownerPIN string) error {
	return c.Call(ctx, ProcAddSubcategory,
		Arg{"p_parent_id", parentID},
		Arg{"p_name", name},
		Arg{"p_owner_pin", ownerPIN},
	)
}

func (c *Client) DeactivateSubcategory(ctx context.Context, subcategoryID uuid.UUID, ownerPIN string) error {
	return c.Call(ctx, ProcDeactivateSubcat,
		Arg{"p_subcategory_id", subcategoryID},
		Arg{"p_owner_pin", ownerPIN},
	)
}

func (c *Client) LinkBarcode(ctx context.Context, p BarcodeLink) error {
	return c.Call(ctx, ProcLinkBarcode,
		Arg{"p_barcode_text", p.Barcode},
		Arg{"p_item_id", p.ItemID},
		Arg{"p_changed_by_name", p.ChangedByName},
		Arg{"p_changed_by_date", p.ChangedByDate},
		Arg{"p_pin", p.PIN},
	)
}

func (c *Client) UnlinkBarcode(ctx context.Context, p BarcodeLink) error {
	return c.Call(ctx, ProcUnlinkBarcode,
		Arg{"p_barcode_text", p.Barcode},
		Arg{"p_changed_by_name", p.ChangedByName},
		Arg{"p_changed_by_date", p.ChangedByDate},
		Arg{"p_pin", p.PIN},
	)
}

func (c *Client) ConsumeStock(ctx context.Context, p ConsumeStock) error {
	return c.Call(ctx, ProcConsumeStockWithUID,
		Arg{"p_item_id", p.ItemID},
		Arg{"p_qty_used", p.Quantity},
		Arg{"p_changed_by_name", p.ChangedByName},
		Arg{"p_staff_uid", p.StaffUID},
		Arg{"p_changed_by_date", p.ChangedByDate},
	)
}

// LookupBarcode returns the lookup result as raw JSON: nil, one object or
// an array of objects, whatever the procedure's declared return type.
func (c *Client) LookupBarcode(ctx context.Context, code string) ([]byte, error) {
	return c.CallJSON(ctx, ProcLookupBarcode, Arg{"p_barcode_text", code})
}
