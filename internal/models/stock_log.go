// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StockLog is one append-only audit row written by the stock procedures.
type StockLog struct {
	ID            int64     `json:"id"`
	ItemID        uuid.UUID `json:"item_id"`
	BeforeCount   int       `json:"before_count"`
	AfterCount    int       `json:"after_count"`
	ChangeAmount  int       `json:"change_amount"`
	Action        string    `json:"action"`
	ChangedByName string    `json:"changed_by_name"`
	ChangedByDate time.Time `json:"changed_by_date"`
	ChangedAt     time.Time `json:"changed_at"`
	Note          *string   `json:"note,omitempty"`
}

// SignedChange formats ChangeAmount with an explicit sign, e.g. "+3" or "-2".
// Zero renders as "0".
func (l *StockLog) SignedChange() string {
	if l.ChangeAmount > 0 {
		return fmt.Sprintf("+%d", l.ChangeAmount)
	}
	return fmt.Sprintf("%d", l.ChangeAmount)
}

// Consistent reports whether the row's change equals after minus before.
func (l *StockLog) Consistent() bool {
	return l.ChangeAmount == l.AfterCount-l.BeforeCount
}
