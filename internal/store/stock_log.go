// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"stockroom/internal/models"
)

// HistoryLimit is how many audit rows the item history view shows.
const HistoryLimit = 20

// StockLogStore reads the stock audit trail. Rows are written by the
// stock procedures only.
type StockLogStore struct {
	db *sql.DB
}

// NewStockLogStore returns a new StockLogStore.
func NewStockLogStore(db *sql.DB) *StockLogStore {
	return &StockLogStore{db: db}
}

// RecentForItem returns the latest HistoryLimit audit rows of an item,
// newest first.
func (s *StockLogStore) RecentForItem(itemID uuid.UUID) ([]models.StockLog, error) {
	rows, err := s.db.Query(`
		SELECT id, item_id, before_count, after_count, change_amount, action,
		       changed_by_name, changed_by_date, changed_at, note
		FROM stock_logs
		WHERE item_id = $1
		ORDER BY changed_at DESC
		LIMIT $2
	`, itemID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list stock logs: %w", err)
	}
	defer rows.Close()

	var logs []models.StockLog
	for rows.Next() {
		var l models.StockLog
		if err := rows.Scan(
			&l.ID, &l.ItemID, &l.BeforeCount, &l.AfterCount, &l.ChangeAmount, &l.Action,
			&l.ChangedByName, &l.ChangedByDate, &l.ChangedAt, &l.Note,
		); err != nil {
			return nil, fmt.Errorf("scan stock log: %w", err)
		}
		if !l.Consistent() {
			slog.Warn("stock log change does not match counts", "log_id", l.ID, "item_id", itemID,
				"before", l.BeforeCount, "after", l.AfterCount, "change", l.ChangeAmount)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
