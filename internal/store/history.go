package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/shramba/internal/model"
)

// AppendLocationHistory adds one immutable ledger entry. Entries are never
// updated or deleted.
func AppendLocationHistory(ctx context.Context, db DBTX, e *model.LocationHistory) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO location_history (id, item_id, previous_location_id, recorded_at)
		 VALUES (?, ?, ?, ?)`,
		e.ID, e.ItemID, e.PreviousLocationID, e.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("appending location history: %w", err)
	}
	return nil
}

// ListLocationHistory returns an item's ledger entries, newest first, with
// the previous location's name joined in.
func ListLocationHistory(ctx context.Context, db DBTX, itemID string) ([]model.LocationHistory, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT lh.id, lh.item_id, lh.previous_location_id, lh.recorded_at,
		        p.name AS previous_location_name
		 FROM location_history lh
		 LEFT JOIN items p ON p.id = lh.previous_location_id
		 WHERE lh.item_id = ?
		 ORDER BY lh.recorded_at DESC, lh.id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing location history: %w", err)
	}
	defer rows.Close()

	var entries []model.LocationHistory
	for rows.Next() {
		var e model.LocationHistory
		var prevName sql.NullString
		if err := rows.Scan(&e.ID, &e.ItemID, &e.PreviousLocationID, &e.RecordedAt, &prevName); err != nil {
			return nil, fmt.Errorf("scanning location history: %w", err)
		}
		e.PreviousLocationName = prevName.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
