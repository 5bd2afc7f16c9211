package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/shramba/internal/location"
	"github.com/erazemk/shramba/internal/model"
)

// LocationStore adapts the SQLite-backed store functions to the
// location.Store interface consumed by the graph engine. The zero value is
// not usable; create one with NewLocationStore.
type LocationStore struct {
	// db is the root handle, nil when this store is scoped to a transaction.
	db *sql.DB
	// q is what queries run against: the root handle or an open transaction.
	q DBTX
}

// NewLocationStore creates a location store over the given database.
func NewLocationStore(db *sql.DB) *LocationStore {
	return &LocationStore{db: db, q: db}
}

func (s *LocationStore) Item(ctx context.Context, id string) (*model.Item, error) {
	return GetItem(ctx, s.q, id)
}

func (s *LocationStore) ContainedIn(ctx context.Context, containerID string) ([]model.Item, error) {
	return ListItemsIn(ctx, s.q, containerID)
}

// SaveLocation persists the item's location pointer and timestamp. A write
// that matches no row means the item vanished underneath the caller, which
// surfaces as a conflict.
func (s *LocationStore) SaveLocation(ctx context.Context, item *model.Item) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE items SET current_location_id = ?, location_set_at = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		item.CurrentLocationID, item.LocationSetAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("saving item location: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("saving item location: %w", err)
	}
	if n == 0 {
		return location.ErrConflict
	}
	return nil
}

func (s *LocationStore) AppendHistory(ctx context.Context, entry *model.LocationHistory) error {
	return AppendLocationHistory(ctx, s.q, entry)
}

func (s *LocationStore) HistoryForItem(ctx context.Context, itemID string) ([]model.LocationHistory, error) {
	return ListLocationHistory(ctx, s.q, itemID)
}

// WithTx runs fn against a transaction-scoped store. The item update and the
// ledger append of a move commit together or roll back together; SQLite's
// native transactions make a compensating rollback unnecessary. Nested calls
// reuse the already-open transaction.
func (s *LocationStore) WithTx(ctx context.Context, fn func(location.Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&LocationStore{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing location change: %w", err)
	}
	return nil
}
