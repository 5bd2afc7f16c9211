// Package query assembles composite read views on top of the item store and
// the location engine. It holds no state and enforces no invariants of its
// own; every answer is a pure composition of engine and store primitives.
package query

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/shramba/internal/location"
	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// Overview is the fixed composite view of a single item: the item itself,
// its resolved type, where it is (immediate container plus the full chain to
// the root), how many items it directly contains, and its move history.
// Optional pieces are simply absent; a missing type record or a dangling
// location pointer never fails the whole view.
type Overview struct {
	Item          model.Item              `json:"item"`
	ItemType      *model.ItemType         `json:"item_type,omitempty"`
	Location      *model.Item             `json:"location,omitempty"`
	Chain         []model.Item            `json:"chain"`
	ContentsCount int                     `json:"contents_count"`
	History       []model.LocationHistory `json:"history"`
}

// Facade answers composite queries for presentation layers.
type Facade struct {
	db     *sql.DB
	engine *location.Engine
}

// NewFacade creates a façade over the given database and engine.
func NewFacade(db *sql.DB, engine *location.Engine) *Facade {
	return &Facade{db: db, engine: engine}
}

// ItemOverview returns the composite view for an item by id.
func (f *Facade) ItemOverview(ctx context.Context, id string) (*Overview, error) {
	item, err := store.GetItem(ctx, f.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, location.ErrItemNotFound
	}
	return f.overview(ctx, item)
}

// ItemOverviewByCode returns the composite view for an item looked up by its
// unique code, the path taken when a QR label is scanned.
func (f *Facade) ItemOverviewByCode(ctx context.Context, code string) (*Overview, error) {
	item, err := store.GetItemByCode(ctx, f.db, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, location.ErrItemNotFound
	}
	return f.overview(ctx, item)
}

func (f *Facade) overview(ctx context.Context, item *model.Item) (*Overview, error) {
	o := &Overview{
		Item:    *item,
		Chain:   []model.Item{},
		History: []model.LocationHistory{},
	}

	if item.ItemTypeID != "" {
		t, err := store.GetItemType(ctx, f.db, item.ItemTypeID)
		if err != nil {
			return nil, fmt.Errorf("resolving item type: %w", err)
		}
		// A dangling type reference leaves ItemType nil rather than failing.
		o.ItemType = t
	}

	chain, err := f.engine.Chain(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if len(chain) > 0 {
		loc := chain[0]
		o.Location = &loc
		o.Chain = chain
	}

	count, err := store.CountItemsIn(ctx, f.db, item.ID)
	if err != nil {
		return nil, err
	}
	o.ContentsCount = count

	history, err := f.engine.History(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if history != nil {
		o.History = history
	}

	return o, nil
}
