// Package location implements the containment graph over items: placing an
// item inside another item, walking the resulting container chain, and the
// append-only ledger of past placements.
//
// The engine never talks to SQL directly. It loads and saves records through
// the Store interface, which keeps the traversal logic independent of the
// persistence layer and lets tests seed arbitrary (even corrupted) graphs.
package location

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/shramba/internal/model"
)

// Store is the persistence surface the engine needs. Lookups return nil
// (not an error) for absent records.
type Store interface {
	// Item returns the item with the given id, including soft-deleted ones,
	// or nil if no such item exists.
	Item(ctx context.Context, id string) (*model.Item, error)

	// ContainedIn returns the non-deleted items whose current location is
	// containerID.
	ContainedIn(ctx context.Context, containerID string) ([]model.Item, error)

	// SaveLocation persists an item's current location pointer and its
	// location_set_at timestamp. Returns ErrConflict if the item row is gone.
	SaveLocation(ctx context.Context, item *model.Item) error

	// AppendHistory adds one immutable ledger entry.
	AppendHistory(ctx context.Context, entry *model.LocationHistory) error

	// HistoryForItem returns ledger entries for an item, newest first.
	// Calling it again re-reads current state.
	HistoryForItem(ctx context.Context, itemID string) ([]model.LocationHistory, error)

	// WithTx runs fn against a store whose writes commit as one atomic unit.
	WithTx(ctx context.Context, fn func(Store) error) error
}

// Engine validates and applies location changes and answers containment
// queries. It holds no item state between calls; every operation re-reads
// the store.
type Engine struct {
	store Store
	now   func() time.Time

	// Per-item locks serialize the read-validate-write sequence of a move.
	// Moves of unrelated items do not contend.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewEngine creates an engine over the given store.
func NewEngine(store Store) *Engine {
	return &Engine{
		store: store,
		now:   time.Now,
		locks: make(map[string]*sync.Mutex),
	}
}

func (e *Engine) lockItem(id string) *sync.Mutex {
	e.mu.Lock()
	l, ok := e.locks[id]
	if !ok {
		l = &sync.Mutex{}
		e.locks[id] = l
	}
	e.mu.Unlock()
	l.Lock()
	return l
}

// SetCurrentLocation places an item inside another item, or clears its
// location when containerID is empty. Validation short-circuits in order:
// item exists, container exists, not self, no cycle. When a non-nil location
// is superseded, the outgoing placement is appended to the ledger; the item
// update and the ledger append commit together or not at all. Setting the
// location an item already has succeeds without writing anything.
func (e *Engine) SetCurrentLocation(ctx context.Context, itemID, containerID string) error {
	l := e.lockItem(itemID)
	defer l.Unlock()

	err := e.setCurrentLocation(ctx, itemID, containerID)
	observeMove(err)
	return err
}

func (e *Engine) setCurrentLocation(ctx context.Context, itemID, containerID string) error {
	item, err := e.store.Item(ctx, itemID)
	if err != nil {
		return fmt.Errorf("loading item: %w", err)
	}
	if item == nil || item.DeletedAt != nil {
		return ErrItemNotFound
	}

	if containerID != "" {
		container, err := e.store.Item(ctx, containerID)
		if err != nil {
			return fmt.Errorf("loading container: %w", err)
		}
		if container == nil || container.DeletedAt != nil {
			return ErrContainerNotFound
		}
		if containerID == itemID {
			return ErrSelfReference
		}
		cyclic, err := e.wouldCycle(ctx, containerID, itemID)
		if err != nil {
			return err
		}
		if cyclic {
			return ErrCycleDetected
		}
	}

	if sameLocation(item.CurrentLocationID, containerID) {
		return nil
	}

	now := e.now().UTC()
	return e.store.WithTx(ctx, func(s Store) error {
		if item.CurrentLocationID != nil {
			// Record the placement being superseded, stamped with the time
			// the item originally arrived there.
			recordedAt := now
			if item.LocationSetAt != nil {
				recordedAt = *item.LocationSetAt
			}
			entry := &model.LocationHistory{
				ID:                 uuid.NewString(),
				ItemID:             itemID,
				PreviousLocationID: *item.CurrentLocationID,
				RecordedAt:         recordedAt,
			}
			if err := s.AppendHistory(ctx, entry); err != nil {
				return fmt.Errorf("appending history: %w", err)
			}
		}

		if containerID == "" {
			item.CurrentLocationID = nil
		} else {
			item.CurrentLocationID = &containerID
		}
		item.LocationSetAt = &now

		if err := s.SaveLocation(ctx, item); err != nil {
			return fmt.Errorf("saving location: %w", err)
		}
		return nil
	})
}

// wouldCycle reports whether itemID is reachable from startID by following
// current-location edges. The walk keeps a visited set so that a cycle
// already present in stored data cannot make it loop.
func (e *Engine) wouldCycle(ctx context.Context, startID, itemID string) (bool, error) {
	visited := make(map[string]bool)
	currentID := startID
	for {
		if currentID == itemID {
			return true, nil
		}
		if visited[currentID] {
			// Pre-existing cycle that does not involve itemID.
			return false, nil
		}
		visited[currentID] = true

		current, err := e.store.Item(ctx, currentID)
		if err != nil {
			return false, fmt.Errorf("walking container chain: %w", err)
		}
		if current == nil || current.CurrentLocationID == nil {
			return false, nil
		}
		currentID = *current.CurrentLocationID
	}
}

// Chain returns an item's containers ordered from its immediate container up
// to the root, or an empty chain if the item has no known location. The walk
// never loops: a repeated id (cyclic legacy data) or a dangling reference
// ends the chain at whatever was accumulated so far.
func (e *Engine) Chain(ctx context.Context, itemID string) ([]model.Item, error) {
	item, err := e.store.Item(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("loading item: %w", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	var chain []model.Item
	visited := map[string]bool{itemID: true}
	next := item.CurrentLocationID
	for next != nil {
		if visited[*next] {
			break
		}
		visited[*next] = true

		container, err := e.store.Item(ctx, *next)
		if err != nil {
			return nil, fmt.Errorf("walking chain: %w", err)
		}
		if container == nil {
			break
		}
		chain = append(chain, *container)
		next = container.CurrentLocationID
	}

	chainLength.Observe(float64(len(chain)))
	return chain, nil
}

// CurrentLocation returns the item directly containing itemID, or nil if it
// has no known location. A dangling location pointer also yields nil.
func (e *Engine) CurrentLocation(ctx context.Context, itemID string) (*model.Item, error) {
	item, err := e.store.Item(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("loading item: %w", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.CurrentLocationID == nil {
		return nil, nil
	}

	container, err := e.store.Item(ctx, *item.CurrentLocationID)
	if err != nil {
		return nil, fmt.Errorf("loading container: %w", err)
	}
	return container, nil
}

// Contents returns the items directly stored in containerID.
func (e *Engine) Contents(ctx context.Context, containerID string) ([]model.Item, error) {
	return e.store.ContainedIn(ctx, containerID)
}

// History returns an item's move ledger, newest first.
func (e *Engine) History(ctx context.Context, itemID string) ([]model.LocationHistory, error) {
	return e.store.HistoryForItem(ctx, itemID)
}

// sameLocation reports whether the stored pointer and the requested container
// describe the same placement. Empty containerID means "no location".
func sameLocation(current *string, containerID string) bool {
	if current == nil {
		return containerID == ""
	}
	return *current == containerID
}
