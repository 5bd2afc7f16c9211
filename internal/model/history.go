package model

import "time"

// LocationHistory is one entry of an item's move ledger. An entry records the
// container the item was stored in before a move, together with the time that
// placement originally happened. Entries are written once and never updated.
//
// Moves away from "no known location" produce no entry; only a non-nil
// location being superseded is logged. The item's current placement is always
// read from the item itself, not from the ledger.
type LocationHistory struct {
	ID                 string    `json:"id"`
	ItemID             string    `json:"item_id"`
	PreviousLocationID string    `json:"previous_location_id"`
	RecordedAt         time.Time `json:"recorded_at"`

	// Joined fields (not always populated).
	PreviousLocationName string `json:"previous_location_name,omitempty"`
}
