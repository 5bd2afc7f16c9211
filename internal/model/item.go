package model

import (
	"fmt"
	"strings"
	"time"
)

// Descriptive field limits.
const (
	MaxItemNameLen        = 100
	MaxItemDescriptionLen = 500
)

// UniqueCodeLen is the length of the alphanumeric lookup code printed on
// QR labels. Legacy records may not have a code.
const UniqueCodeLen = 8

// Item represents a physical item. Items double as containers: an item's
// CurrentLocationID points at the item it is currently stored in, nil meaning
// the location is unknown. The graph formed by these edges must stay acyclic;
// the location engine enforces that on every move.
type Item struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	ItemTypeID        string     `json:"item_type_id,omitempty"`
	UniqueCode        string     `json:"unique_code,omitempty"`
	Tags              []string   `json:"tags"`
	ImageMime         string     `json:"image_mime,omitempty"`
	CurrentLocationID *string    `json:"current_location_id,omitempty"`
	LocationSetAt     *time.Time `json:"location_set_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`

	// Joined fields (not always populated).
	ItemTypeName string `json:"item_type_name,omitempty"`
}

// ValidationError reports a field constraint violation on user-supplied data.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validate checks the descriptive fields against their limits.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return &ValidationError{Msg: "name required"}
	}
	if len(i.Name) > MaxItemNameLen {
		return &ValidationError{Msg: fmt.Sprintf("name exceeds %d characters", MaxItemNameLen)}
	}
	if len(i.Description) > MaxItemDescriptionLen {
		return &ValidationError{Msg: fmt.Sprintf("description exceeds %d characters", MaxItemDescriptionLen)}
	}
	return nil
}

// NormalizeTags trims whitespace and drops empty tags, preserving order.
func NormalizeTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
