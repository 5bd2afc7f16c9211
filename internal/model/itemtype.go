package model

import (
	"fmt"
	"strings"
	"time"
)

// MaxItemTypeNameLen limits item type names.
const MaxItemTypeNameLen = 50

// ItemType is a simple classification record for items.
type ItemType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks the name against its limit.
func (t *ItemType) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Msg: "name required"}
	}
	if len(t.Name) > MaxItemTypeNameLen {
		return &ValidationError{Msg: fmt.Sprintf("name exceeds %d characters", MaxItemTypeNameLen)}
	}
	return nil
}
