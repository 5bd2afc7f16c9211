package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS item_types (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_item_types_name ON item_types(name);

CREATE TABLE IF NOT EXISTS items (
    id                  TEXT PRIMARY KEY,
    name                TEXT NOT NULL,
    description         TEXT,
    item_type_id        TEXT REFERENCES item_types(id),
    unique_code         TEXT,
    tags                TEXT NOT NULL DEFAULT '[]',
    image               BLOB,
    image_thumb         BLOB,
    image_mime          TEXT,
    current_location_id TEXT REFERENCES items(id),
    location_set_at     DATETIME,
    created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at          DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_items_unique_code
    ON items(unique_code) WHERE unique_code IS NOT NULL;

CREATE INDEX IF NOT EXISTS idx_items_current_location
    ON items(current_location_id);

CREATE TABLE IF NOT EXISTS location_history (
    id                   TEXT PRIMARY KEY,
    item_id              TEXT NOT NULL REFERENCES items(id),
    previous_location_id TEXT NOT NULL REFERENCES items(id),
    recorded_at          DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_location_history_item
    ON location_history(item_id, recorded_at DESC);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
