package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/shramba/internal/model"
)

// itemColumns is the select list shared by all item queries. Keep in sync
// with scanItem.
const itemColumns = `i.id, i.name, i.description, i.item_type_id, i.unique_code, i.tags,
       i.image_mime, i.current_location_id, i.location_set_at,
       i.created_at, i.updated_at, i.deleted_at, t.name AS item_type_name`

const itemFrom = ` FROM items i LEFT JOIN item_types t ON t.id = i.item_type_id`

func scanItem(row rowScanner) (*model.Item, error) {
	item := &model.Item{}
	var description, itemTypeID, uniqueCode, imageMime, currentLocationID, typeName sql.NullString
	var locationSetAt sql.NullTime
	var tagsJSON string

	err := row.Scan(&item.ID, &item.Name, &description, &itemTypeID, &uniqueCode, &tagsJSON,
		&imageMime, &currentLocationID, &locationSetAt,
		&item.CreatedAt, &item.UpdatedAt, &item.DeletedAt, &typeName)
	if err != nil {
		return nil, err
	}

	item.Description = description.String
	item.ItemTypeID = itemTypeID.String
	item.UniqueCode = uniqueCode.String
	item.ImageMime = imageMime.String
	item.ItemTypeName = typeName.String
	if currentLocationID.Valid {
		item.CurrentLocationID = &currentLocationID.String
	}
	if locationSetAt.Valid {
		t := locationSetAt.Time
		item.LocationSetAt = &t
	}
	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &item.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags: %w", err)
		}
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	return item, nil
}

func encodeTags(tags []string) (string, error) {
	tags = model.NormalizeTags(tags)
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}
	return string(data), nil
}

// CreateItem creates a new item with a generated id and unique lookup code.
// The item starts with no known location.
func CreateItem(ctx context.Context, db DBTX, name, description, itemTypeID string, tags []string) (*model.Item, error) {
	item := &model.Item{Name: name, Description: description}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	tagsJSON, err := encodeTags(tags)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()

	// Codes collide rarely (31^8 space); retry a few times if they do.
	for attempt := 0; attempt < 5; attempt++ {
		code, err := generateUniqueCode()
		if err != nil {
			return nil, fmt.Errorf("generating unique code: %w", err)
		}

		_, err = db.ExecContext(ctx,
			`INSERT INTO items (id, name, description, item_type_id, unique_code, tags)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, name, nullable(description), nullable(itemTypeID), code, tagsJSON,
		)
		if err == nil {
			return GetItem(ctx, db, id)
		}
		if !isUniqueViolation(err, "items.unique_code") {
			return nil, fmt.Errorf("creating item: %w", err)
		}
	}
	return nil, fmt.Errorf("creating item: could not allocate a unique code")
}

// GetItem returns an item by ID, including soft-deleted items so that
// history and chains referencing them still resolve.
func GetItem(ctx context.Context, db DBTX, id string) (*model.Item, error) {
	row := db.QueryRowContext(ctx, `SELECT `+itemColumns+itemFrom+` WHERE i.id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// GetItemByCode returns a non-deleted item by its unique lookup code.
func GetItemByCode(ctx context.Context, db DBTX, code string) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+itemFrom+` WHERE i.unique_code = ? AND i.deleted_at IS NULL`, code)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item by code: %w", err)
	}
	return item, nil
}

// ListItems returns all non-deleted items, optionally filtered by a search
// term matched against name, description, tags and item type name.
func ListItems(ctx context.Context, db DBTX, search string) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + itemFrom + ` WHERE i.deleted_at IS NULL`
	var args []any

	if search != "" {
		query += ` AND (i.name LIKE ? OR i.description LIKE ? OR i.tags LIKE ? OR t.name LIKE ?)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}

	query += ` ORDER BY i.name`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListItemsIn returns the non-deleted items directly contained in the given
// item.
func ListItemsIn(ctx context.Context, db DBTX, containerID string) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+itemFrom+
			` WHERE i.current_location_id = ? AND i.deleted_at IS NULL ORDER BY i.name`,
		containerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing contained items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// CountItemsIn returns how many non-deleted items are directly contained in
// the given item.
func CountItemsIn(ctx context.Context, db DBTX, containerID string) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE current_location_id = ? AND deleted_at IS NULL`,
		containerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting contained items: %w", err)
	}
	return count, nil
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem updates an item's descriptive fields. The location pointer is
// only ever changed through the location engine.
func UpdateItem(ctx context.Context, db DBTX, id, name, description, itemTypeID string, tags []string) error {
	item := &model.Item{Name: name, Description: description}
	if err := item.Validate(); err != nil {
		return err
	}

	tagsJSON, err := encodeTags(tags)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, item_type_id = ?, tags = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		name, nullable(description), nullable(itemTypeID), tagsJSON, id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// DeleteItem soft-deletes an item. Deletion is refused while other items
// still list it as their current location; contents must be moved out first.
func DeleteItem(ctx context.Context, db DBTX, id string) error {
	count, err := CountItemsIn(ctx, db, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("deleting item: %w", ErrNotEmpty)
	}

	_, err = db.ExecContext(ctx,
		`UPDATE items SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// SetItemImage sets an item's image and thumbnail data.
func SetItemImage(ctx context.Context, db DBTX, id string, image, thumb []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET image = ?, image_thumb = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		image, thumb, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	return nil
}

// GetItemImage returns an item's image data and MIME type. When thumb is
// true the thumbnail variant is returned instead of the full image.
func GetItemImage(ctx context.Context, db DBTX, id string, thumb bool) ([]byte, string, error) {
	column := "image"
	if thumb {
		column = "image_thumb"
	}

	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT `+column+`, image_mime FROM items WHERE id = ?`, id,
	).Scan(&image, &mime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime.String, nil
}
