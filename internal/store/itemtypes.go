package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/shramba/internal/model"
)

// CreateItemType creates a new item type.
func CreateItemType(ctx context.Context, db DBTX, name, description string) (*model.ItemType, error) {
	t := &model.ItemType{Name: name, Description: description}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO item_types (id, name, description) VALUES (?, ?, ?)`,
		id, name, nullable(description),
	)
	if isUniqueViolation(err, "item_types.name") {
		return nil, &model.ValidationError{Msg: "item type name already exists"}
	}
	if err != nil {
		return nil, fmt.Errorf("creating item type: %w", err)
	}

	return GetItemType(ctx, db, id)
}

// GetItemType returns an item type by ID.
func GetItemType(ctx context.Context, db DBTX, id string) (*model.ItemType, error) {
	t := &model.ItemType{}
	var description sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM item_types WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &description, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item type: %w", err)
	}
	t.Description = description.String
	return t, nil
}

// ListItemTypes returns all item types ordered by name.
func ListItemTypes(ctx context.Context, db DBTX) ([]model.ItemType, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM item_types ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing item types: %w", err)
	}
	defer rows.Close()

	var types []model.ItemType
	for rows.Next() {
		var t model.ItemType
		var description sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item type: %w", err)
		}
		t.Description = description.String
		types = append(types, t)
	}
	return types, rows.Err()
}

// UpdateItemType updates an item type's name and description.
func UpdateItemType(ctx context.Context, db DBTX, id, name, description string) error {
	t := &model.ItemType{Name: name, Description: description}
	if err := t.Validate(); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx,
		`UPDATE item_types SET name = ?, description = ? WHERE id = ?`,
		name, nullable(description), id,
	)
	if isUniqueViolation(err, "item_types.name") {
		return &model.ValidationError{Msg: "item type name already exists"}
	}
	if err != nil {
		return fmt.Errorf("updating item type: %w", err)
	}
	return nil
}

// DeleteItemType deletes an item type. Deletion is refused while non-deleted
// items still reference it.
func DeleteItemType(ctx context.Context, db DBTX, id string) error {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE item_type_id = ? AND deleted_at IS NULL`, id,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking item type usage: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("deleting item type: %w", ErrTypeInUse)
	}

	_, err = db.ExecContext(ctx, `DELETE FROM item_types WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item type: %w", err)
	}
	return nil
}
