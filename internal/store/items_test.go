package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/erazemk/shramba/internal/db"
	"github.com/erazemk/shramba/internal/model"
)

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, "Drill", "Cordless drill", "", []string{"tools", " power "})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.ID == "" {
		t.Error("expected a generated id")
	}
	if len(item.UniqueCode) != model.UniqueCodeLen {
		t.Errorf("expected %d-character code, got %q", model.UniqueCodeLen, item.UniqueCode)
	}
	if item.CurrentLocationID != nil {
		t.Error("new item should have no location")
	}
	if len(item.Tags) != 2 || item.Tags[0] != "tools" || item.Tags[1] != "power" {
		t.Errorf("expected normalized tags [tools power], got %v", item.Tags)
	}

	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got == nil || got.Name != "Drill" || got.Description != "Cordless drill" {
		t.Errorf("unexpected item: %+v", got)
	}

	byCode, err := GetItemByCode(ctx, database, item.UniqueCode)
	if err != nil {
		t.Fatalf("GetItemByCode: %v", err)
	}
	if byCode == nil || byCode.ID != item.ID {
		t.Error("code lookup should find the item")
	}
}

func TestGetItemMissing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	got, err := GetItem(ctx, database, "no-such-id")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing item, got %+v", got)
	}

	got, err = GetItemByCode(ctx, database, "NOPE1234")
	if err != nil {
		t.Fatalf("GetItemByCode: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown code, got %+v", got)
	}
}

func TestCreateItemValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	cases := []struct {
		name        string
		itemName    string
		description string
	}{
		{"empty name", "", ""},
		{"blank name", "   ", ""},
		{"name too long", strings.Repeat("x", model.MaxItemNameLen+1), ""},
		{"description too long", "ok", strings.Repeat("x", model.MaxItemDescriptionLen+1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CreateItem(ctx, database, tc.itemName, tc.description, "", nil)
			var verr *model.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestUniqueCodesDiffer(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		item, err := CreateItem(ctx, database, "Box", "", "", nil)
		if err != nil {
			t.Fatalf("CreateItem: %v", err)
		}
		if seen[item.UniqueCode] {
			t.Fatalf("duplicate code %q", item.UniqueCode)
		}
		seen[item.UniqueCode] = true
	}
}

func TestListItemsSearch(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	tools, err := CreateItemType(ctx, database, "Tool", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := CreateItem(ctx, database, "Hammer", "Claw hammer", tools.ID, []string{"garage"}); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateItem(ctx, database, "Blanket", "Wool blanket", "", []string{"bedroom"}); err != nil {
		t.Fatal(err)
	}

	all, err := ListItems(ctx, database, "")
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 items, got %d", len(all))
	}
	if all[0].Name != "Blanket" {
		t.Error("items should be ordered by name")
	}

	for _, tc := range []struct {
		search string
		want   string
	}{
		{"hamm", "Hammer"},   // name
		{"Wool", "Blanket"},  // description
		{"garage", "Hammer"}, // tag
		{"Tool", "Hammer"},   // type name
	} {
		got, err := ListItems(ctx, database, tc.search)
		if err != nil {
			t.Fatalf("ListItems(%q): %v", tc.search, err)
		}
		if len(got) != 1 || got[0].Name != tc.want {
			t.Errorf("search %q: expected [%s], got %d items", tc.search, tc.want, len(got))
		}
	}
}

func TestUpdateItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, "Old name", "", "", nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := UpdateItem(ctx, database, item.ID, "New name", "New description", "", []string{"a"}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "New name" || got.Description != "New description" {
		t.Errorf("update not applied: %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "a" {
		t.Errorf("tags not updated: %v", got.Tags)
	}
}

func TestDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, "Gone soon", "", "", nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := DeleteItem(ctx, database, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	// Soft-deleted: direct id lookup still resolves, listings and code
	// lookups do not.
	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.DeletedAt == nil {
		t.Error("deleted item should still resolve by id, with deleted_at set")
	}

	byCode, err := GetItemByCode(ctx, database, item.UniqueCode)
	if err != nil {
		t.Fatal(err)
	}
	if byCode != nil {
		t.Error("deleted item should not resolve by code")
	}

	all, err := ListItems(ctx, database, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("deleted item should not be listed, got %d", len(all))
	}
}

func TestDeleteNonEmptyContainerRefused(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	box, err := CreateItem(ctx, database, "Box", "", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	inner, err := CreateItem(ctx, database, "Inner", "", "", nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = database.ExecContext(ctx,
		`UPDATE items SET current_location_id = ? WHERE id = ?`, box.ID, inner.ID)
	if err != nil {
		t.Fatal(err)
	}

	if err := DeleteItem(ctx, database, box.ID); !errors.Is(err, ErrNotEmpty) {
		t.Errorf("expected ErrNotEmpty, got %v", err)
	}

	// After moving the inner item out, deletion succeeds.
	_, err = database.ExecContext(ctx,
		`UPDATE items SET current_location_id = NULL WHERE id = ?`, inner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if err := DeleteItem(ctx, database, box.ID); err != nil {
		t.Errorf("DeleteItem after emptying: %v", err)
	}
}

func TestListAndCountItemsIn(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	box, err := CreateItem(ctx, database, "Box", "", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"A", "B"} {
		inner, err := CreateItem(ctx, database, name, "", "", nil)
		if err != nil {
			t.Fatal(err)
		}
		_, err = database.ExecContext(ctx,
			`UPDATE items SET current_location_id = ? WHERE id = ?`, box.ID, inner.ID)
		if err != nil {
			t.Fatal(err)
		}
	}

	contents, err := ListItemsIn(ctx, database, box.ID)
	if err != nil {
		t.Fatalf("ListItemsIn: %v", err)
	}
	if len(contents) != 2 {
		t.Errorf("expected 2 contained items, got %d", len(contents))
	}

	count, err := CountItemsIn(ctx, database, box.ID)
	if err != nil {
		t.Fatalf("CountItemsIn: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
}

func TestItemImageRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, "Pictured", "", "", nil)
	if err != nil {
		t.Fatal(err)
	}

	image := []byte{0xff, 0xd8, 0xff, 0x01}
	thumb := []byte{0xff, 0xd8, 0xff, 0x02}
	if err := SetItemImage(ctx, database, item.ID, image, thumb, "image/jpeg"); err != nil {
		t.Fatalf("SetItemImage: %v", err)
	}

	data, mime, err := GetItemImage(ctx, database, item.ID, false)
	if err != nil {
		t.Fatalf("GetItemImage: %v", err)
	}
	if string(data) != string(image) || mime != "image/jpeg" {
		t.Error("full image mismatch")
	}

	data, _, err = GetItemImage(ctx, database, item.ID, true)
	if err != nil {
		t.Fatalf("GetItemImage(thumb): %v", err)
	}
	if string(data) != string(thumb) {
		t.Error("thumbnail mismatch")
	}
}
