package model

import (
	"errors"
	"strings"
	"testing"
)

func TestItemValidate(t *testing.T) {
	cases := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{"valid", Item{Name: "Drill"}, false},
		{"max length name", Item{Name: strings.Repeat("a", MaxItemNameLen)}, false},
		{"empty name", Item{}, true},
		{"whitespace name", Item{Name: "   "}, true},
		{"name too long", Item{Name: strings.Repeat("a", MaxItemNameLen+1)}, true},
		{"description too long", Item{Name: "ok", Description: strings.Repeat("a", MaxItemDescriptionLen+1)}, true},
		{"max length description", Item{Name: "ok", Description: strings.Repeat("a", MaxItemDescriptionLen)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.item.Validate()
			if tc.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected ValidationError, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestItemTypeValidate(t *testing.T) {
	if err := (&ItemType{Name: "Tools"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (&ItemType{}).Validate(); err == nil {
		t.Error("expected an error for empty name")
	}
	if err := (&ItemType{Name: strings.Repeat("a", MaxItemTypeNameLen+1)}).Validate(); err == nil {
		t.Error("expected an error for overlong name")
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" tools ", "", "  ", "garage"})
	if len(got) != 2 || got[0] != "tools" || got[1] != "garage" {
		t.Errorf("unexpected tags: %v", got)
	}

	if got := NormalizeTags(nil); got != nil {
		t.Errorf("expected nil for nil input, got %v", got)
	}
}
