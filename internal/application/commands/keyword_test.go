package commands

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"photocat/internal/application"
)

func TestKeywordCommands_Validate(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		target  string
		remove  bool
		wantErr error
	}{
		{"add plain", "sea", "#1", false, nil},
		{"add without target", "sea", "", false, application.ErrInvalidEntry},
		{"add empty keyword", "", "#1", false, application.ErrInvalidEntry},
		{"add dup", "dup", "#1", false, application.ErrReservedKeyword},
		{"add changed", "CHANGED", "#1", false, application.ErrReservedKeyword},
		{"remove changed", "changed", "#1", true, nil},
		{"remove potential dup", "dup?", "#1", true, application.ErrReservedKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.remove {
				err = (&RemoveKeywordCommand{Keyword: tt.keyword, Target: tt.target}).Validate()
			} else {
				err = (&AddKeywordCommand{Keyword: tt.keyword, Target: tt.target}).Validate()
			}

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestKeywordCommands_Execute(t *testing.T) {
	s, _ := setupSession(t, map[string]string{
		"/p/a.jpg": "alpha",
		"/p/b.jpg": "beta",
		"/q/c.jpg": "gamma",
	})
	mustAddPath(t, s, "/p", false)
	mustAddPath(t, s, "/q", false)
	ctx := context.Background()

	res, err := NewAddKeywordCommand(s, "new york", "/p").Execute(ctx)
	if err != nil {
		t.Fatalf("add keyword: %v", err)
	}
	if res.Keyword != "NEW YORK" || len(res.IDs) != 2 {
		t.Errorf("unexpected result %+v", res)
	}
	if _, err := NewAddKeywordCommand(s, "sea", "#3").Execute(ctx); err != nil {
		t.Fatalf("add keyword: %v", err)
	}

	if got := s.Catalog().Keywords(); !reflect.DeepEqual(got, []string{"NEW YORK", "SEA"}) {
		t.Errorf("keywords = %v", got)
	}

	if _, err := NewRemoveKeywordCommand(s, "New York", "#1").Execute(ctx); err != nil {
		t.Fatalf("remove keyword: %v", err)
	}
	ids, err := s.Catalog().FileIDsWithKeyword("new york")
	if err != nil {
		t.Fatalf("FileIDsWithKeyword() error = %v", err)
	}
	if !reflect.DeepEqual(ids.Sorted(), []application.EntryID{2}) {
		t.Errorf("expected only #2 tagged, got %v", ids.Sorted())
	}

	if _, err := NewAddKeywordCommand(s, "sea", "#9").Execute(ctx); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected not found for unknown id, got %v", err)
	}
}
