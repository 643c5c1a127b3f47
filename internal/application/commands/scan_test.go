package commands

import (
	"context"
	"reflect"
	"testing"

	"photocat/internal/domain"
)

func TestScanCommand(t *testing.T) {
	s, fs := setupSession(t, map[string]string{
		"/p/a.jpg": "alpha",
		"/p/b.jpg": "beta",
		"/p/c.jpg": "gamma",
	})
	mustAddPath(t, s, "/p", false)
	ctx := context.Background()
	if _, err := NewAddKeywordCommand(s, "sea", "#2").Execute(ctx); err != nil {
		t.Fatal(err)
	}

	if err := fs.Remove("/p/a.jpg"); err != nil {
		t.Fatal(err)
	}
	writeOrFail(t, fs, "/p/b.jpg", "beta, retouched")
	writeOrFail(t, fs, "/p/d.jpg", "delta")

	res, err := NewScanCommand(s, "").Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(res.Deleted, []domain.EntryID{1}) {
		t.Errorf("deleted = %v", res.Deleted)
	}
	if !reflect.DeepEqual(res.Changed, []domain.EntryID{2}) {
		t.Errorf("changed = %v", res.Changed)
	}
	if !reflect.DeepEqual(res.Added, []domain.EntryID{4}) {
		t.Errorf("added = %v", res.Added)
	}
	if res.Unchanged != 1 {
		t.Errorf("unchanged = %d, want 1", res.Unchanged)
	}

	cat := s.Catalog()
	a, _ := cat.Entry(1)
	if !a.HasKeyword(domain.KeywordDeleted) {
		t.Error("expected vanished file to be tagged DELETED")
	}
	b, _ := cat.Entry(2)
	if !b.HasKeyword(domain.KeywordChanged) || !b.HasKeyword("SEA") {
		t.Errorf("expected changed file to keep its keywords, got %v", b.Keywords())
	}
	if b.Size() != int64(len("beta, retouched")) {
		t.Errorf("expected updated size, got %d", b.Size())
	}
	if err := cat.CheckConsistency(); err != nil {
		t.Errorf("catalog inconsistent: %v", err)
	}

	// the file comes back unchanged
	writeOrFail(t, fs, "/p/a.jpg", "alpha")
	if err := fs.Chtimes("/p/a.jpg", mtimeOf(t, a), mtimeOf(t, a)); err != nil {
		t.Fatal(err)
	}
	res, err = NewScanCommand(s, "#1").Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(res.Restored, []domain.EntryID{1}) {
		t.Errorf("restored = %v", res.Restored)
	}
	a, _ = cat.Entry(1)
	if a.HasKeyword(domain.KeywordDeleted) {
		t.Error("expected DELETED to be cleared")
	}
}

func TestScanCommand_DeletedOnlyOnce(t *testing.T) {
	s, fs := setupSession(t, map[string]string{"/p/a.jpg": "alpha", "/p/b.jpg": "beta"})
	mustAddPath(t, s, "/p", false)
	if err := fs.Remove("/p/a.jpg"); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	first, err := NewScanCommand(s, "/p").Execute(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewScanCommand(s, "/p").Execute(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Deleted) != 1 || len(second.Deleted) != 0 {
		t.Errorf("expected DELETED once, got %v then %v", first.Deleted, second.Deleted)
	}
}
