package contentkind

import (
	"testing"
)

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	kinds := r.Kinds()
	if len(kinds) != 3 {
		t.Fatalf("expected 3 kinds, got %d", len(kinds))
	}
	if kinds[0] != Documents || kinds[1] != Flashcards || kinds[2] != Quizzes {
		t.Errorf("unexpected kind order: %v", kinds)
	}
}

func TestRegistry_Get(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	// The FK columns are deliberately non-uniform; pin them so a config edit
	// cannot silently break compatibility with the deployed schema.
	tests := []struct {
		kind    Kind
		base    string
		shareFK string
		tagFK   string
	}{
		{Documents, "documents", "document_id", "document_id"},
		{Flashcards, "flashcard_sets", "set_id", "set_id"},
		{Quizzes, "quiz_sets", "set_id", "quiz_set_id"},
	}

	for _, tt := range tests {
		m, err := r.Get(tt.kind)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", tt.kind, err)
		}
		if m.BaseTable != tt.base {
			t.Errorf("%s base table = %q, want %q", tt.kind, m.BaseTable, tt.base)
		}
		if m.ShareFK != tt.shareFK {
			t.Errorf("%s share fk = %q, want %q", tt.kind, m.ShareFK, tt.shareFK)
		}
		if m.TagFK != tt.tagFK {
			t.Errorf("%s tag fk = %q, want %q", tt.kind, m.TagFK, tt.tagFK)
		}
	}

	if _, err := r.Get(Kind("notes")); err == nil {
		t.Error("Get(notes) should fail for unknown kind")
	}
}

func TestRegistry_Parse(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	if _, err := r.Parse("quizzes"); err != nil {
		t.Errorf("Parse(quizzes) failed: %v", err)
	}
	if _, err := r.Parse(""); err == nil {
		t.Error("Parse(empty) should fail")
	}
}
