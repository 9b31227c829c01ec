package service

import (
	"context"
	"fmt"
	"testing"

	"cfahub/internal/domain/models"
)

func folder(id, name string, parentID *string) *models.Folder {
	return &models.Folder{ID: id, OwnerID: "owner", Kind: "documents", Name: name, ParentID: parentID}
}

func TestResolvePaths(t *testing.T) {
	repo := newFakeFolderRepo(
		folder("root", "CFA", nil),
		folder("mid", "Comptabilité", strptr("root")),
		folder("leaf", "TP", strptr("mid")),
		folder("lonely", "Divers", nil),
		folder("orphan", "Perdu", strptr("gone")),
	)
	resolver := NewFolderPathResolver(repo)

	paths, err := resolver.ResolvePaths(context.Background(), []string{"leaf", "lonely", "orphan", "missing"})
	if err != nil {
		t.Fatalf("ResolvePaths: %v", err)
	}

	if got := paths["leaf"]; got != "CFA / Comptabilité / TP" {
		t.Errorf("leaf path = %q", got)
	}
	if got := paths["lonely"]; got != "Divers" {
		t.Errorf("lonely path = %q", got)
	}
	// A folder whose parent row is gone keeps the walked prefix.
	if got := paths["orphan"]; got != "Perdu" {
		t.Errorf("orphan path = %q", got)
	}
	// A dangling reference is absent, not an error.
	if _, ok := paths["missing"]; ok {
		t.Error("missing folder should not resolve")
	}
}

func TestResolvePathsCycleBounded(t *testing.T) {
	// a -> b -> a. The walk must terminate and yield a truncated path.
	repo := newFakeFolderRepo(
		folder("a", "A", strptr("b")),
		folder("b", "B", strptr("a")),
	)
	resolver := NewFolderPathResolver(repo)

	paths, err := resolver.ResolvePaths(context.Background(), []string{"a"})
	if err != nil {
		t.Fatalf("ResolvePaths: %v", err)
	}
	if paths["a"] == "" {
		t.Fatal("expected a truncated path, got none")
	}
	if repo.getCalls > 70 {
		t.Errorf("fetch rounds not bounded: %d", repo.getCalls)
	}
}

func TestResolvePathsDeepChain(t *testing.T) {
	folders := []*models.Folder{folder("f0", "N0", nil)}
	for i := 1; i < 10; i++ {
		parent := fmt.Sprintf("f%d", i-1)
		folders = append(folders, folder(fmt.Sprintf("f%d", i), fmt.Sprintf("N%d", i), &parent))
	}
	resolver := NewFolderPathResolver(newFakeFolderRepo(folders...))

	paths, err := resolver.ResolvePaths(context.Background(), []string{"f9"})
	if err != nil {
		t.Fatalf("ResolvePaths: %v", err)
	}
	want := "N0 / N1 / N2 / N3 / N4 / N5 / N6 / N7 / N8 / N9"
	if paths["f9"] != want {
		t.Errorf("path = %q, want %q", paths["f9"], want)
	}
}
