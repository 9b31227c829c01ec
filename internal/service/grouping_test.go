package service

import (
	"testing"

	"cfahub/internal/domain/models"
)

func pathItem(id, path string) models.ContentItem {
	return models.ContentItem{ID: id, FolderPath: path}
}

func TestPresentByFolder(t *testing.T) {
	collator := NewCollator("fr")
	root := RootLabel("fr")

	items := []models.ContentItem{
		pathItem("1", "Zèbre"),
		pathItem("2", ""),
		pathItem("3", "Économie"),
		pathItem("4", "Zèbre"),
		pathItem("5", "Avoir"),
		pathItem("6", ""),
	}

	buckets := PresentByFolder(collator, items, root)

	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	// Root first, then accent-aware locale order (É sorts with E, before Z).
	want := []string{root, "Avoir", "Économie", "Zèbre"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("labels = %v, want %v", labels, want)
		}
	}

	// Input order preserved within a bucket.
	zebra := buckets[3]
	if len(zebra.Items) != 2 || zebra.Items[0].ID != "1" || zebra.Items[1].ID != "4" {
		t.Errorf("bucket items out of order: %+v", zebra.Items)
	}
	if len(buckets[0].Items) != 2 {
		t.Errorf("root bucket has %d items", len(buckets[0].Items))
	}
}

func TestPresentByFolderEmpty(t *testing.T) {
	buckets := PresentByFolder(NewCollator("fr"), nil, RootLabel("fr"))
	if len(buckets) != 0 {
		t.Errorf("expected no buckets, got %d", len(buckets))
	}
}

func TestRootLabelLocale(t *testing.T) {
	if RootLabel("fr") != "Sans dossier" {
		t.Errorf("fr label = %q", RootLabel("fr"))
	}
	if RootLabel("en") != "No folder" {
		t.Errorf("en label = %q", RootLabel("en"))
	}
}
