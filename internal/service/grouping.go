package service

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"cfahub/internal/domain/models"
	"cfahub/internal/domain/services"
)

// RootLabel returns the display label of the root (no folder) bucket for a
// locale.
func RootLabel(locale string) string {
	if locale == "fr" {
		return "Sans dossier"
	}
	return "No folder"
}

// NewCollator builds a collator for a locale tag, falling back to French
// (the app's default audience) when the tag does not parse.
func NewCollator(locale string) *collate.Collator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.French
	}
	return collate.New(tag)
}

// PresentByFolder groups items into folder buckets for display. Items with
// no folder path land in the root bucket, which always sorts first; the
// remaining buckets are ordered by locale collation of their labels. Item
// order within a bucket is preserved from the input.
func PresentByFolder(collator *collate.Collator, items []models.ContentItem, rootLabel string) []services.FolderBucket {
	grouped := make(map[string][]models.ContentItem)
	var labels []string
	for _, item := range items {
		label := item.FolderPath
		if label == "" {
			label = rootLabel
		}
		if _, ok := grouped[label]; !ok {
			labels = append(labels, label)
		}
		grouped[label] = append(grouped[label], item)
	}

	sort.SliceStable(labels, func(i, j int) bool {
		if labels[i] == rootLabel {
			return true
		}
		if labels[j] == rootLabel {
			return false
		}
		return collator.CompareString(labels[i], labels[j]) < 0
	})

	buckets := make([]services.FolderBucket, 0, len(labels))
	for _, label := range labels {
		buckets = append(buckets, services.FolderBucket{Label: label, Items: grouped[label]})
	}
	return buckets
}
