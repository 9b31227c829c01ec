package service

import (
	"cfahub/internal/domain/models"
)

// SplitTagSelection separates the "untagged" sentinel from concrete tag ids
// in a user's tag selection.
func SplitTagSelection(selected []string) (tagIDs []string, untagged bool) {
	for _, id := range selected {
		if id == models.TagUntagged {
			untagged = true
			continue
		}
		tagIDs = append(tagIDs, id)
	}
	return tagIDs, untagged
}

// FilterByTags keeps items carrying every required tag (AND semantics).
// An empty requirement matches everything. With untagged set and no
// concrete tags, only items with zero tag links match; untagged combined
// with concrete tags can never both hold, so the result is empty.
func FilterByTags(items []models.ContentItem, links []models.TagLink, required []string, untagged bool) []models.ContentItem {
	if len(required) == 0 && !untagged {
		return items
	}
	if untagged && len(required) > 0 {
		return nil
	}

	tagged := make(map[string]bool)
	requiredSet := make(map[string]bool, len(required))
	for _, id := range required {
		requiredSet[id] = true
	}

	// Count each item's matches against the required set, deduplicating
	// links so a double row cannot inflate the count.
	counts := make(map[string]int)
	seen := make(map[models.TagLink]bool)
	for _, link := range links {
		tagged[link.ItemID] = true
		if !requiredSet[link.TagID] || seen[link] {
			continue
		}
		seen[link] = true
		counts[link.ItemID]++
	}

	var out []models.ContentItem
	for _, item := range items {
		if untagged {
			if !tagged[item.ID] {
				out = append(out, item)
			}
			continue
		}
		if counts[item.ID] == len(requiredSet) {
			out = append(out, item)
		}
	}
	return out
}
