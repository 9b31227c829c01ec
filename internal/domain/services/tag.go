package services

import (
	"context"

	"cfahub/internal/contentkind"
	"cfahub/internal/domain/models"
)

// TagService handles per-owner tags and their assignment to content items.
type TagService interface {
	// CreateTag creates a tag.
	CreateTag(ctx context.Context, req *models.CreateTagRequest) (*models.Tag, error)

	// ListTags lists an owner's tags, name ascending.
	ListTags(ctx context.Context, ownerID string) ([]models.Tag, error)

	// SetItemTags replaces an owned item's tag set with the given ids
	// (diff-applied: removals deleted, additions inserted).
	SetItemTags(ctx context.Context, userID string, kind contentkind.Kind, itemID string, tagIDs []string) error
}
