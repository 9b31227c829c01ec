package repositories

import (
	"context"

	"cfahub/internal/contentkind"
	"cfahub/internal/domain/models"
)

// TagRepository defines data access for tags and the per-kind tag join tables.
type TagRepository interface {
	// Create creates a new tag
	Create(ctx context.Context, tag *models.Tag) error

	// ListByOwner lists an owner's tags, name ascending.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Tag, error)

	// LinksForItems returns the tag links of the given items.
	LinksForItems(ctx context.Context, kind contentkind.Kind, itemIDs []string) ([]models.TagLink, error)

	// InsertLinks adds tag links to an item.
	InsertLinks(ctx context.Context, kind contentkind.Kind, ownerID, itemID string, tagIDs []string) error

	// DeleteLinks removes tag links from an item.
	DeleteLinks(ctx context.Context, kind contentkind.Kind, itemID string, tagIDs []string) error
}
