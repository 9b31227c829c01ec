package services

import (
	"context"

	"cfahub/internal/contentkind"
	"cfahub/internal/domain/models"
)

// AccessService decides what a user may do with a content item.
//
// Read: public items are readable by everyone; shared items by the owner and
// by members of a granted group (or of the legacy single group); private
// items by the owner only. Edit on a shared item extends to group members;
// edit on a public item does not. Settings are owner-only.
type AccessService interface {
	// CanView reports whether the user may read the item.
	CanView(ctx context.Context, userID string, kind contentkind.Kind, item *models.ContentItem) (bool, error)

	// CanEdit reports whether the user may mutate the item's content
	// (questions, cards).
	CanEdit(ctx context.Context, userID string, kind contentkind.Kind, item *models.ContentItem) (bool, error)
}
