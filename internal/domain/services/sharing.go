package services

import (
	"context"

	"cfahub/internal/contentkind"
	"cfahub/internal/domain/models"
)

// SharingService applies the owner-only settings mutation: rename, move,
// change visibility and re-share in one transaction.
type SharingService interface {
	// SaveSettings validates the request, updates the base row (clearing the
	// legacy single-group column) and diff-syncs the share grants. Rejected
	// requests touch nothing.
	SaveSettings(ctx context.Context, userID string, kind contentkind.Kind, itemID string, req *models.SaveSettingsRequest) error
}
