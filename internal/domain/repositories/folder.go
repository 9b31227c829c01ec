package repositories

import (
	"context"

	"cfahub/internal/domain/models"
)

// FolderRepository defines data access operations for library_folders.
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// GetByIDs retrieves folders by ID in one query; missing ids are simply
	// absent from the result (dangling references are the caller's problem).
	GetByIDs(ctx context.Context, ids []string) ([]models.Folder, error)

	// ListByKind lists an owner's folders of one kind, name ascending.
	ListByKind(ctx context.Context, ownerID, kind string) ([]models.Folder, error)

	// Delete deletes a folder owned by ownerID.
	Delete(ctx context.Context, id, ownerID string) error
}
