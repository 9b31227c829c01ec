package services

import (
	"context"

	"cfahub/internal/domain/models"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a folder under an optional parent.
	CreateFolder(ctx context.Context, req *models.CreateFolderRequest) (*models.Folder, error)

	// ListFolders lists an owner's folders of one kind with computed paths.
	ListFolders(ctx context.Context, ownerID, kind string) ([]FolderWithPath, error)

	// DeleteFolder deletes an empty folder the caller owns.
	DeleteFolder(ctx context.Context, id, ownerID string) error
}

// FolderWithPath is a folder with its full display path ("A / B / C").
type FolderWithPath struct {
	models.Folder
	Path string `json:"path"`
}
