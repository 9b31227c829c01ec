package services

import (
	"context"

	"cfahub/internal/contentkind"
	"cfahub/internal/domain/models"
)

// ContentService handles listing, creation and deletion of the three content
// families, plus the enriched detail view.
type ContentService interface {
	// ListLibrary assembles a kind's library page: items the caller may see,
	// filtered, enriched with folder paths and tag ids, and split into
	// visibility sections.
	ListLibrary(ctx context.Context, userID string, kind contentkind.Kind, req *ListLibraryRequest) (*LibraryListing, error)

	// GetItem retrieves one item with the caller's computed access.
	GetItem(ctx context.Context, userID string, kind contentkind.Kind, id string) (*ContentDetail, error)

	// CreateItem creates an item with its initial visibility, folder, share
	// grants and tags.
	CreateItem(ctx context.Context, kind contentkind.Kind, req *models.CreateContentRequest) (*models.ContentItem, error)

	// DeleteItem deletes an item the caller owns.
	DeleteItem(ctx context.Context, userID string, kind contentkind.Kind, id string) error
}

// ListLibraryRequest narrows and localizes a library listing.
type ListLibraryRequest struct {
	// Scope keeps only one visibility tier (default all).
	Scope models.ScopeFilter
	// TitleQuery is a case-insensitive substring match on title.
	TitleQuery string
	// TagIDs are required tags (AND); may include models.TagUntagged.
	TagIDs []string
	// Locale drives folder label collation and the root bucket label.
	Locale string
}

// VisibilitySection is one tier of the library page, grouped by folder.
type VisibilitySection struct {
	Visibility models.Visibility `json:"visibility"`
	Buckets    []FolderBucket    `json:"buckets"`
}

// FolderBucket is one folder block of a section. The root bucket (items with
// no folder) always sorts first.
type FolderBucket struct {
	Label string               `json:"label"`
	Items []models.ContentItem `json:"items"`
}

// LibraryListing is the assembled library page for one kind.
type LibraryListing struct {
	Sections []VisibilitySection `json:"sections"`
	Folders  []models.Folder     `json:"folders"`
	Tags     []models.Tag        `json:"tags"`
	// ActiveGroupID is the caller's preselected share target, surfaced so
	// creation flows can default to it.
	ActiveGroupID *string `json:"active_group_id,omitempty"`
}

// ContentDetail is one item with the caller's computed access.
type ContentDetail struct {
	Item    *models.ContentItem `json:"item"`
	IsOwner bool                `json:"is_owner"`
	CanEdit bool                `json:"can_edit"`
	// SharedGroupIDs are the item's share grants; only populated for the
	// owner (they feed the settings dialog).
	SharedGroupIDs []string `json:"shared_group_ids,omitempty"`
}
