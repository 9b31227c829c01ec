package models

import (
	"time"
)

// ContentItem is a row of one of the three content tables (documents,
// flashcard_sets, quiz_sets). The tables share the columns that matter for
// listing, sharing and access; kind-specific columns are nullable here and
// NULL for the kinds that lack them.
type ContentItem struct {
	ID         string  `json:"id" db:"id"`
	OwnerID    string  `json:"owner_id" db:"owner_id"`
	Title      string  `json:"title" db:"title"`
	Visibility *string `json:"visibility" db:"visibility"` // raw value, may be NULL on legacy rows
	FolderID   *string `json:"folder_id" db:"folder_id"`
	// GroupID is the legacy single-group share column. Superseded by share
	// grant rows; still read for access checks, never written by new code
	// except to clear it.
	GroupID     *string   `json:"group_id,omitempty" db:"group_id"`
	ExternalURL *string   `json:"external_url,omitempty" db:"external_url"` // documents only
	PreviewURL  *string   `json:"preview_url,omitempty" db:"preview_url"`   // documents only
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	FolderPath string   `json:"folder_path,omitempty"` // computed, not stored
	TagIDs     []string `json:"tag_ids,omitempty"`     // computed, not stored
}

// Tier returns the normalized visibility of the item.
func (c *ContentItem) Tier() Visibility {
	return NormalizeVisibility(c.Visibility)
}

// ScopeFilter narrows a listing to one visibility tier.
type ScopeFilter string

const (
	ScopeAll     ScopeFilter = "all"
	ScopePrivate ScopeFilter = "private"
	ScopeShared  ScopeFilter = "shared"
	ScopePublic  ScopeFilter = "public"
)

// NormalizeScope parses a query-string scope value, defaulting to all.
func NormalizeScope(raw string) ScopeFilter {
	switch ScopeFilter(raw) {
	case ScopePrivate, ScopeShared, ScopePublic:
		return ScopeFilter(raw)
	default:
		return ScopeAll
	}
}

// CreateContentRequest creates a content item of any kind.
type CreateContentRequest struct {
	OwnerID     string     `json:"-"`
	Title       string     `json:"title"`
	Visibility  Visibility `json:"visibility"`
	FolderID    *string    `json:"folder_id,omitempty"`
	GroupIDs    []string   `json:"group_ids,omitempty"`    // share targets when visibility is shared
	ExternalURL string     `json:"external_url,omitempty"` // documents only
	TagIDs      []string   `json:"tag_ids,omitempty"`
}

// SaveSettingsRequest is the owner-only settings mutation: rename, move,
// change visibility, re-share.
type SaveSettingsRequest struct {
	Title      string     `json:"title"`
	Visibility Visibility `json:"visibility"`
	FolderID   *string    `json:"folder_id,omitempty"`
	GroupIDs   []string   `json:"group_ids,omitempty"`
}
