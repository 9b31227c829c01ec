package repositories

import (
	"context"

	"cfahub/internal/contentkind"
	"cfahub/internal/domain/models"
)

// ContentListFilter narrows a content listing. Row-level security on the
// backend already scopes rows to what the caller may see; these filters only
// narrow further.
type ContentListFilter struct {
	// TitleQuery is an optional case-insensitive substring match on title.
	TitleQuery string
	// RawVisibilities, when non-empty, keeps rows whose stored visibility is
	// one of the given raw values (both legacy synonyms for the shared tier).
	RawVisibilities []string
}

// ContentRepository defines data access for the three content tables,
// parameterized by kind.
type ContentRepository interface {
	// List returns items most-recent-first.
	List(ctx context.Context, kind contentkind.Kind, filter ContentListFilter) ([]models.ContentItem, error)

	// GetByID retrieves a single item.
	GetByID(ctx context.Context, kind contentkind.Kind, id string) (*models.ContentItem, error)

	// Create inserts an item and fills in its generated ID.
	Create(ctx context.Context, kind contentkind.Kind, item *models.ContentItem) error

	// UpdateSettings applies the owner settings mutation: title, visibility
	// and folder placement, and clears the legacy group_id column. The legacy
	// column is never re-populated (one-way migration).
	UpdateSettings(ctx context.Context, kind contentkind.Kind, id, title, rawVisibility string, folderID *string) error

	// Delete removes an item owned by ownerID. Dependent rows (cards,
	// questions, shares, tag links) cascade on the backend.
	Delete(ctx context.Context, kind contentkind.Kind, id, ownerID string) error
}

// ShareRepository defines data access for the per-kind share tables.
type ShareRepository interface {
	// GrantedGroupIDs returns the group ids the item is shared with.
	GrantedGroupIDs(ctx context.Context, kind contentkind.Kind, itemID string) ([]string, error)

	// GrantsForItems returns the grants of the given items in one query.
	GrantsForItems(ctx context.Context, kind contentkind.Kind, itemIDs []string) ([]models.ShareGrant, error)

	// Insert adds grants for the given groups.
	Insert(ctx context.Context, kind contentkind.Kind, itemID string, groupIDs []string) error

	// Delete removes grants for the given groups only.
	Delete(ctx context.Context, kind contentkind.Kind, itemID string, groupIDs []string) error

	// DeleteAll removes every grant for the item.
	DeleteAll(ctx context.Context, kind contentkind.Kind, itemID string) error
}
