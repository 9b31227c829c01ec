package models

// Tag is a per-owner label with a display color.
type Tag struct {
	ID      string `json:"id" db:"id"`
	OwnerID string `json:"owner_id" db:"owner_id"`
	Name    string `json:"name" db:"name"`
	Color   string `json:"color" db:"color"`
}

// TagLink is a row of a content kind's tag join table, normalized to
// (item, tag) regardless of the kind-specific FK column name.
type TagLink struct {
	ItemID string `json:"item_id"`
	TagID  string `json:"tag_id"`
}

// TagUntagged is the sentinel tag id meaning "items with no tags at all".
// It never exists as a tags row.
const TagUntagged = "untagged"

type CreateTagRequest struct {
	OwnerID string `json:"-"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}
