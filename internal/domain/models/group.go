package models

import (
	"time"
)

// StudyGroup is a row of study_groups.
type StudyGroup struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	InviteCode string    `json:"invite_code" db:"invite_code"`
	CreatedBy  string    `json:"created_by" db:"created_by"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// GroupMembership is a row of group_memberships.
type GroupMembership struct {
	UserID  string `json:"user_id" db:"user_id"`
	GroupID string `json:"group_id" db:"group_id"`

	Group *StudyGroup `json:"group,omitempty"` // joined study_groups row
}

// ShareGrant is a row of a content kind's share table: the item is visible
// to (and editable by) members of the group. Grants exist only while the
// owning item's visibility is the shared tier.
type ShareGrant struct {
	ItemID  string `json:"item_id"`
	GroupID string `json:"group_id"`
}

// Profile carries the per-user preferences this service reads. ActiveGroupID
// is the preselected share target for creation flows; it is always passed
// explicitly, never treated as ambient state.
type Profile struct {
	UserID        string  `json:"user_id" db:"id"`
	ActiveGroupID *string `json:"active_group_id" db:"active_group_id"`
}
