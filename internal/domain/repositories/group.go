package repositories

import (
	"context"

	"cfahub/internal/domain/models"
)

// GroupRepository defines data access for study_groups and group_memberships.
type GroupRepository interface {
	// Create creates a group and fills in its generated ID.
	Create(ctx context.Context, group *models.StudyGroup) error

	// GetByInviteCode retrieves a group by its invite code.
	GetByInviteCode(ctx context.Context, code string) (*models.StudyGroup, error)

	// AddMember records a membership. Adding an existing member returns
	// domain.ErrConflict.
	AddMember(ctx context.Context, userID, groupID string) error

	// ListMemberships lists a user's memberships with the joined group rows.
	ListMemberships(ctx context.Context, userID string) ([]models.GroupMembership, error)

	// MemberGroupIDs returns the ids of all groups the user belongs to.
	MemberGroupIDs(ctx context.Context, userID string) ([]string, error)
}

// ProfileRepository defines access to the per-user preferences row.
type ProfileRepository interface {
	// Get retrieves the user's profile; a missing row yields an empty profile.
	Get(ctx context.Context, userID string) (*models.Profile, error)

	// SetActiveGroup updates the preselected share target (nil clears it).
	SetActiveGroup(ctx context.Context, userID string, groupID *string) error
}
