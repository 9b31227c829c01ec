package services

import (
	"context"

	"cfahub/internal/domain/models"
)

// GroupService handles study groups, memberships and the active-group
// preference.
type GroupService interface {
	// CreateGroup creates a group with a fresh invite code and makes the
	// creator its first member.
	CreateGroup(ctx context.Context, userID, name string) (*models.StudyGroup, error)

	// JoinGroup joins the group behind an invite code. Re-joining returns
	// the group without error.
	JoinGroup(ctx context.Context, userID, inviteCode string) (*models.StudyGroup, error)

	// ListMemberships lists the caller's groups.
	ListMemberships(ctx context.Context, userID string) ([]models.GroupMembership, error)

	// GetActiveGroup returns the caller's preselected share target.
	GetActiveGroup(ctx context.Context, userID string) (*models.Profile, error)

	// SetActiveGroup updates the preselected share target (nil clears it).
	// The caller must be a member of the target group.
	SetActiveGroup(ctx context.Context, userID string, groupID *string) error
}
