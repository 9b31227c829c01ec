package service

import (
	"context"

	"cfahub/internal/contentkind"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/repositories"
	"cfahub/internal/domain/services"
)

// ViewableBy reports whether the user may read the item, given the user's
// group memberships and the item's share grants.
func ViewableBy(userID string, item *models.ContentItem, memberGroups map[string]bool, grants []string) bool {
	if item.OwnerID == userID {
		return true
	}
	switch item.Tier() {
	case models.VisibilityPublic:
		return true
	case models.VisibilityShared:
		return sharedWith(item, memberGroups, grants)
	default:
		return false
	}
}

// EditableBy reports whether the user may mutate the item's content.
// Owner always; on a shared item, members of the legacy group or of any
// grant group; public grants read only.
func EditableBy(userID string, item *models.ContentItem, memberGroups map[string]bool, grants []string) bool {
	if item.OwnerID == userID {
		return true
	}
	if item.Tier() != models.VisibilityShared {
		return false
	}
	return sharedWith(item, memberGroups, grants)
}

func sharedWith(item *models.ContentItem, memberGroups map[string]bool, grants []string) bool {
	if item.GroupID != nil && memberGroups[*item.GroupID] {
		return true
	}
	for _, groupID := range grants {
		if memberGroups[groupID] {
			return true
		}
	}
	return false
}

type accessService struct {
	groupRepo repositories.GroupRepository
	shareRepo repositories.ShareRepository
}

// NewAccessService creates a new access service
func NewAccessService(
	groupRepo repositories.GroupRepository,
	shareRepo repositories.ShareRepository,
) services.AccessService {
	return &accessService{
		groupRepo: groupRepo,
		shareRepo: shareRepo,
	}
}

// CanView reports whether the user may read the item
func (s *accessService) CanView(ctx context.Context, userID string, kind contentkind.Kind, item *models.ContentItem) (bool, error) {
	// Owner and public need no lookups.
	if item.OwnerID == userID || item.Tier() == models.VisibilityPublic {
		return true, nil
	}
	if item.Tier() != models.VisibilityShared {
		return false, nil
	}
	memberGroups, grants, err := s.membershipAndGrants(ctx, userID, kind, item)
	if err != nil {
		return false, err
	}
	return ViewableBy(userID, item, memberGroups, grants), nil
}

// CanEdit reports whether the user may mutate the item's content
func (s *accessService) CanEdit(ctx context.Context, userID string, kind contentkind.Kind, item *models.ContentItem) (bool, error) {
	if item.OwnerID == userID {
		return true, nil
	}
	if item.Tier() != models.VisibilityShared {
		return false, nil
	}
	memberGroups, grants, err := s.membershipAndGrants(ctx, userID, kind, item)
	if err != nil {
		return false, err
	}
	return EditableBy(userID, item, memberGroups, grants), nil
}

func (s *accessService) membershipAndGrants(ctx context.Context, userID string, kind contentkind.Kind, item *models.ContentItem) (map[string]bool, []string, error) {
	memberIDs, err := s.groupRepo.MemberGroupIDs(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	memberGroups := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		memberGroups[id] = true
	}

	grants, err := s.shareRepo.GrantedGroupIDs(ctx, kind, item.ID)
	if err != nil {
		return nil, nil, err
	}
	return memberGroups, grants, nil
}
