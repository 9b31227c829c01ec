package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"cfahub/internal/config"
	"cfahub/internal/domain"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/repositories"
	"cfahub/internal/domain/services"
)

type groupService struct {
	groupRepo   repositories.GroupRepository
	profileRepo repositories.ProfileRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewGroupService creates a new group service
func NewGroupService(
	groupRepo repositories.GroupRepository,
	profileRepo repositories.ProfileRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.GroupService {
	return &groupService{
		groupRepo:   groupRepo,
		profileRepo: profileRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// newInviteCode derives a short shareable code. Eight hex characters of a
// random UUID; the unique index on invite_code catches the rare collision.
func newInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// CreateGroup creates a group and enrolls the creator
func (s *groupService) CreateGroup(ctx context.Context, userID, name string) (*models.StudyGroup, error) {
	name = strings.TrimSpace(name)
	err := validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxGroupNameLength),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
	}

	group := &models.StudyGroup{
		Name:       name,
		InviteCode: newInviteCode(),
		CreatedBy:  userID,
	}
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.groupRepo.Create(txCtx, group); err != nil {
			return err
		}
		return s.groupRepo.AddMember(txCtx, userID, group.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("group created", "id", group.ID, "name", group.Name)
	return group, nil
}

// JoinGroup joins the group behind an invite code. Re-joining is treated as
// success.
func (s *groupService) JoinGroup(ctx context.Context, userID, inviteCode string) (*models.StudyGroup, error) {
	inviteCode = strings.TrimSpace(inviteCode)
	if inviteCode == "" {
		return nil, fmt.Errorf("%w: invite code is required", domain.ErrValidation)
	}

	group, err := s.groupRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}

	if err := s.groupRepo.AddMember(ctx, userID, group.ID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return group, nil
		}
		return nil, err
	}

	s.logger.Info("group joined", "group_id", group.ID)
	return group, nil
}

// ListMemberships lists the caller's groups
func (s *groupService) ListMemberships(ctx context.Context, userID string) ([]models.GroupMembership, error) {
	return s.groupRepo.ListMemberships(ctx, userID)
}

// GetActiveGroup returns the caller's preselected share target
func (s *groupService) GetActiveGroup(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profileRepo.Get(ctx, userID)
}

// SetActiveGroup updates the preselected share target
func (s *groupService) SetActiveGroup(ctx context.Context, userID string, groupID *string) error {
	if groupID != nil {
		memberIDs, err := s.groupRepo.MemberGroupIDs(ctx, userID)
		if err != nil {
			return err
		}
		member := false
		for _, id := range memberIDs {
			if id == *groupID {
				member = true
				break
			}
		}
		if !member {
			return fmt.Errorf("%w: not a member of group %s", domain.ErrValidation, *groupID)
		}
	}

	if err := s.profileRepo.SetActiveGroup(ctx, userID, groupID); err != nil {
		return err
	}
	s.logger.Info("active group updated", "group_id", groupID)
	return nil
}
