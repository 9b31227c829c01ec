package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"cfahub/internal/config"
	"cfahub/internal/contentkind"
	"cfahub/internal/domain"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/repositories"
	"cfahub/internal/domain/services"
)

type sharingService struct {
	contentRepo repositories.ContentRepository
	shareRepo   repositories.ShareRepository
	groupRepo   repositories.GroupRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewSharingService creates a new sharing service
func NewSharingService(
	contentRepo repositories.ContentRepository,
	shareRepo repositories.ShareRepository,
	groupRepo repositories.GroupRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.SharingService {
	return &sharingService{
		contentRepo: contentRepo,
		shareRepo:   shareRepo,
		groupRepo:   groupRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// SaveSettings applies the owner settings mutation in one transaction:
// base row update (title, visibility, folder, legacy group_id cleared) and
// grant diff-sync. An invalid request is rejected before anything is
// touched.
func (s *sharingService) SaveSettings(ctx context.Context, userID string, kind contentkind.Kind, itemID string, req *models.SaveSettingsRequest) error {
	if err := s.validateSettings(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	item, err := s.contentRepo.GetByID(ctx, kind, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != userID {
		return fmt.Errorf("settings are owner-only: %w", domain.ErrForbidden)
	}

	if req.Visibility == models.VisibilityShared {
		if err := s.requireMembership(ctx, userID, req.GroupIDs); err != nil {
			return err
		}
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.contentRepo.UpdateSettings(txCtx, kind, itemID, req.Title, req.Visibility.RawValue(), req.FolderID); err != nil {
			return err
		}

		if req.Visibility != models.VisibilityShared {
			// No grants may outlive the shared tier.
			return s.shareRepo.DeleteAll(txCtx, kind, itemID)
		}

		current, err := s.shareRepo.GrantedGroupIDs(txCtx, kind, itemID)
		if err != nil {
			return err
		}
		additions, removals := diffGrants(current, req.GroupIDs)
		if err := s.shareRepo.Delete(txCtx, kind, itemID, removals); err != nil {
			return err
		}
		return s.shareRepo.Insert(txCtx, kind, itemID, additions)
	})
	if err != nil {
		return err
	}

	s.logger.Info("settings saved",
		"kind", kind,
		"item_id", itemID,
		"visibility", req.Visibility,
		"groups", len(req.GroupIDs),
	)
	return nil
}

// diffGrants computes the grant sync: insert what is wanted but absent,
// delete what is present but no longer wanted. Unchanged grants are left
// alone, so an identical save is a no-op.
func diffGrants(current, wanted []string) (additions, removals []string) {
	currentSet := make(map[string]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}
	wantedSet := make(map[string]bool, len(wanted))
	for _, id := range wanted {
		if wantedSet[id] {
			continue
		}
		wantedSet[id] = true
		if !currentSet[id] {
			additions = append(additions, id)
		}
	}
	for _, id := range current {
		if !wantedSet[id] {
			removals = append(removals, id)
		}
	}
	return additions, removals
}

func (s *sharingService) validateSettings(req *models.SaveSettingsRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
		),
		validation.Field(&req.Visibility,
			validation.Required,
			validation.By(func(value interface{}) error {
				if v, _ := value.(models.Visibility); !v.Valid() {
					return fmt.Errorf("must be private, shared or public")
				}
				return nil
			}),
		),
		validation.Field(&req.GroupIDs,
			validation.By(func(interface{}) error {
				if req.Visibility == models.VisibilityShared && len(req.GroupIDs) == 0 {
					return fmt.Errorf("shared items need at least one group")
				}
				return nil
			}),
		),
	)
}

// requireMembership rejects share targets the owner does not belong to.
func (s *sharingService) requireMembership(ctx context.Context, userID string, groupIDs []string) error {
	memberIDs, err := s.groupRepo.MemberGroupIDs(ctx, userID)
	if err != nil {
		return err
	}
	memberSet := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		memberSet[id] = true
	}
	for _, id := range groupIDs {
		if !memberSet[id] {
			return fmt.Errorf("%w: not a member of group %s", domain.ErrValidation, id)
		}
	}
	return nil
}
