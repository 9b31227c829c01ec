package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"cfahub/internal/config"
	"cfahub/internal/contentkind"
	"cfahub/internal/domain"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/repositories"
	"cfahub/internal/domain/services"
)

type folderService struct {
	kinds      *contentkind.Registry
	folderRepo repositories.FolderRepository
	resolver   *FolderPathResolver
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	kinds *contentkind.Registry,
	folderRepo repositories.FolderRepository,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		kinds:      kinds,
		folderRepo: folderRepo,
		resolver:   NewFolderPathResolver(folderRepo),
		logger:     logger,
	}
}

// CreateFolder creates a new folder
func (s *folderService) CreateFolder(ctx context.Context, req *models.CreateFolderRequest) (*models.Folder, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if req.ParentID != nil {
		parent, err := s.folderRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("parent folder not found: %w", err)
		}
		if parent.OwnerID != req.OwnerID || parent.Kind != req.Kind {
			return nil, fmt.Errorf("%w: parent folder belongs to another library", domain.ErrValidation)
		}
	}

	folder := &models.Folder{
		OwnerID:  req.OwnerID,
		Kind:     req.Kind,
		Name:     req.Name,
		ParentID: req.ParentID,
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"kind", folder.Kind,
		"parent_id", req.ParentID,
	)
	return folder, nil
}

// ListFolders lists an owner's folders of one kind with computed paths
func (s *folderService) ListFolders(ctx context.Context, ownerID, kind string) ([]services.FolderWithPath, error) {
	if _, err := s.kinds.Parse(kind); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folders, err := s.folderRepo.ListByKind(ctx, ownerID, kind)
	if err != nil {
		return nil, err
	}

	// The listed set is the full tree for this owner and kind, so paths can
	// be built without refetching ancestors.
	byID := make(map[string]*models.Folder, len(folders))
	ids := make([]string, 0, len(folders))
	for i := range folders {
		byID[folders[i].ID] = &folders[i]
		ids = append(ids, folders[i].ID)
	}
	paths := BuildPaths(byID, ids)

	out := make([]services.FolderWithPath, 0, len(folders))
	for i := range folders {
		path := paths[folders[i].ID]
		if path == "" {
			path = folders[i].Name
		}
		out = append(out, services.FolderWithPath{Folder: folders[i], Path: path})
	}
	return out, nil
}

// DeleteFolder deletes an empty folder the caller owns
func (s *folderService) DeleteFolder(ctx context.Context, id, ownerID string) error {
	if err := s.folderRepo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	s.logger.Info("folder deleted", "id", id)
	return nil
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *models.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Kind,
			validation.Required,
			validation.By(func(interface{}) error {
				_, err := s.kinds.Parse(req.Kind)
				return err
			}),
		),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(regexp.MustCompile(`^[^/]+$`)).Error("folder name cannot contain slashes"),
		),
	)
}
