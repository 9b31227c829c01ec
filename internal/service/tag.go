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

// tagColorPattern accepts the #rrggbb colors the tag picker emits.
var tagColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type tagService struct {
	contentRepo repositories.ContentRepository
	tagRepo     repositories.TagRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewTagService creates a new tag service
func NewTagService(
	contentRepo repositories.ContentRepository,
	tagRepo repositories.TagRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.TagService {
	return &tagService{
		contentRepo: contentRepo,
		tagRepo:     tagRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateTag creates a new tag
func (s *tagService) CreateTag(ctx context.Context, req *models.CreateTagRequest) (*models.Tag, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxTagNameLength),
			validation.By(func(interface{}) error {
				if req.Name == models.TagUntagged {
					return fmt.Errorf("%q is reserved", models.TagUntagged)
				}
				return nil
			}),
		),
		validation.Field(&req.Color,
			validation.Required,
			validation.Match(tagColorPattern).Error("color must be #rrggbb"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	tag := &models.Tag{
		OwnerID: req.OwnerID,
		Name:    req.Name,
		Color:   req.Color,
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("tag created", "id", tag.ID, "name", tag.Name)
	return tag, nil
}

// ListTags lists an owner's tags
func (s *tagService) ListTags(ctx context.Context, ownerID string) ([]models.Tag, error) {
	return s.tagRepo.ListByOwner(ctx, ownerID)
}

// SetItemTags replaces an owned item's tag set, diff-applied
func (s *tagService) SetItemTags(ctx context.Context, userID string, kind contentkind.Kind, itemID string, tagIDs []string) error {
	item, err := s.contentRepo.GetByID(ctx, kind, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != userID {
		return fmt.Errorf("tags are owner-only: %w", domain.ErrForbidden)
	}

	owned, err := s.tagRepo.ListByOwner(ctx, userID)
	if err != nil {
		return err
	}
	ownedSet := make(map[string]bool, len(owned))
	for _, tag := range owned {
		ownedSet[tag.ID] = true
	}
	for _, id := range tagIDs {
		if !ownedSet[id] {
			return fmt.Errorf("%w: unknown tag %s", domain.ErrValidation, id)
		}
	}

	links, err := s.tagRepo.LinksForItems(ctx, kind, []string{itemID})
	if err != nil {
		return err
	}
	current := make([]string, 0, len(links))
	for _, link := range links {
		current = append(current, link.TagID)
	}
	additions, removals := diffGrants(current, tagIDs)

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.tagRepo.DeleteLinks(txCtx, kind, itemID, removals); err != nil {
			return err
		}
		return s.tagRepo.InsertLinks(txCtx, kind, userID, itemID, additions)
	})
	if err != nil {
		return err
	}

	s.logger.Info("item tags updated",
		"kind", kind,
		"item_id", itemID,
		"added", len(additions),
		"removed", len(removals),
	)
	return nil
}
