package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"

	"cfahub/internal/config"
	"cfahub/internal/contentkind"
	"cfahub/internal/domain"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/repositories"
	"cfahub/internal/domain/services"
)

type contentService struct {
	kinds       *contentkind.Registry
	contentRepo repositories.ContentRepository
	shareRepo   repositories.ShareRepository
	tagRepo     repositories.TagRepository
	groupRepo   repositories.GroupRepository
	profileRepo repositories.ProfileRepository
	folderRepo  repositories.FolderRepository
	resolver    *FolderPathResolver
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewContentService creates a new content service
func NewContentService(
	kinds *contentkind.Registry,
	contentRepo repositories.ContentRepository,
	shareRepo repositories.ShareRepository,
	tagRepo repositories.TagRepository,
	groupRepo repositories.GroupRepository,
	profileRepo repositories.ProfileRepository,
	folderRepo repositories.FolderRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ContentService {
	return &contentService{
		kinds:       kinds,
		contentRepo: contentRepo,
		shareRepo:   shareRepo,
		tagRepo:     tagRepo,
		groupRepo:   groupRepo,
		profileRepo: profileRepo,
		folderRepo:  folderRepo,
		resolver:    NewFolderPathResolver(folderRepo),
		txManager:   txManager,
		logger:      logger,
	}
}

// ListLibrary assembles a kind's library page: concurrent fan-out of the
// independent reads, access filtering, tag filtering, folder-path
// enrichment and visibility sectioning.
func (s *contentService) ListLibrary(ctx context.Context, userID string, kind contentkind.Kind, req *services.ListLibraryRequest) (*services.LibraryListing, error) {
	m, err := s.kinds.Get(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	filter := repositories.ContentListFilter{TitleQuery: req.TitleQuery}
	switch req.Scope {
	case models.ScopeShared:
		filter.RawVisibilities = models.SharedRawValues()
	case models.ScopePublic:
		filter.RawVisibilities = []string{models.RawVisibilityPublic}
		// ScopePrivate cannot be pushed down: legacy NULL and unknown raw
		// values classify as private, so that tier is filtered in Go.
	}

	var (
		items     []models.ContentItem
		folders   []models.Folder
		tags      []models.Tag
		profile   *models.Profile
		memberIDs []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		items, err = s.contentRepo.List(gctx, kind, filter)
		return err
	})
	g.Go(func() (err error) {
		folders, err = s.folderRepo.ListByKind(gctx, userID, m.FolderKind)
		return err
	})
	g.Go(func() (err error) {
		tags, err = s.tagRepo.ListByOwner(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		profile, err = s.profileRepo.Get(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		memberIDs, err = s.groupRepo.MemberGroupIDs(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	memberGroups := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		memberGroups[id] = true
	}

	itemIDs := make([]string, 0, len(items))
	for i := range items {
		itemIDs = append(itemIDs, items[i].ID)
	}
	grantRows, err := s.shareRepo.GrantsForItems(ctx, kind, itemIDs)
	if err != nil {
		return nil, err
	}
	grants := make(map[string][]string)
	for _, grant := range grantRows {
		grants[grant.ItemID] = append(grants[grant.ItemID], grant.GroupID)
	}

	visible := items[:0]
	for i := range items {
		if ViewableBy(userID, &items[i], memberGroups, grants[items[i].ID]) {
			visible = append(visible, items[i])
		}
	}
	items = visible

	visibleIDs := make([]string, 0, len(items))
	for i := range items {
		visibleIDs = append(visibleIDs, items[i].ID)
	}
	links, err := s.tagRepo.LinksForItems(ctx, kind, visibleIDs)
	if err != nil {
		return nil, err
	}
	tagsByItem := make(map[string][]string)
	for _, link := range links {
		tagsByItem[link.ItemID] = append(tagsByItem[link.ItemID], link.TagID)
	}
	for i := range items {
		items[i].TagIDs = tagsByItem[items[i].ID]
	}

	required, untagged := SplitTagSelection(req.TagIDs)
	items = FilterByTags(items, links, required, untagged)

	var folderIDs []string
	for i := range items {
		if items[i].FolderID != nil {
			folderIDs = append(folderIDs, *items[i].FolderID)
		}
	}
	paths, err := s.resolver.ResolvePaths(ctx, folderIDs)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].FolderID != nil {
			items[i].FolderPath = paths[*items[i].FolderID]
		}
	}

	locale := req.Locale
	if locale == "" {
		locale = "fr"
	}
	collator := NewCollator(locale)
	rootLabel := RootLabel(locale)

	scope := models.NormalizeScope(string(req.Scope))
	var sections []services.VisibilitySection
	for _, tier := range []models.Visibility{models.VisibilityPrivate, models.VisibilityShared, models.VisibilityPublic} {
		if scope != models.ScopeAll && models.Visibility(scope) != tier {
			continue
		}
		var tierItems []models.ContentItem
		for i := range items {
			if items[i].Tier() == tier {
				tierItems = append(tierItems, items[i])
			}
		}
		sections = append(sections, services.VisibilitySection{
			Visibility: tier,
			Buckets:    PresentByFolder(collator, tierItems, rootLabel),
		})
	}

	return &services.LibraryListing{
		Sections:      sections,
		Folders:       folders,
		Tags:          tags,
		ActiveGroupID: profile.ActiveGroupID,
	}, nil
}

// GetItem retrieves one item with the caller's computed access
func (s *contentService) GetItem(ctx context.Context, userID string, kind contentkind.Kind, id string) (*services.ContentDetail, error) {
	item, err := s.contentRepo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	memberIDs, err := s.groupRepo.MemberGroupIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	memberGroups := make(map[string]bool, len(memberIDs))
	for _, gid := range memberIDs {
		memberGroups[gid] = true
	}
	grants, err := s.shareRepo.GrantedGroupIDs(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	if !ViewableBy(userID, item, memberGroups, grants) {
		// Inaccessible reads as nonexistent.
		return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}

	if item.FolderID != nil {
		paths, err := s.resolver.ResolvePaths(ctx, []string{*item.FolderID})
		if err != nil {
			return nil, err
		}
		item.FolderPath = paths[*item.FolderID]
	}
	links, err := s.tagRepo.LinksForItems(ctx, kind, []string{id})
	if err != nil {
		return nil, err
	}
	for _, link := range links {
		item.TagIDs = append(item.TagIDs, link.TagID)
	}

	detail := &services.ContentDetail{
		Item:    item,
		IsOwner: item.OwnerID == userID,
		CanEdit: EditableBy(userID, item, memberGroups, grants),
	}
	if detail.IsOwner {
		detail.SharedGroupIDs = grants
	}
	return detail, nil
}

// drivePathPattern extracts the file id from a Drive viewer link.
var drivePathPattern = regexp.MustCompile(`/file/d/([^/]+)`)

// NormalizeDrivePreview turns a Google Drive viewer link into its embeddable
// /preview form. Non-Drive links and unparseable input yield nil.
func NormalizeDrivePreview(raw string) *string {
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	if u.Hostname() != "drive.google.com" {
		return nil
	}
	if m := drivePathPattern.FindStringSubmatch(u.Path); m != nil {
		preview := "https://drive.google.com/file/d/" + m[1] + "/preview"
		return &preview
	}
	if id := u.Query().Get("id"); id != "" {
		preview := "https://drive.google.com/file/d/" + id + "/preview"
		return &preview
	}
	return nil
}

// CreateItem creates an item with its initial visibility, folder, share
// grants and tags
func (s *contentService) CreateItem(ctx context.Context, kind contentkind.Kind, req *models.CreateContentRequest) (*models.ContentItem, error) {
	m, err := s.kinds.Get(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.validateCreate(m, req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.Visibility == models.VisibilityShared {
		if err := s.requireMembership(ctx, req.OwnerID, req.GroupIDs); err != nil {
			return nil, err
		}
	}
	if len(req.TagIDs) > 0 {
		if err := s.requireOwnTags(ctx, req.OwnerID, req.TagIDs); err != nil {
			return nil, err
		}
	}

	raw := req.Visibility.RawValue()
	item := &models.ContentItem{
		OwnerID:    req.OwnerID,
		Title:      req.Title,
		Visibility: &raw,
		FolderID:   req.FolderID,
	}
	if m.HasURL {
		external := req.ExternalURL
		item.ExternalURL = &external
		item.PreviewURL = NormalizeDrivePreview(external)
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.contentRepo.Create(txCtx, kind, item); err != nil {
			return err
		}
		if req.Visibility == models.VisibilityShared {
			if err := s.shareRepo.Insert(txCtx, kind, item.ID, req.GroupIDs); err != nil {
				return err
			}
		}
		return s.tagRepo.InsertLinks(txCtx, kind, req.OwnerID, item.ID, req.TagIDs)
	})
	if err != nil {
		return nil, err
	}

	item.TagIDs = req.TagIDs
	s.logger.Info("content created",
		"kind", kind,
		"id", item.ID,
		"visibility", req.Visibility,
	)
	return item, nil
}

// DeleteItem deletes an item the caller owns
func (s *contentService) DeleteItem(ctx context.Context, userID string, kind contentkind.Kind, id string) error {
	if err := s.contentRepo.Delete(ctx, kind, id, userID); err != nil {
		return err
	}
	s.logger.Info("content deleted", "kind", kind, "id", id)
	return nil
}

func (s *contentService) validateCreate(m *contentkind.Mapping, req *models.CreateContentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
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
		validation.Field(&req.ExternalURL,
			validation.By(func(interface{}) error {
				if !m.HasURL {
					if req.ExternalURL != "" {
						return fmt.Errorf("%s do not carry an external url", m.Kind)
					}
					return nil
				}
				if req.ExternalURL == "" {
					return fmt.Errorf("external url is required")
				}
				u, err := url.Parse(req.ExternalURL)
				if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
					return fmt.Errorf("external url must be http(s)")
				}
				return nil
			}),
		),
	)
}

func (s *contentService) requireMembership(ctx context.Context, userID string, groupIDs []string) error {
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

func (s *contentService) requireOwnTags(ctx context.Context, ownerID string, tagIDs []string) error {
	tags, err := s.tagRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	owned := make(map[string]bool, len(tags))
	for _, tag := range tags {
		owned[tag.ID] = true
	}
	for _, id := range tagIDs {
		if !owned[id] {
			return fmt.Errorf("%w: unknown tag %s", domain.ErrValidation, id)
		}
	}
	return nil
}
