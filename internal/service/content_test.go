package service

import (
	"context"
	"errors"
	"testing"

	"cfahub/internal/contentkind"
	"cfahub/internal/domain"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/services"
)

type contentFixture struct {
	contentRepo *fakeContentRepo
	shareRepo   *fakeShareRepo
	tagRepo     *fakeTagRepo
	groupRepo   *fakeGroupRepo
	profileRepo *fakeProfileRepo
	folderRepo  *fakeFolderRepo
	svc         services.ContentService
}

func newContentFixture(t *testing.T, items ...*models.ContentItem) *contentFixture {
	t.Helper()
	kinds, err := contentkind.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	f := &contentFixture{
		contentRepo: newFakeContentRepo(items...),
		shareRepo:   newFakeShareRepo(),
		tagRepo:     newFakeTagRepo(),
		groupRepo:   newFakeGroupRepo(),
		profileRepo: newFakeProfileRepo(),
		folderRepo:  newFakeFolderRepo(),
	}
	f.svc = NewContentService(kinds, f.contentRepo, f.shareRepo, f.tagRepo, f.groupRepo,
		f.profileRepo, f.folderRepo, &fakeTxManager{}, testLogger())
	return f
}

func doc(id, owner, rawVisibility string) *models.ContentItem {
	item := &models.ContentItem{ID: id, OwnerID: owner, Title: "Doc " + id}
	if rawVisibility != "" {
		raw := rawVisibility
		item.Visibility = &raw
	}
	return item
}

func sectionItems(listing *services.LibraryListing, tier models.Visibility) []models.ContentItem {
	for _, section := range listing.Sections {
		if section.Visibility != tier {
			continue
		}
		var out []models.ContentItem
		for _, bucket := range section.Buckets {
			out = append(out, bucket.Items...)
		}
		return out
	}
	return nil
}

func TestListLibraryAccessFiltering(t *testing.T) {
	f := newContentFixture(t,
		doc("own-private", "alice", models.RawVisibilityPrivate),
		doc("own-legacy-null", "alice", ""),
		doc("other-private", "bob", models.RawVisibilityPrivate),
		doc("other-public", "bob", models.RawVisibilityPublic),
		doc("shared-in", "bob", models.RawVisibilityGroups),
		doc("shared-out", "bob", models.RawVisibilityGroups),
	)
	f.groupRepo.members["alice"] = []string{"g1"}
	f.shareRepo.grants["shared-in"] = []string{"g1"}
	f.shareRepo.grants["shared-out"] = []string{"g9"}

	listing, err := f.svc.ListLibrary(context.Background(), "alice", contentkind.Documents,
		&services.ListLibraryRequest{Scope: models.ScopeAll})
	if err != nil {
		t.Fatalf("ListLibrary: %v", err)
	}

	priv := sectionItems(listing, models.VisibilityPrivate)
	// NULL visibility classifies private; another user's private row is gone.
	if len(priv) != 2 {
		t.Errorf("private items = %d, want 2", len(priv))
	}
	for _, item := range priv {
		if item.OwnerID != "alice" {
			t.Errorf("foreign private item leaked: %s", item.ID)
		}
	}

	shared := sectionItems(listing, models.VisibilityShared)
	if len(shared) != 1 || shared[0].ID != "shared-in" {
		t.Errorf("shared items = %+v", shared)
	}

	public := sectionItems(listing, models.VisibilityPublic)
	if len(public) != 1 || public[0].ID != "other-public" {
		t.Errorf("public items = %+v", public)
	}
}

func TestListLibraryScopeAndTags(t *testing.T) {
	f := newContentFixture(t,
		doc("d1", "alice", models.RawVisibilityPrivate),
		doc("d2", "alice", models.RawVisibilityPrivate),
	)
	f.tagRepo.links = []models.TagLink{{ItemID: "d1", TagID: "t1"}}

	listing, err := f.svc.ListLibrary(context.Background(), "alice", contentkind.Documents,
		&services.ListLibraryRequest{Scope: models.ScopePrivate, TagIDs: []string{"t1"}})
	if err != nil {
		t.Fatalf("ListLibrary: %v", err)
	}

	if len(listing.Sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(listing.Sections))
	}
	priv := sectionItems(listing, models.VisibilityPrivate)
	if len(priv) != 1 || priv[0].ID != "d1" {
		t.Errorf("filtered items = %+v", priv)
	}

	// Untagged sentinel flips the selection.
	listing, err = f.svc.ListLibrary(context.Background(), "alice", contentkind.Documents,
		&services.ListLibraryRequest{Scope: models.ScopePrivate, TagIDs: []string{models.TagUntagged}})
	if err != nil {
		t.Fatalf("ListLibrary: %v", err)
	}
	priv = sectionItems(listing, models.VisibilityPrivate)
	if len(priv) != 1 || priv[0].ID != "d2" {
		t.Errorf("untagged items = %+v", priv)
	}
}

func TestListLibraryFolderPaths(t *testing.T) {
	f := newContentFixture(t, doc("d1", "alice", models.RawVisibilityPrivate))
	f.folderRepo.folders["fA"] = folder("fA", "Compta", nil)
	f.contentRepo.items["d1"].FolderID = strptr("fA")

	listing, err := f.svc.ListLibrary(context.Background(), "alice", contentkind.Documents,
		&services.ListLibraryRequest{Scope: models.ScopePrivate, Locale: "fr"})
	if err != nil {
		t.Fatalf("ListLibrary: %v", err)
	}

	buckets := listing.Sections[0].Buckets
	if len(buckets) != 1 || buckets[0].Label != "Compta" {
		t.Errorf("buckets = %+v", buckets)
	}
}

func TestGetItemHidesInaccessible(t *testing.T) {
	f := newContentFixture(t, doc("d1", "bob", models.RawVisibilityPrivate))

	_, err := f.svc.GetItem(context.Background(), "alice", contentkind.Documents, "d1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestGetItemOwnerSeesGrants(t *testing.T) {
	f := newContentFixture(t, doc("d1", "alice", models.RawVisibilityGroups))
	f.shareRepo.grants["d1"] = []string{"g1", "g2"}

	detail, err := f.svc.GetItem(context.Background(), "alice", contentkind.Documents, "d1")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if !detail.IsOwner || !detail.CanEdit {
		t.Errorf("owner flags = %+v", detail)
	}
	if len(detail.SharedGroupIDs) != 2 {
		t.Errorf("grants = %v", detail.SharedGroupIDs)
	}
}

func TestCreateDocumentNormalizesDrivePreview(t *testing.T) {
	f := newContentFixture(t)

	item, err := f.svc.CreateItem(context.Background(), contentkind.Documents, &models.CreateContentRequest{
		OwnerID:     "alice",
		Title:       "Cours PDF",
		Visibility:  models.VisibilityPrivate,
		ExternalURL: "https://drive.google.com/file/d/abc123/view?usp=sharing",
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.PreviewURL == nil || *item.PreviewURL != "https://drive.google.com/file/d/abc123/preview" {
		t.Errorf("preview = %v", item.PreviewURL)
	}
	if item.GroupID != nil {
		t.Error("legacy group_id set on create")
	}
}

func TestCreateSharedInsertsGrants(t *testing.T) {
	f := newContentFixture(t)
	f.groupRepo.members["alice"] = []string{"g1"}

	item, err := f.svc.CreateItem(context.Background(), contentkind.Quizzes, &models.CreateContentRequest{
		OwnerID:    "alice",
		Title:      "QCM partagé",
		Visibility: models.VisibilityShared,
		GroupIDs:   []string{"g1"},
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if got := f.shareRepo.grants[item.ID]; len(got) != 1 || got[0] != "g1" {
		t.Errorf("grants = %v", got)
	}
	if stored := f.contentRepo.items[item.ID]; stored.Visibility == nil || *stored.Visibility != models.RawVisibilityGroups {
		t.Error("stored visibility is not the multi-group raw value")
	}
}

func TestCreateItemValidation(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		kind contentkind.Kind
		req  *models.CreateContentRequest
	}{
		{
			name: "missing title",
			kind: contentkind.Quizzes,
			req:  &models.CreateContentRequest{OwnerID: "alice", Visibility: models.VisibilityPrivate},
		},
		{
			name: "shared without groups",
			kind: contentkind.Quizzes,
			req:  &models.CreateContentRequest{OwnerID: "alice", Title: "T", Visibility: models.VisibilityShared},
		},
		{
			name: "document without url",
			kind: contentkind.Documents,
			req:  &models.CreateContentRequest{OwnerID: "alice", Title: "T", Visibility: models.VisibilityPrivate},
		},
		{
			name: "quiz with url",
			kind: contentkind.Quizzes,
			req:  &models.CreateContentRequest{OwnerID: "alice", Title: "T", Visibility: models.VisibilityPrivate, ExternalURL: "https://x.test/a"},
		},
		{
			name: "bad scheme",
			kind: contentkind.Documents,
			req:  &models.CreateContentRequest{OwnerID: "alice", Title: "T", Visibility: models.VisibilityPrivate, ExternalURL: "ftp://x.test/a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.CreateItem(ctx, tt.kind, tt.req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want validation", err)
			}
		})
	}
}

func TestDeleteItemOwnerScoped(t *testing.T) {
	f := newContentFixture(t, doc("d1", "alice", models.RawVisibilityPrivate))

	if err := f.svc.DeleteItem(context.Background(), "bob", contentkind.Documents, "d1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("non-owner delete err = %v, want not found", err)
	}
	if err := f.svc.DeleteItem(context.Background(), "alice", contentkind.Documents, "d1"); err != nil {
		t.Errorf("owner delete err = %v", err)
	}
}

func TestNormalizeDrivePreview(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string // empty means nil
	}{
		{"viewer link", "https://drive.google.com/file/d/abc/view", "https://drive.google.com/file/d/abc/preview"},
		{"open link with id param", "https://drive.google.com/open?id=xyz", "https://drive.google.com/file/d/xyz/preview"},
		{"non-drive host", "https://example.com/file/d/abc/view", ""},
		{"drive without file id", "https://drive.google.com/drive/my-drive", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDrivePreview(tt.raw)
			if tt.want == "" {
				if got != nil {
					t.Errorf("got %q, want nil", *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Errorf("got %v, want %q", got, tt.want)
			}
		})
	}
}
