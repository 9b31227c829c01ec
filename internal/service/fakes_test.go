package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cfahub/internal/contentkind"
	"cfahub/internal/domain"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/repositories"
)

// In-memory fakes for the repository interfaces. Mutation counters let
// tests assert how many backend calls a flow made.

type fakeTxManager struct {
	begun int
}

func (f *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	f.begun++
	return fn(ctx)
}

type fakeContentRepo struct {
	items       map[string]*models.ContentItem
	nextID      int
	getCalls    int
	updateCalls []settingsCall
	deleted     []string
}

type settingsCall struct {
	id         string
	title      string
	visibility string
	folderID   *string
}

func newFakeContentRepo(items ...*models.ContentItem) *fakeContentRepo {
	f := &fakeContentRepo{items: make(map[string]*models.ContentItem)}
	for _, item := range items {
		f.items[item.ID] = item
	}
	return f
}

func (f *fakeContentRepo) List(ctx context.Context, kind contentkind.Kind, filter repositories.ContentListFilter) ([]models.ContentItem, error) {
	var out []models.ContentItem
	for _, item := range f.items {
		if filter.TitleQuery != "" && !strings.Contains(strings.ToLower(item.Title), strings.ToLower(filter.TitleQuery)) {
			continue
		}
		if len(filter.RawVisibilities) > 0 {
			match := false
			for _, raw := range filter.RawVisibilities {
				if item.Visibility != nil && *item.Visibility == raw {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeContentRepo) GetByID(ctx context.Context, kind contentkind.Kind, id string) (*models.ContentItem, error) {
	f.getCalls++
	item, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	copied := *item
	return &copied, nil
}

func (f *fakeContentRepo) Create(ctx context.Context, kind contentkind.Kind, item *models.ContentItem) error {
	f.nextID++
	item.ID = fmt.Sprintf("item-%d", f.nextID)
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeContentRepo) UpdateSettings(ctx context.Context, kind contentkind.Kind, id, title, rawVisibility string, folderID *string) error {
	item, ok := f.items[id]
	if !ok {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	f.updateCalls = append(f.updateCalls, settingsCall{id: id, title: title, visibility: rawVisibility, folderID: folderID})
	item.Title = title
	raw := rawVisibility
	item.Visibility = &raw
	item.FolderID = folderID
	item.GroupID = nil
	return nil
}

func (f *fakeContentRepo) Delete(ctx context.Context, kind contentkind.Kind, id, ownerID string) error {
	item, ok := f.items[id]
	if !ok || item.OwnerID != ownerID {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	delete(f.items, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeShareRepo struct {
	grants     map[string][]string
	inserts    int
	deletes    int
	deleteAlls int
}

func newFakeShareRepo() *fakeShareRepo {
	return &fakeShareRepo{grants: make(map[string][]string)}
}

func (f *fakeShareRepo) GrantedGroupIDs(ctx context.Context, kind contentkind.Kind, itemID string) ([]string, error) {
	return append([]string(nil), f.grants[itemID]...), nil
}

func (f *fakeShareRepo) GrantsForItems(ctx context.Context, kind contentkind.Kind, itemIDs []string) ([]models.ShareGrant, error) {
	var out []models.ShareGrant
	for _, id := range itemIDs {
		for _, groupID := range f.grants[id] {
			out = append(out, models.ShareGrant{ItemID: id, GroupID: groupID})
		}
	}
	return out, nil
}

func (f *fakeShareRepo) Insert(ctx context.Context, kind contentkind.Kind, itemID string, groupIDs []string) error {
	if len(groupIDs) == 0 {
		return nil
	}
	f.inserts++
	f.grants[itemID] = append(f.grants[itemID], groupIDs...)
	return nil
}

func (f *fakeShareRepo) Delete(ctx context.Context, kind contentkind.Kind, itemID string, groupIDs []string) error {
	if len(groupIDs) == 0 {
		return nil
	}
	f.deletes++
	drop := make(map[string]bool, len(groupIDs))
	for _, id := range groupIDs {
		drop[id] = true
	}
	var kept []string
	for _, id := range f.grants[itemID] {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	f.grants[itemID] = kept
	return nil
}

func (f *fakeShareRepo) DeleteAll(ctx context.Context, kind contentkind.Kind, itemID string) error {
	f.deleteAlls++
	delete(f.grants, itemID)
	return nil
}

type fakeGroupRepo struct {
	members map[string][]string // userID -> group ids
	groups  map[string]*models.StudyGroup
	added   []string
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{
		members: make(map[string][]string),
		groups:  make(map[string]*models.StudyGroup),
	}
}

func (f *fakeGroupRepo) Create(ctx context.Context, group *models.StudyGroup) error {
	group.ID = fmt.Sprintf("group-%d", len(f.groups)+1)
	f.groups[group.ID] = group
	return nil
}

func (f *fakeGroupRepo) GetByInviteCode(ctx context.Context, code string) (*models.StudyGroup, error) {
	for _, group := range f.groups {
		if group.InviteCode == code {
			return group, nil
		}
	}
	return nil, fmt.Errorf("invite code: %w", domain.ErrNotFound)
}

func (f *fakeGroupRepo) AddMember(ctx context.Context, userID, groupID string) error {
	for _, id := range f.members[userID] {
		if id == groupID {
			return fmt.Errorf("already a member: %w", domain.ErrConflict)
		}
	}
	f.members[userID] = append(f.members[userID], groupID)
	f.added = append(f.added, userID+":"+groupID)
	return nil
}

func (f *fakeGroupRepo) ListMemberships(ctx context.Context, userID string) ([]models.GroupMembership, error) {
	var out []models.GroupMembership
	for _, groupID := range f.members[userID] {
		out = append(out, models.GroupMembership{UserID: userID, GroupID: groupID, Group: f.groups[groupID]})
	}
	return out, nil
}

func (f *fakeGroupRepo) MemberGroupIDs(ctx context.Context, userID string) ([]string, error) {
	return append([]string(nil), f.members[userID]...), nil
}

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*models.Profile)}
}

func (f *fakeProfileRepo) Get(ctx context.Context, userID string) (*models.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return &models.Profile{UserID: userID}, nil
}

func (f *fakeProfileRepo) SetActiveGroup(ctx context.Context, userID string, groupID *string) error {
	f.profiles[userID] = &models.Profile{UserID: userID, ActiveGroupID: groupID}
	return nil
}

type fakeFolderRepo struct {
	folders  map[string]*models.Folder
	getCalls int
}

func newFakeFolderRepo(folders ...*models.Folder) *fakeFolderRepo {
	f := &fakeFolderRepo{folders: make(map[string]*models.Folder)}
	for _, folder := range folders {
		f.folders[folder.ID] = folder
	}
	return f
}

func (f *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	folder.ID = fmt.Sprintf("folder-%d", len(f.folders)+1)
	f.folders[folder.ID] = folder
	return nil
}

func (f *fakeFolderRepo) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	folder, ok := f.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return folder, nil
}

func (f *fakeFolderRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Folder, error) {
	f.getCalls++
	var out []models.Folder
	for _, id := range ids {
		if folder, ok := f.folders[id]; ok {
			out = append(out, *folder)
		}
	}
	return out, nil
}

func (f *fakeFolderRepo) ListByKind(ctx context.Context, ownerID, kind string) ([]models.Folder, error) {
	var out []models.Folder
	for _, folder := range f.folders {
		if folder.OwnerID == ownerID && folder.Kind == kind {
			out = append(out, *folder)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeFolderRepo) Delete(ctx context.Context, id, ownerID string) error {
	folder, ok := f.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	delete(f.folders, id)
	return nil
}

type fakeTagRepo struct {
	tags    map[string]*models.Tag
	links   []models.TagLink
	inserts int
	deletes int
}

func newFakeTagRepo(tags ...*models.Tag) *fakeTagRepo {
	f := &fakeTagRepo{tags: make(map[string]*models.Tag)}
	for _, tag := range tags {
		f.tags[tag.ID] = tag
	}
	return f
}

func (f *fakeTagRepo) Create(ctx context.Context, tag *models.Tag) error {
	tag.ID = fmt.Sprintf("tag-%d", len(f.tags)+1)
	f.tags[tag.ID] = tag
	return nil
}

func (f *fakeTagRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Tag, error) {
	var out []models.Tag
	for _, tag := range f.tags {
		if tag.OwnerID == ownerID {
			out = append(out, *tag)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeTagRepo) LinksForItems(ctx context.Context, kind contentkind.Kind, itemIDs []string) ([]models.TagLink, error) {
	want := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		want[id] = true
	}
	var out []models.TagLink
	for _, link := range f.links {
		if want[link.ItemID] {
			out = append(out, link)
		}
	}
	return out, nil
}

func (f *fakeTagRepo) InsertLinks(ctx context.Context, kind contentkind.Kind, ownerID, itemID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	f.inserts++
	for _, tagID := range tagIDs {
		f.links = append(f.links, models.TagLink{ItemID: itemID, TagID: tagID})
	}
	return nil
}

func (f *fakeTagRepo) DeleteLinks(ctx context.Context, kind contentkind.Kind, itemID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	f.deletes++
	drop := make(map[string]bool, len(tagIDs))
	for _, id := range tagIDs {
		drop[id] = true
	}
	var kept []models.TagLink
	for _, link := range f.links {
		if link.ItemID == itemID && drop[link.TagID] {
			continue
		}
		kept = append(kept, link)
	}
	f.links = kept
	return nil
}

type fakeQuizRepo struct {
	questions []models.QuizQuestion
	attempts  []models.QuizAttempt
	nextID    int
	moves     int
}

func (f *fakeQuizRepo) ListQuestions(ctx context.Context, setID string) ([]models.QuizQuestion, error) {
	var out []models.QuizQuestion
	for _, q := range f.questions {
		if q.SetID == setID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeQuizRepo) InsertQuestion(ctx context.Context, q *models.QuizQuestion) error {
	f.nextID++
	q.ID = fmt.Sprintf("q-%d", f.nextID)
	f.questions = append(f.questions, *q)
	return nil
}

func (f *fakeQuizRepo) UpdateQuestion(ctx context.Context, q *models.QuizQuestion) error {
	for i := range f.questions {
		if f.questions[i].ID == q.ID && f.questions[i].SetID == q.SetID {
			q.Position = f.questions[i].Position
			f.questions[i] = *q
			return nil
		}
	}
	return fmt.Errorf("question %s: %w", q.ID, domain.ErrNotFound)
}

func (f *fakeQuizRepo) UpdatePosition(ctx context.Context, id, setID string, position int) error {
	f.moves++
	for i := range f.questions {
		if f.questions[i].ID == id && f.questions[i].SetID == setID {
			f.questions[i].Position = position
			return nil
		}
	}
	return fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
}

func (f *fakeQuizRepo) DeleteQuestion(ctx context.Context, id, setID string) error {
	for i := range f.questions {
		if f.questions[i].ID == id && f.questions[i].SetID == setID {
			f.questions = append(f.questions[:i], f.questions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
}

func (f *fakeQuizRepo) DeleteAllQuestions(ctx context.Context, setID string) error {
	var kept []models.QuizQuestion
	for _, q := range f.questions {
		if q.SetID != setID {
			kept = append(kept, q)
		}
	}
	f.questions = kept
	return nil
}

func (f *fakeQuizRepo) InsertAttempt(ctx context.Context, attempt *models.QuizAttempt) error {
	attempt.ID = fmt.Sprintf("attempt-%d", len(f.attempts)+1)
	f.attempts = append(f.attempts, *attempt)
	return nil
}

type fakeFlashcardRepo struct {
	cards  []models.Flashcard
	nextID int
}

func (f *fakeFlashcardRepo) ListBySet(ctx context.Context, setID string) ([]models.Flashcard, error) {
	var out []models.Flashcard
	for _, card := range f.cards {
		if card.SetID == setID {
			out = append(out, card)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeFlashcardRepo) Insert(ctx context.Context, card *models.Flashcard) error {
	f.nextID++
	card.ID = fmt.Sprintf("card-%d", f.nextID)
	f.cards = append(f.cards, *card)
	return nil
}

func (f *fakeFlashcardRepo) Delete(ctx context.Context, id, setID string) error {
	for i := range f.cards {
		if f.cards[i].ID == id && f.cards[i].SetID == setID {
			f.cards = append(f.cards[:i], f.cards[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("flashcard %s: %w", id, domain.ErrNotFound)
}

func strptr(s string) *string { return &s }
