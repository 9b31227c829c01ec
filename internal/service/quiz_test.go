package service

import (
	"context"
	"errors"
	"testing"

	"cfahub/internal/domain"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/services"
)

type quizFixture struct {
	contentRepo *fakeContentRepo
	quizRepo    *fakeQuizRepo
	groupRepo   *fakeGroupRepo
	shareRepo   *fakeShareRepo
	svc         services.QuizService
}

func newQuizFixture(set *models.ContentItem) *quizFixture {
	f := &quizFixture{
		contentRepo: newFakeContentRepo(set),
		quizRepo:    &fakeQuizRepo{},
		groupRepo:   newFakeGroupRepo(),
		shareRepo:   newFakeShareRepo(),
	}
	access := NewAccessService(f.groupRepo, f.shareRepo)
	f.svc = NewQuizService(f.contentRepo, f.quizRepo, access, &fakeTxManager{}, testLogger())
	return f
}

func privateSet(id, owner string) *models.ContentItem {
	raw := models.RawVisibilityPrivate
	return &models.ContentItem{ID: id, OwnerID: owner, Title: "QCM", Visibility: &raw}
}

func q(prompt string, correct int) *models.QuestionInput {
	return &models.QuestionInput{
		Prompt:       prompt,
		Choices:      []string{"A", "B", "C"},
		CorrectIndex: correct,
	}
}

func TestGrade(t *testing.T) {
	questions := []models.QuizQuestion{
		{CorrectIndex: 0},
		{CorrectIndex: 2},
		{CorrectIndex: 1},
	}

	tests := []struct {
		name    string
		answers []int
		want    int
	}{
		{"all correct", []int{0, 2, 1}, 3},
		{"all wrong", []int{1, 0, 0}, 0},
		{"partial", []int{0, 0, 1}, 2},
		{"short answer list", []int{0}, 1},
		{"empty", nil, 0},
		{"out of range counts wrong", []int{0, 9, -1}, 1},
		{"extra answers ignored", []int{0, 2, 1, 0, 0}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Grade(questions, tt.answers); got != tt.want {
				t.Errorf("Grade = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAddQuestionPositionsAppend(t *testing.T) {
	f := newQuizFixture(privateSet("set-1", "alice"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		added, err := f.svc.AddQuestion(ctx, "alice", "set-1", q("Q", 1))
		if err != nil {
			t.Fatalf("AddQuestion: %v", err)
		}
		if added.Position != i {
			t.Errorf("position = %d, want %d", added.Position, i)
		}
	}
}

func TestAddQuestionValidation(t *testing.T) {
	f := newQuizFixture(privateSet("set-1", "alice"))
	ctx := context.Background()

	tests := []struct {
		name  string
		input *models.QuestionInput
	}{
		{"empty prompt", &models.QuestionInput{Choices: []string{"A", "B"}}},
		{"one choice", &models.QuestionInput{Prompt: "Q", Choices: []string{"A"}}},
		{"seven choices", &models.QuestionInput{Prompt: "Q", Choices: []string{"A", "B", "C", "D", "E", "F", "G"}}},
		{"blank choice", &models.QuestionInput{Prompt: "Q", Choices: []string{"A", ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.AddQuestion(ctx, "alice", "set-1", tt.input); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want validation", err)
			}
		})
	}
}

func TestAddQuestionClampsCorrectIndex(t *testing.T) {
	f := newQuizFixture(privateSet("set-1", "alice"))

	added, err := f.svc.AddQuestion(context.Background(), "alice", "set-1", q("Q", 9))
	if err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	if added.CorrectIndex != 2 {
		t.Errorf("correct index = %d, want clamped 2", added.CorrectIndex)
	}
}

func TestDeleteQuestionReindexes(t *testing.T) {
	f := newQuizFixture(privateSet("set-1", "alice"))
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		added, err := f.svc.AddQuestion(ctx, "alice", "set-1", q("Q", 0))
		if err != nil {
			t.Fatalf("AddQuestion: %v", err)
		}
		ids = append(ids, added.ID)
	}

	if err := f.svc.DeleteQuestion(ctx, "alice", "set-1", ids[1]); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}

	remaining, err := f.svc.ListQuestions(ctx, "alice", "set-1")
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(remaining) != 3 {
		t.Fatalf("remaining = %d", len(remaining))
	}
	for i, question := range remaining {
		if question.Position != i {
			t.Errorf("position[%d] = %d after reindex", i, question.Position)
		}
	}
}

func TestImportReplacesWholesale(t *testing.T) {
	f := newQuizFixture(privateSet("set-1", "alice"))
	ctx := context.Background()

	if _, err := f.svc.AddQuestion(ctx, "alice", "set-1", q("Old", 0)); err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}

	payload := []byte(`{
		"version": 1,
		"questions": [
			{"prompt": "N1", "choices": ["A", "B"], "correct_index": 1},
			{"prompt": "N2", "choices": ["A", "B", "C"], "correct_index": 0}
		]
	}`)
	n, err := f.svc.ImportQuestions(ctx, "alice", "set-1", payload)
	if err != nil {
		t.Fatalf("ImportQuestions: %v", err)
	}
	if n != 2 {
		t.Errorf("imported = %d", n)
	}

	questions, err := f.svc.ListQuestions(ctx, "alice", "set-1")
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(questions) != 2 || questions[0].Prompt != "N1" || questions[1].Prompt != "N2" {
		t.Errorf("questions = %+v", questions)
	}
	for i, question := range questions {
		if question.Position != i {
			t.Errorf("position[%d] = %d", i, question.Position)
		}
	}
}

func TestImportRejectsBadPayload(t *testing.T) {
	f := newQuizFixture(privateSet("set-1", "alice"))
	ctx := context.Background()

	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "front\tback"},
		{"no questions", `{"version": 1, "questions": []}`},
		{"future version", `{"version": 99, "questions": [{"prompt": "Q", "choices": ["A", "B"], "correct_index": 0}]}`},
		{"invalid question", `{"version": 1, "questions": [{"prompt": "", "choices": ["A", "B"], "correct_index": 0}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.ImportQuestions(ctx, "alice", "set-1", []byte(tt.payload)); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want validation", err)
			}
		})
	}
}

func TestExportRoundTrip(t *testing.T) {
	f := newQuizFixture(privateSet("set-1", "alice"))
	ctx := context.Background()

	if _, err := f.svc.AddQuestion(ctx, "alice", "set-1", q("Q1", 1)); err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}

	export, err := f.svc.ExportQuestions(ctx, "alice", "set-1")
	if err != nil {
		t.Fatalf("ExportQuestions: %v", err)
	}
	if export.Version != QuizExportVersion || len(export.Questions) != 1 {
		t.Fatalf("export = %+v", export)
	}
	if export.Questions[0].Prompt != "Q1" || export.Questions[0].CorrectIndex != 1 {
		t.Errorf("exported question = %+v", export.Questions[0])
	}
}

func TestSubmitAttemptRecordsScore(t *testing.T) {
	f := newQuizFixture(privateSet("set-1", "alice"))
	ctx := context.Background()

	for _, correct := range []int{0, 1, 2} {
		if _, err := f.svc.AddQuestion(ctx, "alice", "set-1", q("Q", correct)); err != nil {
			t.Fatalf("AddQuestion: %v", err)
		}
	}

	duration := 95
	attempt, err := f.svc.SubmitAttempt(ctx, "alice", "set-1", []int{0, 0, 2}, &duration)
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if attempt.Score != 2 || attempt.Total != 3 {
		t.Errorf("attempt = %d/%d", attempt.Score, attempt.Total)
	}
	if attempt.DurationSeconds == nil || *attempt.DurationSeconds != 95 {
		t.Error("duration not recorded")
	}
	if len(f.quizRepo.attempts) != 1 {
		t.Errorf("stored attempts = %d", len(f.quizRepo.attempts))
	}
}

func TestQuizAccessBoundaries(t *testing.T) {
	set := privateSet("set-1", "alice")
	f := newQuizFixture(set)
	ctx := context.Background()

	// Private set reads as nonexistent for outsiders.
	if _, err := f.svc.ListQuestions(ctx, "bob", "set-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("outsider list err = %v, want not found", err)
	}

	// Public set: readable, not editable.
	raw := models.RawVisibilityPublic
	set.Visibility = &raw
	f.contentRepo.items["set-1"] = set

	if _, err := f.svc.ListQuestions(ctx, "bob", "set-1"); err != nil {
		t.Errorf("public list err = %v", err)
	}
	if _, err := f.svc.AddQuestion(ctx, "bob", "set-1", q("Q", 0)); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("public edit err = %v, want forbidden", err)
	}

	// Shared set: grant members edit.
	raw2 := models.RawVisibilityGroups
	set.Visibility = &raw2
	f.shareRepo.grants["set-1"] = []string{"g1"}
	f.groupRepo.members["bob"] = []string{"g1"}

	if _, err := f.svc.AddQuestion(ctx, "bob", "set-1", q("Q", 0)); err != nil {
		t.Errorf("shared member edit err = %v", err)
	}
}
