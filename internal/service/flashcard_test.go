package service

import (
	"context"
	"errors"
	"testing"

	"cfahub/internal/domain"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/services"
)

func newFlashcardFixture(set *models.ContentItem) (services.FlashcardService, *fakeFlashcardRepo) {
	cardRepo := &fakeFlashcardRepo{}
	access := NewAccessService(newFakeGroupRepo(), newFakeShareRepo())
	svc := NewFlashcardService(newFakeContentRepo(set), cardRepo, access, &fakeTxManager{}, testLogger())
	return svc, cardRepo
}

func TestAddCardAppendsPastMax(t *testing.T) {
	svc, cardRepo := newFlashcardFixture(privateSet("set-1", "alice"))
	ctx := context.Background()

	// Existing cards with a gap from a deletion.
	cardRepo.cards = []models.Flashcard{
		{ID: "c1", SetID: "set-1", Front: "a", Back: "b", Position: 0},
		{ID: "c2", SetID: "set-1", Front: "c", Back: "d", Position: 5},
	}

	card, err := svc.AddCard(ctx, "alice", "set-1", &models.AddFlashcardRequest{Front: "e", Back: "f"})
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	if card.Position != 6 {
		t.Errorf("position = %d, want 6", card.Position)
	}
}

func TestAddCardValidation(t *testing.T) {
	svc, _ := newFlashcardFixture(privateSet("set-1", "alice"))

	_, err := svc.AddCard(context.Background(), "alice", "set-1", &models.AddFlashcardRequest{Front: "  ", Back: "b"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want validation", err)
	}
}

func TestImportCards(t *testing.T) {
	svc, cardRepo := newFlashcardFixture(privateSet("set-1", "alice"))
	ctx := context.Background()

	text := "actif\tpassif\r\n\ncharges\tproduits\tdétail\n"
	n, err := svc.ImportCards(ctx, "alice", "set-1", text)
	if err != nil {
		t.Fatalf("ImportCards: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported = %d", n)
	}

	cards, _ := cardRepo.ListBySet(ctx, "set-1")
	if cards[0].Front != "actif" || cards[0].Back != "passif" {
		t.Errorf("card 0 = %+v", cards[0])
	}
	// Extra tabs fold into the back.
	if cards[1].Back != "produits\tdétail" {
		t.Errorf("card 1 back = %q", cards[1].Back)
	}
	for i, card := range cards {
		if card.Position != i {
			t.Errorf("position[%d] = %d", i, card.Position)
		}
	}
}

func TestImportCardsRejectsTablessLine(t *testing.T) {
	svc, cardRepo := newFlashcardFixture(privateSet("set-1", "alice"))

	_, err := svc.ImportCards(context.Background(), "alice", "set-1", "front only\n")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	if len(cardRepo.cards) != 0 {
		t.Error("cards written despite invalid input")
	}
}

func TestExportCards(t *testing.T) {
	svc, cardRepo := newFlashcardFixture(privateSet("set-1", "alice"))
	cardRepo.cards = []models.Flashcard{
		{ID: "c2", SetID: "set-1", Front: "c", Back: "d", Position: 1},
		{ID: "c1", SetID: "set-1", Front: "a", Back: "b", Position: 0},
	}

	out, err := svc.ExportCards(context.Background(), "alice", "set-1")
	if err != nil {
		t.Fatalf("ExportCards: %v", err)
	}
	if out != "a\tb\nc\td\n" {
		t.Errorf("export = %q", out)
	}
}
