package services

import (
	"context"

	"cfahub/internal/domain/models"
)

// FlashcardService handles a flashcard set's cards. Reads need view access
// on the owning flashcard_sets row, mutations need edit access.
type FlashcardService interface {
	// ListCards lists a set's cards in position order.
	ListCards(ctx context.Context, userID, setID string) ([]models.Flashcard, error)

	// AddCard appends a card to the set.
	AddCard(ctx context.Context, userID, setID string, req *models.AddFlashcardRequest) (*models.Flashcard, error)

	// DeleteCard removes a card.
	DeleteCard(ctx context.Context, userID, setID, cardID string) error

	// ImportCards appends cards parsed from tab-separated text (front TAB
	// back per line). Returns the number imported.
	ImportCards(ctx context.Context, userID, setID, text string) (int, error)

	// ExportCards renders the set as tab-separated text.
	ExportCards(ctx context.Context, userID, setID string) (string, error)
}
