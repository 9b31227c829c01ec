package repositories

import (
	"context"

	"cfahub/internal/domain/models"
)

// FlashcardRepository defines data access for the flashcards table.
type FlashcardRepository interface {
	// ListBySet lists a set's cards ordered by position.
	ListBySet(ctx context.Context, setID string) ([]models.Flashcard, error)

	// Insert inserts a card and fills in its generated ID.
	Insert(ctx context.Context, card *models.Flashcard) error

	// Delete removes a card from a set.
	Delete(ctx context.Context, id, setID string) error
}
