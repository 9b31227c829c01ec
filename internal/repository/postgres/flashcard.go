package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"cfahub/internal/domain"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/repositories"
)

// PostgresFlashcardRepository implements the FlashcardRepository interface
type PostgresFlashcardRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFlashcardRepository creates a new flashcard repository
func NewFlashcardRepository(config *RepositoryConfig) repositories.FlashcardRepository {
	return &PostgresFlashcardRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// ListBySet lists a set's cards ordered by position
func (r *PostgresFlashcardRepository) ListBySet(ctx context.Context, setID string) ([]models.Flashcard, error) {
	query := fmt.Sprintf(`
		SELECT id, set_id, front, back, position
		FROM %s
		WHERE set_id = $1
		ORDER BY position ASC
	`, r.tables.Flashcards)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, setID)
	if err != nil {
		return nil, fmt.Errorf("list flashcards: %w", err)
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		var card models.Flashcard
		if err := rows.Scan(&card.ID, &card.SetID, &card.Front, &card.Back, &card.Position); err != nil {
			return nil, fmt.Errorf("scan flashcard: %w", err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flashcards: %w", err)
	}

	return cards, nil
}

// Insert inserts a card and fills in its generated ID
func (r *PostgresFlashcardRepository) Insert(ctx context.Context, card *models.Flashcard) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (set_id, front, back, position)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, r.tables.Flashcards)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		card.SetID,
		card.Front,
		card.Back,
		card.Position,
	).Scan(&card.ID)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("flashcard set %s: %w", card.SetID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert flashcard: %w", err)
	}

	return nil
}

// Delete removes a card from a set
func (r *PostgresFlashcardRepository) Delete(ctx context.Context, id, setID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND set_id = $2
	`, r.tables.Flashcards)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, setID)
	if err != nil {
		return fmt.Errorf("delete flashcard: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("flashcard %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
