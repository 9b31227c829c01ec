package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"cfahub/internal/config"
	"cfahub/internal/contentkind"
	"cfahub/internal/domain"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/repositories"
	"cfahub/internal/domain/services"
)

type flashcardService struct {
	contentRepo repositories.ContentRepository
	cardRepo    repositories.FlashcardRepository
	access      services.AccessService
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewFlashcardService creates a new flashcard service
func NewFlashcardService(
	contentRepo repositories.ContentRepository,
	cardRepo repositories.FlashcardRepository,
	access services.AccessService,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.FlashcardService {
	return &flashcardService{
		contentRepo: contentRepo,
		cardRepo:    cardRepo,
		access:      access,
		txManager:   txManager,
		logger:      logger,
	}
}

func (s *flashcardService) requireSet(ctx context.Context, userID, setID string, edit bool) (*models.ContentItem, error) {
	set, err := s.contentRepo.GetByID(ctx, contentkind.Flashcards, setID)
	if err != nil {
		return nil, err
	}

	ok, err := s.access.CanView(ctx, userID, contentkind.Flashcards, set)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("flashcard set %s: %w", setID, domain.ErrNotFound)
	}

	if edit {
		ok, err := s.access.CanEdit(ctx, userID, contentkind.Flashcards, set)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("flashcard set %s: %w", setID, domain.ErrForbidden)
		}
	}
	return set, nil
}

// ListCards lists a set's cards in position order
func (s *flashcardService) ListCards(ctx context.Context, userID, setID string) ([]models.Flashcard, error) {
	if _, err := s.requireSet(ctx, userID, setID, false); err != nil {
		return nil, err
	}
	return s.cardRepo.ListBySet(ctx, setID)
}

// AddCard appends a card to the set
func (s *flashcardService) AddCard(ctx context.Context, userID, setID string, req *models.AddFlashcardRequest) (*models.Flashcard, error) {
	if _, err := s.requireSet(ctx, userID, setID, true); err != nil {
		return nil, err
	}

	req.Front = strings.TrimSpace(req.Front)
	req.Back = strings.TrimSpace(req.Back)
	err := validation.ValidateStruct(req,
		validation.Field(&req.Front, validation.Required, validation.Length(1, config.MaxPromptLength)),
		validation.Field(&req.Back, validation.Required, validation.Length(1, config.MaxPromptLength)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	existing, err := s.cardRepo.ListBySet(ctx, setID)
	if err != nil {
		return nil, err
	}

	card := &models.Flashcard{
		SetID:    setID,
		Front:    req.Front,
		Back:     req.Back,
		Position: nextPosition(existing),
	}
	if err := s.cardRepo.Insert(ctx, card); err != nil {
		return nil, err
	}

	s.logger.Info("flashcard added", "set_id", setID, "card_id", card.ID)
	return card, nil
}

// DeleteCard removes a card
func (s *flashcardService) DeleteCard(ctx context.Context, userID, setID, cardID string) error {
	if _, err := s.requireSet(ctx, userID, setID, true); err != nil {
		return err
	}
	if err := s.cardRepo.Delete(ctx, cardID, setID); err != nil {
		return err
	}
	s.logger.Info("flashcard deleted", "set_id", setID, "card_id", cardID)
	return nil
}

// ImportCards appends cards parsed from tab-separated text. Each non-empty
// line is "front TAB back"; extra tabs fold into the back. A line without a
// tab fails the whole import, nothing is written.
func (s *flashcardService) ImportCards(ctx context.Context, userID, setID, text string) (int, error) {
	if _, err := s.requireSet(ctx, userID, setID, true); err != nil {
		return 0, err
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(strings.TrimSuffix(line, "\r")); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return 0, fmt.Errorf("%w: nothing to import", domain.ErrValidation)
	}
	if len(lines) > config.MaxImportCards {
		return 0, fmt.Errorf("%w: at most %d cards per import", domain.ErrValidation, config.MaxImportCards)
	}

	cards := make([]models.Flashcard, 0, len(lines))
	for i, line := range lines {
		front, back, ok := strings.Cut(line, "\t")
		if !ok {
			return 0, fmt.Errorf("%w: line %d needs a TAB", domain.ErrValidation, i+1)
		}
		front = strings.TrimSpace(front)
		back = strings.TrimSpace(back)
		if front == "" || back == "" {
			return 0, fmt.Errorf("%w: line %d has an empty side", domain.ErrValidation, i+1)
		}
		cards = append(cards, models.Flashcard{SetID: setID, Front: front, Back: back})
	}

	existing, err := s.cardRepo.ListBySet(ctx, setID)
	if err != nil {
		return 0, err
	}
	base := nextPosition(existing)

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for i := range cards {
			cards[i].Position = base + i
			if err := s.cardRepo.Insert(txCtx, &cards[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("flashcards imported", "set_id", setID, "count", len(cards))
	return len(cards), nil
}

// ExportCards renders the set as tab-separated text
func (s *flashcardService) ExportCards(ctx context.Context, userID, setID string) (string, error) {
	cards, err := s.ListCards(ctx, userID, setID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, card := range cards {
		b.WriteString(card.Front)
		b.WriteByte('\t')
		b.WriteString(card.Back)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// nextPosition returns one past the highest position in use. Positions may
// have gaps after deletions; appending past the max keeps order stable.
func nextPosition(cards []models.Flashcard) int {
	next := 0
	for _, card := range cards {
		if card.Position >= next {
			next = card.Position + 1
		}
	}
	return next
}
