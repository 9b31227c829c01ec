package service

import (
	"context"
	"encoding/json"
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

// QuizExportVersion is the version stamped on exported payloads. Imports
// accept version 0 (older exports omitted the field) and 1.
const QuizExportVersion = 1

type quizService struct {
	contentRepo repositories.ContentRepository
	quizRepo    repositories.QuizRepository
	access      services.AccessService
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewQuizService creates a new quiz service
func NewQuizService(
	contentRepo repositories.ContentRepository,
	quizRepo repositories.QuizRepository,
	access services.AccessService,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.QuizService {
	return &quizService{
		contentRepo: contentRepo,
		quizRepo:    quizRepo,
		access:      access,
		txManager:   txManager,
		logger:      logger,
	}
}

// requireSet loads the owning quiz_sets row and checks access. A set the
// caller may not view reads as nonexistent; a set they may view but not
// edit yields forbidden when edit is asked for.
func (s *quizService) requireSet(ctx context.Context, userID, setID string, edit bool) (*models.ContentItem, error) {
	set, err := s.contentRepo.GetByID(ctx, contentkind.Quizzes, setID)
	if err != nil {
		return nil, err
	}

	ok, err := s.access.CanView(ctx, userID, contentkind.Quizzes, set)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("quiz set %s: %w", setID, domain.ErrNotFound)
	}

	if edit {
		ok, err := s.access.CanEdit(ctx, userID, contentkind.Quizzes, set)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("quiz set %s: %w", setID, domain.ErrForbidden)
		}
	}
	return set, nil
}

// ListQuestions lists a set's questions in position order
func (s *quizService) ListQuestions(ctx context.Context, userID, setID string) ([]models.QuizQuestion, error) {
	if _, err := s.requireSet(ctx, userID, setID, false); err != nil {
		return nil, err
	}
	return s.quizRepo.ListQuestions(ctx, setID)
}

// AddQuestion appends a question to the set
func (s *quizService) AddQuestion(ctx context.Context, userID, setID string, input *models.QuestionInput) (*models.QuizQuestion, error) {
	if _, err := s.requireSet(ctx, userID, setID, true); err != nil {
		return nil, err
	}
	if err := validateQuestion(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	existing, err := s.quizRepo.ListQuestions(ctx, setID)
	if err != nil {
		return nil, err
	}

	q := questionFromInput(setID, input)
	q.Position = len(existing)
	if err := s.quizRepo.InsertQuestion(ctx, q); err != nil {
		return nil, err
	}

	s.logger.Info("question added", "set_id", setID, "question_id", q.ID)
	return q, nil
}

// UpdateQuestion edits prompt, choices, correct index and explanation
func (s *quizService) UpdateQuestion(ctx context.Context, userID, setID, questionID string, input *models.QuestionInput) (*models.QuizQuestion, error) {
	if _, err := s.requireSet(ctx, userID, setID, true); err != nil {
		return nil, err
	}
	if err := validateQuestion(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	questions, err := s.quizRepo.ListQuestions(ctx, setID)
	if err != nil {
		return nil, err
	}
	var current *models.QuizQuestion
	for i := range questions {
		if questions[i].ID == questionID {
			current = &questions[i]
			break
		}
	}
	if current == nil {
		return nil, fmt.Errorf("question %s: %w", questionID, domain.ErrNotFound)
	}

	q := questionFromInput(setID, input)
	q.ID = questionID
	q.Position = current.Position
	if err := s.quizRepo.UpdateQuestion(ctx, q); err != nil {
		return nil, err
	}

	s.logger.Info("question updated", "set_id", setID, "question_id", questionID)
	return q, nil
}

// DeleteQuestion removes a question and closes the position gap
func (s *quizService) DeleteQuestion(ctx context.Context, userID, setID, questionID string) error {
	if _, err := s.requireSet(ctx, userID, setID, true); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.quizRepo.DeleteQuestion(txCtx, questionID, setID); err != nil {
			return err
		}
		remaining, err := s.quizRepo.ListQuestions(txCtx, setID)
		if err != nil {
			return err
		}
		for i := range remaining {
			if remaining[i].Position != i {
				if err := s.quizRepo.UpdatePosition(txCtx, remaining[i].ID, setID, i); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("question deleted", "set_id", setID, "question_id", questionID)
	return nil
}

// ImportQuestions replaces the set's questions wholesale from JSON
func (s *quizService) ImportQuestions(ctx context.Context, userID, setID string, payload []byte) (int, error) {
	if _, err := s.requireSet(ctx, userID, setID, true); err != nil {
		return 0, err
	}

	var export models.QuizExport
	if err := json.Unmarshal(payload, &export); err != nil {
		return 0, fmt.Errorf("%w: invalid JSON: %v", domain.ErrValidation, err)
	}
	if export.Version > QuizExportVersion {
		return 0, fmt.Errorf("%w: unsupported export version %d", domain.ErrValidation, export.Version)
	}
	if len(export.Questions) == 0 {
		return 0, fmt.Errorf("%w: no questions in payload", domain.ErrValidation)
	}
	if len(export.Questions) > config.MaxImportQuestions {
		return 0, fmt.Errorf("%w: at most %d questions per import", domain.ErrValidation, config.MaxImportQuestions)
	}
	for i := range export.Questions {
		if err := validateQuestion(&export.Questions[i]); err != nil {
			return 0, fmt.Errorf("%w: question %d: %v", domain.ErrValidation, i+1, err)
		}
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.quizRepo.DeleteAllQuestions(txCtx, setID); err != nil {
			return err
		}
		for i := range export.Questions {
			q := questionFromInput(setID, &export.Questions[i])
			q.Position = i
			if err := s.quizRepo.InsertQuestion(txCtx, q); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("questions imported", "set_id", setID, "count", len(export.Questions))
	return len(export.Questions), nil
}

// ExportQuestions returns the set's questions as the interchange payload
func (s *quizService) ExportQuestions(ctx context.Context, userID, setID string) (*models.QuizExport, error) {
	questions, err := s.ListQuestions(ctx, userID, setID)
	if err != nil {
		return nil, err
	}

	export := &models.QuizExport{Version: QuizExportVersion}
	for i := range questions {
		export.Questions = append(export.Questions, models.QuestionInput{
			Prompt:       questions[i].Prompt,
			Choices:      questions[i].Choices,
			CorrectIndex: questions[i].CorrectIndex,
			Explanation:  questions[i].Explanation,
		})
	}
	return export, nil
}

// Grade counts answers matching the correct index, in position order. A
// missing or out-of-range answer counts wrong.
func Grade(questions []models.QuizQuestion, answers []int) int {
	score := 0
	for i := range questions {
		if i < len(answers) && answers[i] == questions[i].CorrectIndex {
			score++
		}
	}
	return score
}

// SubmitAttempt grades server-side and records the attempt
func (s *quizService) SubmitAttempt(ctx context.Context, userID, setID string, answers []int, durationSeconds *int) (*models.QuizAttempt, error) {
	if _, err := s.requireSet(ctx, userID, setID, false); err != nil {
		return nil, err
	}

	questions, err := s.quizRepo.ListQuestions(ctx, setID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: quiz has no questions", domain.ErrValidation)
	}

	attempt := &models.QuizAttempt{
		UserID:          userID,
		SetID:           setID,
		Score:           Grade(questions, answers),
		Total:           len(questions),
		DurationSeconds: durationSeconds,
	}
	if err := s.quizRepo.InsertAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	s.logger.Info("attempt recorded",
		"set_id", setID,
		"score", attempt.Score,
		"total", attempt.Total,
	)
	return attempt, nil
}

func questionFromInput(setID string, input *models.QuestionInput) *models.QuizQuestion {
	choices := make([]string, len(input.Choices))
	for i, c := range input.Choices {
		choices[i] = strings.TrimSpace(c)
	}

	// Clamp rather than reject: older exports occasionally carry an index
	// one past the end.
	correct := input.CorrectIndex
	if correct < 0 {
		correct = 0
	}
	if correct > len(choices)-1 {
		correct = len(choices) - 1
	}

	return &models.QuizQuestion{
		SetID:        setID,
		Prompt:       strings.TrimSpace(input.Prompt),
		Choices:      choices,
		CorrectIndex: correct,
		Explanation:  input.Explanation,
	}
}

func validateQuestion(input *models.QuestionInput) error {
	return validation.ValidateStruct(input,
		validation.Field(&input.Prompt,
			validation.Required,
			validation.Length(1, config.MaxPromptLength),
		),
		validation.Field(&input.Choices,
			validation.Required,
			validation.Length(config.MinQuizChoices, config.MaxQuizChoices),
			validation.Each(validation.Required, validation.Length(1, config.MaxPromptLength)),
		),
	)
}
