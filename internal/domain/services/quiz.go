package services

import (
	"context"

	"cfahub/internal/domain/models"
)

// QuizService handles a quiz set's questions and attempts. All operations
// check access against the owning quiz_sets row: reads need view access,
// mutations need edit access.
type QuizService interface {
	// ListQuestions lists a set's questions in position order.
	ListQuestions(ctx context.Context, userID, setID string) ([]models.QuizQuestion, error)

	// AddQuestion appends a question to the set.
	AddQuestion(ctx context.Context, userID, setID string, input *models.QuestionInput) (*models.QuizQuestion, error)

	// UpdateQuestion edits prompt, choices, correct index and explanation.
	UpdateQuestion(ctx context.Context, userID, setID, questionID string, input *models.QuestionInput) (*models.QuizQuestion, error)

	// DeleteQuestion removes a question and reindexes the remaining
	// positions to close the gap.
	DeleteQuestion(ctx context.Context, userID, setID, questionID string) error

	// ImportQuestions replaces the set's questions wholesale from a
	// versioned JSON payload. Returns the number imported.
	ImportQuestions(ctx context.Context, userID, setID string, payload []byte) (int, error)

	// ExportQuestions returns the set's questions as the JSON interchange
	// payload.
	ExportQuestions(ctx context.Context, userID, setID string) (*models.QuizExport, error)

	// SubmitAttempt grades the answers server-side and records the attempt.
	// Answers align with position order; a missing or out-of-range answer
	// counts wrong.
	SubmitAttempt(ctx context.Context, userID, setID string, answers []int, durationSeconds *int) (*models.QuizAttempt, error)
}
