package repositories

import (
	"context"

	"cfahub/internal/domain/models"
)

// QuizRepository defines data access for quiz_questions and quiz_attempts.
type QuizRepository interface {
	// ListQuestions lists a set's questions ordered by position.
	ListQuestions(ctx context.Context, setID string) ([]models.QuizQuestion, error)

	// InsertQuestion inserts a question and fills in its generated ID.
	InsertQuestion(ctx context.Context, q *models.QuizQuestion) error

	// UpdateQuestion updates prompt, choices, correct index and explanation.
	UpdateQuestion(ctx context.Context, q *models.QuizQuestion) error

	// UpdatePosition moves a question to a new position.
	UpdatePosition(ctx context.Context, id, setID string, position int) error

	// DeleteQuestion removes a question from a set.
	DeleteQuestion(ctx context.Context, id, setID string) error

	// DeleteAllQuestions clears a set (JSON import replaces wholesale).
	DeleteAllQuestions(ctx context.Context, setID string) error

	// InsertAttempt records a finished run.
	InsertAttempt(ctx context.Context, attempt *models.QuizAttempt) error
}
