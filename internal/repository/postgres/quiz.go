package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"cfahub/internal/domain"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/repositories"
)

// PostgresQuizRepository implements the QuizRepository interface
type PostgresQuizRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(config *RepositoryConfig) repositories.QuizRepository {
	return &PostgresQuizRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// ListQuestions lists a set's questions ordered by position
func (r *PostgresQuizRepository) ListQuestions(ctx context.Context, setID string) ([]models.QuizQuestion, error) {
	query := fmt.Sprintf(`
		SELECT id, set_id, prompt, choices, correct_index, explanation, position
		FROM %s
		WHERE set_id = $1
		ORDER BY position ASC
	`, r.tables.QuizQuestions)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, setID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []models.QuizQuestion
	for rows.Next() {
		var q models.QuizQuestion
		var choices []byte
		err := rows.Scan(
			&q.ID,
			&q.SetID,
			&q.Prompt,
			&choices,
			&q.CorrectIndex,
			&q.Explanation,
			&q.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(choices, &q.Choices); err != nil {
			return nil, fmt.Errorf("decode choices for question %s: %w", q.ID, err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	return questions, nil
}

// InsertQuestion inserts a question and fills in its generated ID
func (r *PostgresQuizRepository) InsertQuestion(ctx context.Context, q *models.QuizQuestion) error {
	choices, err := json.Marshal(q.Choices)
	if err != nil {
		return fmt.Errorf("encode choices: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (set_id, prompt, choices, correct_index, explanation, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, r.tables.QuizQuestions)

	executor := GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query,
		q.SetID,
		q.Prompt,
		choices,
		q.CorrectIndex,
		q.Explanation,
		q.Position,
	).Scan(&q.ID)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("quiz set %s: %w", q.SetID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert question: %w", err)
	}

	return nil
}

// UpdateQuestion updates prompt, choices, correct index and explanation
func (r *PostgresQuizRepository) UpdateQuestion(ctx context.Context, q *models.QuizQuestion) error {
	choices, err := json.Marshal(q.Choices)
	if err != nil {
		return fmt.Errorf("encode choices: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET prompt = $1, choices = $2, correct_index = $3, explanation = $4
		WHERE id = $5 AND set_id = $6
	`, r.tables.QuizQuestions)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		q.Prompt,
		choices,
		q.CorrectIndex,
		q.Explanation,
		q.ID,
		q.SetID,
	)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("question %s: %w", q.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdatePosition moves a question to a new position
func (r *PostgresQuizRepository) UpdatePosition(ctx context.Context, id, setID string, position int) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET position = $1
		WHERE id = $2 AND set_id = $3
	`, r.tables.QuizQuestions)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, position, id, setID)
	if err != nil {
		return fmt.Errorf("update question position: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteQuestion removes a question from a set
func (r *PostgresQuizRepository) DeleteQuestion(ctx context.Context, id, setID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND set_id = $2
	`, r.tables.QuizQuestions)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, setID)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteAllQuestions clears a set
func (r *PostgresQuizRepository) DeleteAllQuestions(ctx context.Context, setID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE set_id = $1
	`, r.tables.QuizQuestions)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, setID); err != nil {
		return fmt.Errorf("delete all questions: %w", err)
	}

	return nil
}

// InsertAttempt records a finished run
func (r *PostgresQuizRepository) InsertAttempt(ctx context.Context, attempt *models.QuizAttempt) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, set_id, score, total, duration_seconds)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.tables.QuizAttempts)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		attempt.UserID,
		attempt.SetID,
		attempt.Score,
		attempt.Total,
		attempt.DurationSeconds,
	).Scan(&attempt.ID, &attempt.CreatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("quiz set %s: %w", attempt.SetID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert attempt: %w", err)
	}

	return nil
}
