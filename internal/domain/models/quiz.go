package models

import (
	"time"
)

// QuizQuestion is a row of quiz_questions. CorrectIndex is 0-based into
// Choices; Position orders questions within the set.
type QuizQuestion struct {
	ID           string   `json:"id" db:"id"`
	SetID        string   `json:"set_id" db:"set_id"`
	Prompt       string   `json:"prompt" db:"prompt"`
	Choices      []string `json:"choices" db:"choices"`
	CorrectIndex int      `json:"correct_index" db:"correct_index"`
	Explanation  *string  `json:"explanation" db:"explanation"`
	Position     int      `json:"position" db:"position"`
}

// QuizAttempt is a row of quiz_attempts recording one finished run.
type QuizAttempt struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	SetID           string    `json:"set_id" db:"set_id"`
	Score           int       `json:"score" db:"score"`
	Total           int       `json:"total" db:"total"`
	DurationSeconds *int      `json:"duration_seconds" db:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

type QuestionInput struct {
	Prompt       string   `json:"prompt"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  *string  `json:"explanation,omitempty"`
}

// QuizExport is the copy/paste JSON interchange payload for a question set.
type QuizExport struct {
	Version   int             `json:"version"`
	Questions []QuestionInput `json:"questions"`
}
