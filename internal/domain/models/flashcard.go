package models

// Flashcard is a row of flashcards, ordered by position within its set.
type Flashcard struct {
	ID       string `json:"id" db:"id"`
	SetID    string `json:"set_id" db:"set_id"`
	Front    string `json:"front" db:"front"`
	Back     string `json:"back" db:"back"`
	Position int    `json:"position" db:"position"`
}

type AddFlashcardRequest struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}
