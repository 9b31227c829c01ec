package models

import (
	"time"
)

// Folder is a row of library_folders. Folders form a tree per owner and per
// kind via parent_id; the schema does not enforce acyclicity, so walkers must
// bound their traversal.
type Folder struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Kind      string    `json:"kind" db:"kind"` // documents | flashcards | quizzes
	Name      string    `json:"name" db:"name"`
	ParentID  *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateFolderRequest struct {
	OwnerID  string  `json:"-"`
	Kind     string  `json:"kind"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"`
}
