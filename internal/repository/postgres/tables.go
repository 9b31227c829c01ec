package postgres

import "fmt"

// TableNames holds the resolved table names. The prefix is empty in
// production (the deployed Supabase schema is unprefixed and must stay
// compatible); test environments may set one to keep their rows apart.
type TableNames struct {
	Folders          string
	Tags             string
	StudyGroups      string
	GroupMemberships string
	Profiles         string
	Flashcards       string
	QuizQuestions    string
	QuizAttempts     string

	prefix string
}

// NewTableNames creates table names with the given prefix.
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Folders:          fmt.Sprintf("%slibrary_folders", prefix),
		Tags:             fmt.Sprintf("%stags", prefix),
		StudyGroups:      fmt.Sprintf("%sstudy_groups", prefix),
		GroupMemberships: fmt.Sprintf("%sgroup_memberships", prefix),
		Profiles:         fmt.Sprintf("%sprofiles", prefix),
		Flashcards:       fmt.Sprintf("%sflashcards", prefix),
		QuizQuestions:    fmt.Sprintf("%squiz_questions", prefix),
		QuizAttempts:     fmt.Sprintf("%squiz_attempts", prefix),
		prefix:           prefix,
	}
}

// Resolve applies the prefix to a kind-mapped table name (content, share and
// tag-join tables come from the contentkind registry, not from this struct).
func (t *TableNames) Resolve(table string) string {
	return t.prefix + table
}
