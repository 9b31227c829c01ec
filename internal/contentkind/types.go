package contentkind

// Kind identifies one of the three content families.
type Kind string

const (
	Documents  Kind = "documents"
	Flashcards Kind = "flashcards"
	Quizzes    Kind = "quizzes"
)

// Mapping binds a kind to the deployed table and column names. The three
// families share one row shape but live in separate tables whose join-table
// FK columns are inconsistent for historical reasons (document_id vs set_id
// vs quiz_set_id), so every query goes through this mapping.
type Mapping struct {
	Kind       Kind   `yaml:"kind"`
	BaseTable  string `yaml:"base_table"`
	ShareTable string `yaml:"share_table"`
	ShareFK    string `yaml:"share_fk"`
	TagTable   string `yaml:"tag_table"`
	TagFK      string `yaml:"tag_fk"`
	FolderKind string `yaml:"folder_kind"` // value of library_folders.kind
	HasURL     bool   `yaml:"has_url"`     // external_url/preview_url columns present
}

type kindFile struct {
	Kinds []Mapping `yaml:"kinds"`
}
