package config

const (
	// MaxTitleLength is the maximum length for content item titles
	// (documents, flashcard sets, quiz sets).
	MaxTitleLength = 255

	// MaxFolderNameLength is the maximum length for folder names.
	MaxFolderNameLength = 255

	// MaxTagNameLength is the maximum length for tag names. Tags are short
	// labels; anything longer breaks the chip layout.
	MaxTagNameLength = 64

	// MaxGroupNameLength is the maximum length for study group names.
	MaxGroupNameLength = 255

	// MaxFolderDepth bounds parent walks when computing folder paths. The
	// schema does not enforce acyclicity, so walkers stop here rather than
	// loop.
	MaxFolderDepth = 64

	// MinQuizChoices and MaxQuizChoices bound the answer list of a question.
	MinQuizChoices = 2
	MaxQuizChoices = 6

	// MaxPromptLength is the maximum length for question prompts and
	// flashcard faces.
	MaxPromptLength = 2000

	// MaxImportQuestions caps a single JSON quiz import.
	MaxImportQuestions = 500

	// MaxImportCards caps a single flashcard text import.
	MaxImportCards = 1000
)
