package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./studyhub.db"

	DefaultTutorModel    = "gemini-2.5-flash-lite"
	DefaultQuestionModel = "gemma-3-12b"

	// DefaultMaxUploadSize caps subject image uploads at 10 MB
	DefaultMaxUploadSize = 10 * 1024 * 1024
)
