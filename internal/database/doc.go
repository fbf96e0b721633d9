// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite, postgres via lib/pq or pgx), migrations
//	├── users/           # Accounts and credential lookup
//	├── collections/     # Collections owned by a user
//	├── subjects/        # Subjects with their owning collection preloaded
//	├── conversations/   # Tutoring turns, oldest first
//	├── questions/       # Generated and manual quiz questions
//	└── audit/           # Audit trail
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type over a shared *gorm.DB:
//
//	db, err := database.NewDatabase(cfg.Database, logger)
//	defer db.Close()
//
//	subjectsRepo := subjects.NewRepository(db.DB)
//	subject, err := subjectsRepo.GetSubjectByID(42)
//
// Lookups that find nothing return the sub-package's ErrNotFound, so callers
// never compare against gorm.ErrRecordNotFound directly.
//
// # Cascades
//
// Users own collections, collections own subjects, subjects own conversations
// and questions. All of these foreign keys are declared with ON DELETE CASCADE;
// sqlite connections are opened with _foreign_keys=on so that deleting a user
// removes everything beneath it.
package database
