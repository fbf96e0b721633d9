package http

import (
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/studyhub/internal/auth"
	"github.com/mrlokans/studyhub/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	Database *database.Database
	Logger   logrus.FieldLogger
	Version  string

	// Authentication
	TokenGuard  *auth.TokenGuard
	Accounts    AccountService
	RateLimiter *auth.RateLimiter
	LoginAudit  LoginAuditor

	// Entity services
	Users         UserService
	Collections   CollectionService
	Subjects      SubjectService
	Questions     QuestionService
	Conversations ConversationService

	// AuditTrail serves the caller's own audit events
	AuditTrail AuditReader

	// AI orchestrators
	GuidedStudy       GuidedStudyRunner
	QuestionGenerator QuestionGenerator

	// Task queue (nil disables async generation and task status)
	TaskClient TaskClient

	// MaxUploadSize caps the subject image upload in bytes.
	MaxUploadSize int64
}
