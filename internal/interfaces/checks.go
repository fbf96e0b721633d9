package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/studyhub/internal/ai"
	"github.com/mrlokans/studyhub/internal/audit"
	"github.com/mrlokans/studyhub/internal/auth"
	"github.com/mrlokans/studyhub/internal/database/collections"
	"github.com/mrlokans/studyhub/internal/database/conversations"
	"github.com/mrlokans/studyhub/internal/database/questions"
	"github.com/mrlokans/studyhub/internal/database/subjects"
	"github.com/mrlokans/studyhub/internal/database/users"
	"github.com/mrlokans/studyhub/internal/http"
	"github.com/mrlokans/studyhub/internal/services"
	"github.com/mrlokans/studyhub/internal/tasks"
	"github.com/mrlokans/studyhub/internal/tutoring"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ auth.UserRepository = (*users.Repository)(nil)
var _ services.UserStore = (*users.Repository)(nil)
var _ services.CollectionStore = (*collections.Repository)(nil)
var _ services.SubjectStore = (*subjects.Repository)(nil)
var _ services.QuestionStore = (*questions.Repository)(nil)
var _ services.ConversationStore = (*conversations.Repository)(nil)

var _ tutoring.SubjectLoader = (*subjects.Repository)(nil)
var _ tutoring.ConversationStore = (*conversations.Repository)(nil)
var _ tutoring.QuestionWriter = (*tutoring.TxQuestionWriter)(nil)

// =============================================================================
// Services
// =============================================================================

var _ services.Registrar = (*auth.Service)(nil)
var _ http.AccountService = (*auth.Service)(nil)
var _ http.UserService = (*services.Users)(nil)
var _ http.CollectionService = (*services.Collections)(nil)
var _ http.SubjectService = (*services.Subjects)(nil)
var _ http.QuestionService = (*services.Questions)(nil)
var _ http.ConversationService = (*services.Conversations)(nil)

// =============================================================================
// Auditing
// =============================================================================

var _ services.DeleteAuditor = (*audit.Service)(nil)
var _ services.UserAuditor = (*audit.Service)(nil)
var _ http.LoginAuditor = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ tutoring.GenerationAuditor = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// =============================================================================
// Model Access and Orchestration
// =============================================================================

var _ ai.TextGenerator = (*ai.Client)(nil)
var _ ai.JSONGenerator = (*ai.Client)(nil)
var _ http.GuidedStudyRunner = (*tutoring.GuidedStudy)(nil)
var _ http.QuestionGenerator = (*tutoring.QuestionGenerator)(nil)
var _ tasks.QuestionGenerator = (*tutoring.QuestionGenerator)(nil)

// =============================================================================
// Task Queue
// =============================================================================

var _ http.TaskClient = (*tasks.Client)(nil)
