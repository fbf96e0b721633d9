// Package interfaces documents the core abstractions used throughout the application.
//
// Consumers declare the narrow interfaces they need next to their own code;
// this package only holds the compile-time checks that the concrete types
// satisfy them.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - UserStore, CollectionStore, SubjectStore, QuestionStore, ConversationStore
//     (internal/services): implemented by the gorm repositories under internal/database
//   - SubjectLoader, ConversationStore, QuestionWriter (internal/tutoring):
//     read side of the orchestrators and the transactional question writer
//
// ## Service Interfaces
//
//   - AccountService, UserService, CollectionService, SubjectService,
//     QuestionService, ConversationService (internal/http): what the
//     controllers call. Every method returns a result.Result
//
// ## Model Interfaces
//
//   - TextGenerator, JSONGenerator (internal/ai): implemented by ai.Client on top
//     of the Gemini SDK; tests substitute fakes
//   - GuidedStudyRunner, QuestionGenerator (internal/http, internal/tasks):
//     implemented by the tutoring orchestrators
//
// ## Auditing
//
//   - DeleteAuditor, UserAuditor, LoginAuditor, GenerationAuditor,
//     AuditEventCleaner: all implemented by audit.Service
//
// ## Task Queue
//
//   - TaskClient (internal/http): implemented by tasks.Client
//
// # Adding a New Entity
//
//  1. Add the gorm model to internal/entities and register it in database.NewDatabase
//  2. Create a repository package under internal/database
//  3. Declare the store interface and service in internal/services
//  4. Declare the controller interface in internal/http and register routes in NewRouter
//  5. Add the compile-time checks to checks.go
package interfaces
