// Package tutoring combines stored study material with a generative model.
//
// GuidedStudy produces the tutor's next conversation turn for a subject and
// QuestionGenerator turns a subject's resume and recent conversation into
// multiple-choice questions. Both check ownership before calling the model and
// never return raw errors: every failure is a result.Result.
package tutoring

import (
	"github.com/mrlokans/studyhub/internal/entities"
)

const (
	msgSubjectNotFound = "Subject not found"
	minContentLength   = 50
	historyWindow      = 20
)

// SubjectLoader loads subjects with the associations the orchestrators read.
type SubjectLoader interface {
	GetSubjectByID(id uint) (*entities.Subject, error)
	GetSubjectDetail(id uint) (*entities.Subject, error)
}

type ConversationStore interface {
	CreateConversation(turn *entities.Conversation) error
	ListForSubject(subjectID uint, limit int) ([]entities.Conversation, error)
}

// GenerationAuditor records model usage per user.
type GenerationAuditor interface {
	LogGeneration(userID uint, action string, subjectID uint, produced int, err error)
}
