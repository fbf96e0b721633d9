package tutoring

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/studyhub/internal/ai"
	"github.com/mrlokans/studyhub/internal/auth"
	"github.com/mrlokans/studyhub/internal/database/subjects"
	"github.com/mrlokans/studyhub/internal/entities"
	"github.com/mrlokans/studyhub/internal/result"
)

type GuidedStudy struct {
	subjects      SubjectLoader
	conversations ConversationStore
	model         ai.TextGenerator
	auditor       GenerationAuditor
	log           logrus.FieldLogger
}

func NewGuidedStudy(subjects SubjectLoader, conversations ConversationStore, model ai.TextGenerator, auditor GenerationAuditor, log logrus.FieldLogger) *GuidedStudy {
	return &GuidedStudy{
		subjects:      subjects,
		conversations: conversations,
		model:         model,
		auditor:       auditor,
		log:           log.WithField("orchestrator", "guided_study"),
	}
}

// Run asks the model for the tutor's next turn and stores it as a generated
// conversation entry.
func (g *GuidedStudy) Run(ctx context.Context, subjectID, userID uint) result.Result[*entities.Conversation] {
	log := g.log.WithFields(logrus.Fields{"subject_id": subjectID, "user_id": userID})

	subject, err := g.subjects.GetSubjectDetail(subjectID)
	if err != nil {
		if errors.Is(err, subjects.ErrNotFound) {
			return result.NotFound[*entities.Conversation](msgSubjectNotFound)
		}
		log.WithError(err).Error("Failed to load subject")
		return result.Internal[*entities.Conversation]()
	}
	if auth.Authorize(subject, userID) != nil {
		return result.Unauthorized[*entities.Conversation]()
	}

	text, err := g.model.Generate(ctx, guidedStudyPrompt(subject))
	if err != nil {
		g.audit(userID, subjectID, 0, err)
		if errors.Is(err, ai.ErrEmptyResponse) {
			log.Warn("Tutor model returned no text")
			return result.Upstream[*entities.Conversation]("AI generation failed (empty response)")
		}
		log.WithError(err).Error("Tutor model call failed")
		return result.Internal[*entities.Conversation]()
	}

	turn := &entities.Conversation{
		Text:        text,
		IsGenerated: true,
		SubjectID:   subjectID,
	}
	if err := g.conversations.CreateConversation(turn); err != nil {
		log.WithError(err).Error("Failed to store tutor turn")
		g.audit(userID, subjectID, 0, err)
		return result.Internal[*entities.Conversation]()
	}

	g.audit(userID, subjectID, 1, nil)
	log.WithField("conversation_id", turn.ID).Info("Tutor turn generated")
	return result.Created(turn, "Conversation created successfully")
}

func (g *GuidedStudy) audit(userID, subjectID uint, produced int, err error) {
	if g.auditor != nil {
		g.auditor.LogGeneration(userID, "guided_study", subjectID, produced, err)
	}
}
