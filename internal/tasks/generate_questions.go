package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/studyhub/internal/result"
	"github.com/mrlokans/studyhub/internal/tutoring"
)

// QuestionGenerator is the orchestrator the queue delegates to.
type QuestionGenerator interface {
	Generate(ctx context.Context, req tutoring.Request) result.Result[tutoring.Summary]
}

// GenerateQuestionsTask runs question generation outside the request cycle.
type GenerateQuestionsTask struct {
	SubjectID uint `json:"subject_id"`
	UserID    uint `json:"user_id"`
	Count     int  `json:"count"`
	ItemCount int  `json:"item_count"`
}

func (t GenerateQuestionsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "generate_questions",
		MaxAttempts: 1,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// GenerateQuestionsProcessor creates a processor for GenerateQuestionsTask.
// Internal and upstream failures mark the task failed; client errors
// (not found, unauthorized, bad request) are logged and complete it. A task
// runs at most once.
func GenerateQuestionsProcessor(gen QuestionGenerator, log logrus.FieldLogger) backlite.QueueProcessor[GenerateQuestionsTask] {
	return func(ctx context.Context, task GenerateQuestionsTask) error {
		if gen == nil {
			return fmt.Errorf("question generator not configured")
		}

		entry := log.WithFields(logrus.Fields{
			"subject_id": task.SubjectID,
			"user_id":    task.UserID,
		})

		r := gen.Generate(ctx, tutoring.Request{
			SubjectID: task.SubjectID,
			UserID:    task.UserID,
			Count:     task.Count,
			ItemCount: task.ItemCount,
		})

		switch r.Kind {
		case result.KindOK:
			entry.WithField("generated", r.Value.QuestionsGenerated).Info("Background question generation finished")
			return nil
		case result.KindInternal, result.KindUpstream:
			return fmt.Errorf("generate questions for subject %d: %s", task.SubjectID, r.Message)
		default:
			entry.WithField("reason", r.Message).Warn("Background question generation rejected")
			return nil
		}
	}
}

func NewGenerateQuestionsQueue(gen QuestionGenerator, log logrus.FieldLogger) backlite.Queue {
	return backlite.NewQueue(GenerateQuestionsProcessor(gen, log))
}
