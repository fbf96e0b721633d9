package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/studyhub/internal/entities"
	"github.com/mrlokans/studyhub/internal/result"
	"github.com/mrlokans/studyhub/internal/tasks"
	"github.com/mrlokans/studyhub/internal/tutoring"
)

type GuidedStudyRunner interface {
	Run(ctx context.Context, subjectID, userID uint) result.Result[*entities.Conversation]
}

type QuestionGenerator interface {
	Generate(ctx context.Context, req tutoring.Request) result.Result[tutoring.Summary]
}

// TaskClient is the slice of the task queue the HTTP layer uses.
type TaskClient interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
	Status(ctx context.Context, id string) (backlite.TaskStatus, error)
}

type GuidedStudyRequest struct {
	SubjectID uint `json:"subjectId"`
}

type GenerateQuestionsRequest struct {
	SubjectID uint `json:"subjectId"`
	Count     int  `json:"count"`
	ItemCount int  `json:"itemCount"`
	// Async enqueues generation and answers 202 with a task id.
	Async bool `json:"async"`
}

// EnqueuedView is the data of a 202 response.
type EnqueuedView struct {
	TaskID string `json:"taskId"`
}

type AIController struct {
	guidedStudy GuidedStudyRunner
	generator   QuestionGenerator
	subjects    SubjectService
	tasks       TaskClient
	log         logrus.FieldLogger
}

func NewAIController(guidedStudy GuidedStudyRunner, generator QuestionGenerator, subjects SubjectService, taskClient TaskClient, log logrus.FieldLogger) *AIController {
	return &AIController{
		guidedStudy: guidedStudy,
		generator:   generator,
		subjects:    subjects,
		tasks:       taskClient,
		log:         log,
	}
}

// GuidedStudy handles POST /api/ai/guided-study
func (ac *AIController) GuidedStudy(c *gin.Context) {
	var req GuidedStudyRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.SubjectID == 0 {
		respondBadRequest(c, "subjectId is required")
		return
	}
	respond(c, ac.guidedStudy.Run(c.Request.Context(), req.SubjectID, GetUserID(c)))
}

// GenerateQuestions handles POST /api/ai/questions
func (ac *AIController) GenerateQuestions(c *gin.Context) {
	var body GenerateQuestionsRequest
	if !bindJSON(c, &body) {
		return
	}

	req := tutoring.Request{
		SubjectID: body.SubjectID,
		UserID:    GetUserID(c),
		Count:     body.Count,
		ItemCount: body.ItemCount,
	}

	if body.Async && ac.tasks != nil {
		ac.enqueue(c, req)
		return
	}
	respond(c, ac.generator.Generate(c.Request.Context(), req))
}

func (ac *AIController) enqueue(c *gin.Context, req tutoring.Request) {
	if err := req.Validate(); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if r := ac.subjects.Authorize(req.SubjectID, req.UserID); !r.Ok() {
		respond(c, r)
		return
	}

	id, err := ac.tasks.Enqueue(c.Request.Context(), tasks.GenerateQuestionsTask{
		SubjectID: req.SubjectID,
		UserID:    req.UserID,
		Count:     req.Count,
		ItemCount: req.ItemCount,
	})
	if err != nil {
		ac.log.WithError(err).WithField("subject_id", req.SubjectID).Error("Failed to enqueue question generation")
		respond(c, result.Internal[any]())
		return
	}
	respondAccepted(c, "Question generation enqueued", EnqueuedView{TaskID: id})
}
