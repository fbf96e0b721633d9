package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/studyhub/internal/entities"
	"github.com/mrlokans/studyhub/internal/result"
	"github.com/mrlokans/studyhub/internal/services"
)

type QuestionService interface {
	FetchQuestions(subjectID uint) result.Result[[]entities.Question]
	CreateQuestion(input services.QuestionInput) result.Result[*entities.Question]
	DeleteQuestion(id, userID uint) result.Result[*entities.Question]
}

type ConversationService interface {
	FetchConversation(subjectID uint) result.Result[[]entities.Conversation]
	CreateConversation(input services.ConversationInput) result.Result[*entities.Conversation]
}

// StudyController serves the question and conversation routes. Both are
// children of a subject, so every call authorizes the subject first.
type StudyController struct {
	subjects      SubjectService
	questions     QuestionService
	conversations ConversationService
}

func NewStudyController(subjects SubjectService, questions QuestionService, conversations ConversationService) *StudyController {
	return &StudyController{subjects: subjects, questions: questions, conversations: conversations}
}

// authorizeSubject writes the failure envelope and returns false when the
// caller does not own the subject.
func (sc *StudyController) authorizeSubject(c *gin.Context, subjectID uint) bool {
	r := sc.subjects.Authorize(subjectID, GetUserID(c))
	if !r.Ok() {
		respond(c, r)
		return false
	}
	return true
}

// ListQuestions handles GET /api/data/question?subjectId=
func (sc *StudyController) ListQuestions(c *gin.Context) {
	subjectID, ok := requireQueryID(c, "subjectId")
	if !ok || !sc.authorizeSubject(c, subjectID) {
		return
	}
	respond(c, sc.questions.FetchQuestions(subjectID))
}

// CreateQuestion handles POST /api/data/question
func (sc *StudyController) CreateQuestion(c *gin.Context) {
	var input services.QuestionInput
	if !bindJSON(c, &input) {
		return
	}
	if input.SubjectID == 0 {
		respondBadRequest(c, "subjectId is required")
		return
	}
	if !sc.authorizeSubject(c, input.SubjectID) {
		return
	}
	respond(c, sc.questions.CreateQuestion(input))
}

// DeleteQuestion handles DELETE /api/data/question?id=
func (sc *StudyController) DeleteQuestion(c *gin.Context) {
	id, ok := requireQueryID(c, "id")
	if !ok {
		return
	}
	respond(c, sc.questions.DeleteQuestion(id, GetUserID(c)))
}

// ListConversation handles GET /api/data/conversation?subjectId=
func (sc *StudyController) ListConversation(c *gin.Context) {
	subjectID, ok := requireQueryID(c, "subjectId")
	if !ok || !sc.authorizeSubject(c, subjectID) {
		return
	}
	respond(c, sc.conversations.FetchConversation(subjectID))
}

// CreateConversation handles POST /api/data/conversation with a user turn.
func (sc *StudyController) CreateConversation(c *gin.Context) {
	var input services.ConversationInput
	if !bindJSON(c, &input) {
		return
	}
	if input.SubjectID == 0 {
		respondBadRequest(c, "subjectId is required")
		return
	}
	if !sc.authorizeSubject(c, input.SubjectID) {
		return
	}
	input.IsGenerated = false
	respond(c, sc.conversations.CreateConversation(input))
}
