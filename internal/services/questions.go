package services

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/studyhub/internal/auth"
	"github.com/mrlokans/studyhub/internal/database/questions"
	"github.com/mrlokans/studyhub/internal/database/subjects"
	"github.com/mrlokans/studyhub/internal/entities"
	"github.com/mrlokans/studyhub/internal/result"
)

const msgQuestionNotFound = "Question not found"

type QuestionStore interface {
	CreateQuestion(question *entities.Question) error
	GetQuestionByID(id uint) (*entities.Question, error)
	ListForSubject(subjectID uint) ([]entities.Question, error)
	DeleteQuestion(id uint) error
}

// QuestionInput is a manually authored question.
type QuestionInput struct {
	SubjectID uint                    `json:"subjectId"`
	Text      string                  `json:"text"`
	Items     []entities.QuestionItem `json:"items"`
}

type Questions struct {
	store    QuestionStore
	subjects SubjectStore
	log      logrus.FieldLogger
}

func NewQuestions(store QuestionStore, subjects SubjectStore, log logrus.FieldLogger) *Questions {
	return &Questions{store: store, subjects: subjects, log: log.WithField("service", "questions")}
}

// FetchQuestions lists a subject's questions. Callers check subject ownership first.
func (s *Questions) FetchQuestions(subjectID uint) result.Result[[]entities.Question] {
	list, err := s.store.ListForSubject(subjectID)
	if err != nil {
		return failInternal[[]entities.Question](s.log, err, "fetch_questions")
	}
	return result.OK(list, "Questions fetched successfully")
}

// CreateQuestion persists a question. It does not verify the parent subject;
// callers must authorize the subject before calling it.
func (s *Questions) CreateQuestion(input QuestionInput) result.Result[*entities.Question] {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return result.BadRequest[*entities.Question]("Text is required")
	}
	if len(input.Items) == 0 {
		return result.BadRequest[*entities.Question]("At least one item is required")
	}

	question := &entities.Question{Text: text, SubjectID: input.SubjectID}
	if err := question.SetItems(input.Items); err != nil {
		return failInternal[*entities.Question](s.log, err, "create_question")
	}
	if err := s.store.CreateQuestion(question); err != nil {
		return failInternal[*entities.Question](s.log, err, "create_question")
	}
	return result.Created(question, "Question created successfully")
}

// DeleteQuestion removes a question if its subject belongs to userID.
func (s *Questions) DeleteQuestion(id, userID uint) result.Result[*entities.Question] {
	question, err := s.store.GetQuestionByID(id)
	if err != nil {
		if errors.Is(err, questions.ErrNotFound) {
			return result.NotFound[*entities.Question](msgQuestionNotFound)
		}
		return failInternal[*entities.Question](s.log, err, "delete_question")
	}

	subject, err := s.subjects.GetSubjectByID(question.SubjectID)
	switch {
	case errors.Is(err, subjects.ErrNotFound):
		return result.Unauthorized[*entities.Question]()
	case err != nil:
		return failInternal[*entities.Question](s.log, err, "delete_question")
	case auth.Authorize(subject, userID) != nil:
		return result.Unauthorized[*entities.Question]()
	}

	if err := s.store.DeleteQuestion(id); err != nil {
		if errors.Is(err, questions.ErrNotFound) {
			return result.NotFound[*entities.Question](msgQuestionNotFound)
		}
		return failInternal[*entities.Question](s.log, err, "delete_question")
	}
	return result.OK(question, "Question deleted successfully")
}
