package services

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/studyhub/internal/entities"
	"github.com/mrlokans/studyhub/internal/result"
)

type ConversationStore interface {
	CreateConversation(turn *entities.Conversation) error
	ListForSubject(subjectID uint, limit int) ([]entities.Conversation, error)
}

// ConversationInput is one conversation turn.
type ConversationInput struct {
	SubjectID   uint   `json:"subjectId"`
	Text        string `json:"text"`
	IsGenerated bool   `json:"-"`
}

type Conversations struct {
	store ConversationStore
	log   logrus.FieldLogger
}

func NewConversations(store ConversationStore, log logrus.FieldLogger) *Conversations {
	return &Conversations{store: store, log: log.WithField("service", "conversations")}
}

// FetchConversation returns every turn for the subject, oldest first.
func (s *Conversations) FetchConversation(subjectID uint) result.Result[[]entities.Conversation] {
	turns, err := s.store.ListForSubject(subjectID, 0)
	if err != nil {
		return failInternal[[]entities.Conversation](s.log, err, "fetch_conversation")
	}
	return result.OK(turns, "Conversation fetched successfully")
}

// CreateConversation appends a turn. Callers authorize the subject first.
func (s *Conversations) CreateConversation(input ConversationInput) result.Result[*entities.Conversation] {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return result.BadRequest[*entities.Conversation]("Text is required")
	}

	turn := &entities.Conversation{
		Text:        text,
		IsGenerated: input.IsGenerated,
		SubjectID:   input.SubjectID,
	}
	if err := s.store.CreateConversation(turn); err != nil {
		return failInternal[*entities.Conversation](s.log, err, "create_conversation")
	}
	return result.Created(turn, "Conversation created successfully")
}
