package services

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/studyhub/internal/auth"
	"github.com/mrlokans/studyhub/internal/database/collections"
	"github.com/mrlokans/studyhub/internal/database/subjects"
	"github.com/mrlokans/studyhub/internal/entities"
	"github.com/mrlokans/studyhub/internal/result"
)

const msgSubjectNotFound = "Subject not found"

type SubjectStore interface {
	CreateSubject(subject *entities.Subject) error
	GetSubjectByID(id uint) (*entities.Subject, error)
	GetSubjectDetail(id uint) (*entities.Subject, error)
	ListSubjectsForCollection(collectionID uint) ([]entities.Subject, error)
	UpdateSubject(id uint, updates map[string]any) (*entities.Subject, error)
	DeleteSubject(id uint) error
}

// SubjectInput is the create payload. Image is a data URI built by the handler.
type SubjectInput struct {
	Name         string
	CollectionID uint
	Resume       *string
	Image        *string
}

// SubjectUpdate carries the mutable subject fields. Nil fields are left as is.
type SubjectUpdate struct {
	Name   *string `json:"name"`
	Resume *string `json:"resume"`
}

type Subjects struct {
	store       SubjectStore
	collections CollectionStore
	auditor     DeleteAuditor
	log         logrus.FieldLogger
}

func NewSubjects(store SubjectStore, collections CollectionStore, auditor DeleteAuditor, log logrus.FieldLogger) *Subjects {
	return &Subjects{
		store:       store,
		collections: collections,
		auditor:     auditor,
		log:         log.WithField("service", "subjects"),
	}
}

// Authorize loads a subject and checks that userID owns it. Handlers call this
// before touching a subject's questions or conversation.
func (s *Subjects) Authorize(id, userID uint) result.Result[*entities.Subject] {
	subject, err := s.store.GetSubjectByID(id)
	if err != nil {
		return s.lookupFailure(err, "authorize_subject")
	}
	if auth.Authorize(subject, userID) != nil {
		return result.Unauthorized[*entities.Subject]()
	}
	return result.OK(subject, "Subject fetched successfully")
}

// FetchSubject returns the subject with its conversation (oldest first) and questions.
func (s *Subjects) FetchSubject(id, userID uint) result.Result[*entities.Subject] {
	subject, err := s.store.GetSubjectDetail(id)
	if err != nil {
		return s.lookupFailure(err, "fetch_subject")
	}
	if auth.Authorize(subject, userID) != nil {
		return result.Unauthorized[*entities.Subject]()
	}
	return result.OK(subject, "Subject fetched successfully")
}

// FetchSubjects lists the subjects of a collection the caller owns.
func (s *Subjects) FetchSubjects(collectionID, userID uint) result.Result[[]entities.Subject] {
	if r := s.ownCollection(collectionID, userID, "fetch_subjects"); !r.Ok() {
		return result.Propagate[[]entities.Subject](r)
	}

	list, err := s.store.ListSubjectsForCollection(collectionID)
	if err != nil {
		return failInternal[[]entities.Subject](s.log, err, "fetch_subjects")
	}
	return result.OK(list, "Subjects fetched successfully")
}

func (s *Subjects) CreateSubject(userID uint, input SubjectInput) result.Result[*entities.Subject] {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return result.BadRequest[*entities.Subject]("Name is required")
	}
	if input.CollectionID == 0 {
		return result.BadRequest[*entities.Subject]("Collection ID is required")
	}
	if r := s.ownCollection(input.CollectionID, userID, "create_subject"); !r.Ok() {
		return result.Propagate[*entities.Subject](r)
	}

	subject := &entities.Subject{
		Name:         name,
		CollectionID: input.CollectionID,
		Resume:       input.Resume,
		Image:        input.Image,
	}
	if err := s.store.CreateSubject(subject); err != nil {
		return failInternal[*entities.Subject](s.log, err, "create_subject")
	}
	return result.Created(subject, "Subject created successfully")
}

func (s *Subjects) UpdateSubject(id, userID uint, update SubjectUpdate) result.Result[*entities.Subject] {
	if r := s.Authorize(id, userID); !r.Ok() {
		return r
	}

	updates := map[string]any{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return result.BadRequest[*entities.Subject]("Name cannot be empty")
		}
		updates["name"] = name
	}
	if update.Resume != nil {
		updates["resume"] = *update.Resume
	}
	if len(updates) == 0 {
		return result.BadRequest[*entities.Subject]("Nothing to update")
	}

	subject, err := s.store.UpdateSubject(id, updates)
	if err != nil {
		return failInternal[*entities.Subject](s.log, err, "update_subject")
	}
	return result.OK(subject, "Subject updated successfully")
}

func (s *Subjects) DeleteSubject(id, userID uint) result.Result[*entities.Subject] {
	r := s.Authorize(id, userID)
	if !r.Ok() {
		return r
	}

	if err := s.store.DeleteSubject(id); err != nil {
		return s.lookupFailure(err, "delete_subject")
	}
	if s.auditor != nil {
		s.auditor.LogDelete(userID, "subject", id, r.Value.Name)
	}
	return result.OK(r.Value, "Subject deleted successfully")
}

func (s *Subjects) ownCollection(collectionID, userID uint, op string) result.Result[*entities.Collection] {
	collection, err := s.collections.GetCollectionByID(collectionID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return result.NotFound[*entities.Collection](msgCollectionNotFound)
		}
		return failInternal[*entities.Collection](s.log, err, op)
	}
	if auth.Authorize(collection, userID) != nil {
		return result.Unauthorized[*entities.Collection]()
	}
	return result.OK(collection, "")
}

func (s *Subjects) lookupFailure(err error, op string) result.Result[*entities.Subject] {
	if errors.Is(err, subjects.ErrNotFound) {
		return result.NotFound[*entities.Subject](msgSubjectNotFound)
	}
	return failInternal[*entities.Subject](s.log, err, op)
}
