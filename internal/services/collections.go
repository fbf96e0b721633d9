package services

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/studyhub/internal/auth"
	"github.com/mrlokans/studyhub/internal/database/collections"
	"github.com/mrlokans/studyhub/internal/entities"
	"github.com/mrlokans/studyhub/internal/result"
)

const msgCollectionNotFound = "Collection not found"

// CollectionStore is the persistence contract for collections.
type CollectionStore interface {
	CreateCollection(collection *entities.Collection) error
	GetCollectionByID(id uint) (*entities.Collection, error)
	ListCollectionsForUser(userID uint) ([]entities.Collection, error)
	UpdateCollection(id uint, updates map[string]any) (*entities.Collection, error)
	DeleteCollection(id uint) error
}

// CollectionInput is the client payload for create and update.
type CollectionInput struct {
	Name string `json:"name"`
}

type Collections struct {
	store   CollectionStore
	auditor DeleteAuditor
	log     logrus.FieldLogger
}

func NewCollections(store CollectionStore, auditor DeleteAuditor, log logrus.FieldLogger) *Collections {
	return &Collections{store: store, auditor: auditor, log: log.WithField("service", "collections")}
}

// FetchCollections lists the caller's collections.
func (s *Collections) FetchCollections(userID uint) result.Result[[]entities.Collection] {
	list, err := s.store.ListCollectionsForUser(userID)
	if err != nil {
		return failInternal[[]entities.Collection](s.log, err, "list_collections")
	}
	return result.OK(list, "Collections fetched successfully")
}

// FetchCollection returns one collection with its subjects.
func (s *Collections) FetchCollection(id, userID uint) result.Result[*entities.Collection] {
	return s.owned(id, userID, "fetch_collection")
}

// CreateCollection creates a collection owned by userID. The owner always
// comes from the token, never from the payload.
func (s *Collections) CreateCollection(userID uint, input CollectionInput) result.Result[*entities.Collection] {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return result.BadRequest[*entities.Collection]("Name is required")
	}

	collection := &entities.Collection{Name: name, UserID: userID}
	if err := s.store.CreateCollection(collection); err != nil {
		return failInternal[*entities.Collection](s.log, err, "create_collection")
	}
	return result.Created(collection, "Collection created successfully")
}

func (s *Collections) UpdateCollection(id, userID uint, input CollectionInput) result.Result[*entities.Collection] {
	if r := s.owned(id, userID, "update_collection"); !r.Ok() {
		return r
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return result.BadRequest[*entities.Collection]("Name is required")
	}

	updated, err := s.store.UpdateCollection(id, map[string]any{"name": name})
	if err != nil {
		return failInternal[*entities.Collection](s.log, err, "update_collection")
	}
	return result.OK(updated, "Collection updated successfully")
}

func (s *Collections) DeleteCollection(id, userID uint) result.Result[*entities.Collection] {
	r := s.owned(id, userID, "delete_collection")
	if !r.Ok() {
		return r
	}

	if err := s.store.DeleteCollection(id); err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return result.NotFound[*entities.Collection](msgCollectionNotFound)
		}
		return failInternal[*entities.Collection](s.log, err, "delete_collection")
	}
	if s.auditor != nil {
		s.auditor.LogDelete(userID, "collection", id, r.Value.Name)
	}
	return result.OK(r.Value, "Collection deleted successfully")
}

func (s *Collections) owned(id, userID uint, op string) result.Result[*entities.Collection] {
	collection, err := s.store.GetCollectionByID(id)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return result.NotFound[*entities.Collection](msgCollectionNotFound)
		}
		return failInternal[*entities.Collection](s.log, err, op)
	}
	if auth.Authorize(collection, userID) != nil {
		return result.Unauthorized[*entities.Collection]()
	}
	return result.OK(collection, "Collection fetched successfully")
}
