// Package subjects provides database operations for study subjects.
//
// Every lookup preloads the owning collection so callers can run the
// ownership check without a second query.
package subjects

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/studyhub/internal/entities"
)

var ErrNotFound = errors.New("subject not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateSubject(subject *entities.Subject) error {
	if err := r.db.Omit("Collection").Create(subject).Error; err != nil {
		return err
	}
	return r.db.Preload("Collection").First(subject, subject.ID).Error
}

// GetSubjectByID retrieves a subject with its owning collection.
func (r *Repository) GetSubjectByID(id uint) (*entities.Subject, error) {
	var subject entities.Subject
	if err := r.db.Preload("Collection").First(&subject, id).Error; err != nil {
		return nil, translate(err)
	}
	return &subject, nil
}

// GetSubjectDetail retrieves a subject with collection, conversation (oldest first)
// and questions.
func (r *Repository) GetSubjectDetail(id uint) (*entities.Subject, error) {
	var subject entities.Subject
	err := r.db.
		Preload("Collection").
		Preload("Conversations", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&subject, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &subject, nil
}

// ListSubjectsForCollection returns the subjects of a collection, oldest first.
func (r *Repository) ListSubjectsForCollection(collectionID uint) ([]entities.Subject, error) {
	subjects := []entities.Subject{}
	err := r.db.Where("collection_id = ?", collectionID).Order("id ASC").Find(&subjects).Error
	return subjects, err
}

func (r *Repository) UpdateSubject(id uint, updates map[string]any) (*entities.Subject, error) {
	if err := r.db.Model(&entities.Subject{ID: id}).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetSubjectByID(id)
}

// DeleteSubject removes a subject; conversations and questions cascade.
func (r *Repository) DeleteSubject(id uint) error {
	result := r.db.Delete(&entities.Subject{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether the subject row is still present.
func (r *Repository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Subject{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
