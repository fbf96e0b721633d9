// Package collections provides database operations for user collections.
package collections

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/studyhub/internal/entities"
)

var ErrNotFound = errors.New("collection not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateCollection(collection *entities.Collection) error {
	return r.db.Create(collection).Error
}

// GetCollectionByID retrieves a collection with its subjects.
func (r *Repository) GetCollectionByID(id uint) (*entities.Collection, error) {
	var collection entities.Collection
	err := r.db.Preload("Subjects", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&collection, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &collection, nil
}

// ListCollectionsForUser returns the user's collections, oldest first.
func (r *Repository) ListCollectionsForUser(userID uint) ([]entities.Collection, error) {
	collections := []entities.Collection{}
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&collections).Error
	return collections, err
}

func (r *Repository) UpdateCollection(id uint, updates map[string]any) (*entities.Collection, error) {
	result := r.db.Model(&entities.Collection{ID: id}).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	return r.GetCollectionByID(id)
}

// DeleteCollection removes a collection; subjects cascade.
func (r *Repository) DeleteCollection(id uint) error {
	result := r.db.Delete(&entities.Collection{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
