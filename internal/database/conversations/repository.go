// Package conversations stores tutoring turns. Order is always creation time
// ascending with the primary key as tie-breaker.
package conversations

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/studyhub/internal/entities"
)

var ErrNotFound = errors.New("conversation not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateConversation(turn *entities.Conversation) error {
	return r.db.Create(turn).Error
}

func (r *Repository) GetConversationByID(id uint) (*entities.Conversation, error) {
	var turn entities.Conversation
	if err := r.db.First(&turn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &turn, nil
}

// ListForSubject returns turns oldest first. A limit <= 0 returns all of them.
func (r *Repository) ListForSubject(subjectID uint, limit int) ([]entities.Conversation, error) {
	turns := []entities.Conversation{}
	query := r.db.Where("subject_id = ?", subjectID).Order("created_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&turns).Error
	return turns, err
}

func (r *Repository) DeleteConversation(id uint) error {
	result := r.db.Delete(&entities.Conversation{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
