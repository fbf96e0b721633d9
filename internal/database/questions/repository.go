// Package questions stores quiz questions attached to a subject.
package questions

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/studyhub/internal/entities"
)

var ErrNotFound = errors.New("question not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateQuestion(question *entities.Question) error {
	return r.db.Create(question).Error
}

// CreateQuestions inserts a batch in one statement.
func (r *Repository) CreateQuestions(questions []entities.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(&questions).Error
}

func (r *Repository) GetQuestionByID(id uint) (*entities.Question, error) {
	var question entities.Question
	if err := r.db.First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *Repository) ListForSubject(subjectID uint) ([]entities.Question, error) {
	questions := []entities.Question{}
	err := r.db.Where("subject_id = ?", subjectID).Order("id ASC").Find(&questions).Error
	return questions, err
}

func (r *Repository) UpdateQuestion(id uint, updates map[string]any) (*entities.Question, error) {
	if err := r.db.Model(&entities.Question{ID: id}).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetQuestionByID(id)
}

func (r *Repository) DeleteQuestion(id uint) error {
	result := r.db.Delete(&entities.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
