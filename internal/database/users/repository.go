// Package users provides database operations for user management.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByEmail("ada@example.com")
package users

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/studyhub/internal/entities"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a user. Emails are stored lower-cased and must be unique.
func (r *Repository) CreateUser(user *entities.User) error {
	user.Email = normalizeEmail(user.Email)

	var existing int64
	if err := r.db.Model(&entities.User{}).Where("email = ?", user.Email).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return ErrEmailTaken
	}

	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetUserWithCollections retrieves a user with its collections preloaded.
func (r *Repository) GetUserWithCollections(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.Preload("Collections", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&user, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email, case-insensitively.
func (r *Repository) GetUserByEmail(email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UpdateUser applies the given column updates. Zero values in the map are written.
func (r *Repository) UpdateUser(id uint, updates map[string]any) (*entities.User, error) {
	if email, ok := updates["email"].(string); ok {
		updates["email"] = normalizeEmail(email)
	}

	result := r.db.Model(&entities.User{ID: id}).Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetUserByID(id); err != nil {
			return nil, err
		}
	}
	return r.GetUserByID(id)
}

// DeleteUser removes a user; owned collections cascade.
func (r *Repository) DeleteUser(id uint) error {
	result := r.db.Delete(&entities.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
