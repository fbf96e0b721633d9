// Package serializers projects stored entities onto the fields clients may see.
package serializers

import (
	"time"

	"github.com/mrlokans/studyhub/internal/entities"
)

type CollectionView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	UserID    uint      `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserView never carries credential material.
type UserView struct {
	ID         uint             `json:"id"`
	Email      string           `json:"email"`
	FirstName  string           `json:"firstName"`
	LastName   string           `json:"lastName"`
	Collection []CollectionView `json:"collection"`
}

func Collection(c entities.Collection) CollectionView {
	return CollectionView{
		ID:        c.ID,
		Name:      c.Name,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// User projects a user and its loaded collections. A nil user yields nil.
func User(u *entities.User) *UserView {
	if u == nil {
		return nil
	}

	collections := make([]CollectionView, 0, len(u.Collections))
	for _, c := range u.Collections {
		collections = append(collections, Collection(c))
	}

	return &UserView{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Collection: collections,
	}
}
