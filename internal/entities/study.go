package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	FirstName    string       `gorm:"size:100" json:"firstName"`
	LastName     string       `gorm:"size:100" json:"lastName"`
	Email        string       `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string       `gorm:"size:255" json:"-"`
	Collections  []Collection `gorm:"constraint:OnDelete:CASCADE;" json:"collection,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

type Collection struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Subjects  []Subject `gorm:"constraint:OnDelete:CASCADE;" json:"subjects,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Collection) TableName() string {
	return "collections"
}

// OwnerID implements the ownership contract used by auth.Authorize.
func (c Collection) OwnerID() uint {
	return c.UserID
}

// Subject is a study topic inside a collection. Resume is an optional
// free-text summary and Image an optional data URI.
type Subject struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Resume        *string        `gorm:"type:text" json:"resume"`
	Image         *string        `gorm:"type:text" json:"image"`
	CollectionID  uint           `gorm:"index;not null" json:"collectionId"`
	Collection    *Collection    `gorm:"constraint:OnDelete:CASCADE;" json:"collection,omitempty"`
	Conversations []Conversation `gorm:"constraint:OnDelete:CASCADE;" json:"conversation,omitempty"`
	Questions     []Question     `gorm:"constraint:OnDelete:CASCADE;" json:"questions,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (Subject) TableName() string {
	return "subjects"
}

// OwnerID returns the owning user id. The Collection association must be loaded.
func (s Subject) OwnerID() uint {
	if s.Collection == nil {
		return 0
	}
	return s.Collection.UserID
}

// Conversation is one turn of a tutoring session. IsGenerated marks model output.
type Conversation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	IsGenerated bool      `gorm:"not null;default:false" json:"isGenerated"`
	SubjectID   uint      `gorm:"index;not null" json:"subjectId"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// QuestionItem is a single answer option.
type QuestionItem struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type Question struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	Items     datatypes.JSON `json:"items"`
	SubjectID uint           `gorm:"index;not null" json:"subjectId"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (Question) TableName() string {
	return "questions"
}

// SetItems serializes answer options into the Items column.
func (q *Question) SetItems(items []QuestionItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode question items: %w", err)
	}
	q.Items = datatypes.JSON(raw)
	return nil
}

// DecodeItems parses the Items column. An empty column yields no items.
func (q Question) DecodeItems() ([]QuestionItem, error) {
	if len(q.Items) == 0 {
		return nil, nil
	}
	var items []QuestionItem
	if err := json.Unmarshal(q.Items, &items); err != nil {
		return nil, fmt.Errorf("decode question items: %w", err)
	}
	return items, nil
}
