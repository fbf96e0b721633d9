package audit

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/studyhub/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.Create(event).Error
}

// EventQuery selects one page of a user's audit trail. An empty EventType
// matches every type.
type EventQuery struct {
	EventType entities.AuditEventType
	Limit     int
	Offset    int
}

// ListForUser returns the user's events newest first, plus the total number of
// events matching the query before paging.
func (r *Repository) ListForUser(userID uint, q EventQuery) ([]entities.AuditEvent, int64, error) {
	scope := r.db.Model(&entities.AuditEvent{}).Where("user_id = ?", userID)
	if q.EventType != "" {
		scope = scope.Where("event_type = ?", q.EventType)
	}

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	events := []entities.AuditEvent{}
	if total == 0 {
		return events, 0, nil
	}
	err := scope.Order("created_at DESC, id DESC").Limit(q.Limit).Offset(q.Offset).Find(&events).Error
	return events, total, err
}

// DeleteOldEvents removes audit events created before olderThan.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(olderThan time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", olderThan).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}
