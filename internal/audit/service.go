// Package audit records security- and cost-relevant actions (registrations,
// deletions, model generations) as AuditEvent rows.
package audit

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/studyhub/internal/database/audit"
	"github.com/mrlokans/studyhub/internal/entities"
	"github.com/mrlokans/studyhub/internal/result"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	log  logrus.FieldLogger
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, log: log.WithField("component", "audit")}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(event); err != nil {
			s.log.WithError(err).WithField("action", event.Action).Warn("Failed to log audit event")
		}
	}()
}

// Wait blocks until pending async writes have finished. Called on shutdown.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogRegister records an account creation.
func (s *Service) LogRegister(userID uint, email string) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventRegister,
		Action:      "user_register",
		Description: "Registered " + email,
		EntityType:  "user",
		EntityID:    &userID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogLogin records a login attempt.
func (s *Service) LogLogin(userID uint, email string, success bool) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventLogin,
		Action:      "user_login",
		Description: "Login for " + email,
		Status:      entities.AuditStatusSuccess,
	}
	if !success {
		event.Status = entities.AuditStatusFailed
	}
	s.LogAsync(event)
}

// LogGeneration records a model call made on behalf of a user.
func (s *Service) LogGeneration(userID uint, action string, subjectID uint, produced int, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventGeneration,
		Action:      action,
		Description: action + " for subject",
		EntityType:  "subject",
		EntityID:    &subjectID,
		Status:      entities.AuditStatusSuccess,
	}

	if md, e := json.Marshal(map[string]any{"produced": produced}); e == nil {
		event.Metadata = string(md)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(userID uint, entityType string, entityID uint, entityName string) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventDelete,
		Action:      entityType + "_delete",
		Description: "Deleted " + entityType + ": " + entityName,
		EntityType:  entityType,
		EntityID:    &entityID,
		Status:      entities.AuditStatusSuccess,
	})
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// EventPage is one page of a user's audit trail.
type EventPage struct {
	Events []entities.AuditEvent `json:"events"`
	Total  int64                 `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// ListEvents returns the caller's own audit events, newest first. A zero limit
// selects DefaultPageSize; larger limits are capped at MaxPageSize.
func (s *Service) ListEvents(userID uint, eventType string, limit, offset int) result.Result[EventPage] {
	if limit < 0 || offset < 0 {
		return result.BadRequest[EventPage]("limit and offset must not be negative")
	}
	switch entities.AuditEventType(eventType) {
	case "", entities.AuditEventRegister, entities.AuditEventLogin, entities.AuditEventDelete, entities.AuditEventGeneration:
	default:
		return result.BadRequest[EventPage]("Unknown event type")
	}
	if limit == 0 {
		limit = DefaultPageSize
	}
	limit = min(limit, MaxPageSize)

	events, total, err := s.repo.ListForUser(userID, audit.EventQuery{
		EventType: entities.AuditEventType(eventType),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("Failed to list audit events")
		return result.Internal[EventPage]()
	}
	return result.OK(EventPage{Events: events, Total: total, Limit: limit, Offset: offset}, "Audit events retrieved")
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
