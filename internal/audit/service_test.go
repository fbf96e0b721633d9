package audit

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/studyhub/internal/config"
	"github.com/mrlokans/studyhub/internal/database"
	auditRepo "github.com/mrlokans/studyhub/internal/database/audit"
	"github.com/mrlokans/studyhub/internal/entities"
	"github.com/mrlokans/studyhub/internal/logging"
	"github.com/mrlokans/studyhub/internal/result"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := database.NewDatabase(config.Database{Path: filepath.Join(t.TempDir(), "audit.db")}, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewService(auditRepo.NewRepository(db.DB), logging.Discard()), db.DB
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{UserID: 1, EventType: entities.AuditEventLogin, Action: "user_login"}
	require.NoError(t, svc.Log(event))

	var saved entities.AuditEvent
	require.NoError(t, db.First(&saved, event.ID).Error)
	assert.Equal(t, "user_login", saved.Action)
}

func TestService_LogGeneration(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("successful generation", func(t *testing.T) {
		svc.LogGeneration(1, "question_generation", 9, 5, nil)
		svc.Wait()

		var event entities.AuditEvent
		require.NoError(t, db.Where("action = ?", "question_generation").First(&event).Error)
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
		assert.Equal(t, entities.AuditEventGeneration, event.EventType)
		require.NotNil(t, event.EntityID)
		assert.Equal(t, uint(9), *event.EntityID)
		assert.JSONEq(t, `{"produced":5}`, event.Metadata)
	})

	t.Run("failed generation", func(t *testing.T) {
		svc.LogGeneration(1, "guided_study", 9, 0, errors.New("upstream unavailable"))
		svc.Wait()

		var event entities.AuditEvent
		require.NoError(t, db.Where("action = ?", "guided_study").First(&event).Error)
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Equal(t, "upstream unavailable", event.ErrorMsg)
	})
}

func TestService_LogRegisterAndDelete(t *testing.T) {
	svc, _ := setupTestService(t)

	svc.LogRegister(3, "ada@example.com")
	svc.LogDelete(3, "subject", 12, "Optics")
	svc.Wait()

	r := svc.ListEvents(3, "", 10, 0)
	require.True(t, r.Ok(), r.Message)
	assert.Equal(t, int64(2), r.Value.Total)
	require.Len(t, r.Value.Events, 2)
	actions := []string{r.Value.Events[0].Action, r.Value.Events[1].Action}
	assert.ElementsMatch(t, []string{"user_register", "subject_delete"}, actions)
}

func TestService_ListEvents(t *testing.T) {
	svc, db := setupTestService(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&entities.AuditEvent{UserID: 5, EventType: entities.AuditEventGeneration, Action: "guided_study"}).Error)
	}
	require.NoError(t, db.Create(&entities.AuditEvent{UserID: 5, EventType: entities.AuditEventLogin, Action: "login"}).Error)
	require.NoError(t, db.Create(&entities.AuditEvent{UserID: 6, EventType: entities.AuditEventLogin, Action: "login"}).Error)

	t.Run("defaults", func(t *testing.T) {
		r := svc.ListEvents(5, "", 0, 0)
		require.True(t, r.Ok())
		assert.Equal(t, int64(4), r.Value.Total)
		assert.Len(t, r.Value.Events, 4)
		assert.Equal(t, DefaultPageSize, r.Value.Limit)
	})

	t.Run("limit is capped", func(t *testing.T) {
		r := svc.ListEvents(5, "", 10_000, 0)
		require.True(t, r.Ok())
		assert.Equal(t, MaxPageSize, r.Value.Limit)
	})

	t.Run("filtered by type", func(t *testing.T) {
		r := svc.ListEvents(5, "login", 0, 0)
		require.True(t, r.Ok())
		assert.Equal(t, int64(1), r.Value.Total)
		assert.Equal(t, uint(5), r.Value.Events[0].UserID)
	})

	t.Run("invalid query", func(t *testing.T) {
		assert.Equal(t, result.KindBadRequest, svc.ListEvents(5, "", -1, 0).Kind)
		assert.Equal(t, result.KindBadRequest, svc.ListEvents(5, "", 10, -1).Kind)
		assert.Equal(t, result.KindBadRequest, svc.ListEvents(5, "payments", 10, 0).Kind)
	})
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, db := setupTestService(t)

	require.NoError(t, db.Create(&entities.AuditEvent{Action: "old", CreatedAt: time.Now().Add(-48 * time.Hour)}).Error)
	require.NoError(t, db.Create(&entities.AuditEvent{Action: "new", CreatedAt: time.Now()}).Error)

	deleted, err := svc.DeleteOldEvents(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining []entities.AuditEvent
	db.Find(&remaining)
	require.Len(t, remaining, 1)
	assert.Equal(t, "new", remaining[0].Action)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10c", 10, "exactly10c"},
		{"this is a very long string", 10, "this is..."},
		{"", 5, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, truncate(tt.input, tt.maxLen))
	}
}
