package entrypoint

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/studyhub/internal/auth"
	"github.com/mrlokans/studyhub/internal/config"
	"github.com/mrlokans/studyhub/internal/logging"
)

type fakeCleaner struct {
	retention time.Duration
}

func (f *fakeCleaner) DeleteOldEvents(retention time.Duration) (int64, error) {
	f.retention = retention
	return 3, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Database: config.Database{Path: filepath.Join(t.TempDir(), "app.db")},
		Auth:     config.Auth{TokenExpiry: time.Hour, BcryptCost: bcrypt.MinCost},
		AI:       config.AI{Timeout: time.Second},
	}
}

func TestBuild_WiresServices(t *testing.T) {
	app, err := Build(testConfig(t), logging.Discard())
	require.NoError(t, err)
	defer app.Close()

	r := app.Users.CreateUser(auth.Registration{Email: "ada@example.com", Password: "password123"})
	require.True(t, r.Ok(), r.Message)

	token, user, err := app.Accounts.Login("ada@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, r.Value.ID, user.ID)

	claims, err := app.Guard.Verify("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	require.NoError(t, app.DB.Ping(context.Background()))
}

func TestBuild_GeneratesSecretPerProcess(t *testing.T) {
	first, err := Build(testConfig(t), logging.Discard())
	require.NoError(t, err)
	defer first.Close()
	second, err := Build(testConfig(t), logging.Discard())
	require.NoError(t, err)
	defer second.Close()

	token, err := first.Guard.Issue(1, "a@b.co")
	require.NoError(t, err)
	_, err = second.Guard.Verify("Bearer " + token)
	assert.Error(t, err)
}

func TestAuditCleanupJob_InlineWithoutQueue(t *testing.T) {
	cleaner := &fakeCleaner{}

	require.NoError(t, auditCleanupJob(cleaner, nil, 7)(context.Background()))
	assert.Equal(t, 7*24*time.Hour, cleaner.retention)

	require.NoError(t, auditCleanupJob(cleaner, nil, 0)(context.Background()))
	assert.Equal(t, 30*24*time.Hour, cleaner.retention)
}
