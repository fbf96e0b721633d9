package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, 720*time.Hour, cfg.Auth.TokenExpiry)
	assert.Equal(t, DefaultTutorModel, cfg.AI.TutorModel)
	assert.Equal(t, DefaultQuestionModel, cfg.AI.QuestionModel)
	assert.Equal(t, int64(DefaultMaxUploadSize), cfg.Upload.MaxFileSize)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "postgres://localhost/studyhub")
	t.Setenv("GEMINI_KEY", "secret")
	t.Setenv("AI_TIMEOUT", "5s")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/studyhub", cfg.Database.ConnectionString())
	assert.Equal(t, "secret", cfg.AI.APIKey)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
}

func TestDatabase_ConnectionString(t *testing.T) {
	assert.Equal(t, "./a.db", Database{Driver: DriverSQLite, Path: "./a.db", DSN: "x"}.ConnectionString())
	assert.Equal(t, "./a.db", Database{Path: "./a.db"}.ConnectionString())
	assert.Equal(t, "dsn", Database{Driver: DriverPgx, Path: "./a.db", DSN: "dsn"}.ConnectionString())
}
