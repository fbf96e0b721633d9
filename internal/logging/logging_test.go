package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/studyhub/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("parses level and json format", func(t *testing.T) {
		logger := New(config.Log{Level: "debug", Format: "json"})

		assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
		assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
	})

	t.Run("falls back to info and text", func(t *testing.T) {
		logger := New(config.Log{Level: "loud", Format: ""})

		assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
		assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
	})
}
