package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	prod := NewLoggerWithOutput("debug", "production", buf)
	assert.IsType(t, &logrus.JSONFormatter{}, prod.Formatter)
	assert.Equal(t, logrus.DebugLevel, prod.GetLevel())

	prod.WithField("capper", "wes2211").Info("hello")
	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "wes2211", entry["capper"])

	dev := NewLoggerWithOutput("warn", "development", &bytes.Buffer{})
	assert.IsType(t, &logrus.TextFormatter{}, dev.Formatter)
	assert.Equal(t, logrus.WarnLevel, dev.GetLevel())
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	log := NewLoggerWithOutput("loud", "development", &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestAuditLoggerProfileSaved(t *testing.T) {
	log, buf := setupTestLogger()
	audit := NewAuditLogger(log)

	audit.LogProfileSaved("p-1", 1000, 20, "moderate", true)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "audit", logEntry["component"])
	assert.Equal(t, "p-1", logEntry["profile_id"])
	assert.Equal(t, 20.0, logEntry["unit_size"])
	assert.Equal(t, true, logEntry["has_email"])
}

func TestAuditLoggerSeedApplied(t *testing.T) {
	log, buf := setupTestLogger()
	audit := NewAuditLogger(log)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	audit.LogSeedApplied(4, 4, at)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, 4.0, logEntry["cappers"])
	assert.Equal(t, float64(at.Unix()), logEntry["timestamp"])
}

func TestAuditLoggerMigration(t *testing.T) {
	log, buf := setupTestLogger()
	audit := NewAuditLogger(log)

	audit.LogMigration("up", 2, false)
	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "info", logEntry["level"])

	buf.Reset()
	audit.LogMigration("down", 1, true)
	logEntry = parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "warning", logEntry["level"])
}
