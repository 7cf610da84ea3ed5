package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger records the state changes PickScout makes to its own store.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogProfileSaved logs an onboarding profile write.
func (al *AuditLogger) LogProfileSaved(profileID string, bankroll, unitSize float64, riskTolerance string, hasEmail bool) {
	al.WithFields(logrus.Fields{
		"profile_id":     profileID,
		"bankroll":       bankroll,
		"unit_size":      unitSize,
		"risk_tolerance": riskTolerance,
		"has_email":      hasEmail,
	}).Info("Profile saved")
}

// LogSeedApplied logs a completed seed run.
func (al *AuditLogger) LogSeedApplied(cappers, picks int, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"cappers":   cappers,
		"picks":     picks,
		"timestamp": timestamp.Unix(),
	}).Info("Seed data applied")
}

// LogMigration logs a schema migration command.
func (al *AuditLogger) LogMigration(direction string, version uint, dirty bool) {
	entry := al.WithFields(logrus.Fields{
		"direction": direction,
		"version":   version,
		"dirty":     dirty,
	})
	if dirty {
		entry.Warn("Migration left schema dirty")
		return
	}
	entry.Info("Migration applied")
}
