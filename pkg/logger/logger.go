package logger

import (
	"github.com/sirupsen/logrus"
)

// Logger receives the soft failures and notable decisions of a planning run.
// Nothing reported here aborts the run.
type Logger interface {
	Skip(path string, reason error)
	Conflict(source, proposed, resolved string)
	Debug(format string, args ...interface{})
}

// PlanLogger reports through a logrus entry, normally writing to stderr
type PlanLogger struct {
	Entry *logrus.Entry
}

// NewPlanLogger wraps l, tagging every record with the tool name
func NewPlanLogger(l *logrus.Logger, tool string) *PlanLogger {
	return &PlanLogger{Entry: l.WithField("tool", tool)}
}

func (l *PlanLogger) Skip(path string, reason error) {
	l.Entry.WithFields(logrus.Fields{
		"path":  path,
		"error": reason,
	}).Warn("skipping file")
}

func (l *PlanLogger) Conflict(source, proposed, resolved string) {
	l.Entry.WithFields(logrus.Fields{
		"source":   source,
		"proposed": proposed,
		"resolved": resolved,
	}).Info("name conflict resolved")
}

func (l *PlanLogger) Debug(format string, args ...interface{}) {
	l.Entry.Debugf(format, args...)
}

// CountingLogger counts skips and conflicts and passes every call on
type CountingLogger struct {
	Logger
	Skipped   int
	Conflicts int
}

func NewCountingLogger(next Logger) *CountingLogger {
	return &CountingLogger{Logger: next}
}

func (l *CountingLogger) Skip(path string, reason error) {
	l.Skipped++
	l.Logger.Skip(path, reason)
}

func (l *CountingLogger) Conflict(source, proposed, resolved string) {
	l.Conflicts++
	l.Logger.Conflict(source, proposed, resolved)
}

type NullLogger struct{}

func (l *NullLogger) Skip(path string, reason error) {}

func (l *NullLogger) Conflict(source, proposed, resolved string) {}

func (l *NullLogger) Debug(format string, args ...interface{}) {}
