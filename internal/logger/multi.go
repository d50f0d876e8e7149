package logger

import "github.com/syn-chromatic/filesearch/internal/models"

// MultiLogger fans every call out to a list of loggers.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger. Nil entries are dropped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	ml := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			ml.loggers = append(ml.loggers, l)
		}
	}
	return ml
}

func (m *MultiLogger) LogTrace(message string) {
	for _, l := range m.loggers {
		l.LogTrace(message)
	}
}

func (m *MultiLogger) LogDebug(message string) {
	for _, l := range m.loggers {
		l.LogDebug(message)
	}
}

func (m *MultiLogger) LogInfo(message string) {
	for _, l := range m.loggers {
		l.LogInfo(message)
	}
}

func (m *MultiLogger) LogWarn(message string) {
	for _, l := range m.loggers {
		l.LogWarn(message)
	}
}

func (m *MultiLogger) LogError(message string) {
	for _, l := range m.loggers {
		l.LogError(message)
	}
}

func (m *MultiLogger) LogSearchStart(runID, root string) {
	for _, l := range m.loggers {
		l.LogSearchStart(runID, root)
	}
}

func (m *MultiLogger) LogSearchSummary(run *models.SearchRun) {
	for _, l := range m.loggers {
		l.LogSearchSummary(run)
	}
}

// NoOpLogger is a Logger implementation that discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(message string)                {}
func (n *NoOpLogger) LogDebug(message string)                {}
func (n *NoOpLogger) LogInfo(message string)                 {}
func (n *NoOpLogger) LogWarn(message string)                 {}
func (n *NoOpLogger) LogError(message string)                {}
func (n *NoOpLogger) LogSearchStart(runID, root string)      {}
func (n *NoOpLogger) LogSearchSummary(run *models.SearchRun) {}
