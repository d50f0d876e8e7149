// Package logger provides the diagnostic channel for filesearch.
//
// Loggers receive search lifecycle events (start, summary) and free-form messages at
// trace/debug/info/warn/error levels. Inaccessible paths found by the scanner arrive as
// warnings. Implementations are thread-safe and write to a console, a per-run file, or
// nowhere.
package logger

import (
	"fmt"
	"strings"
	"time"

	"github.com/syn-chromatic/filesearch/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Logger is implemented by every diagnostic sink.
// It satisfies scanner.Logger.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogSearchStart(runID, root string)
	LogSearchSummary(run *models.SearchRun)
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}

	return "info"
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// allows reports whether a message at messageLevel passes the configured level.
func allows(configured, messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(configured)
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a short human-readable string.
// Examples: "250ms", "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		minutes := (d % time.Hour) / time.Minute
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

// summaryLines renders the plain-text lines of a search summary.
func summaryLines(run *models.SearchRun) []string {
	lines := []string{
		"=== Search Summary ===",
		fmt.Sprintf("Run: %s", run.ID),
		fmt.Sprintf("Root: %s", run.Root),
		fmt.Sprintf("Files found: %d", run.FileCount()),
		fmt.Sprintf("Directories read: %d", run.VisitedDirs),
		fmt.Sprintf("Inaccessible paths: %d", run.InaccessibleCount()),
		fmt.Sprintf("Duration: %s", formatDuration(run.Duration)),
		fmt.Sprintf("Status: %s", run.Status()),
	}
	return lines
}
