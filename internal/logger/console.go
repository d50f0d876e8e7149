package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/syn-chromatic/filesearch/internal/models"
)

// ConsoleLogger logs search progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive); anything else
// falls back to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}

	if w == os.Stdout || w == os.Stderr {
		// fatih/color already honours NO_COLOR and non-TTY outputs
		return !color.NoColor
	}

	return false
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !allows(cl.logLevel, strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	label := level
	if cl.colorOutput {
		label = levelColor(level).Sprint(level)
	}

	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", timestamp(), label, message)
}

// levelColor returns the color used for a level label.
func levelColor(level string) *color.Color {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack)
	case "DEBUG":
		return color.New(color.FgCyan)
	case "WARN":
		return color.New(color.FgYellow)
	case "ERROR":
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}

// statusColor maps a run status onto green/yellow/red.
func statusColor(status string) *color.Color {
	switch status {
	case models.RunStatusComplete:
		return color.New(color.FgGreen)
	case models.RunStatusPartial:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// LogSearchStart logs the start of a search at INFO level.
// Format: "[HH:MM:SS] Searching <root> (run <id>)"
func (cl *ConsoleLogger) LogSearchStart(runID, root string) {
	if cl.writer == nil || !allows(cl.logLevel, "info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	if root == "" {
		root = "current directory"
	}
	if cl.colorOutput {
		root = color.New(color.Bold).Sprint(root)
	}
	fmt.Fprintf(cl.writer, "[%s] Searching %s (run %s)\n", timestamp(), root, runID)
}

// LogSearchSummary logs the search summary at INFO level, one timestamped line per field.
func (cl *ConsoleLogger) LogSearchSummary(run *models.SearchRun) {
	if cl.writer == nil || run == nil || !allows(cl.logLevel, "info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	lines := summaryLines(run)
	if cl.colorOutput {
		lines[0] = color.New(color.Bold).Sprint(lines[0])
		last := len(lines) - 1
		lines[last] = "Status: " + statusColor(run.Status()).Sprint(run.Status())
		if run.InaccessibleCount() > 0 {
			lines[5] = color.New(color.FgYellow).Sprint(lines[5])
		}
	}

	var b strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&b, "[%s] %s\n", ts, line)
	}
	io.WriteString(cl.writer, b.String())
}
