package logger

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/syn-chromatic/filesearch/internal/models"
)

var tsPattern = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] `)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantLines []string
		skipLines []string
	}{
		{
			name:      "info hides debug and trace",
			level:     "info",
			wantLines: []string{"[INFO] info msg", "[WARN] warn msg", "[ERROR] error msg"},
			skipLines: []string{"debug msg", "trace msg"},
		},
		{
			name:      "warn hides info",
			level:     "warn",
			wantLines: []string{"[WARN] warn msg", "[ERROR] error msg"},
			skipLines: []string{"info msg"},
		},
		{
			name:      "trace shows everything",
			level:     "TRACE",
			wantLines: []string{"[TRACE] trace msg", "[DEBUG] debug msg", "[INFO] info msg"},
		},
		{
			name:      "invalid level falls back to info",
			level:     "loud",
			wantLines: []string{"[INFO] info msg"},
			skipLines: []string{"debug msg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cl := NewConsoleLogger(&buf, tt.level)

			cl.LogTrace("trace msg")
			cl.LogDebug("debug msg")
			cl.LogInfo("info msg")
			cl.LogWarn("warn msg")
			cl.LogError("error msg")

			out := buf.String()
			for _, want := range tt.wantLines {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, skip := range tt.skipLines {
				if strings.Contains(out, skip) {
					t.Errorf("output should not contain %q:\n%s", skip, out)
				}
			}
			for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
				if !tsPattern.MatchString(line) {
					t.Errorf("line without timestamp prefix: %q", line)
				}
			}
		})
	}
}

func TestConsoleLogger_NilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "trace")
	cl.LogWarn("dropped")
	cl.LogSearchStart("id", "/root")
	cl.LogSearchSummary(&models.SearchRun{})
}

func TestConsoleLogger_NoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")
	if cl.colorOutput {
		t.Error("colorOutput should be false for non-terminal writers")
	}
	cl.LogWarn("plain")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("unexpected ANSI codes: %q", buf.String())
	}
}

func TestConsoleLogger_SearchStart(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.LogSearchStart("run-1", "/data")
	cl.LogSearchStart("run-2", "")

	out := buf.String()
	if !strings.Contains(out, "Searching /data (run run-1)") {
		t.Errorf("missing start line: %s", out)
	}
	if !strings.Contains(out, "Searching current directory (run run-2)") {
		t.Errorf("missing default root wording: %s", out)
	}

	buf.Reset()
	NewConsoleLogger(&buf, "warn").LogSearchStart("run-3", "/data")
	if buf.Len() != 0 {
		t.Errorf("start line should be filtered at warn level, got %q", buf.String())
	}
}

func TestConsoleLogger_SearchSummary(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.LogSearchSummary(&models.SearchRun{
		ID:           "abc",
		Root:         "/data",
		Files:        []string{"/data/a", "/data/b"},
		Inaccessible: []string{"/data/x"},
		VisitedDirs:  4,
		RootResolved: true,
		Duration:     1500 * time.Millisecond,
	})

	out := buf.String()
	for _, want := range []string{
		"=== Search Summary ===",
		"Run: abc",
		"Root: /data",
		"Files found: 2",
		"Directories read: 4",
		"Inaccessible paths: 1",
		"Duration: 1s",
		"Status: PARTIAL",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{5 * time.Second, "5s"},
		{90 * time.Second, "1m30s"},
		{2 * time.Minute, "2m"},
		{2*time.Hour + 15*time.Minute, "2h15m"},
		{3 * time.Hour, "3h"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeLogLevel(t *testing.T) {
	cases := map[string]string{
		"":        "info",
		" DEBUG ": "debug",
		"warn":    "warn",
		"bogus":   "info",
	}
	for in, want := range cases {
		if got := normalizeLogLevel(in); got != want {
			t.Errorf("normalizeLogLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
