package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LogInfo)
	logger.Info("solved layout", "status", "success", "components", 4)

	line := buf.String()
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(line) {
		t.Errorf("log line %q does not start with an HH:MM:SS.cc timestamp", line)
	}
	for _, want := range []string{"solved layout", "status=success", "components=4"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
}

func TestSetLogLevelFiltersDebug(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		want  bool
	}{
		{"info level", LogInfo, false},
		{"debug level", LogDebug, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := New(&buf, LogInfo)
			c.SetLogLevel(tt.level)
			c.Logger.Debug("candidate rejected", "kind", "pallet")
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("debug output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.done("Solved layout")

	if !regexp.MustCompile(`Solved layout \(\d+(\.\d+)?(ns|µs|ms|s)\)`).MatchString(buf.String()) {
		t.Errorf("progress output = %q, want message with elapsed time", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	logger := newLogger(&bytes.Buffer{}, LogInfo)
	if got := loggerFromContext(withLogger(context.Background(), logger)); got != logger {
		t.Error("loggerFromContext did not return the attached logger")
	}
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext returned nil without an attached logger")
	}
}

// Commands log through the CLI logger, so -v surfaces runner debug output.
func TestVerboseSolveLogsRunnerDetail(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	record := writeRecord(t, dir, "cell.yaml")

	var logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"-v", "solve", record, "-o", filepath.Join(dir, "out.json"), "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("solve: %v", err)
	}

	out := logs.String()
	if !strings.Contains(out, "DEBU") {
		t.Errorf("verbose solve wrote no debug lines:\n%s", out)
	}
	if !strings.Contains(out, "Solved layout") {
		t.Errorf("solve did not log its progress line:\n%s", out)
	}
}
