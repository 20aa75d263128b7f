package agent

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestEngagementLoggerWritesPerSessionNDJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logger, err := NewEngagementLogger(EngagementLogConfig{
		Enabled:   true,
		Dir:       dir,
		QueueSize: 16,
	}, nil)
	if err != nil {
		t.Fatalf("NewEngagementLogger failed: %v", err)
	}

	logger.Log(EngagementEvent{
		SessionID:    "sess-1",
		Direction:    "outbound",
		Text:         "which bank is this for?",
		Directive:    "solicit-payment-info",
		ScamDetected: true,
	})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	path := filepath.Join(dir, "sess-1.ndjson")
	line := waitForLogLine(t, path)

	var got EngagementEvent
	if err := json.Unmarshal([]byte(line), &got); err != nil {
		t.Fatalf("failed to unmarshal log line: %v", err)
	}
	if got.Text != "which bank is this for?" {
		t.Errorf("unexpected Text: %q", got.Text)
	}
	if got.EventID == "" {
		t.Error("expected event id to be populated")
	}
	if got.Timestamp == "" {
		t.Error("expected timestamp to be populated")
	}
}

func TestEngagementLoggerGlobalFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	globalPath := filepath.Join(dir, "all.ndjson")
	logger, err := NewEngagementLogger(EngagementLogConfig{
		Enabled:       true,
		Dir:           dir,
		GlobalEnabled: true,
		GlobalPath:    globalPath,
		QueueSize:     16,
	}, nil)
	if err != nil {
		t.Fatalf("NewEngagementLogger failed: %v", err)
	}

	logger.Log(EngagementEvent{SessionID: "a", Direction: "inbound", Text: "hello"})
	logger.Log(EngagementEvent{SessionID: "b", Direction: "inbound", Text: "hi"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(globalPath)
	if err != nil {
		t.Fatalf("failed to read global log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 global log lines, got %d", len(lines))
	}
}

func TestEngagementLoggerDisabledIsNoOp(t *testing.T) {
	t.Parallel()

	logger, err := NewEngagementLogger(EngagementLogConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("NewEngagementLogger failed: %v", err)
	}
	logger.Log(EngagementEvent{SessionID: "sess-1", Text: "ignored"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"sess-1", "sess-1"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"", "unknown"},
		{"a b/c", "a_b_c"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func waitForLogLine(t *testing.T, path string) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		data, err := os.ReadFile(path)
		if err == nil && len(data) > 0 {
			lines := strings.Split(strings.TrimSpace(string(data)), "\n")
			if len(lines) > 0 {
				return lines[len(lines)-1]
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for log file %s", path)
	return ""
}
