package agent

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// EngagementEvent is one NDJSON record of the engagement log.
type EngagementEvent struct {
	EventID      string `json:"event_id"`
	Timestamp    string `json:"ts"`
	SessionID    string `json:"session_id"`
	Direction    string `json:"direction"` // inbound | outbound
	Text         string `json:"text"`
	Directive    string `json:"directive,omitempty"`
	ScamDetected bool   `json:"scam_detected"`
}

// EngagementLogConfig controls NDJSON engagement logging.
type EngagementLogConfig struct {
	Enabled       bool
	Dir           string
	GlobalEnabled bool
	GlobalPath    string
	QueueSize     int
}

// EngagementLogger writes per-session NDJSON transcripts of honeypot
// engagements. Writes happen on a background goroutine; when the queue
// is full events are dropped rather than blocking a turn.
type EngagementLogger struct {
	cfg    EngagementLogConfig
	logger *slog.Logger

	queue chan EngagementEvent
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewEngagementLogger creates the logger and starts its writer
// goroutine. A disabled config returns a logger whose Log is a no-op.
func NewEngagementLogger(cfg EngagementLogConfig, logger *slog.Logger) (*EngagementLogger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}

	l := &EngagementLogger{
		cfg:    cfg,
		logger: logger,
		queue:  make(chan EngagementEvent, cfg.QueueSize),
		done:   make(chan struct{}),
	}
	if !cfg.Enabled {
		close(l.done)
		return l, nil
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create engagement log directory: %w", err)
	}
	if cfg.GlobalEnabled {
		if err := os.MkdirAll(filepath.Dir(cfg.GlobalPath), 0o755); err != nil {
			return nil, fmt.Errorf("create global engagement log directory: %w", err)
		}
	}

	go l.run()
	return l, nil
}

// Log enqueues an event. Never blocks; the event is dropped when the
// queue is full or the logger is disabled.
func (l *EngagementLogger) Log(event EngagementEvent) {
	if !l.cfg.Enabled {
		return
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()

	event.EventID = uuid.NewString()
	event.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)

	select {
	case l.queue <- event:
	default:
		l.logger.Warn("engagement log queue full, dropping event", "session_id", event.SessionID)
	}
}

// Close stops the writer after draining queued events.
func (l *EngagementLogger) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	if !l.cfg.Enabled {
		return nil
	}
	close(l.queue)
	<-l.done
	return nil
}

func (l *EngagementLogger) run() {
	defer close(l.done)
	for event := range l.queue {
		l.write(event)
	}
}

func (l *EngagementLogger) write(event EngagementEvent) {
	line, err := json.Marshal(event)
	if err != nil {
		l.logger.Warn("failed to encode engagement event", "error", err)
		return
	}
	line = append(line, '\n')

	path := filepath.Join(l.cfg.Dir, sanitizeFilename(event.SessionID)+".ndjson")
	if err := appendFile(path, line); err != nil {
		l.logger.Warn("failed to write engagement log", "path", path, "error", err)
	}
	if l.cfg.GlobalEnabled {
		if err := appendFile(l.cfg.GlobalPath, line); err != nil {
			l.logger.Warn("failed to write global engagement log", "path", l.cfg.GlobalPath, "error", err)
		}
	}
}

func appendFile(path string, line []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(line)
	return err
}

// sanitizeFilename keeps session identifiers filesystem-safe.
func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "unknown"
	}
	return string(out)
}
