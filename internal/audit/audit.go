package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"logmon/internal/types"
)

// Logger appends one JSON document per run to the journal file
type Logger struct {
	mu       sync.Mutex
	filePath string
}

// NewLogger creates a new run journal. An empty path disables it.
func NewLogger(filePath string) *Logger {
	return &Logger{
		filePath: filePath,
	}
}

// Enabled reports whether the journal has a destination
func (l *Logger) Enabled() bool {
	return l != nil && l.filePath != ""
}

// LogRun writes a run record to the journal in a thread-safe manner
func (l *Logger) LogRun(rec types.RunRecord) error {
	if !l.Enabled() {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open run journal: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(rec); err != nil {
		return fmt.Errorf("failed to encode run record: %w", err)
	}

	return nil
}
