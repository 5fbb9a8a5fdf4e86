package alert

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sync"

	"logmon/internal/types"
)

// ErrSinkUnavailable is returned when the alert file cannot be opened for appending
var ErrSinkUnavailable = errors.New("sink unavailable")

// Separator terminates the alerts of one run
const Separator = "----"

// Sink appends alert lines to a text file. It is opened once for the process
// lifetime and every Append is synced before returning.
type Sink struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// Open opens path in append mode, creating it if needed
func Open(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}
	return &Sink{path: path, f: f}, nil
}

// Path returns the file the sink writes to
func (s *Sink) Path() string {
	return s.path
}

// Append writes one line per alert followed by the separator. An empty slice
// writes nothing.
func (s *Sink) Append(alerts []types.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w := bufio.NewWriter(s.f)
	for _, a := range alerts {
		w.WriteString(a.Line())
		w.WriteByte('\n')
	}
	w.WriteString(Separator + "\n")
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write alerts to %s: %w", s.path, err)
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", s.path, err)
	}
	return nil
}

// Close closes the underlying file
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
