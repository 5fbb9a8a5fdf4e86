package ingest

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nxadm/tail"
)

// LogLine represents a raw line from a log source
type LogLine struct {
	Source  string
	Content string
	Offset  int64 // byte offset just past this line
}

// FileTailer follows a single file, starting at a cursor
type FileTailer struct {
	path   string
	offset int64
	t      *tail.Tail
	done   chan struct{}
}

// NewFileTailer creates a new tailer for a path that resumes at offset
func NewFileTailer(path string, offset int64) *FileTailer {
	return &FileTailer{
		path:   path,
		offset: offset,
		done:   make(chan struct{}),
	}
}

// Offset returns the offset tailing starts from, after Start has validated it
func (f *FileTailer) Offset() int64 {
	return f.offset
}

// Start begins tailing the file and returns a channel of lines
func (f *FileTailer) Start() (<-chan LogLine, error) {
	// A cursor past the end means the file was truncated or rotated since it was saved
	info, err := os.Stat(f.path)
	switch {
	case err != nil:
		f.offset = 0
	case info.Size() < f.offset:
		log.Printf("[FOLLOW] %s is shorter than saved cursor %d, starting over", f.path, f.offset)
		f.offset = 0
	}

	// Config for tailing (follow, reopen on rotate)
	config := tail.Config{
		Location:  &tail.SeekInfo{Offset: f.offset, Whence: io.SeekStart},
		Follow:    true,
		ReOpen:    true,
		MustExist: false,
		Poll:      true, // Fallback for some filesystems/docker mounts
		Logger:    tail.DiscardingLogger,
	}

	log.Printf("[FOLLOW] Starting tailer for %s at offset %d (waiting if not present)", f.path, f.offset)

	t, err := tail.TailFile(f.path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to tail file %s: %w", f.path, err)
	}
	f.t = t

	out := make(chan LogLine)

	go func() {
		defer close(out)
		for line := range t.Lines {
			if line.Err != nil {
				// We don't log every error to avoid spamming if a file is rotated
				continue
			}
			select {
			case out <- LogLine{
				Source:  f.path,
				Content: line.Text,
				Offset:  line.SeekInfo.Offset,
			}:
			case <-f.done:
				return
			}
		}
	}()

	return out, nil
}

// Stop stops the tailing
func (f *FileTailer) Stop() error {
	select {
	case <-f.done:
	default:
		close(f.done)
	}
	if f.t != nil {
		return f.t.Stop()
	}
	return nil
}
