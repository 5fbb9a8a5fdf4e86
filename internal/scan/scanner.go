// Package scan implements the single-pass log scan: classify every line,
// aggregate run counters and evaluate thresholds once at end of input.
package scan

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"logmon/internal/detect"
	"logmon/internal/feature"
	"logmon/internal/parser"
	"logmon/internal/types"
)

// ErrSourceUnavailable is returned when the input cannot be opened for reading
var ErrSourceUnavailable = errors.New("source unavailable")

// Result is the outcome of one run
type Result struct {
	Counters *feature.RunCounters
	Alerts   []types.Alert
	Alerted  bool
	Lines    int64
}

// Scanner classifies lines and evaluates thresholds for a run
type Scanner struct {
	parser parser.Parser
	engine *detect.Engine
}

// NewScanner creates a scanner using the given classifier and engine
func NewScanner(p parser.Parser, engine *detect.Engine) *Scanner {
	return &Scanner{
		parser: p,
		engine: engine,
	}
}

// Scan reads the file at path from start to end as one run
func (s *Scanner) Scan(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	return s.ScanReader(f)
}

// ScanReader consumes r to EOF as one run. Lines have no length limit; a
// trailing "\r" is dropped and a final line without newline still counts.
func (s *Scanner) ScanReader(r io.Reader) (*Result, error) {
	run := feature.NewRunCounters()
	var lines int64

	reader := bufio.NewReaderSize(r, 64*1024)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			run.Add(s.parser.Classify(trimEOL(line)))
			lines++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", lines+1, err)
		}
	}

	return s.finish(run, lines), nil
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// ScanLines treats an already collected batch of lines as one run
func (s *Scanner) ScanLines(lines []string) *Result {
	run := feature.NewRunCounters()
	for _, line := range lines {
		run.Add(s.parser.Classify(line))
	}
	return s.finish(run, int64(len(lines)))
}

func (s *Scanner) finish(run *feature.RunCounters, lines int64) *Result {
	alerts := s.engine.Evaluate(run)
	return &Result{
		Counters: run,
		Alerts:   alerts,
		Alerted:  len(alerts) > 0,
		Lines:    lines,
	}
}
