package monitor

import (
	"context"
	"log"
	"time"

	"logmon/internal/ingest"
	"logmon/internal/metrics"
)

// Follow tails the source from the saved cursor and turns each interval's
// worth of new lines into one run. It returns when ctx is done or the tailer
// stops; pending lines are flushed as a final run either way.
func (m *Monitor) Follow(ctx context.Context) error {
	cfg := m.Config()

	var cursor int64
	if m.store != nil {
		saved, err := m.store.LoadCursor(cfg.Input.FilePath)
		if err != nil {
			log.Printf("[STATE] %v, starting at offset 0", err)
		} else {
			cursor = saved
		}
	}

	tailer := ingest.NewFileTailer(cfg.Input.FilePath, cursor)
	lines, err := tailer.Start()
	if err != nil {
		return err
	}
	defer tailer.Stop()

	cursor = tailer.Offset()
	metrics.CursorOffset.Set(float64(cursor))

	ticker := time.NewTicker(cfg.Follow.Interval)
	defer ticker.Stop()

	var batch []string
	start, end := cursor, cursor

	flush := func(ctx context.Context) {
		if len(batch) == 0 {
			return
		}
		m.runBatch(ctx, batch, start, end)
		batch = batch[:0]
		start = end
	}

	for {
		select {
		case <-ctx.Done():
			// The run itself must not inherit the cancellation
			flush(context.WithoutCancel(ctx))
			return nil
		case line, ok := <-lines:
			if !ok {
				flush(ctx)
				return nil
			}
			if line.Offset < end {
				log.Printf("[FOLLOW] %s was truncated, cursor restarts from the beginning", line.Source)
				start = 0
			}
			batch = append(batch, line.Content)
			end = line.Offset
		case <-ticker.C:
			flush(ctx)
		}
	}
}

// runBatch treats one batch of followed lines as a run and advances the cursor
func (m *Monitor) runBatch(ctx context.Context, lines []string, start, end int64) {
	cfg, reporter, notifier := m.snapshot()
	started := m.now()

	res := m.scanner(cfg).ScanLines(lines)
	m.complete(ctx, res, runInfo{
		cfg:         cfg,
		reporter:    reporter,
		notifier:    notifier,
		startedAt:   started,
		startOffset: start,
		endOffset:   end,
		mode:        ModeFollow,
	})

	if m.store != nil {
		if err := m.store.SaveCursor(cfg.Input.FilePath, end); err != nil {
			log.Printf("[STATE] %v", err)
		}
	}
	metrics.CursorOffset.Set(float64(end))
}
