// Package monitor runs scans end to end: it owns the alert sink, the
// cumulative counters and every optional output (journal, state store,
// webhook, metrics) for the lifetime of the process.
package monitor

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"logmon/internal/alert"
	"logmon/internal/audit"
	"logmon/internal/detect"
	"logmon/internal/feature"
	"logmon/internal/metrics"
	"logmon/internal/notify"
	"logmon/internal/parser"
	"logmon/internal/report"
	"logmon/internal/scan"
	"logmon/internal/state"
	"logmon/internal/types"

	"github.com/google/uuid"
)

const (
	ModeSingle = "single-scan"
	ModeFollow = "follow"
)

// Monitor executes runs against the configured source
type Monitor struct {
	mu       sync.RWMutex
	cfg      types.Config
	reporter *report.Reporter
	notifier *notify.Webhook

	parser  parser.Parser
	sink    *alert.Sink
	journal *audit.Logger
	store   *state.Store // nil keeps cumulative counters in memory only
	totals  *feature.Cumulative

	newID func() string
	now   func() time.Time
}

// New creates a monitor. The sink must already be open; store may be nil.
func New(cfg types.Config, sink *alert.Sink, store *state.Store, out, errw io.Writer) *Monitor {
	return &Monitor{
		cfg:      cfg,
		reporter: report.NewReporter(out, errw, report.NewStyle(cfg.Output.Color)),
		notifier: notify.NewWebhook(cfg.Notification.WebhookURL),
		parser:   parser.NewClassifier(),
		sink:     sink,
		journal:  audit.NewLogger(cfg.Output.AuditLogPath),
		store:    store,
		totals:   feature.NewCumulative(),
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Config returns the configuration currently in effect
func (m *Monitor) Config() types.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Totals exposes the cumulative counters
func (m *Monitor) Totals() *feature.Cumulative {
	return m.totals
}

// Reload swaps in a new configuration. Threshold, color and webhook apply to
// the next run; input, sink, journal and state paths need a restart.
func (m *Monitor) Reload(cfg *types.Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg.Input.FilePath != m.cfg.Input.FilePath || cfg.Output.AlertLogPath != m.cfg.Output.AlertLogPath ||
		cfg.State.DBPath != m.cfg.State.DBPath || cfg.Output.AuditLogPath != m.cfg.Output.AuditLogPath {
		log.Println("[CONFIG] Path changes take effect after restart")
	}

	next := m.cfg
	next.Detection = cfg.Detection
	next.Output.Color = cfg.Output.Color
	next.Notification = cfg.Notification
	m.cfg = next

	m.reporter = m.reporter.WithStyle(report.NewStyle(next.Output.Color))
	m.notifier = notify.NewWebhook(next.Notification.WebhookURL)

	metrics.ConfigReloads.Inc()
	log.Printf("[CONFIG] Reload successful (failed-login threshold %d)", next.Detection.FailedThreshold)
}

// RestoreState loads cumulative counters from the state store, if any
func (m *Monitor) RestoreState() error {
	if m.store == nil {
		return nil
	}
	counts, err := m.store.LoadCumulative()
	if err != nil {
		return err
	}
	m.totals.ReplaceAll(counts)
	log.Printf("[STATE] Restored cumulative counters (%d failed logins, %d addresses)", counts.FailedLogins, len(counts.Addresses))
	return nil
}

// RunOnce scans the whole source as a single run. A source that cannot be
// opened yields scan.ErrSourceUnavailable and no report.
func (m *Monitor) RunOnce(ctx context.Context) (*scan.Result, error) {
	cfg, reporter, notifier := m.snapshot()
	started := m.now()

	res, err := m.scanner(cfg).Scan(cfg.Input.FilePath)
	if err != nil {
		metrics.Runs.WithLabelValues("failed").Inc()
		reporter.Failure(err)
		return nil, err
	}

	m.complete(ctx, res, runInfo{
		cfg:       cfg,
		reporter:  reporter,
		notifier:  notifier,
		startedAt: started,
		mode:      ModeSingle,
	})
	return res, nil
}

type runInfo struct {
	cfg         types.Config
	reporter    *report.Reporter
	notifier    *notify.Webhook
	startedAt   time.Time
	startOffset int64
	endOffset   int64
	mode        string
}

func (m *Monitor) snapshot() (types.Config, *report.Reporter, *notify.Webhook) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg, m.reporter, m.notifier
}

func (m *Monitor) scanner(cfg types.Config) *scan.Scanner {
	return scan.NewScanner(m.parser, detect.NewEngine(cfg.Detection.FailedThreshold))
}

// complete performs every side effect of a finished run. The alert sink is
// written before anything else so alerts are durable first.
func (m *Monitor) complete(ctx context.Context, res *scan.Result, info runInfo) {
	savedTo := ""
	if res.Alerted {
		if err := m.sink.Append(res.Alerts); err != nil {
			info.reporter.Failure(err)
		} else {
			savedTo = m.sink.Path()
		}
	}

	m.totals.Merge(res.Counters)
	info.reporter.Run(res, savedTo)
	recordMetrics(res)

	rec := types.RunRecord{
		ID:          m.newID(),
		StartedAt:   info.startedAt,
		FinishedAt:  m.now(),
		Source:      info.cfg.Input.FilePath,
		StartOffset: info.startOffset,
		EndOffset:   info.endOffset,
		Counts:      res.Counters.Counts(),
		Alerts:      res.Alerts,
		Mode:        info.mode,
	}

	if err := m.journal.LogRun(rec); err != nil {
		log.Printf("[AUDIT] Failed to write run journal: %v", err)
	}

	if m.store != nil {
		if err := m.store.SaveCumulative(m.totals.Snapshot()); err != nil {
			log.Printf("[STATE] Failed to save cumulative counters: %v", err)
		}
		if err := m.store.RecordAlerts(rec.ID, rec.FinishedAt, rec.Alerts); err != nil {
			log.Printf("[STATE] Failed to record alerts: %v", err)
		}
	}

	if err := info.notifier.Notify(ctx, rec); err != nil {
		log.Printf("[NOTIFY] %v", err)
	}
}

func recordMetrics(res *scan.Result) {
	c := res.Counters
	metrics.LinesScanned.Add(float64(res.Lines))
	metrics.Matches.WithLabelValues(string(types.KindFailedLogins)).Add(float64(c.FailedLogins))
	metrics.Matches.WithLabelValues(string(types.KindErrors)).Add(float64(c.Errors))
	metrics.Matches.WithLabelValues(string(types.KindCriticals)).Add(float64(c.Criticals))
	for _, a := range res.Alerts {
		metrics.AlertsEmitted.WithLabelValues(string(a.Kind)).Inc()
	}
	if res.Alerted {
		metrics.Runs.WithLabelValues("alerted").Inc()
	} else {
		metrics.Runs.WithLabelValues("clean").Inc()
	}
}
