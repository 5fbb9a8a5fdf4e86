package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"logmon/internal/config"
	"logmon/internal/feature"
	"logmon/internal/scan"
	"logmon/internal/types"
)

func TestStyle_NoColorIsPlain(t *testing.T) {
	s := NewStyle(false)
	if got := s.Red("x"); got != "x" {
		t.Errorf("Expected plain text, got %q", got)
	}
	if got := NewStyle(true).Red("x"); got != "\033[31mx\033[0m" {
		t.Errorf("Expected red text, got %q", got)
	}
}

func TestReporter_RunPrintsCountsAlertsAndSortedAddresses(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, &out, NewStyle(false))

	res := &scan.Result{
		Counters: &feature.RunCounters{
			FailedLogins: 7,
			Errors:       1,
			Addresses:    map[string]int64{"1.2.3.4": 2, "5.6.7.8": 5},
		},
		Alerts: []types.Alert{
			{Severity: types.SeverityWarning, Message: "Multiple failed logins (7)"},
			{Severity: types.SeverityWarning, Message: "1 error(s)"},
		},
		Alerted: true,
	}
	r.Run(res, "alerts.log")

	text := out.String()
	for _, want := range []string{
		"Scan Results:",
		"  Failed logins: 7\n",
		"  Errors:        1\n",
		"  Criticals:     0\n",
		"⚠️ ALERT: Multiple failed logins (7)",
		"⚠️ ALERT: 1 error(s)",
		"✅ Alerts saved to alerts.log",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, text)
		}
	}

	first := strings.Index(text, "5.6.7.8 → 5 attempts")
	second := strings.Index(text, "1.2.3.4 → 2 attempts")
	if first < 0 || second < 0 || first > second {
		t.Errorf("Expected 5.6.7.8 listed before 1.2.3.4, got:\n%s", text)
	}
	if strings.Contains(text, "\033[") {
		t.Error("Expected no ANSI sequences with color disabled")
	}
}

func TestReporter_RunWithoutAlerts(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, &out, NewStyle(true))

	r.Run(&scan.Result{Counters: feature.NewRunCounters()}, "alerts.log")

	text := out.String()
	if strings.Contains(text, "ALERT") || strings.Contains(text, "Suspicious") || strings.Contains(text, "saved") {
		t.Errorf("Expected counts only, got:\n%s", text)
	}
}

func TestReporter_BannerAndFailure(t *testing.T) {
	var out, errw bytes.Buffer
	r := NewReporter(&out, &errw, NewStyle(false))

	cfg := config.Default()
	cfg.Follow.Enabled = true
	cfg.Follow.Interval = 2 * time.Second
	r.Banner(cfg)

	if !strings.Contains(out.String(), "Mode: follow (2s)") {
		t.Errorf("Expected follow mode in banner, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Failed-login threshold: 3") {
		t.Errorf("Expected threshold in banner, got:\n%s", out.String())
	}

	r.Failure(errors.New("bad\x1b[2Jthing"))
	if got := errw.String(); got != "❌ bad[2Jthing\n" {
		t.Errorf("Expected sanitized failure, got %q", got)
	}
}
